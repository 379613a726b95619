package http

import (
	"net/http"
	"strings"
	"time"

	commonhttp "github.com/avolkov/scribe/internal/common/http"
	"github.com/avolkov/scribe/internal/common/jwtverify"
	"github.com/avolkov/scribe/internal/common/logger"
	"github.com/avolkov/scribe/internal/post/service"
)

type createPostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type updatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type Handler struct {
	posts   *service.PostService
	errs    *commonhttp.ErrorHandler
	timeout time.Duration
	log     *logger.Logger
}

// NewHandler mounts the post routes. Reads are public; mutations and the
// my-posts listing require an authenticated caller, so the whole subtree
// sits behind an optional token parse and each operation checks the
// context itself.
func NewHandler(posts *service.PostService, jwtSecret string, timeout time.Duration, log *logger.Logger) http.Handler {
	h := &Handler{
		posts:   posts,
		errs:    commonhttp.NewErrorHandler(log),
		timeout: timeout,
		log:     log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/posts", h.collection)
	mux.HandleFunc("/api/posts/", h.item)

	return jwtverify.Optional(jwtSecret, log)(mux)
}

func (h *Handler) collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
	}
}

func (h *Handler) item(w http.ResponseWriter, r *http.Request) {
	if strings.TrimPrefix(r.URL.Path, "/api/posts/") == "my-posts" {
		h.myPosts(w, r)
		return
	}

	id, ok := commonhttp.ExtractPostIDFromPath(r.URL.Path)
	if !ok {
		commonhttp.WriteErrorEnvelope(w, http.StatusNotFound, commonhttp.CodeInvalidPath, "not found", nil, "")
		return
	}

	if err := commonhttp.ValidateUUID(id); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidPostIDFormat, "invalid post id", nil, "")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPatch:
		h.update(w, r, id)
	case http.MethodDelete:
		h.remove(w, r, id)
	default:
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := commonhttp.ContextWithTimeout(r, h.timeout)
	defer cancel()

	posts, err := h.posts.FindAll(ctx)
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, posts)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.requireClaims(w, r)
	if !ok {
		return
	}

	var req createPostRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("post create failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", nil, "")
		return
	}

	ctx, cancel := commonhttp.ContextWithTimeout(r, h.timeout)
	defer cancel()

	post, err := h.posts.Create(ctx, service.CreateInput{
		Title:   req.Title,
		Content: req.Content,
	}, claims.UserID)
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, post)
}

func (h *Handler) myPosts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
		return
	}

	claims, ok := h.requireClaims(w, r)
	if !ok {
		return
	}

	ctx, cancel := commonhttp.ContextWithTimeout(r, h.timeout)
	defer cancel()

	posts, err := h.posts.FindByAuthor(ctx, claims.UserID)
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, posts)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request, id string) {
	ctx, cancel := commonhttp.ContextWithTimeout(r, h.timeout)
	defer cancel()

	post, err := h.posts.FindOne(ctx, id)
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, post)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, id string) {
	claims, ok := h.requireClaims(w, r)
	if !ok {
		return
	}

	var req updatePostRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("post update failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", nil, "")
		return
	}

	ctx, cancel := commonhttp.ContextWithTimeout(r, h.timeout)
	defer cancel()

	post, err := h.posts.Update(ctx, id, service.UpdateInput{
		Title:   req.Title,
		Content: req.Content,
	}, claims.UserID)
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, post)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request, id string) {
	claims, ok := h.requireClaims(w, r)
	if !ok {
		return
	}

	ctx, cancel := commonhttp.ContextWithTimeout(r, h.timeout)
	defer cancel()

	if err := h.posts.Remove(ctx, id, claims.UserID); err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) requireClaims(w http.ResponseWriter, r *http.Request) (jwtverify.Claims, bool) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeMissingAuthorization, "missing or invalid authorization", nil, "")
		return jwtverify.Claims{}, false
	}
	return claims, true
}

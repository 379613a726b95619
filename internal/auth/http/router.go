package http

import (
	"net/http"
	"time"

	"github.com/avolkov/scribe/internal/auth/service"
	"github.com/avolkov/scribe/internal/common/dto"
	commonhttp "github.com/avolkov/scribe/internal/common/http"
	"github.com/avolkov/scribe/internal/common/logger"
)

type signUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	AccessToken string   `json:"access_token"`
	User        dto.User `json:"user"`
}

type Handler struct {
	auth    *service.AuthService
	errs    *commonhttp.ErrorHandler
	timeout time.Duration
	log     *logger.Logger
}

func NewHandler(auth *service.AuthService, timeout time.Duration, log *logger.Logger) http.Handler {
	h := &Handler{
		auth:    auth,
		errs:    commonhttp.NewErrorHandler(log),
		timeout: timeout,
		log:     log,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/signup", h.signUp)
	mux.HandleFunc("/api/auth/signin", h.signIn)
	return mux
}

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
		return
	}

	var req signUpRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("signup failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", nil, "")
		return
	}

	ctx, cancel := commonhttp.ContextWithTimeout(r, h.timeout)
	defer cancel()

	result, err := h.auth.SignUp(ctx, service.SignUpInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, authResponse{
		AccessToken: result.AccessToken,
		User:        result.User,
	})
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
		return
	}

	var req signInRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("signin failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", nil, "")
		return
	}

	ctx, cancel := commonhttp.ContextWithTimeout(r, h.timeout)
	defer cancel()

	result, err := h.auth.SignIn(ctx, service.SignInInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, authResponse{
		AccessToken: result.AccessToken,
		User:        result.User,
	})
}

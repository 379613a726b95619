package feed

import (
	"net/http"

	gorillaWS "github.com/gorilla/websocket"

	"github.com/avolkov/scribe/internal/common/constants"
	commonhttp "github.com/avolkov/scribe/internal/common/http"
	"github.com/avolkov/scribe/internal/common/jwtverify"
	"github.com/avolkov/scribe/internal/common/logger"
)

var upgrader = gorillaWS.Upgrader{
	ReadBufferSize:  constants.FeedReadBufferSize,
	WriteBufferSize: constants.FeedWriteBufferSize,
}

// NewHandler upgrades authenticated requests to a websocket subscription.
// Mount behind jwtverify.Middleware.
func NewHandler(hub *Hub, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		traceID := commonhttp.TraceIDFromContext(r.Context())
		if r.Method != http.MethodGet {
			commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, traceID)
			return
		}

		claims, ok := jwtverify.FromContext(r.Context())
		if !ok {
			commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeMissingAuthorization, "missing or invalid authorization", nil, traceID)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warnf("feed upgrade failed user_id=%s: %v", claims.UserID, err)
			return
		}

		client := NewClient(r.Context(), hub, conn, claims.UserID, claims.Username, log)
		hub.Register(client)
		client.Start()
	}
}

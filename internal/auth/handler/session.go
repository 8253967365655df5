package handler

import (
	"net/http"

	"github.com/cloksy/cloksy-backend/internal/auth"
	"github.com/cloksy/cloksy-backend/internal/auth/jwt"
	"github.com/cloksy/cloksy-backend/pkg/httputil"
	"github.com/cloksy/cloksy-backend/pkg/logger"
)

// SessionResponse is returned by POST /session
type SessionResponse struct {
	*jwt.Token
	Identity *auth.Identity `json:"identity"`
}

// SessionHandler exchanges credentials for a session token
type SessionHandler struct {
	authenticator auth.Authenticator
	tokens        *jwt.Manager
	logger        *logger.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(authenticator auth.Authenticator, tokens *jwt.Manager, log *logger.Logger) *SessionHandler {
	return &SessionHandler{authenticator: authenticator, tokens: tokens, logger: log}
}

// Create handles POST /session
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var creds auth.Credentials
	if err := httputil.DecodeJSON(r, &creds); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(&creds); err != nil {
		httputil.Error(w, err)
		return
	}

	identity, err := h.authenticator.Authenticate(r.Context(), creds)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	token, err := h.tokens.Generate(identity.Email, string(identity.Role), identity.Permissions)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to sign session token")
		httputil.Error(w, err)
		return
	}

	h.logger.Info().
		Str("email", identity.Email).
		Str("role", string(identity.Role)).
		Msg("session created")

	httputil.JSON(w, http.StatusOK, SessionResponse{Token: token, Identity: identity})
}

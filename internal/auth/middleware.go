package auth

import (
	"net/http"
	"strings"

	"github.com/cloksy/cloksy-backend/internal/auth/jwt"
	"github.com/cloksy/cloksy-backend/pkg/errors"
	"github.com/cloksy/cloksy-backend/pkg/httputil"
	"github.com/cloksy/cloksy-backend/pkg/logger"
)

// Middleware validates the bearer session token and puts the caller's
// identity in the request context
func Middleware(tokens *jwt.Manager, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqLog := log.WithRequestID(httputil.GetRequestID(r.Context()))

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				httputil.Error(w, errors.Unauthorized("missing authorization header"))
				return
			}

			scheme, token, ok := strings.Cut(authHeader, " ")
			if !ok || scheme != "Bearer" || token == "" {
				httputil.Error(w, errors.Unauthorized("invalid authorization header format"))
				return
			}

			claims, err := tokens.Validate(token)
			if err != nil {
				reqLog.Debug().Err(err).Msg("token validation failed")
				httputil.Error(w, err)
				return
			}

			reqLog.WithEmail(claims.Email).Debug().Str("role", claims.Role).Msg("request authenticated")

			ctx := httputil.WithUserContext(r.Context(), claims.Email, claims.Role, claims.Permissions)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

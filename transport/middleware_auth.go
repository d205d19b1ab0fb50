package transport

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/tanchung/sport-store/application/user"
	"github.com/tanchung/sport-store/constant"
	utilsContext "github.com/tanchung/sport-store/utils/context"
	"github.com/tanchung/sport-store/utils/errors"
)

// AuthMiddleware returns a middleware that validates session JWTs using UserApp.
// It allows public endpoints (login, register, products, swagger) without token.
func AuthMiddleware(userApp user.UserApp) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if isPublicPath(path) {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}
			token := strings.TrimPrefix(auth, "Bearer ")

			userID, sessionID, err := userApp.ValidateToken(r.Context(), token)
			if err != nil {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}

			// Embed the session into context; every gateway call downstream
			// resolves its backend token from it.
			ctx := utilsContext.WithSession(r.Context(), userID, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// isPublicPath defines which endpoints are public (no auth required).
// Payment returns are provider redirects: the browser arrives with no
// Authorization header, and the handoff record carries the user.
func isPublicPath(path string) bool {
	if strings.HasPrefix(path, "/swagger/") || strings.HasPrefix(path, "/products") {
		return true
	}
	if path == "/login" || path == "/register" || path == "/payment/return" {
		return true
	}

	return false
}

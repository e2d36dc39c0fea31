package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/auth"
	"github.com/pupr-presensi/presensi-backend-go/internal/handler/http/response"
)

// AuthRequired accepts only verified access tokens. Refresh tokens are
// signed with the same key and are rejected by their type claim.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		if token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		tokenType, ok := claims["type"].(string)
		if tokenType != "access" || !ok {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r)
	})
}

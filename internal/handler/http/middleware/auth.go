package middleware

import (
	"errors"
	"net/http"

	"github.com/communityroots/volunteer-backend-go/internal/domain/auth"
	"github.com/communityroots/volunteer-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired rejects requests whose bearer token is missing, expired, or
// not an access token. Refresh tokens are only accepted by the dedicated
// refresh endpoint, never here.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				if errors.Is(err, jwtauth.ErrExpired) {
					response.HandleError(w, auth.ErrTokenExpired)
					return
				}
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if tokenType, _ := claims["type"].(string); tokenType != "access" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

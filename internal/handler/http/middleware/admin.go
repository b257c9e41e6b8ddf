package middleware

import (
	"net/http"

	"github.com/fleetdesk/timeclock-backend-go/internal/handler/http/response"
	"github.com/fleetdesk/timeclock-backend-go/internal/pkg/identity"
	"github.com/go-chi/jwtauth/v5"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, identity.ErrInvalidToken)
			return
		}

		admin, ok := claims["is_admin"].(bool)
		if !admin || !ok {
			response.HandleError(w, identity.ErrAdminRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

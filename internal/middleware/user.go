package middleware

import (
	"net/http"

	"github.com/serenoapp/sereno/internal/ctxkeys"
	"github.com/serenoapp/sereno/internal/repository"
)

// RequireUser resolves the caller from the X-User-ID header set by the auth
// proxy in front of this service and injects the user into the request
// context. Requests without a resolvable user are rejected before any
// handler I/O happens.
func RequireUser(users repository.UserRepository) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			userID := r.Header.Get("X-User-ID")
			if userID == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			user, err := users.ByID(userID)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			next(w, r.WithContext(ctxkeys.WithUser(r.Context(), user)))
		}
	}
}

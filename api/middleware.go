package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/danirando/backend-film-antigravity/models"
)

type contextKey string

const contextKeyAccount contextKey = "account"

// TokenValidator resolves a bearer token to an account.
type TokenValidator interface {
	Validate(token string) (models.Account, error)
}

// AccountFromRequest returns the authenticated account injected by the
// auth middleware. The second value is false on unauthenticated requests.
func AccountFromRequest(r *http.Request) (models.Account, bool) {
	account, ok := r.Context().Value(contextKeyAccount).(models.Account)
	return account, ok
}

// RequireAccount validates the session token on each request and injects
// the account into the request context. Tokens come from the Authorization
// header or the ?token= query param.
func RequireAccount(validator TokenValidator) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			token := extractToken(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			account, err := validator.Validate(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid or expired session")
				return
			}

			ctx := context.WithValue(r.Context(), contextKeyAccount, account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// extractToken pulls the session token from the Authorization header,
// falling back to the ?token= query param.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			if token := strings.TrimSpace(parts[1]); token != "" {
				return token
			}
		}
	}
	return strings.TrimSpace(r.URL.Query().Get("token"))
}

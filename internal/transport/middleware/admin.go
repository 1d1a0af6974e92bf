package middleware

import (
	"net/http"
	"strings"

	"github.com/schulanmeldung/regform-backend/pkg/ctxutil"
)

// AdminTokenHeader carries the staff shared secret.
const AdminTokenHeader = "X-Admin-Token"

type adminChecker interface {
	Check(token string) bool
}

// RequireAdmin returns middleware that admits only requests carrying the
// admin secret, either in X-Admin-Token or as a Bearer token. Other
// requests get 403.
func RequireAdmin(checker adminChecker) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(AdminTokenHeader)
			if token == "" {
				token = extractBearerToken(r)
			}
			if token == "" || !checker.Check(token) {
				writeError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r.WithContext(ctxutil.WithAdmin(r.Context())))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "bearer "
	if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}

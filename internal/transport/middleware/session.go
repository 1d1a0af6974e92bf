package middleware

import (
	"net/http"

	"github.com/schulanmeldung/regform-backend/internal/auth"
	"github.com/schulanmeldung/regform-backend/internal/config"
	"github.com/schulanmeldung/regform-backend/pkg/ctxutil"
)

// sessionIDLen is the length of ids produced by auth.GenerateToken.
const sessionIDLen = 43

// Session returns middleware that ensures every request carries a browser
// session id. A missing or malformed cookie is replaced by a fresh random
// id; the cookie is HttpOnly with the configured SameSite mode.
func Session(cfg config.SessionConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(cfg.CookieName); err == nil && validSessionID(c.Value) {
				id = c.Value
			}

			if id == "" {
				raw, _, err := auth.GenerateToken()
				if err != nil {
					writeError(w, http.StatusInternalServerError, "internal server error")
					return
				}
				id = raw
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.CookieName,
					Value:    id,
					Path:     "/",
					MaxAge:   int(cfg.Lifetime.Seconds()),
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: cfg.SameSiteMode(),
				})
			}

			next.ServeHTTP(w, r.WithContext(ctxutil.WithSessionID(r.Context(), id)))
		})
	}
}

func validSessionID(s string) bool {
	if len(s) != sessionIDLen {
		return false
	}
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}

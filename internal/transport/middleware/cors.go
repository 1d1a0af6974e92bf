package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/schulanmeldung/regform-backend/internal/config"
)

// CORS returns middleware that handles Cross-Origin Resource Sharing for
// the form frontends. An allow-list entry is either an exact origin, "*",
// or a subdomain pattern such as "https://*.schule.example.de". An empty
// list allows no cross-origin access. Preflight requests are answered
// directly; requests from other origins pass through without CORS headers.
func CORS(cfg config.CORSConfig) Middleware {
	allow := newOriginMatcher(cfg.AllowedOrigins)
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Add("Vary", "Origin")

			origin := r.Header.Get("Origin")
			allowed := origin != "" && allow.match(origin)
			if allowed {
				h.Set("Access-Control-Allow-Origin", origin)
				if cfg.AllowCredentials {
					h.Set("Access-Control-Allow-Credentials", "true")
				}
				h.Set("Access-Control-Expose-Headers", "Content-Disposition, Retry-After, X-Request-ID")
			}

			if r.Method != http.MethodOptions || r.Header.Get("Access-Control-Request-Method") == "" {
				next.ServeHTTP(w, r)
				return
			}

			h.Add("Vary", "Access-Control-Request-Method")
			h.Add("Vary", "Access-Control-Request-Headers")
			if allowed {
				h.Set("Access-Control-Allow-Methods", cfg.AllowedMethods)
				h.Set("Access-Control-Allow-Headers", cfg.AllowedHeaders)
				h.Set("Access-Control-Max-Age", maxAge)
			}
			w.WriteHeader(http.StatusNoContent)
		})
	}
}

type originMatcher struct {
	any      bool
	exact    map[string]struct{}
	suffixes []wildcardOrigin
}

type wildcardOrigin struct {
	scheme string // "https://"
	suffix string // ".schule.example.de"
}

func newOriginMatcher(list string) originMatcher {
	m := originMatcher{exact: make(map[string]struct{})}
	for _, p := range strings.Split(list, ",") {
		p = strings.ToLower(strings.TrimRight(strings.TrimSpace(p), "/"))
		switch {
		case p == "":
		case p == "*":
			m.any = true
		case strings.Contains(p, "://*."):
			scheme, host, _ := strings.Cut(p, "://*")
			m.suffixes = append(m.suffixes, wildcardOrigin{scheme: scheme + "://", suffix: host})
		default:
			m.exact[p] = struct{}{}
		}
	}
	return m
}

func (m originMatcher) match(origin string) bool {
	if m.any {
		return true
	}
	origin = strings.ToLower(origin)
	if _, ok := m.exact[origin]; ok {
		return true
	}
	for _, w := range m.suffixes {
		rest, ok := strings.CutPrefix(origin, w.scheme)
		if ok && strings.HasSuffix(rest, w.suffix) && len(rest) > len(w.suffix) {
			return true
		}
	}
	return false
}

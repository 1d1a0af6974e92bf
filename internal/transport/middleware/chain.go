package middleware

import "net/http"

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain composes mws into one Middleware. The first entry is outermost:
// Chain(a, b)(h) == a(b(h)). Nil entries are skipped, so optional layers
// can be passed unconditionally.
func Chain(mws ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			if mws[i] != nil {
				final = mws[i](final)
			}
		}
		return final
	}
}

// Optional returns mw when enabled, else nil.
func Optional(enabled bool, mw func() Middleware) Middleware {
	if !enabled {
		return nil
	}
	return mw()
}

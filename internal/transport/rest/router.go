package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/schulanmeldung/regform-backend/internal/config"
	"github.com/schulanmeldung/regform-backend/internal/transport/middleware"
)

// Handlers groups the endpoint handlers mounted by NewRouter. Admin may be
// nil, in which case the staff endpoints are not registered.
type Handlers struct {
	Health      *HealthHandler
	Messages    *MessagesHandler
	Forms       *FormsHandler
	PDF         *PDFHandler
	CSRF        *CSRFHandler
	Submissions *SubmissionHandler
	Admin       *AdminHandler
}

// RouterConfig carries the middleware settings used by NewRouter.
type RouterConfig struct {
	CORS               config.CORSConfig
	Session            config.SessionConfig
	RateLimitPerMinute int
	// AdminChecker guards the staff endpoints.
	AdminChecker interface{ Check(token string) bool }
	// Limiter is optional; without it submissions are not rate limited.
	Limiter *middleware.RateLimiter
}

// NewRouter builds the HTTP routing tree.
//
//	GET    /api/health
//	GET    /api/ready
//	GET    /api/status
//	GET    /api/messages
//	GET    /api/forms/{key}
//	GET    /api/pdf
//	GET    /api/csrf-token                               (session)
//	POST   /api/submissions                              (session, rate limit)
//	GET    /api/admin/submissions                        (admin)
//	GET    /api/admin/submissions/{id}                   (admin)
//	PATCH  /api/admin/submissions/{id}/status            (admin)
//	POST   /api/admin/submissions/{id}/download-token    (admin)
//	DELETE /api/admin/submissions/{id}                   (admin)
func NewRouter(h Handlers, cfg RouterConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health.Live)
		r.Get("/ready", h.Health.Ready)
		r.Get("/status", h.Health.Status)
		r.Get("/messages", h.Messages.Get)
		r.Get("/forms/{key}", h.Forms.Get)
		r.Get("/pdf", h.PDF.Download)

		session := middleware.Session(cfg.Session)
		limit := middleware.Optional(cfg.Limiter != nil && cfg.RateLimitPerMinute > 0, func() middleware.Middleware {
			return cfg.Limiter.Limit("submissions", cfg.RateLimitPerMinute)
		})

		r.With(session).Get("/csrf-token", h.CSRF.Token)
		r.With(middleware.Chain(session, limit)).Post("/submissions", h.Submissions.Create)

		if h.Admin != nil && cfg.AdminChecker != nil {
			r.Route("/admin/submissions", func(r chi.Router) {
				r.Use(middleware.RequireAdmin(cfg.AdminChecker))

				r.Get("/", h.Admin.List)
				r.Get("/{id}", h.Admin.Get)
				r.Patch("/{id}/status", h.Admin.UpdateStatus)
				r.Post("/{id}/download-token", h.Admin.IssueToken)
				r.Delete("/{id}", h.Admin.Delete)
			})
		}
	})

	return r
}

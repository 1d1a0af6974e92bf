package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/schulanmeldung/regform-backend/pkg/ctxutil"
)

type csrfIssuer interface {
	Issue(ctx context.Context, sessionID string) (string, error)
}

// CSRFHandler hands out anti-forgery tokens bound to the session cookie.
type CSRFHandler struct {
	svc csrfIssuer
	log *slog.Logger
}

// NewCSRFHandler creates a CSRFHandler.
func NewCSRFHandler(svc csrfIssuer, logger *slog.Logger) *CSRFHandler {
	return &CSRFHandler{svc: svc, log: logger.With("handler", "csrf")}
}

// Token handles GET /api/csrf-token. Requires the session middleware.
func (h *CSRFHandler) Token(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := ctxutil.SessionIDFromCtx(r.Context())

	token, err := h.svc.Issue(r.Context(), sessionID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/schulanmeldung/regform-backend/internal/domain"
	"github.com/schulanmeldung/regform-backend/internal/service/submission"
	"github.com/schulanmeldung/regform-backend/pkg/ctxutil"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

type adminService interface {
	Get(ctx context.Context, id int64) (*submission.Detail, error)
	List(ctx context.Context, f domain.SubmissionFilter) ([]domain.Submission, int, error)
	UpdateStatus(ctx context.Context, id int64, status domain.Status) error
	Delete(ctx context.Context, id int64) error
	IssueDownloadToken(ctx context.Context, id int64) (*submission.DownloadToken, error)
}

// AdminHandler serves staff endpoints for reviewing submissions.
type AdminHandler struct {
	svc        adminService
	pdfBaseURL string
	log        *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(svc adminService, pdfBaseURL string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{svc: svc, pdfBaseURL: pdfBaseURL, log: logger.With("handler", "admin")}
}

// ---------------------------------------------------------------------------
// Views
// ---------------------------------------------------------------------------

type submissionView struct {
	ID          int64            `json:"id"`
	FormKey     string           `json:"form_key"`
	FormVersion string           `json:"form_version,omitempty"`
	Name        *string          `json:"name"`
	Email       *string          `json:"email"`
	Status      domain.Status    `json:"status"`
	Data        domain.FormData  `json:"data"`
	Metadata    domain.FormData  `json:"metadata"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   *time.Time       `json:"updated_at,omitempty"`
	DeletedAt   *time.Time       `json:"deleted_at,omitempty"`
	Attachments []attachmentView `json:"attachments,omitempty"`
}

type attachmentView struct {
	Field       string `json:"field"`
	Filename    string `json:"filename"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

type listResponse struct {
	Items  []submissionView `json:"items"`
	Total  int              `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

func toView(s domain.Submission) submissionView {
	return submissionView{
		ID:          s.ID,
		FormKey:     s.FormKey,
		FormVersion: s.FormVersion,
		Name:        s.Name,
		Email:       s.Email,
		Status:      s.Status,
		Data:        s.Data,
		Metadata:    s.Metadata,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		DeletedAt:   s.DeletedAt,
	}
}

// ---------------------------------------------------------------------------
// Handlers
// ---------------------------------------------------------------------------

// List handles GET /api/admin/submissions.
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	f, err := parseFilter(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	subs, total, err := h.svc.List(r.Context(), f)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	items := make([]submissionView, 0, len(subs))
	for _, s := range subs {
		items = append(items, toView(s))
	}
	writeJSON(w, http.StatusOK, listResponse{Items: items, Total: total, Limit: f.Limit, Offset: f.Offset})
}

// Get handles GET /api/admin/submissions/{id}.
func (h *AdminHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	id, err := parseID(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	d, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	v := toView(d.Submission)
	for _, a := range d.Attachments {
		v.Attachments = append(v.Attachments, attachmentView{
			Field:       a.Field,
			Filename:    a.Filename,
			URL:         a.URL,
			ContentType: a.ContentType,
			Size:        a.Size,
		})
	}
	writeJSON(w, http.StatusOK, v)
}

type statusRequest struct {
	Status domain.Status `json:"status"`
}

// UpdateStatus handles PATCH /api/admin/submissions/{id}/status.
func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	id, err := parseID(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req statusRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.svc.UpdateStatus(r.Context(), id, req.Status); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "id": id, "status": req.Status})
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	URL       string    `json:"url"`
}

// IssueToken handles POST /api/admin/submissions/{id}/download-token.
func (h *AdminHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	id, err := parseID(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	tok, err := h.svc.IssueDownloadToken(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, tokenResponse{
		Token:     tok.Token,
		ExpiresAt: tok.ExpiresAt,
		URL:       pdfURL(h.pdfBaseURL, tok.Token),
	})
}

// Delete handles DELETE /api/admin/submissions/{id}.
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	id, err := parseID(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// requireAdmin checks that the request passed the admin middleware.
func (h *AdminHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if !ctxutil.IsAdminCtx(r.Context()) {
		writeError(w, http.StatusForbidden, "forbidden")
		return false
	}
	return true
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("id", "must be a positive integer")
	}
	return id, nil
}

func parseFilter(r *http.Request) (domain.SubmissionFilter, error) {
	q := r.URL.Query()
	f := domain.SubmissionFilter{
		FormKey: q.Get("form_key"),
		Limit:   defaultPageSize,
	}

	if s := q.Get("status"); s != "" {
		st := domain.Status(s)
		f.Status = &st
	}
	if a := q.Get("active"); a != "" {
		active, err := strconv.ParseBool(a)
		if err != nil {
			return f, domain.NewValidationError("active", "must be a boolean")
		}
		f.ActiveOnly = active
	}
	if l := q.Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil {
			return f, domain.NewValidationError("limit", "must be an integer")
		}
		f.Limit = min(n, maxPageSize)
	}
	if o := q.Get("offset"); o != "" {
		n, err := strconv.Atoi(o)
		if err != nil {
			return f, domain.NewValidationError("offset", "must be an integer")
		}
		f.Offset = n
	}
	return f, nil
}

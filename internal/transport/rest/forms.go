package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/schulanmeldung/regform-backend/internal/domain"
)

type formGetter interface {
	Get(key string) (*domain.Form, error)
}

// FormsHandler publishes form definitions to the survey renderer.
type FormsHandler struct {
	forms formGetter
	log   *slog.Logger
}

// NewFormsHandler creates a FormsHandler.
func NewFormsHandler(forms formGetter, logger *slog.Logger) *FormsHandler {
	return &FormsHandler{forms: forms, log: logger.With("handler", "forms")}
}

type formResponse struct {
	Key        string          `json:"key"`
	Version    string          `json:"version"`
	Title      string          `json:"title"`
	Theme      string          `json:"theme,omitempty"`
	PDFEnabled bool            `json:"pdf_enabled"`
	Schema     json.RawMessage `json:"schema"`
}

// Get handles GET /api/forms/{key}.
func (h *FormsHandler) Get(w http.ResponseWriter, r *http.Request) {
	f, err := h.forms.Get(chi.URLParam(r, "key"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	schema := f.Schema
	if len(schema) == 0 {
		schema = json.RawMessage("{}")
	}

	w.Header().Set("Cache-Control", "public, max-age=300")
	writeJSON(w, http.StatusOK, formResponse{
		Key:        f.Key,
		Version:    f.Version,
		Title:      f.Title,
		Theme:      f.Theme,
		PDFEnabled: f.PDF.Enabled,
		Schema:     schema,
	})
}

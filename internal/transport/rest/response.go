package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/schulanmeldung/regform-backend/internal/domain"
)

// errorResponse is the envelope for failed API calls.
type errorResponse struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// handleError maps a service error to an HTTP status and a message safe to
// show to clients. Storage and unexpected errors are logged in full and
// answered with a generic message.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	var tooLarge *http.MaxBytesError

	switch {
	case errors.As(err, &ve):
		first := ve.First()
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:  first.Field + ": " + first.Message,
			Fields: ve.Fields(),
		})
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
	case errors.Is(err, domain.ErrArchived):
		writeError(w, http.StatusConflict, "submission is archived")
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "invalid request")
	case errors.Is(err, domain.ErrCSRF):
		writeError(w, http.StatusForbidden, "invalid or missing csrf token")
	case errors.Is(err, domain.ErrInvalidToken):
		writeError(w, http.StatusForbidden, "invalid or expired token")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrPDFNotEnabled):
		writeError(w, http.StatusForbidden, "pdf not enabled for this form")
	case errors.Is(err, domain.ErrUnknownForm):
		writeError(w, http.StatusNotFound, "unknown form")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	default:
		log.ErrorContext(r.Context(), "internal error",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

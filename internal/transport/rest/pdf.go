package rest

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/schulanmeldung/regform-backend/internal/domain"
	"github.com/schulanmeldung/regform-backend/internal/service/document"
)

type documentService interface {
	Generate(ctx context.Context, token string) (*document.Document, error)
}

type translator interface {
	languageResolver
	T(lang, key string) string
}

var errorPage = template.Must(template.New("pdf-error").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>body{font-family:sans-serif;max-width:40rem;margin:4rem auto;padding:0 1rem;color:#222}h1{font-size:1.4rem}</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Message}}</p>
</body>
</html>
`))

// PDFHandler serves confirmation documents behind download tokens.
type PDFHandler struct {
	docs documentService
	i18n translator
	log  *slog.Logger
}

// NewPDFHandler creates a PDFHandler.
func NewPDFHandler(docs documentService, i18n translator, logger *slog.Logger) *PDFHandler {
	return &PDFHandler{docs: docs, i18n: i18n, log: logger.With("handler", "pdf")}
}

// Download handles GET /api/pdf?token=...
// The document is rendered completely before any header is written, so a
// failure always yields an error page and never a truncated PDF.
func (h *PDFHandler) Download(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(h.i18n, r)

	token := r.URL.Query().Get("token")
	if token == "" {
		h.writeErrorPage(w, lang, http.StatusBadRequest, "pdf.error.missing_token")
		return
	}

	doc, err := h.docs.Generate(r.Context(), token)
	if err != nil {
		status, key := pdfErrorStatus(err)
		if status == http.StatusInternalServerError {
			h.log.ErrorContext(r.Context(), "generate pdf", slog.String("error", err.Error()))
		}
		h.writeErrorPage(w, lang, status, key)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Content)))
	w.Header().Set("Cache-Control", "private, no-store")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	w.Write(doc.Content) //nolint:errcheck
}

func pdfErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusForbidden, "pdf.error.invalid_token"
	case errors.Is(err, domain.ErrPDFNotEnabled):
		return http.StatusForbidden, "pdf.error.not_enabled"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "pdf.error.not_found"
	default:
		return http.StatusInternalServerError, "pdf.error.unexpected"
	}
}

func (h *PDFHandler) writeErrorPage(w http.ResponseWriter, lang string, status int, key string) {
	var buf bytes.Buffer
	err := errorPage.Execute(&buf, struct {
		Lang, Title, Message string
	}{
		Lang:    lang,
		Title:   h.i18n.T(lang, "pdf.error.title"),
		Message: h.i18n.T(lang, key),
	})
	if err != nil {
		http.Error(w, http.StatusText(status), status)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	w.Write(buf.Bytes()) //nolint:errcheck
}

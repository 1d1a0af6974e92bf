package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schulanmeldung/regform-backend/internal/domain"
	"github.com/schulanmeldung/regform-backend/internal/forms"
)

//go:generate moq -out csrf_issuer_mock_test.go -pkg rest . csrfIssuer

func loadForms(t *testing.T) *forms.Registry {
	t.Helper()
	reg, err := forms.Load("")
	require.NoError(t, err)
	return reg
}

func TestMessagesHandler_Get(t *testing.T) {
	t.Parallel()

	h := NewMessagesHandler(loadCatalog(t))

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/api/messages?lang=en-US", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "en", rec.Header().Get("Content-Language"))
	assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "PDF not available", decodeBody(t, rec)["pdf.error.title"])
}

func TestMessagesHandler_FallsBackToGerman(t *testing.T) {
	t.Parallel()

	h := NewMessagesHandler(loadCatalog(t))

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/api/messages?lang=xx", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "de", rec.Header().Get("Content-Language"))
	assert.Equal(t, "PDF nicht verfügbar", decodeBody(t, rec)["pdf.error.title"])
}

func TestMessagesHandler_AcceptLanguage(t *testing.T) {
	t.Parallel()

	h := NewMessagesHandler(loadCatalog(t))

	tests := []struct {
		name   string
		target string
		accept string
		want   string
	}{
		{"header picks english", "/api/messages", "en-GB,en;q=0.9", "en"},
		{"q-values order preferences", "/api/messages", "fr;q=1.0, de;q=0.4, en;q=0.8", "en"},
		{"no match falls back", "/api/messages", "tr-TR, pl;q=0.7", "de"},
		{"missing header falls back", "/api/messages", "", "de"},
		{"query wins over header", "/api/messages?lang=de", "en", "de"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			rec := httptest.NewRecorder()
			h.Get(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, rec.Header().Get("Content-Language"))
			assert.Contains(t, rec.Header().Values("Vary"), "Accept-Language")
		})
	}
}

func TestCSRFHandler_Token(t *testing.T) {
	t.Parallel()

	svc := &csrfIssuerMock{
		IssueFunc: func(ctx context.Context, sessionID string) (string, error) {
			return "csrf-for-" + sessionID, nil
		},
	}
	h := NewCSRFHandler(svc, discardLogger())

	rec := httptest.NewRecorder()
	h.Token(rec, withSession(httptest.NewRequest(http.MethodGet, "/api/csrf-token", nil), "sess-9"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "csrf-for-sess-9", decodeBody(t, rec)["token"])
}

func TestCSRFHandler_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"no session", domain.ErrCSRF, http.StatusForbidden},
		{"storage", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &csrfIssuerMock{
				IssueFunc: func(ctx context.Context, sessionID string) (string, error) { return "", tt.err },
			}
			h := NewCSRFHandler(svc, discardLogger())

			rec := httptest.NewRecorder()
			h.Token(rec, httptest.NewRequest(http.MethodGet, "/api/csrf-token", nil))

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func formRequest(key string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/forms/"+key, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("key", key)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestFormsHandler_Get(t *testing.T) {
	t.Parallel()

	h := NewFormsHandler(loadForms(t), discardLogger())

	rec := httptest.NewRecorder()
	h.Get(rec, formRequest("anmeldung_2025"))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, "anmeldung_2025", body["key"])
	assert.Equal(t, "2025-1", body["version"])
	assert.Equal(t, true, body["pdf_enabled"])

	schema, ok := body["schema"].(map[string]any)
	require.True(t, ok, "schema should be a JSON object")
	assert.Contains(t, schema, "pages")
}

func TestFormsHandler_Unknown(t *testing.T) {
	t.Parallel()

	h := NewFormsHandler(loadForms(t), discardLogger())

	rec := httptest.NewRecorder()
	h.Get(rec, formRequest("nope"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "unknown form", decodeBody(t, rec)["error"])
}

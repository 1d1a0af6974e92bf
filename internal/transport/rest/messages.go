package rest

import (
	"net/http"
)

type languageResolver interface {
	Resolve(lang string) string
	Negotiate(acceptLanguage string) string
}

type messageCatalog interface {
	languageResolver
	Messages(lang string) map[string]string
}

// requestLanguage prefers an explicit ?lang= and otherwise negotiates
// from Accept-Language.
func requestLanguage(c languageResolver, r *http.Request) string {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return c.Resolve(lang)
	}
	return c.Negotiate(r.Header.Get("Accept-Language"))
}

// MessagesHandler serves UI strings for the survey front-end.
type MessagesHandler struct {
	catalog messageCatalog
}

// NewMessagesHandler creates a MessagesHandler.
func NewMessagesHandler(catalog messageCatalog) *MessagesHandler {
	return &MessagesHandler{catalog: catalog}
}

// Get handles GET /api/messages?lang=de. Without lang the
// Accept-Language header decides; unknown languages fall back to the
// default catalog.
func (h *MessagesHandler) Get(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(h.catalog, r)

	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("Content-Language", lang)
	w.Header().Add("Vary", "Accept-Language")
	writeJSON(w, http.StatusOK, h.catalog.Messages(lang))
}

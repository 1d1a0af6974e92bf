package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/schulanmeldung/regform-backend/internal/domain"
	"github.com/schulanmeldung/regform-backend/internal/service/submission"
	"github.com/schulanmeldung/regform-backend/pkg/ctxutil"
)

// CSRFHeader carries the anti-forgery token on intake requests.
const CSRFHeader = "X-CSRF-Token"

// multipartMemory is the part of a multipart body kept in memory; larger
// files spill to temporary files.
const multipartMemory = 8 << 20

type submissionService interface {
	Submit(ctx context.Context, in submission.SubmitInput) (*submission.SubmitResult, error)
}

type csrfVerifier interface {
	Verify(ctx context.Context, sessionID, token string) error
}

// IntakeConfig controls request parsing on the intake endpoint.
type IntakeConfig struct {
	MaxBodyBytes int64
	RequireCSRF  bool
	// PDFBaseURL, when set, is used to build absolute download links.
	PDFBaseURL string
}

// SubmissionHandler serves the public intake endpoint.
type SubmissionHandler struct {
	svc  submissionService
	csrf csrfVerifier
	cfg  IntakeConfig
	log  *slog.Logger
}

// NewSubmissionHandler creates a SubmissionHandler.
func NewSubmissionHandler(svc submissionService, csrf csrfVerifier, cfg IntakeConfig, logger *slog.Logger) *SubmissionHandler {
	return &SubmissionHandler{svc: svc, csrf: csrf, cfg: cfg, log: logger.With("handler", "submission")}
}

type submitRequest struct {
	FormKey   string          `json:"form_key"`
	Data      json.RawMessage `json:"data"`
	Metadata  json.RawMessage `json:"metadata"`
	CSRFToken string          `json:"csrf_token"`
}

type submitResponse struct {
	Success        bool       `json:"success"`
	ID             int64      `json:"id"`
	DownloadToken  string     `json:"download_token,omitempty"`
	DownloadURL    string     `json:"download_url,omitempty"`
	TokenExpiresAt *time.Time `json:"token_expires_at,omitempty"`
}

// decodedSubmission is an intake request independent of its encoding.
type decodedSubmission struct {
	input     submission.SubmitInput
	csrfToken string
}

// Create handles POST /api/submissions.
func (h *SubmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.cfg.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxBodyBytes)
	}

	req, err := h.decode(r)
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll() //nolint:errcheck
	}
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	defer closeUploads(req.input.Files)

	if h.cfg.RequireCSRF {
		token := r.Header.Get(CSRFHeader)
		if token == "" {
			token = req.csrfToken
		}
		sessionID, _ := ctxutil.SessionIDFromCtx(r.Context())
		if err := h.csrf.Verify(r.Context(), sessionID, token); err != nil {
			h.handleError(w, r, err)
			return
		}
	}

	res, err := h.svc.Submit(r.Context(), req.input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := submitResponse{Success: true, ID: res.ID}
	if res.DownloadToken != "" {
		resp.DownloadToken = res.DownloadToken
		resp.DownloadURL = pdfURL(h.cfg.PDFBaseURL, res.DownloadToken)
		exp := res.TokenExpiresAt
		resp.TokenExpiresAt = &exp
	}
	writeJSON(w, http.StatusCreated, resp)
}

// handleError is handleError with intake semantics: an unknown form key is
// a client mistake, not a missing resource.
func (h *SubmissionHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrUnknownForm) {
		writeError(w, http.StatusBadRequest, "unknown form")
		return
	}
	handleError(h.log, w, r, err)
}

func (h *SubmissionHandler) decode(r *http.Request) (*decodedSubmission, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		mediaType = ""
	}

	switch mediaType {
	case "application/json", "":
		return decodeJSON(r.Body)
	case "multipart/form-data":
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return nil, bodyError(err)
		}
		return decodeForm(r.MultipartForm.Value, r.MultipartForm.File)
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, bodyError(err)
		}
		return decodeForm(r.PostForm, nil)
	default:
		return nil, domain.NewValidationError("content_type", "unsupported media type "+mediaType)
	}
}

func decodeJSON(body io.Reader) (*decodedSubmission, error) {
	var req submitRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return nil, bodyError(err)
	}

	data, err := domain.ParseFormData(req.Data)
	if err != nil {
		return nil, domain.NewValidationError("data", "must be a JSON object")
	}
	meta, err := domain.ParseFormData(req.Metadata)
	if err != nil {
		return nil, domain.NewValidationError("metadata", "must be a JSON object")
	}

	return &decodedSubmission{
		input:     submission.SubmitInput{FormKey: req.FormKey, Data: data, Metadata: meta},
		csrfToken: req.CSRFToken,
	}, nil
}

// decodeForm reads the multipart and form-encoded variants. Answers are
// sent as a JSON string in "data" or "survey_data", metadata in
// "metadata" or "meta".
func decodeForm(values url.Values, files map[string][]*multipart.FileHeader) (*decodedSubmission, error) {
	first := func(keys ...string) string {
		for _, k := range keys {
			if v := values.Get(k); v != "" {
				return v
			}
		}
		return ""
	}

	data, err := domain.ParseFormData([]byte(first("data", "survey_data")))
	if err != nil {
		return nil, domain.NewValidationError("survey_data", "must be a JSON object")
	}
	meta, err := domain.ParseFormData([]byte(first("metadata", "meta")))
	if err != nil {
		return nil, domain.NewValidationError("meta", "must be a JSON object")
	}

	uploads, err := openUploads(files)
	if err != nil {
		return nil, err
	}

	return &decodedSubmission{
		input: submission.SubmitInput{
			FormKey:  first("form_key", "formKey"),
			Data:     data,
			Metadata: meta,
			Files:    uploads,
		},
		csrfToken: first("csrf_token"),
	}, nil
}

func openUploads(files map[string][]*multipart.FileHeader) ([]domain.Upload, error) {
	var out []domain.Upload
	for _, field := range slices.Sorted(maps.Keys(files)) {
		for _, fh := range files[field] {
			f, err := fh.Open()
			if err != nil {
				closeUploads(out)
				return nil, fmt.Errorf("open upload %s: %w", fh.Filename, err)
			}
			out = append(out, domain.Upload{
				Field:       field,
				Filename:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Size:        fh.Size,
				Body:        f,
			})
		}
	}
	return out, nil
}

func closeUploads(files []domain.Upload) {
	for _, f := range files {
		if c, ok := f.Body.(io.Closer); ok {
			c.Close() //nolint:errcheck
		}
	}
}

// bodyError keeps size violations distinguishable and turns every other
// parse failure into a validation error.
func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return err
	}
	return domain.NewValidationError("body", "invalid request body")
}

func pdfURL(base, token string) string {
	return strings.TrimRight(base, "/") + "/api/pdf?token=" + url.QueryEscape(token)
}

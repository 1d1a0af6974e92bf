// Package document produces confirmation PDFs for stored submissions,
// addressed by a download token.
package document

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/schulanmeldung/regform-backend/internal/adapter/pdf"
	"github.com/schulanmeldung/regform-backend/internal/domain"
)

type tokenValidator interface {
	Validate(token string) (int64, error)
}

type submissionGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.Submission, error)
}

type formRegistry interface {
	PDFConfig(key string) (*domain.PDFConfig, error)
}

type renderer interface {
	Render(in pdf.RenderInput) ([]byte, error)
}

type translator interface {
	T(lang, key string) string
}

const defaultFilenamePrefix = "anmeldung"

// Document is a fully rendered PDF ready to be sent.
type Document struct {
	SubmissionID int64
	Filename     string
	Content      []byte
}

// Service generates confirmation documents.
type Service struct {
	tokens   tokenValidator
	subs     submissionGetter
	forms    formRegistry
	renderer renderer
	i18n     translator
	lang     string
	now      func() time.Time
	log      *slog.Logger
}

// NewService creates a document service. Labels are printed in lang.
func NewService(
	log *slog.Logger,
	tokens tokenValidator,
	subs submissionGetter,
	forms formRegistry,
	renderer renderer,
	i18n translator,
	lang string,
) *Service {
	return &Service{
		tokens:   tokens,
		subs:     subs,
		forms:    forms,
		renderer: renderer,
		i18n:     i18n,
		lang:     lang,
		now:      time.Now,
		log:      log.With("service", "document"),
	}
}

// Generate resolves token to a submission and renders its confirmation.
// Errors: domain.ErrInvalidToken, domain.ErrNotFound, domain.ErrUnknownForm,
// domain.ErrPDFNotEnabled, or a render failure. On error no document bytes
// are returned.
func (s *Service) Generate(ctx context.Context, token string) (*Document, error) {
	id, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}

	sub, err := s.subs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// The registry decides whether the form still offers a PDF; the layout
	// comes from the snapshot taken when the submission was stored.
	cfg, err := s.forms.PDFConfig(sub.FormKey)
	if err != nil {
		return nil, err
	}
	if sub.PDFConfig != nil {
		snapshot := *sub.PDFConfig
		snapshot.Enabled = true
		cfg = &snapshot
	}

	content, err := s.renderer.Render(pdf.RenderInput{
		Submission:  *sub,
		Config:      *cfg,
		Labels:      s.labels(sub.Status),
		GeneratedAt: s.now(),
	})
	if err != nil {
		s.log.ErrorContext(ctx, "render pdf", slog.Int64("submission_id", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("render submission %d: %w", id, err)
	}

	prefix := cfg.FilenamePrefix
	if prefix == "" {
		prefix = defaultFilenamePrefix
	}

	return &Document{
		SubmissionID: id,
		Filename:     prefix + "_" + strconv.FormatInt(id, 10) + ".pdf",
		Content:      content,
	}, nil
}

func (s *Service) labels(status domain.Status) pdf.Labels {
	t := func(key string) string { return s.i18n.T(s.lang, key) }
	return pdf.Labels{
		Reference:   t("pdf.reference"),
		Form:        t("pdf.form"),
		CreatedAt:   t("pdf.created_at"),
		Status:      t("pdf.status"),
		StatusValue: t("status." + status.String()),
		DataHeading: t("pdf.data_heading"),
		GeneratedAt: t("pdf.generated_at"),
		Page:        t("pdf.page"),
		True:        t("value.true"),
		False:       t("value.false"),
	}
}

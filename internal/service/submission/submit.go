package submission

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/schulanmeldung/regform-backend/internal/domain"
)

// Submit validates and stores a submission, relays attached files, sends
// the staff notification and, if the form offers one, issues a download
// token for the confirmation PDF.
//
// Upload and notification failures are logged and never fail the call.
// Errors: *domain.ValidationError, domain.ErrUnknownForm, storage errors.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	if err := ValidateFields(in.fields()); err != nil {
		return nil, err
	}

	form, err := s.forms.Get(in.FormKey)
	if err != nil {
		return nil, err
	}

	data := in.Data
	attachments := s.relayUploads(ctx, in.Files)
	if len(attachments) > 0 {
		var merged domain.FormData
		in.Data.Each(func(k string, v any) { merged.Set(k, v) })
		for _, a := range attachments {
			appendValue(&merged, a.Field, a.URL)
		}
		data = merged
	}

	name := data.FirstNonEmpty(domain.NameFieldKeys)
	email := data.FirstNonEmpty(domain.EmailFieldKeys)

	var snapshot *domain.PDFConfig
	if form.PDF.Enabled {
		cfg := form.PDF
		snapshot = &cfg
	}

	rec := domain.NewSubmission{
		FormKey:     form.Key,
		FormVersion: form.Version,
		Name:        domain.StringPtrOrNil(name),
		Email:       domain.StringPtrOrNil(email),
		Data:        data,
		Metadata:    in.Metadata,
		PDFConfig:   snapshot,
		Attachments: attachments,
	}

	var id int64
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var insertErr error
		id, insertErr = s.subs.Insert(txCtx, rec)
		return insertErr
	})
	if err != nil {
		s.log.ErrorContext(ctx, "store submission",
			slog.String("form_key", form.Key),
			slog.String("error", err.Error()),
		)
		s.discardUploads(context.WithoutCancel(ctx), attachments)
		return nil, fmt.Errorf("submission.Submit: %w", err)
	}

	s.log.InfoContext(ctx, "submission stored",
		slog.Int64("submission_id", id),
		slog.String("form_key", form.Key),
		slog.Int("attachments", len(attachments)),
	)

	result := &SubmitResult{ID: id, Attachments: len(attachments)}

	if s.notifier != nil {
		result.Notified = s.notifier.NotifySubmission(ctx, domain.Submission{
			ID:          id,
			FormKey:     rec.FormKey,
			FormVersion: rec.FormVersion,
			Name:        rec.Name,
			Email:       rec.Email,
			Status:      domain.StatusNew,
			Data:        rec.Data,
			Metadata:    rec.Metadata,
			PDFConfig:   rec.PDFConfig,
			CreatedAt:   s.now(),
		})
	}

	if form.PDF.Enabled {
		token, exp, tokenErr := s.tokens.Issue(id)
		if tokenErr != nil {
			s.log.ErrorContext(ctx, "issue download token",
				slog.Int64("submission_id", id),
				slog.String("error", tokenErr.Error()),
			)
		} else {
			result.DownloadToken = token
			result.TokenExpiresAt = exp
		}
	}

	return result, nil
}

// relayUploads stores each file and returns the ones that succeeded.
func (s *Service) relayUploads(ctx context.Context, files []domain.Upload) []domain.Attachment {
	if len(files) == 0 {
		return nil
	}
	if s.uploads == nil {
		s.log.WarnContext(ctx, "file upload ignored, storage not configured", slog.Int("files", len(files)))
		return nil
	}

	var out []domain.Attachment
	for _, f := range files {
		att, err := s.uploads.Upload(ctx, f)
		if err != nil {
			s.log.WarnContext(ctx, "file upload failed",
				slog.String("field", f.Field),
				slog.String("filename", f.Filename),
				slog.String("error", err.Error()),
			)
			continue
		}
		out = append(out, att)
	}
	return out
}

// discardUploads removes objects relayed for a submission that was not stored.
func (s *Service) discardUploads(ctx context.Context, attachments []domain.Attachment) {
	for _, a := range attachments {
		if a.ObjectKey == "" {
			continue
		}
		if err := s.uploads.Delete(ctx, a.ObjectKey); err != nil {
			s.log.WarnContext(ctx, "orphaned upload not removed",
				slog.String("object_key", a.ObjectKey),
				slog.String("error", err.Error()),
			)
		}
	}
}

// appendValue adds v under key, turning an existing value into a list.
func appendValue(data *domain.FormData, key string, v string) {
	cur, _ := data.Get(key)
	switch existing := cur.(type) {
	case nil:
		data.Set(key, v)
	case []any:
		data.Set(key, append(existing, v))
	case string:
		if existing == "" {
			data.Set(key, v)
			return
		}
		data.Set(key, []any{existing, v})
	default:
		data.Set(key, []any{existing, v})
	}
}

package submission

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/schulanmeldung/regform-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Staff operations
// ---------------------------------------------------------------------------

// Get returns a submission with its attachments.
func (s *Service) Get(ctx context.Context, id int64) (*Detail, error) {
	sub, err := s.subs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	atts, err := s.subs.Attachments(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("submission.Get attachments: %w", err)
	}

	return &Detail{Submission: *sub, Attachments: atts}, nil
}

// List returns a page of submissions and the total matching count.
func (s *Service) List(ctx context.Context, f domain.SubmissionFilter) ([]domain.Submission, int, error) {
	if f.Status != nil && !f.Status.IsValid() {
		return nil, 0, domain.NewValidationError(FieldStatus, "unknown status")
	}
	if f.Limit < 0 || f.Offset < 0 {
		return nil, 0, domain.NewValidationError("limit", "must not be negative")
	}
	return s.subs.List(ctx, f)
}

// UpdateStatus moves a submission to status. Archived submissions cannot
// change (domain.ErrArchived).
func (s *Service) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	if !status.IsValid() {
		return domain.NewValidationError(FieldStatus, "unknown status")
	}

	if err := s.subs.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "submission status changed",
		slog.Int64("submission_id", id),
		slog.String("status", status.String()),
	)
	return nil
}

// Delete soft-deletes a submission.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.subs.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "submission deleted", slog.Int64("submission_id", id))
	return nil
}

// IssueDownloadToken creates a new PDF link for an existing submission.
// Errors: domain.ErrNotFound, domain.ErrUnknownForm, domain.ErrPDFNotEnabled.
func (s *Service) IssueDownloadToken(ctx context.Context, id int64) (*DownloadToken, error) {
	sub, err := s.subs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	form, err := s.forms.Get(sub.FormKey)
	if err != nil {
		return nil, err
	}
	if !form.PDF.Enabled {
		return nil, domain.ErrPDFNotEnabled
	}

	token, exp, err := s.tokens.Issue(id)
	if err != nil {
		return nil, fmt.Errorf("submission.IssueDownloadToken: %w", err)
	}
	return &DownloadToken{Token: token, ExpiresAt: exp}, nil
}

// Package submission implements the intake pipeline and staff operations
// on stored submissions.
package submission

import (
	"context"
	"log/slog"
	"time"

	"github.com/schulanmeldung/regform-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type submissionRepo interface {
	Insert(ctx context.Context, in domain.NewSubmission) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Submission, error)
	Attachments(ctx context.Context, id int64) ([]domain.Attachment, error)
	List(ctx context.Context, f domain.SubmissionFilter) ([]domain.Submission, int, error)
	UpdateStatus(ctx context.Context, id int64, status domain.Status) error
	SoftDelete(ctx context.Context, id int64) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type formRegistry interface {
	Get(key string) (*domain.Form, error)
}

type tokenIssuer interface {
	Issue(submissionID int64) (string, time.Time, error)
}

type notifier interface {
	NotifySubmission(ctx context.Context, s domain.Submission) bool
}

type uploader interface {
	Upload(ctx context.Context, u domain.Upload) (domain.Attachment, error)
	Delete(ctx context.Context, key string) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements submission operations.
type Service struct {
	log      *slog.Logger
	subs     submissionRepo
	tx       txManager
	forms    formRegistry
	tokens   tokenIssuer
	notifier notifier
	uploads  uploader
	now      func() time.Time
}

// NewService creates a submission service.
func NewService(
	logger *slog.Logger,
	subs submissionRepo,
	tx txManager,
	forms formRegistry,
	tokens tokenIssuer,
	notifier notifier,
) *Service {
	return &Service{
		log:      logger.With("service", "submission"),
		subs:     subs,
		tx:       tx,
		forms:    forms,
		tokens:   tokens,
		notifier: notifier,
		now:      time.Now,
	}
}

// SetUploader enables relaying of file uploads. Without one, files sent
// with a submission are dropped.
func (s *Service) SetUploader(u uploader) {
	s.uploads = u
}

// Package csrf binds anti-forgery tokens to browser sessions.
package csrf

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/schulanmeldung/regform-backend/internal/auth"
	"github.com/schulanmeldung/regform-backend/internal/domain"
)

type sessionRepo interface {
	Upsert(ctx context.Context, s domain.Session) error
	GetByIDHash(ctx context.Context, idHash string) (*domain.Session, error)
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

// Service issues and verifies CSRF tokens.
type Service struct {
	sessions sessionRepo
	lifetime time.Duration
	now      func() time.Time
	log      *slog.Logger
}

// NewService creates a CSRF service. Tokens expire together with their
// session after lifetime.
func NewService(log *slog.Logger, sessions sessionRepo, lifetime time.Duration) *Service {
	return &Service{
		sessions: sessions,
		lifetime: lifetime,
		now:      time.Now,
		log:      log.With("service", "csrf"),
	}
}

// Issue creates a fresh token for sessionID, replacing any previous one.
func (s *Service) Issue(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", domain.ErrCSRF
	}

	raw, hash, err := auth.GenerateToken()
	if err != nil {
		return "", fmt.Errorf("generate csrf token: %w", err)
	}

	now := s.now()
	err = s.sessions.Upsert(ctx, domain.Session{
		IDHash:        auth.HashToken(sessionID),
		CSRFTokenHash: hash,
		ExpiresAt:     now.Add(s.lifetime),
		CreatedAt:     now,
	})
	if err != nil {
		return "", fmt.Errorf("csrf.Issue: %w", err)
	}

	return raw, nil
}

// Verify checks token against the one issued for sessionID. Any mismatch,
// unknown or expired session returns domain.ErrCSRF.
func (s *Service) Verify(ctx context.Context, sessionID, token string) error {
	if sessionID == "" || token == "" {
		return domain.ErrCSRF
	}

	sess, err := s.sessions.GetByIDHash(ctx, auth.HashToken(sessionID))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrCSRF
		}
		return fmt.Errorf("csrf.Verify: %w", err)
	}

	if sess.IsExpired(s.now()) {
		return domain.ErrCSRF
	}

	if subtle.ConstantTimeCompare([]byte(sess.CSRFTokenHash), []byte(auth.HashToken(token))) != 1 {
		s.log.WarnContext(ctx, "csrf token mismatch")
		return domain.ErrCSRF
	}

	return nil
}

// CleanupExpired removes sessions that expired before now.
func (s *Service) CleanupExpired(ctx context.Context) (int, error) {
	count, err := s.sessions.DeleteExpired(ctx, s.now())
	if err != nil {
		s.log.ErrorContext(ctx, "session cleanup failed", slog.String("error", err.Error()))
		return 0, fmt.Errorf("csrf.CleanupExpired: %w", err)
	}

	if count > 0 {
		s.log.InfoContext(ctx, "cleaned up expired sessions", slog.Int("count", count))
	}

	return count, nil
}

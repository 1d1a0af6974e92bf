package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/schulanmeldung/regform-backend/internal/domain"
)

// downloadAudience scopes tokens to the PDF download endpoint.
const downloadAudience = "pdf-download"

// DownloadTokens issues and validates time-limited PDF download tokens.
// A token is an HS256 JWT whose subject is the submission id; it cannot be
// forged or extended without the server secret.
type DownloadTokens struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewDownloadTokens creates a token service.
// secret must be at least 32 characters for HS256 security.
func NewDownloadTokens(secret, issuer string, ttl time.Duration) *DownloadTokens {
	return &DownloadTokens{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock returns a copy that reads the current time from now.
func (m *DownloadTokens) WithClock(now func() time.Time) *DownloadTokens {
	c := *m
	c.now = now
	return &c
}

// TTL returns the lifetime of issued tokens.
func (m *DownloadTokens) TTL() time.Duration { return m.ttl }

// Issue creates a token bound to submissionID. It returns the token and
// its expiry.
func (m *DownloadTokens) Issue(submissionID int64) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(submissionID, 10),
		Issuer:    m.issuer,
		Audience:  jwt.ClaimStrings{downloadAudience},
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, exp, nil
}

// Validate returns the submission id bound to token. Every failure
// (malformed, bad signature, wrong audience or issuer, expired) is reported
// as domain.ErrInvalidToken.
func (m *DownloadTokens) Validate(token string) (int64, error) {
	if token == "" {
		return 0, domain.ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithAudience(downloadAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return 0, domain.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return 0, domain.ErrInvalidToken
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidToken
	}

	return id, nil
}

// GenerateToken creates a cryptographically random URL-safe token.
// Returns both the raw token (to send to client) and its SHA-256 hash (to store in DB).
func GenerateToken() (raw string, hash string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", fmt.Errorf("generate random bytes: %w", err)
	}

	raw = base64.RawURLEncoding.EncodeToString(b)
	return raw, HashToken(raw), nil
}

// HashToken computes the SHA-256 hash of a token and returns it as a hex string.
// Session ids and CSRF tokens are hashed before they are stored.
func HashToken(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(h[:])
}

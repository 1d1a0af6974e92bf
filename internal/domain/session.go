package domain

import "time"

// Session is the server-side record behind a browser session cookie.
// Only hashes of the session id and CSRF token are stored.
type Session struct {
	IDHash        string
	CSRFTokenHash string
	ExpiresAt     time.Time
	CreatedAt     time.Time
}

// IsExpired reports whether the session is no longer valid at now.
func (s Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

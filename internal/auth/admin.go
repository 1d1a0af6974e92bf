package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// AdminSecret checks the shared secret that guards staff endpoints against
// a bcrypt hash from configuration.
type AdminSecret struct {
	hash []byte
}

// NewAdminSecret creates a checker. An empty hash disables admin access.
func NewAdminSecret(hash string) *AdminSecret {
	return &AdminSecret{hash: []byte(hash)}
}

// Enabled reports whether an admin secret is configured.
func (a *AdminSecret) Enabled() bool { return len(a.hash) > 0 }

// Check reports whether token matches the configured secret.
func (a *AdminSecret) Check(token string) bool {
	if !a.Enabled() || token == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(a.hash, []byte(token)) == nil
}

// HashAdminSecret produces the bcrypt hash to put into ADMIN_TOKEN_HASH.
func HashAdminSecret(token string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

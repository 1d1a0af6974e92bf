package config

import (
	"fmt"
	"net/mail"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.PDF.TokenSecret) < 32 {
		return fmt.Errorf("pdf.token_secret must be at least 32 characters (got %d)", len(c.PDF.TokenSecret))
	}
	if c.PDF.TokenTTL <= 0 {
		return fmt.Errorf("pdf.token_ttl must be > 0 (got %s)", c.PDF.TokenTTL)
	}
	if c.Session.Lifetime <= 0 {
		return fmt.Errorf("session.lifetime must be > 0 (got %s)", c.Session.Lifetime)
	}
	switch strings.ToLower(strings.TrimSpace(c.Session.SameSite)) {
	case "", "lax", "strict":
	case "none":
		if !c.Session.Secure {
			return fmt.Errorf("session.same_site none requires session.secure")
		}
	default:
		return fmt.Errorf("session.same_site must be lax, strict or none (got %q)", c.Session.SameSite)
	}
	if c.Intake.RateLimitPerMinute <= 0 {
		return fmt.Errorf("intake.rate_limit_per_minute must be > 0 (got %d)", c.Intake.RateLimitPerMinute)
	}

	if c.Retention.HardDeleteAfterDays < 0 {
		return fmt.Errorf("retention.hard_delete_after_days must be >= 0 (got %d)", c.Retention.HardDeleteAfterDays)
	}

	if c.App.Debug {
		c.Log.Level = "debug"
	}

	if err := c.Mail.validate(); err != nil {
		return fmt.Errorf("mail: %w", err)
	}

	if c.Admin.TokenHash != "" && !strings.HasPrefix(c.Admin.TokenHash, "$2") {
		return fmt.Errorf("admin.token_hash must be a bcrypt hash")
	}

	return nil
}

func (m *MailConfig) validate() error {
	if !m.Enabled() {
		return nil
	}
	if _, err := mail.ParseAddress(m.From); err != nil {
		return fmt.Errorf("from %q: %w", m.From, err)
	}
	recipients := m.Recipients()
	if len(recipients) == 0 {
		return fmt.Errorf("to must list at least one recipient when smtp_host is set")
	}
	for _, r := range recipients {
		if _, err := mail.ParseAddress(r); err != nil {
			return fmt.Errorf("to %q: %w", r, err)
		}
	}
	return nil
}

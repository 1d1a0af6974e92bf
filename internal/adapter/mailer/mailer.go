// Package mailer delivers notification emails over SMTP using go-mail.
package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/schulanmeldung/regform-backend/internal/config"
)

// Message is a multipart/alternative email. HTML is optional.
type Message struct {
	From        string
	FromName    string
	To          []string
	ReplyTo     string
	ReplyToName string
	Subject     string
	Text        string
	HTML        string
}

// Mailer sends messages through one SMTP relay. A fresh connection is
// dialed per message.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	timeout  time.Duration
}

// New creates a Mailer from configuration.
func New(cfg config.MailConfig) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		timeout:  cfg.Timeout,
	}
}

// Send delivers msg, honouring ctx cancellation and the configured timeout.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	mm, err := buildMsg(msg)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(m.host, m.clientOptions()...)
	if err != nil {
		return fmt.Errorf("create smtp client (host=%s port=%d): %w", m.host, m.port, err)
	}

	if err := client.DialAndSendWithContext(ctx, mm); err != nil {
		return fmt.Errorf("send mail (host=%s port=%d): %w", m.host, m.port, err)
	}

	return nil
}

func (m *Mailer) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(m.port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.timeout > 0 {
		opts = append(opts, mail.WithTimeout(m.timeout))
	}
	if m.user != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.user),
			mail.WithPassword(m.password),
		)
	}
	return opts
}

func buildMsg(msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()

	if msg.FromName != "" {
		if err := m.FromFormat(msg.FromName, msg.From); err != nil {
			return nil, fmt.Errorf("set from: %w", err)
		}
	} else if err := m.From(msg.From); err != nil {
		return nil, fmt.Errorf("set from: %w", err)
	}

	if len(msg.To) == 0 {
		return nil, fmt.Errorf("no recipients")
	}
	if err := m.To(msg.To...); err != nil {
		return nil, fmt.Errorf("set to: %w", err)
	}

	if msg.ReplyTo != "" {
		var err error
		if msg.ReplyToName != "" {
			err = m.ReplyToFormat(msg.ReplyToName, msg.ReplyTo)
		} else {
			err = m.ReplyTo(msg.ReplyTo)
		}
		if err != nil {
			return nil, fmt.Errorf("set reply-to: %w", err)
		}
	}

	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Text)
	if msg.HTML != "" {
		m.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	}

	return m, nil
}

// Package notification emails staff a summary of every stored submission.
// Delivery is best-effort: failures are logged and never reach the
// submitter.
package notification

import (
	"bytes"
	"context"
	"html/template"
	"log/slog"
	"strconv"
	"strings"

	"github.com/schulanmeldung/regform-backend/internal/adapter/mailer"
	"github.com/schulanmeldung/regform-backend/internal/domain"
)

type mailSender interface {
	Send(ctx context.Context, msg mailer.Message) error
}

type translator interface {
	T(lang, key string) string
}

// Config holds the envelope settings for notifications.
type Config struct {
	From     string
	FromName string
	To       []string
	Language string
}

// Service composes and sends submission notifications.
type Service struct {
	sender mailSender
	i18n   translator
	cfg    Config
	log    *slog.Logger
}

// NewService creates a notification service. A nil sender disables
// delivery.
func NewService(log *slog.Logger, sender mailSender, i18n translator, cfg Config) *Service {
	return &Service{
		sender: sender,
		i18n:   i18n,
		cfg:    cfg,
		log:    log.With("service", "notification"),
	}
}

// Row is one label/value line of the summary.
type Row struct {
	Label string
	Value string
}

// NotifySubmission sends the summary for s and reports whether it was
// handed to the relay.
func (s *Service) NotifySubmission(ctx context.Context, sub domain.Submission) bool {
	log := s.log.With(slog.Int64("submission_id", sub.ID))

	if s.sender == nil || len(s.cfg.To) == 0 {
		log.DebugContext(ctx, "notification disabled")
		return false
	}

	msg, err := s.compose(sub)
	if err != nil {
		log.ErrorContext(ctx, "compose notification", slog.String("error", err.Error()))
		return false
	}

	if err := s.sender.Send(ctx, msg); err != nil {
		log.ErrorContext(ctx, "send notification", slog.String("error", err.Error()))
		return false
	}

	log.InfoContext(ctx, "notification sent", slog.Int("recipients", len(msg.To)))
	return true
}

func (s *Service) compose(sub domain.Submission) (mailer.Message, error) {
	lang := s.cfg.Language
	rows := SummaryRows(sub.Data, domain.ValueFormatter{
		True:  s.i18n.T(lang, "value.true"),
		False: s.i18n.T(lang, "value.false"),
	})

	ref := strconv.FormatInt(sub.ID, 10)
	subject := s.i18n.T(lang, "mail.subject") + " #" + ref
	if name := sub.Data.FirstNonEmpty(domain.NameFieldKeys); name != "" {
		subject += ": " + name
	}

	view := mailView{
		Intro:     s.i18n.T(lang, "mail.intro"),
		RefLabel:  s.i18n.T(lang, "mail.reference"),
		Reference: ref,
		FormLabel: s.i18n.T(lang, "pdf.form"),
		FormKey:   sub.FormKey,
		Rows:      rows,
	}

	var html bytes.Buffer
	if err := htmlTmpl.Execute(&html, view); err != nil {
		return mailer.Message{}, err
	}

	msg := mailer.Message{
		From:     SanitizeHeader(s.cfg.From),
		FromName: SanitizeHeader(s.cfg.FromName),
		To:       s.cfg.To,
		Subject:  SanitizeHeader(subject),
		Text:     plainText(view),
		HTML:     html.String(),
	}

	if c, err := domain.CompleteFrom(sub); err == nil {
		msg.ReplyTo = SanitizeHeader(c.Email)
		msg.ReplyToName = SanitizeHeader(c.Name)
	}

	return msg, nil
}

// SummaryRows lists every non-empty field in submission order.
func SummaryRows(data domain.FormData, f domain.ValueFormatter) []Row {
	rows := make([]Row, 0, data.Len())
	data.Each(func(k string, v any) {
		if val := f.Format(v); val != "" {
			rows = append(rows, Row{Label: domain.HumanizeKey(k), Value: val})
		}
	})
	return rows
}

var headerReplacer = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// SanitizeHeader removes line breaks so a value cannot start a new header.
func SanitizeHeader(v string) string {
	return strings.TrimSpace(headerReplacer.Replace(v))
}

type mailView struct {
	Intro     string
	RefLabel  string
	Reference string
	FormLabel string
	FormKey   string
	Rows      []Row
}

func plainText(v mailView) string {
	var b strings.Builder
	b.WriteString(v.Intro)
	b.WriteString("\n\n")
	b.WriteString(v.RefLabel + ": " + v.Reference + "\n")
	b.WriteString(v.FormLabel + ": " + v.FormKey + "\n\n")
	for _, r := range v.Rows {
		b.WriteString(r.Label + ": " + r.Value + "\n")
	}
	return b.String()
}

var htmlTmpl = template.Must(template.New("notification").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
<p>{{.Intro}}</p>
<p><strong>{{.RefLabel}}:</strong> {{.Reference}}<br><strong>{{.FormLabel}}:</strong> {{.FormKey}}</p>
<table cellpadding="6" cellspacing="0" style="border-collapse: collapse; border: 1px solid #ddd;">
{{- range .Rows}}
<tr><td style="background: #f4f4f4; border: 1px solid #ddd;"><strong>{{.Label}}</strong></td><td style="border: 1px solid #ddd;">{{.Value}}</td></tr>
{{- end}}
</table>
</body>
</html>
`))

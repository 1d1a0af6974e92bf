package submission

import (
	"strings"
	"unicode/utf8"

	"github.com/schulanmeldung/regform-backend/internal/domain"
)

// Field names checked by ValidateFields.
const (
	FieldForm   = "formular"
	FieldName   = "name"
	FieldEmail  = "email"
	FieldStatus = "status"
)

// ValidateFields checks a flat intake mapping. Every rule is evaluated and
// all failures are collected into a *domain.ValidationError; callers that
// report a single problem use its First method.
func ValidateFields(fields map[string]string) error {
	var errs []domain.FieldError

	if strings.TrimSpace(fields[FieldForm]) == "" {
		errs = append(errs, domain.FieldError{Field: FieldForm, Message: "required"})
	}

	name := strings.TrimSpace(fields[FieldName])
	if name == "" {
		errs = append(errs, domain.FieldError{Field: FieldName, Message: "required"})
	} else if utf8.RuneCountInString(name) > domain.MaxNameLength {
		errs = append(errs, domain.FieldError{Field: FieldName, Message: "max 255 characters"})
	}

	email := strings.TrimSpace(fields[FieldEmail])
	if email == "" {
		errs = append(errs, domain.FieldError{Field: FieldEmail, Message: "required"})
	} else if !domain.IsValidEmail(email) {
		errs = append(errs, domain.FieldError{Field: FieldEmail, Message: "invalid email address"})
	}

	if status, ok := fields[FieldStatus]; ok && !domain.Status(status).IsValid() {
		errs = append(errs, domain.FieldError{Field: FieldStatus, Message: "unknown status"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

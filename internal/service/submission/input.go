package submission

import (
	"time"

	"github.com/schulanmeldung/regform-backend/internal/domain"
)

// SubmitInput is a decoded intake request.
type SubmitInput struct {
	FormKey  string
	Data     domain.FormData
	Metadata domain.FormData
	Files    []domain.Upload
}

// fields returns the flat mapping checked by ValidateFields.
func (i SubmitInput) fields() map[string]string {
	return map[string]string{
		FieldForm:  i.FormKey,
		FieldName:  i.Data.FirstNonEmpty(domain.NameFieldKeys),
		FieldEmail: i.Data.FirstNonEmpty(domain.EmailFieldKeys),
	}
}

// SubmitResult describes a stored submission. DownloadToken is empty when
// the form offers no confirmation document.
type SubmitResult struct {
	ID             int64
	DownloadToken  string
	TokenExpiresAt time.Time
	Attachments    int
	Notified       bool
}

// Detail is a submission with its relayed attachments.
type Detail struct {
	Submission  domain.Submission
	Attachments []domain.Attachment
}

// DownloadToken is a freshly issued PDF link token.
type DownloadToken struct {
	Token     string
	ExpiresAt time.Time
}

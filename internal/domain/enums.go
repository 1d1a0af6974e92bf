package domain

// Status is the processing state of a submission. Transitions are driven
// externally by staff; the only enforced rule is that Archived is terminal.
type Status string

const (
	StatusNew        Status = "new"
	StatusExported   Status = "exported"
	StatusInProgress Status = "in_progress"
	StatusAccepted   Status = "accepted"
	StatusRejected   Status = "rejected"
	StatusArchived   Status = "archived"
)

// AllStatuses lists every known status in workflow order.
var AllStatuses = []Status{
	StatusNew, StatusExported, StatusInProgress,
	StatusAccepted, StatusRejected, StatusArchived,
}

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusExported, StatusInProgress, StatusAccepted, StatusRejected, StatusArchived:
		return true
	}
	return false
}

// IsActive reports whether the submission still belongs to the working set.
func (s Status) IsActive() bool {
	return s.IsValid() && s != StatusArchived
}

// CanTransitionTo reports whether a status change from s to next is allowed.
func (s Status) CanTransitionTo(next Status) bool {
	if !next.IsValid() {
		return false
	}
	return s != StatusArchived
}

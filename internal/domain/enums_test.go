package domain

import (
	"testing"
	"time"
)

func TestStatus_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status Status
		want   bool
	}{
		{StatusNew, true},
		{StatusExported, true},
		{StatusInProgress, true},
		{StatusAccepted, true},
		{StatusRejected, true},
		{StatusArchived, true},
		{Status("NEW"), false},
		{Status("deleted"), false},
		{Status(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			t.Parallel()
			if got := tt.status.IsValid(); got != tt.want {
				t.Errorf("Status(%q).IsValid() = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestStatus_AllStatusesValid(t *testing.T) {
	t.Parallel()

	if len(AllStatuses) != 6 {
		t.Fatalf("AllStatuses has %d entries, want 6", len(AllStatuses))
	}
	for _, s := range AllStatuses {
		if !s.IsValid() {
			t.Errorf("AllStatuses contains invalid %q", s)
		}
	}
}

func TestStatus_IsActive(t *testing.T) {
	t.Parallel()

	for _, s := range AllStatuses {
		want := s != StatusArchived
		if got := s.IsActive(); got != want {
			t.Errorf("Status(%q).IsActive() = %v, want %v", s, got, want)
		}
	}
	if Status("bogus").IsActive() {
		t.Error("unknown status must not be active")
	}
}

func TestStatus_CanTransitionTo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusNew, StatusInProgress, true},
		{StatusAccepted, StatusNew, true},
		{StatusRejected, StatusArchived, true},
		{StatusArchived, StatusNew, false},
		{StatusArchived, StatusArchived, false},
		{StatusNew, Status("done"), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			t.Parallel()
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("%q.CanTransitionTo(%q) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestSession_IsExpired(t *testing.T) {
	t.Parallel()

	exp := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s := Session{ExpiresAt: exp}

	if s.IsExpired(exp.Add(-1)) {
		t.Error("session should be valid just before expiry")
	}
	if !s.IsExpired(exp) {
		t.Error("session should be expired at its expiry instant")
	}
}

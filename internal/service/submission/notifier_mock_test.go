package submission

import (
	"context"
	"github.com/schulanmeldung/regform-backend/internal/domain"
	"sync"
)

var _ notifier = &notifierMock{}

type notifierMock struct {
	NotifySubmissionFunc func(ctx context.Context, s domain.Submission) bool

	calls struct {
		NotifySubmission []struct {
			Ctx context.Context
			S   domain.Submission
		}
	}
	lockNotifySubmission sync.RWMutex
}

func (mock *notifierMock) NotifySubmission(ctx context.Context, s domain.Submission) bool {
	if mock.NotifySubmissionFunc == nil {
		panic("notifierMock.NotifySubmissionFunc: method is nil but notifier.NotifySubmission was just called")
	}
	callInfo := struct {
		Ctx context.Context
		S   domain.Submission
	}{
		Ctx: ctx,
		S:   s,
	}
	mock.lockNotifySubmission.Lock()
	mock.calls.NotifySubmission = append(mock.calls.NotifySubmission, callInfo)
	mock.lockNotifySubmission.Unlock()
	return mock.NotifySubmissionFunc(ctx, s)
}

func (mock *notifierMock) NotifySubmissionCalls() []struct {
	Ctx context.Context
	S   domain.Submission
} {
	mock.lockNotifySubmission.RLock()
	calls := mock.calls.NotifySubmission
	mock.lockNotifySubmission.RUnlock()
	return calls
}

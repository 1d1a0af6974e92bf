package rest

import (
	"context"
	"github.com/schulanmeldung/regform-backend/internal/service/submission"
	"sync"
)

var _ submissionService = &submissionServiceMock{}

type submissionServiceMock struct {
	SubmitFunc func(ctx context.Context, in submission.SubmitInput) (*submission.SubmitResult, error)

	calls struct {
		Submit []struct {
			Ctx context.Context
			In  submission.SubmitInput
		}
	}
	lockSubmit sync.RWMutex
}

func (mock *submissionServiceMock) Submit(ctx context.Context, in submission.SubmitInput) (*submission.SubmitResult, error) {
	if mock.SubmitFunc == nil {
		panic("submissionServiceMock.SubmitFunc: method is nil but submissionService.Submit was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  submission.SubmitInput
	}{
		Ctx: ctx,
		In:  in,
	}
	mock.lockSubmit.Lock()
	mock.calls.Submit = append(mock.calls.Submit, callInfo)
	mock.lockSubmit.Unlock()
	return mock.SubmitFunc(ctx, in)
}

func (mock *submissionServiceMock) SubmitCalls() []struct {
	Ctx context.Context
	In  submission.SubmitInput
} {
	mock.lockSubmit.RLock()
	calls := mock.calls.Submit
	mock.lockSubmit.RUnlock()
	return calls
}

package rest

import (
	"context"
	"sync"
)

var _ csrfIssuer = &csrfIssuerMock{}

type csrfIssuerMock struct {
	IssueFunc func(ctx context.Context, sessionID string) (string, error)

	calls struct {
		Issue []struct {
			Ctx       context.Context
			SessionID string
		}
	}
	lockIssue sync.RWMutex
}

func (mock *csrfIssuerMock) Issue(ctx context.Context, sessionID string) (string, error) {
	if mock.IssueFunc == nil {
		panic("csrfIssuerMock.IssueFunc: method is nil but csrfIssuer.Issue was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		SessionID string
	}{
		Ctx:       ctx,
		SessionID: sessionID,
	}
	mock.lockIssue.Lock()
	mock.calls.Issue = append(mock.calls.Issue, callInfo)
	mock.lockIssue.Unlock()
	return mock.IssueFunc(ctx, sessionID)
}

func (mock *csrfIssuerMock) IssueCalls() []struct {
	Ctx       context.Context
	SessionID string
} {
	mock.lockIssue.RLock()
	calls := mock.calls.Issue
	mock.lockIssue.RUnlock()
	return calls
}

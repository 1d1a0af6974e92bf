package rest

import (
	"context"
	"sync"
)

var _ csrfVerifier = &csrfVerifierMock{}

type csrfVerifierMock struct {
	VerifyFunc func(ctx context.Context, sessionID string, token string) error

	calls struct {
		Verify []struct {
			Ctx       context.Context
			SessionID string
			Token     string
		}
	}
	lockVerify sync.RWMutex
}

func (mock *csrfVerifierMock) Verify(ctx context.Context, sessionID string, token string) error {
	if mock.VerifyFunc == nil {
		panic("csrfVerifierMock.VerifyFunc: method is nil but csrfVerifier.Verify was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		SessionID string
		Token     string
	}{
		Ctx:       ctx,
		SessionID: sessionID,
		Token:     token,
	}
	mock.lockVerify.Lock()
	mock.calls.Verify = append(mock.calls.Verify, callInfo)
	mock.lockVerify.Unlock()
	return mock.VerifyFunc(ctx, sessionID, token)
}

func (mock *csrfVerifierMock) VerifyCalls() []struct {
	Ctx       context.Context
	SessionID string
	Token     string
} {
	mock.lockVerify.RLock()
	calls := mock.calls.Verify
	mock.lockVerify.RUnlock()
	return calls
}

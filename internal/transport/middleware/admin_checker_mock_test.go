package middleware

import (
	"sync"
)

var _ adminChecker = &adminCheckerMock{}

type adminCheckerMock struct {
	CheckFunc func(token string) bool

	calls struct {
		Check []struct {
			Token string
		}
	}
	lockCheck sync.RWMutex
}

func (mock *adminCheckerMock) Check(token string) bool {
	if mock.CheckFunc == nil {
		panic("adminCheckerMock.CheckFunc: method is nil but adminChecker.Check was just called")
	}
	callInfo := struct {
		Token string
	}{
		Token: token,
	}
	mock.lockCheck.Lock()
	mock.calls.Check = append(mock.calls.Check, callInfo)
	mock.lockCheck.Unlock()
	return mock.CheckFunc(token)
}

func (mock *adminCheckerMock) CheckCalls() []struct {
	Token string
} {
	mock.lockCheck.RLock()
	calls := mock.calls.Check
	mock.lockCheck.RUnlock()
	return calls
}

package submission

import (
	"sync"
	"time"
)

var _ tokenIssuer = &tokenIssuerMock{}

type tokenIssuerMock struct {
	IssueFunc func(submissionID int64) (string, time.Time, error)

	calls struct {
		Issue []struct {
			SubmissionID int64
		}
	}
	lockIssue sync.RWMutex
}

func (mock *tokenIssuerMock) Issue(submissionID int64) (string, time.Time, error) {
	if mock.IssueFunc == nil {
		panic("tokenIssuerMock.IssueFunc: method is nil but tokenIssuer.Issue was just called")
	}
	callInfo := struct {
		SubmissionID int64
	}{
		SubmissionID: submissionID,
	}
	mock.lockIssue.Lock()
	mock.calls.Issue = append(mock.calls.Issue, callInfo)
	mock.lockIssue.Unlock()
	return mock.IssueFunc(submissionID)
}

func (mock *tokenIssuerMock) IssueCalls() []struct {
	SubmissionID int64
} {
	mock.lockIssue.RLock()
	calls := mock.calls.Issue
	mock.lockIssue.RUnlock()
	return calls
}

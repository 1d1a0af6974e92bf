package document

import (
	"context"
	"github.com/schulanmeldung/regform-backend/internal/domain"
	"sync"
)

var _ submissionGetter = &submissionGetterMock{}

type submissionGetterMock struct {
	GetByIDFunc func(ctx context.Context, id int64) (*domain.Submission, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			Id  int64
		}
	}
	lockGetByID sync.RWMutex
}

func (mock *submissionGetterMock) GetByID(ctx context.Context, id int64) (*domain.Submission, error) {
	if mock.GetByIDFunc == nil {
		panic("submissionGetterMock.GetByIDFunc: method is nil but submissionGetter.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  int64
	}{
		Ctx: ctx,
		Id:  id,
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *submissionGetterMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id  int64
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

package csrf

import (
	"context"
	"github.com/schulanmeldung/regform-backend/internal/domain"
	"sync"
	"time"
)

var _ sessionRepo = &sessionRepoMock{}

type sessionRepoMock struct {
	UpsertFunc        func(ctx context.Context, s domain.Session) error
	GetByIDHashFunc   func(ctx context.Context, idHash string) (*domain.Session, error)
	DeleteExpiredFunc func(ctx context.Context, now time.Time) (int, error)

	calls struct {
		Upsert []struct {
			Ctx context.Context
			S   domain.Session
		}
		GetByIDHash []struct {
			Ctx    context.Context
			IdHash string
		}
		DeleteExpired []struct {
			Ctx context.Context
			Now time.Time
		}
	}
	lockUpsert        sync.RWMutex
	lockGetByIDHash   sync.RWMutex
	lockDeleteExpired sync.RWMutex
}

func (mock *sessionRepoMock) Upsert(ctx context.Context, s domain.Session) error {
	if mock.UpsertFunc == nil {
		panic("sessionRepoMock.UpsertFunc: method is nil but sessionRepo.Upsert was just called")
	}
	callInfo := struct {
		Ctx context.Context
		S   domain.Session
	}{
		Ctx: ctx,
		S:   s,
	}
	mock.lockUpsert.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, callInfo)
	mock.lockUpsert.Unlock()
	return mock.UpsertFunc(ctx, s)
}

func (mock *sessionRepoMock) UpsertCalls() []struct {
	Ctx context.Context
	S   domain.Session
} {
	mock.lockUpsert.RLock()
	calls := mock.calls.Upsert
	mock.lockUpsert.RUnlock()
	return calls
}

func (mock *sessionRepoMock) GetByIDHash(ctx context.Context, idHash string) (*domain.Session, error) {
	if mock.GetByIDHashFunc == nil {
		panic("sessionRepoMock.GetByIDHashFunc: method is nil but sessionRepo.GetByIDHash was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		IdHash string
	}{
		Ctx:    ctx,
		IdHash: idHash,
	}
	mock.lockGetByIDHash.Lock()
	mock.calls.GetByIDHash = append(mock.calls.GetByIDHash, callInfo)
	mock.lockGetByIDHash.Unlock()
	return mock.GetByIDHashFunc(ctx, idHash)
}

func (mock *sessionRepoMock) GetByIDHashCalls() []struct {
	Ctx    context.Context
	IdHash string
} {
	mock.lockGetByIDHash.RLock()
	calls := mock.calls.GetByIDHash
	mock.lockGetByIDHash.RUnlock()
	return calls
}

func (mock *sessionRepoMock) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	if mock.DeleteExpiredFunc == nil {
		panic("sessionRepoMock.DeleteExpiredFunc: method is nil but sessionRepo.DeleteExpired was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Now time.Time
	}{
		Ctx: ctx,
		Now: now,
	}
	mock.lockDeleteExpired.Lock()
	mock.calls.DeleteExpired = append(mock.calls.DeleteExpired, callInfo)
	mock.lockDeleteExpired.Unlock()
	return mock.DeleteExpiredFunc(ctx, now)
}

func (mock *sessionRepoMock) DeleteExpiredCalls() []struct {
	Ctx context.Context
	Now time.Time
} {
	mock.lockDeleteExpired.RLock()
	calls := mock.calls.DeleteExpired
	mock.lockDeleteExpired.RUnlock()
	return calls
}

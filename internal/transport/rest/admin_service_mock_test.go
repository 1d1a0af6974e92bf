package rest

import (
	"context"
	"github.com/schulanmeldung/regform-backend/internal/domain"
	"github.com/schulanmeldung/regform-backend/internal/service/submission"
	"sync"
)

var _ adminService = &adminServiceMock{}

type adminServiceMock struct {
	GetFunc                func(ctx context.Context, id int64) (*submission.Detail, error)
	ListFunc               func(ctx context.Context, f domain.SubmissionFilter) ([]domain.Submission, int, error)
	UpdateStatusFunc       func(ctx context.Context, id int64, status domain.Status) error
	DeleteFunc             func(ctx context.Context, id int64) error
	IssueDownloadTokenFunc func(ctx context.Context, id int64) (*submission.DownloadToken, error)

	calls struct {
		Get []struct {
			Ctx context.Context
			Id  int64
		}
		List []struct {
			Ctx context.Context
			F   domain.SubmissionFilter
		}
		UpdateStatus []struct {
			Ctx    context.Context
			Id     int64
			Status domain.Status
		}
		Delete []struct {
			Ctx context.Context
			Id  int64
		}
		IssueDownloadToken []struct {
			Ctx context.Context
			Id  int64
		}
	}
	lockGet                sync.RWMutex
	lockList               sync.RWMutex
	lockUpdateStatus       sync.RWMutex
	lockDelete             sync.RWMutex
	lockIssueDownloadToken sync.RWMutex
}

func (mock *adminServiceMock) Get(ctx context.Context, id int64) (*submission.Detail, error) {
	if mock.GetFunc == nil {
		panic("adminServiceMock.GetFunc: method is nil but adminService.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  int64
	}{
		Ctx: ctx,
		Id:  id,
	}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, id)
}

func (mock *adminServiceMock) GetCalls() []struct {
	Ctx context.Context
	Id  int64
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *adminServiceMock) List(ctx context.Context, f domain.SubmissionFilter) ([]domain.Submission, int, error) {
	if mock.ListFunc == nil {
		panic("adminServiceMock.ListFunc: method is nil but adminService.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.SubmissionFilter
	}{
		Ctx: ctx,
		F:   f,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, f)
}

func (mock *adminServiceMock) ListCalls() []struct {
	Ctx context.Context
	F   domain.SubmissionFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *adminServiceMock) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	if mock.UpdateStatusFunc == nil {
		panic("adminServiceMock.UpdateStatusFunc: method is nil but adminService.UpdateStatus was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Id     int64
		Status domain.Status
	}{
		Ctx:    ctx,
		Id:     id,
		Status: status,
	}
	mock.lockUpdateStatus.Lock()
	mock.calls.UpdateStatus = append(mock.calls.UpdateStatus, callInfo)
	mock.lockUpdateStatus.Unlock()
	return mock.UpdateStatusFunc(ctx, id, status)
}

func (mock *adminServiceMock) UpdateStatusCalls() []struct {
	Ctx    context.Context
	Id     int64
	Status domain.Status
} {
	mock.lockUpdateStatus.RLock()
	calls := mock.calls.UpdateStatus
	mock.lockUpdateStatus.RUnlock()
	return calls
}

func (mock *adminServiceMock) Delete(ctx context.Context, id int64) error {
	if mock.DeleteFunc == nil {
		panic("adminServiceMock.DeleteFunc: method is nil but adminService.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  int64
	}{
		Ctx: ctx,
		Id:  id,
	}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *adminServiceMock) DeleteCalls() []struct {
	Ctx context.Context
	Id  int64
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *adminServiceMock) IssueDownloadToken(ctx context.Context, id int64) (*submission.DownloadToken, error) {
	if mock.IssueDownloadTokenFunc == nil {
		panic("adminServiceMock.IssueDownloadTokenFunc: method is nil but adminService.IssueDownloadToken was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  int64
	}{
		Ctx: ctx,
		Id:  id,
	}
	mock.lockIssueDownloadToken.Lock()
	mock.calls.IssueDownloadToken = append(mock.calls.IssueDownloadToken, callInfo)
	mock.lockIssueDownloadToken.Unlock()
	return mock.IssueDownloadTokenFunc(ctx, id)
}

func (mock *adminServiceMock) IssueDownloadTokenCalls() []struct {
	Ctx context.Context
	Id  int64
} {
	mock.lockIssueDownloadToken.RLock()
	calls := mock.calls.IssueDownloadToken
	mock.lockIssueDownloadToken.RUnlock()
	return calls
}

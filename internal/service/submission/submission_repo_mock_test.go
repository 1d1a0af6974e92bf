package submission

import (
	"context"
	"github.com/schulanmeldung/regform-backend/internal/domain"
	"sync"
)

var _ submissionRepo = &submissionRepoMock{}

type submissionRepoMock struct {
	InsertFunc       func(ctx context.Context, in domain.NewSubmission) (int64, error)
	GetByIDFunc      func(ctx context.Context, id int64) (*domain.Submission, error)
	AttachmentsFunc  func(ctx context.Context, id int64) ([]domain.Attachment, error)
	ListFunc         func(ctx context.Context, f domain.SubmissionFilter) ([]domain.Submission, int, error)
	UpdateStatusFunc func(ctx context.Context, id int64, status domain.Status) error
	SoftDeleteFunc   func(ctx context.Context, id int64) error

	calls struct {
		Insert []struct {
			Ctx context.Context
			In  domain.NewSubmission
		}
		GetByID []struct {
			Ctx context.Context
			Id  int64
		}
		Attachments []struct {
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
		SoftDelete []struct {
			Ctx context.Context
			Id  int64
		}
	}
	lockInsert       sync.RWMutex
	lockGetByID      sync.RWMutex
	lockAttachments  sync.RWMutex
	lockList         sync.RWMutex
	lockUpdateStatus sync.RWMutex
	lockSoftDelete   sync.RWMutex
}

func (mock *submissionRepoMock) Insert(ctx context.Context, in domain.NewSubmission) (int64, error) {
	if mock.InsertFunc == nil {
		panic("submissionRepoMock.InsertFunc: method is nil but submissionRepo.Insert was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  domain.NewSubmission
	}{
		Ctx: ctx,
		In:  in,
	}
	mock.lockInsert.Lock()
	mock.calls.Insert = append(mock.calls.Insert, callInfo)
	mock.lockInsert.Unlock()
	return mock.InsertFunc(ctx, in)
}

func (mock *submissionRepoMock) InsertCalls() []struct {
	Ctx context.Context
	In  domain.NewSubmission
} {
	mock.lockInsert.RLock()
	calls := mock.calls.Insert
	mock.lockInsert.RUnlock()
	return calls
}

func (mock *submissionRepoMock) GetByID(ctx context.Context, id int64) (*domain.Submission, error) {
	if mock.GetByIDFunc == nil {
		panic("submissionRepoMock.GetByIDFunc: method is nil but submissionRepo.GetByID was just called")
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

func (mock *submissionRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id  int64
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *submissionRepoMock) Attachments(ctx context.Context, id int64) ([]domain.Attachment, error) {
	if mock.AttachmentsFunc == nil {
		panic("submissionRepoMock.AttachmentsFunc: method is nil but submissionRepo.Attachments was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  int64
	}{
		Ctx: ctx,
		Id:  id,
	}
	mock.lockAttachments.Lock()
	mock.calls.Attachments = append(mock.calls.Attachments, callInfo)
	mock.lockAttachments.Unlock()
	return mock.AttachmentsFunc(ctx, id)
}

func (mock *submissionRepoMock) AttachmentsCalls() []struct {
	Ctx context.Context
	Id  int64
} {
	mock.lockAttachments.RLock()
	calls := mock.calls.Attachments
	mock.lockAttachments.RUnlock()
	return calls
}

func (mock *submissionRepoMock) List(ctx context.Context, f domain.SubmissionFilter) ([]domain.Submission, int, error) {
	if mock.ListFunc == nil {
		panic("submissionRepoMock.ListFunc: method is nil but submissionRepo.List was just called")
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

func (mock *submissionRepoMock) ListCalls() []struct {
	Ctx context.Context
	F   domain.SubmissionFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *submissionRepoMock) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	if mock.UpdateStatusFunc == nil {
		panic("submissionRepoMock.UpdateStatusFunc: method is nil but submissionRepo.UpdateStatus was just called")
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

func (mock *submissionRepoMock) UpdateStatusCalls() []struct {
	Ctx    context.Context
	Id     int64
	Status domain.Status
} {
	mock.lockUpdateStatus.RLock()
	calls := mock.calls.UpdateStatus
	mock.lockUpdateStatus.RUnlock()
	return calls
}

func (mock *submissionRepoMock) SoftDelete(ctx context.Context, id int64) error {
	if mock.SoftDeleteFunc == nil {
		panic("submissionRepoMock.SoftDeleteFunc: method is nil but submissionRepo.SoftDelete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  int64
	}{
		Ctx: ctx,
		Id:  id,
	}
	mock.lockSoftDelete.Lock()
	mock.calls.SoftDelete = append(mock.calls.SoftDelete, callInfo)
	mock.lockSoftDelete.Unlock()
	return mock.SoftDeleteFunc(ctx, id)
}

func (mock *submissionRepoMock) SoftDeleteCalls() []struct {
	Ctx context.Context
	Id  int64
} {
	mock.lockSoftDelete.RLock()
	calls := mock.calls.SoftDelete
	mock.lockSoftDelete.RUnlock()
	return calls
}

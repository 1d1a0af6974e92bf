package submission

import (
	"context"
	"github.com/schulanmeldung/regform-backend/internal/domain"
	"sync"
)

var _ uploader = &uploaderMock{}

type uploaderMock struct {
	DeleteFunc func(ctx context.Context, key string) error
	UploadFunc func(ctx context.Context, u domain.Upload) (domain.Attachment, error)

	calls struct {
		Delete []struct {
			Ctx context.Context
			Key string
		}
		Upload []struct {
			Ctx context.Context
			U   domain.Upload
		}
	}
	lockDelete sync.RWMutex
	lockUpload sync.RWMutex
}

func (mock *uploaderMock) Delete(ctx context.Context, key string) error {
	if mock.DeleteFunc == nil {
		panic("uploaderMock.DeleteFunc: method is nil but uploader.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key string
	}{
		Ctx: ctx,
		Key: key,
	}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, key)
}

func (mock *uploaderMock) DeleteCalls() []struct {
	Ctx context.Context
	Key string
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *uploaderMock) Upload(ctx context.Context, u domain.Upload) (domain.Attachment, error) {
	if mock.UploadFunc == nil {
		panic("uploaderMock.UploadFunc: method is nil but uploader.Upload was just called")
	}
	callInfo := struct {
		Ctx context.Context
		U   domain.Upload
	}{
		Ctx: ctx,
		U:   u,
	}
	mock.lockUpload.Lock()
	mock.calls.Upload = append(mock.calls.Upload, callInfo)
	mock.lockUpload.Unlock()
	return mock.UploadFunc(ctx, u)
}

func (mock *uploaderMock) UploadCalls() []struct {
	Ctx context.Context
	U   domain.Upload
} {
	mock.lockUpload.RLock()
	calls := mock.calls.Upload
	mock.lockUpload.RUnlock()
	return calls
}

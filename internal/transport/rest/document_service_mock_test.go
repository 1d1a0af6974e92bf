package rest

import (
	"context"
	"github.com/schulanmeldung/regform-backend/internal/service/document"
	"sync"
)

var _ documentService = &documentServiceMock{}

type documentServiceMock struct {
	GenerateFunc func(ctx context.Context, token string) (*document.Document, error)

	calls struct {
		Generate []struct {
			Ctx   context.Context
			Token string
		}
	}
	lockGenerate sync.RWMutex
}

func (mock *documentServiceMock) Generate(ctx context.Context, token string) (*document.Document, error) {
	if mock.GenerateFunc == nil {
		panic("documentServiceMock.GenerateFunc: method is nil but documentService.Generate was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Token string
	}{
		Ctx:   ctx,
		Token: token,
	}
	mock.lockGenerate.Lock()
	mock.calls.Generate = append(mock.calls.Generate, callInfo)
	mock.lockGenerate.Unlock()
	return mock.GenerateFunc(ctx, token)
}

func (mock *documentServiceMock) GenerateCalls() []struct {
	Ctx   context.Context
	Token string
} {
	mock.lockGenerate.RLock()
	calls := mock.calls.Generate
	mock.lockGenerate.RUnlock()
	return calls
}

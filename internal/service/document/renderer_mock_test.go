package document

import (
	"github.com/schulanmeldung/regform-backend/internal/adapter/pdf"
	"sync"
)

var _ renderer = &rendererMock{}

type rendererMock struct {
	RenderFunc func(in pdf.RenderInput) ([]byte, error)

	calls struct {
		Render []struct {
			In pdf.RenderInput
		}
	}
	lockRender sync.RWMutex
}

func (mock *rendererMock) Render(in pdf.RenderInput) ([]byte, error) {
	if mock.RenderFunc == nil {
		panic("rendererMock.RenderFunc: method is nil but renderer.Render was just called")
	}
	callInfo := struct {
		In pdf.RenderInput
	}{
		In: in,
	}
	mock.lockRender.Lock()
	mock.calls.Render = append(mock.calls.Render, callInfo)
	mock.lockRender.Unlock()
	return mock.RenderFunc(in)
}

func (mock *rendererMock) RenderCalls() []struct {
	In pdf.RenderInput
} {
	mock.lockRender.RLock()
	calls := mock.calls.Render
	mock.lockRender.RUnlock()
	return calls
}

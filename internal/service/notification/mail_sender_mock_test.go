package notification

import (
	"context"
	"github.com/schulanmeldung/regform-backend/internal/adapter/mailer"
	"sync"
)

var _ mailSender = &mailSenderMock{}

type mailSenderMock struct {
	SendFunc func(ctx context.Context, msg mailer.Message) error

	calls struct {
		Send []struct {
			Ctx context.Context
			Msg mailer.Message
		}
	}
	lockSend sync.RWMutex
}

func (mock *mailSenderMock) Send(ctx context.Context, msg mailer.Message) error {
	if mock.SendFunc == nil {
		panic("mailSenderMock.SendFunc: method is nil but mailSender.Send was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Msg mailer.Message
	}{
		Ctx: ctx,
		Msg: msg,
	}
	mock.lockSend.Lock()
	mock.calls.Send = append(mock.calls.Send, callInfo)
	mock.lockSend.Unlock()
	return mock.SendFunc(ctx, msg)
}

func (mock *mailSenderMock) SendCalls() []struct {
	Ctx context.Context
	Msg mailer.Message
} {
	mock.lockSend.RLock()
	calls := mock.calls.Send
	mock.lockSend.RUnlock()
	return calls
}

package workers

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"team-lab/domain/event"
	"team-lab/mocks"
	"team-lab/notify"
)

func TestOutboxWorker_Dispatches_Published_Notifications(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dispatcher := mocks.NewMockDispatcher(ctrl)
	outbox := notify.NewOutbox(slog.Default(), 8)
	worker := NewOutboxWorker(slog.Default(), outbox.Events(), dispatcher)

	delivered := make(chan event.Notification, 1)
	dispatcher.EXPECT().
		Dispatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n event.Notification) error {
			delivered <- n
			return nil
		}).
		Times(1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	outbox.Publish(event.Notification{TeamID: 7, Event: event.UserJoined, At: time.Now()})

	select {
	case n := <-delivered:
		req.Equal(event.UserJoined, n.Event)
	case <-time.After(time.Second):
		req.Fail("notification was never dispatched")
	}
}

func TestOutboxWorker_Swallows_Dispatch_Errors(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	failing := mocks.NewMockDispatcher(ctrl)
	succeeding := mocks.NewMockDispatcher(ctrl)
	outbox := notify.NewOutbox(slog.Default(), 8)
	worker := NewOutboxWorker(slog.Default(), outbox.Events(), failing, succeeding)

	delivered := make(chan struct{}, 2)
	failing.EXPECT().
		Dispatch(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("bot unreachable")).
		Times(2)
	succeeding.EXPECT().
		Dispatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, event.Notification) error {
			delivered <- struct{}{}
			return nil
		}).
		Times(2)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	// A failing dispatcher must not block the next notification nor the
	// other dispatchers.
	outbox.Publish(event.Notification{TeamID: 7, Event: event.UserJoined})
	outbox.Publish(event.Notification{TeamID: 7, Event: event.UserLeft})

	for i := 0; i < 2; i++ {
		select {
		case <-delivered:
		case <-time.After(time.Second):
			req.Fail("notification was never dispatched")
		}
	}
}

func TestOutboxWorker_Stops_On_Context_Cancel(t *testing.T) {
	req := require.New(t)
	outbox := notify.NewOutbox(slog.Default(), 1)
	worker := NewOutboxWorker(slog.Default(), outbox.Events())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		req.NoError(err)
	case <-time.After(time.Second):
		req.Fail("worker did not stop on cancel")
	}
}

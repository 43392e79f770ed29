package workers

import (
	"context"
	"log/slog"

	"team-lab/contract"
	"team-lab/domain/event"
)

// OutboxWorker drains the notification outbox into the configured
// dispatchers. Dispatch errors are logged and swallowed: notification
// delivery is best effort and must never surface into the mutation that
// produced the event.
type OutboxWorker struct {
	log         *slog.Logger
	events      <-chan event.Notification
	dispatchers []contract.Dispatcher
}

func NewOutboxWorker(log *slog.Logger, events <-chan event.Notification, dispatchers ...contract.Dispatcher) *OutboxWorker {
	return &OutboxWorker{log: log, events: events, dispatchers: dispatchers}
}

func (w *OutboxWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping outbox worker")
			return nil
		case n, ok := <-w.events:
			if !ok {
				return nil
			}
			for _, dispatcher := range w.dispatchers {
				if err := dispatcher.Dispatch(ctx, n); err != nil {
					w.log.Error("notification dispatch failed",
						"team_id", n.TeamID,
						"event", n.Event,
						"error", err,
					)
				}
			}
		}
	}
}

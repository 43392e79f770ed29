package notify

import (
	"log/slog"

	"team-lab/domain/event"
)

// Outbox decouples chat-bot notification side effects from the mutations
// that produce them. Publishers never block: when the buffer is full the
// notification is dropped with a log line, because a slow bot must not
// stall an HTTP handler or the redemption transaction.
type Outbox struct {
	log *slog.Logger
	ch  chan event.Notification
}

func NewOutbox(log *slog.Logger, size int) *Outbox {
	return &Outbox{log: log, ch: make(chan event.Notification, size)}
}

func (o *Outbox) Publish(n event.Notification) {
	select {
	case o.ch <- n:
	default:
		o.log.Warn("outbox full, notification dropped",
			"team_id", n.TeamID,
			"event", n.Event,
		)
	}
}

// Events is consumed by the supervised outbox worker.
func (o *Outbox) Events() <-chan event.Notification {
	return o.ch
}

package notify

import (
	"context"
	"log/slog"

	"team-lab/domain/event"
)

// LogDispatcher is the default dispatcher wired when no chat integration
// is configured. Real Discord/Telegram dispatchers implement the same
// contract and live behind their own HTTP clients.
type LogDispatcher struct {
	log *slog.Logger
}

func NewLogDispatcher(log *slog.Logger) LogDispatcher {
	return LogDispatcher{log: log}
}

func (d LogDispatcher) Dispatch(_ context.Context, n event.Notification) error {
	d.log.Info("notification",
		"team_id", n.TeamID,
		"event", n.Event,
		"at", n.At,
	)
	return nil
}

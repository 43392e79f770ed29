package projection

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"team-lab/domain/event"
)

func frame(t *testing.T, payload any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return data
}

func Test_Timeline_Orders_And_Summarizes(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline(1, 10)

	_, ok := timeline.Consume(event.TaskCreated, frame(t, event.TaskCreatedPayload{TaskID: 5, TeamID: 1, TaskName: "ship it"}))
	req.True(ok)
	_, ok = timeline.Consume(event.TaskStatusChanged, frame(t, event.TaskStatusChangedPayload{TaskID: 5, TeamID: 1, OldStatus: 0, NewStatus: 1}))
	req.True(ok)

	entries := timeline.Entries()
	req.Len(entries, 2)
	req.Equal(event.TaskCreated, entries[0].Event)
	req.Contains(entries[0].Summary, "ship it")
	req.Equal(event.TaskStatusChanged, entries[1].Event)
}

func Test_Timeline_Drops_Duplicates(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline(1, 10)
	payload := frame(t, event.TaskDeletedPayload{TaskID: 5, TeamID: 1, DeletedBy: 42})

	_, ok := timeline.Consume(event.TaskDeleted, payload)
	req.True(ok)
	_, ok = timeline.Consume(event.TaskDeleted, payload)
	req.False(ok)
	req.Len(timeline.Entries(), 1)
}

func Test_Timeline_Ignores_Unknown_And_Malformed(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline(1, 10)

	_, ok := timeline.Consume("somethingElse", frame(t, map[string]any{}))
	req.False(ok)
	_, ok = timeline.Consume(event.TaskCreated, json.RawMessage(`{broken`))
	req.False(ok)
	req.Empty(timeline.Entries())
}

func Test_Timeline_History_Is_Bounded(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline(1, 3)

	for i := 1; i <= 5; i++ {
		_, ok := timeline.Consume(event.TaskCreated, frame(t, event.TaskCreatedPayload{TaskID: int64(i), TeamID: 1, TaskName: "task"}))
		req.True(ok)
	}

	entries := timeline.Entries()
	req.Len(entries, 3)
	req.Contains(entries[0].Summary, "#3")
	req.Contains(entries[2].Summary, "#5")
}

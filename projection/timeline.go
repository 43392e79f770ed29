// Package projection builds local activity feeds from observed team events.
// Handles ordering, deduplication, and bounded history.
// Does not emit events or interact with the gateway directly.
package projection

import (
	"encoding/json"
	"fmt"
	"time"

	"team-lab/domain/event"
)

// Entry is one line of a team activity feed.
type Entry struct {
	Event   string
	Summary string
	At      time.Time
}

// Timeline is a client-side view over the team room's event stream: entries
// arrive in socket order, duplicates (reconnect replays, multi-tab echoes)
// are dropped, and history is capped at maxEntries.
type Timeline struct {
	TeamID     int64
	maxEntries int
	seen       map[string]struct{}
	entries    []Entry
}

func NewTimeline(teamID int64, maxEntries int) *Timeline {
	return &Timeline{
		TeamID:     teamID,
		maxEntries: maxEntries,
		seen:       make(map[string]struct{}),
	}
}

// Consume folds one socket frame into the feed. It returns the appended
// entry and true, or false when the frame is unknown, malformed or a
// duplicate of one already consumed.
func (t *Timeline) Consume(eventName string, data json.RawMessage) (Entry, bool) {
	summary, key, ok := summarize(eventName, data)
	if !ok {
		return Entry{}, false
	}
	if _, dup := t.seen[key]; dup {
		return Entry{}, false
	}
	t.seen[key] = struct{}{}

	entry := Entry{Event: eventName, Summary: summary, At: time.Now()}
	t.entries = append(t.entries, entry)
	if len(t.entries) > t.maxEntries {
		t.entries = t.entries[len(t.entries)-t.maxEntries:]
	}
	return entry, true
}

// Entries returns the feed oldest first.
func (t *Timeline) Entries() []Entry {
	snapshot := make([]Entry, len(t.entries))
	copy(snapshot, t.entries)
	return snapshot
}

func summarize(eventName string, data json.RawMessage) (summary, dedupKey string, ok bool) {
	switch eventName {
	case event.UserJoined:
		var p event.UserJoinedPayload
		if json.Unmarshal(data, &p) != nil {
			return "", "", false
		}
		return fmt.Sprintf("%s is online (%d online)", p.DisplayName, p.TotalOnlineCount),
			fmt.Sprintf("%s:%d:%d", eventName, p.UserID, p.TotalOnlineCount), true
	case event.UserLeft:
		var p event.UserLeftPayload
		if json.Unmarshal(data, &p) != nil {
			return "", "", false
		}
		return fmt.Sprintf("%s went offline (%d online)", p.DisplayName, p.TotalOnlineCount),
			fmt.Sprintf("%s:%d:%d", eventName, p.UserID, p.TotalOnlineCount), true
	case event.TaskCreated:
		var p event.TaskCreatedPayload
		if json.Unmarshal(data, &p) != nil {
			return "", "", false
		}
		return fmt.Sprintf("task #%d created: %s", p.TaskID, p.TaskName),
			fmt.Sprintf("%s:%d", eventName, p.TaskID), true
	case event.TaskStatusChanged:
		var p event.TaskStatusChangedPayload
		if json.Unmarshal(data, &p) != nil {
			return "", "", false
		}
		return fmt.Sprintf("task #%d status %d -> %d", p.TaskID, p.OldStatus, p.NewStatus),
			fmt.Sprintf("%s:%d:%d:%d", eventName, p.TaskID, p.OldStatus, p.NewStatus), true
	case event.TaskDeleted:
		var p event.TaskDeletedPayload
		if json.Unmarshal(data, &p) != nil {
			return "", "", false
		}
		return fmt.Sprintf("task #%d deleted", p.TaskID),
			fmt.Sprintf("%s:%d", eventName, p.TaskID), true
	case event.CommentCreated:
		var p event.CommentCreatedPayload
		if json.Unmarshal(data, &p) != nil {
			return "", "", false
		}
		return fmt.Sprintf("comment #%d on task #%d", p.CommentID, p.TaskID),
			fmt.Sprintf("%s:%d", eventName, p.CommentID), true
	case event.MemberRoleChanged:
		var p event.MemberRoleChangedPayload
		if json.Unmarshal(data, &p) != nil {
			return "", "", false
		}
		return fmt.Sprintf("%s is now %s", p.DisplayName, p.NewRole),
			fmt.Sprintf("%s:%d:%s", eventName, p.UserID, p.NewRole), true
	default:
		return "", "", false
	}
}

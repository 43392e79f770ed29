package presence

import (
	"sync"

	"team-lab/domain"
	"team-lab/domain/event"
)

// Registry is the in-process bookkeeping of which users hold live
// connections to which team. State is ephemeral and never persisted:
// a user is online in a team iff they own at least one connection there.
//
// A reverse index keyed by (connection, team) gives O(1) cleanup on
// disconnect. Removing an unknown connection is a no-op, not an error,
// which makes an explicit leave followed by the disconnect sweep naturally
// idempotent without any "already handled" flag.
type Registry struct {
	mu    sync.Mutex
	teams map[domain.TeamID]map[domain.UserID]*userEntry
	conns map[connKey]domain.UserID
}

type userEntry struct {
	displayName string
	connIDs     map[string]struct{}
}

type connKey struct {
	connID string
	teamID domain.TeamID
}

// Removal describes the presence effect of dropping one connection.
type Removal struct {
	TeamID      domain.TeamID
	UserID      domain.UserID
	DisplayName string
	NowOffline  bool
}

func NewRegistry() *Registry {
	return &Registry{
		teams: make(map[domain.TeamID]map[domain.UserID]*userEntry),
		conns: make(map[connKey]domain.UserID),
	}
}

// AddConnection records connID for (teamID, userID), creating the team
// bucket and user entry on demand. It returns true iff this is the
// offline-to-online transition for that user in that team.
func (r *Registry) AddConnection(teamID domain.TeamID, userID domain.UserID, displayName, connID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, ok := r.teams[teamID]
	if !ok {
		users = make(map[domain.UserID]*userEntry)
		r.teams[teamID] = users
	}
	entry, ok := users[userID]
	if !ok {
		entry = &userEntry{displayName: displayName, connIDs: make(map[string]struct{})}
		users[userID] = entry
	}
	wasOffline := len(entry.connIDs) == 0
	entry.connIDs[connID] = struct{}{}
	r.conns[connKey{connID: connID, teamID: teamID}] = userID
	return wasOffline
}

// RemoveConnection drops connID from the team it was registered in.
// The second return value is false when the connection is unknown for that
// team; callers treat that as a no-op. Empty user entries and team buckets
// are deleted so the maps never leak.
func (r *Registry) RemoveConnection(connID string, teamID domain.TeamID) (Removal, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := connKey{connID: connID, teamID: teamID}
	userID, ok := r.conns[key]
	if !ok {
		return Removal{}, false
	}
	delete(r.conns, key)

	users := r.teams[teamID]
	entry := users[userID]
	delete(entry.connIDs, connID)

	removal := Removal{
		TeamID:      teamID,
		UserID:      userID,
		DisplayName: entry.displayName,
		NowOffline:  len(entry.connIDs) == 0,
	}
	if removal.NowOffline {
		delete(users, userID)
		if len(users) == 0 {
			delete(r.teams, teamID)
		}
	}
	return removal, true
}

// ConnectionCount returns how many live connections a user holds in a team.
func (r *Registry) ConnectionCount(teamID domain.TeamID, userID domain.UserID) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.teams[teamID][userID]
	if !ok {
		return 0
	}
	return len(entry.connIDs)
}

// OnlineCount returns the number of distinct online users in a team.
func (r *Registry) OnlineCount(teamID domain.TeamID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.teams[teamID])
}

// TotalOnline returns the number of online (team, user) pairs across all
// teams, for operator stats.
func (r *Registry) TotalOnline() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, users := range r.teams {
		total += len(users)
	}
	return total
}

// ListOnline returns a bounded snapshot of online users in a team.
// Order is not significant.
func (r *Registry) ListOnline(teamID domain.TeamID, limit int) []event.OnlineUser {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := r.teams[teamID]
	snapshot := make([]event.OnlineUser, 0, len(users))
	for userID, entry := range users {
		if len(snapshot) >= limit {
			break
		}
		snapshot = append(snapshot, event.OnlineUser{
			UserID:          userID,
			DisplayName:     entry.displayName,
			ConnectionCount: len(entry.connIDs),
		})
	}
	return snapshot
}

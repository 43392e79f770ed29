package gateway

import (
	"sync"

	"team-lab/domain"
)

// Session is the per-connection state machine: a verified identity plus
// the set of team rooms the connection currently holds. One connection may
// be joined to any number of rooms at once.
type Session struct {
	peer        *Peer
	userID      domain.UserID
	displayName string

	mu    sync.Mutex
	rooms map[domain.TeamID]struct{}
}

func NewSession(peer *Peer, userID domain.UserID, displayName string) *Session {
	return &Session{
		peer:        peer,
		userID:      userID,
		displayName: displayName,
		rooms:       make(map[domain.TeamID]struct{}),
	}
}

func (s *Session) addRoom(teamID domain.TeamID) {
	s.mu.Lock()
	s.rooms[teamID] = struct{}{}
	s.mu.Unlock()
}

func (s *Session) removeRoom(teamID domain.TeamID) {
	s.mu.Lock()
	delete(s.rooms, teamID)
	s.mu.Unlock()
}

// roomSnapshot returns the rooms still held, for the disconnect sweep.
func (s *Session) roomSnapshot() []domain.TeamID {
	s.mu.Lock()
	defer s.mu.Unlock()
	teams := make([]domain.TeamID, 0, len(s.rooms))
	for teamID := range s.rooms {
		teams = append(teams, teamID)
	}
	return teams
}

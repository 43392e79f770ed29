package gateway

import (
	"fmt"
	"log/slog"
	"sync"

	"team-lab/contract"
	"team-lab/domain"
	"team-lab/domain/event"
	"team-lab/errors"
	"team-lab/presence"
)

// RoomID is the broadcast scope for one team. Typed to keep the 1:1
// team-to-room mapping collision free.
type RoomID string

func RoomFor(teamID domain.TeamID) RoomID {
	return RoomID(fmt.Sprintf("team-%d", teamID))
}

// Gateway owns room subscriptions and presence for every live connection.
// Broadcasts to one room go out under the gateway mutex in emission order;
// no ordering is guaranteed across rooms.
type Gateway struct {
	log         *slog.Logger
	verifier    contract.MembershipVerifier
	presence    *presence.Registry
	snapshotCap int

	mu    sync.Mutex
	rooms map[RoomID]map[string]*Peer
}

func NewGateway(log *slog.Logger, verifier contract.MembershipVerifier, registry *presence.Registry, snapshotCap int) *Gateway {
	return &Gateway{
		log:         log,
		verifier:    verifier,
		presence:    registry,
		snapshotCap: snapshotCap,
		rooms:       make(map[RoomID]map[string]*Peer),
	}
}

// JoinTeam subscribes the connection to the team room after the membership
// check passes. On a denied or failed check only a scoped error event goes
// back to this connection: no subscription, no presence entry.
//
// The first connection of a user announces userJoined to the rest of the
// room; every connection, first or not, receives the full onlineUsers
// snapshot so each browser tab reconciles state independently.
func (g *Gateway) JoinTeam(sess *Session, teamID domain.TeamID) {
	if err := g.verifier.VerifyMembership(teamID, sess.userID); err != nil {
		g.log.Warn("team access denied",
			"team_id", teamID,
			"user_id", sess.userID,
			"error", err,
		)
		g.sendError(sess.peer, err)
		return
	}

	roomID := RoomFor(teamID)

	g.mu.Lock()
	peers, ok := g.rooms[roomID]
	if !ok {
		peers = make(map[string]*Peer)
		g.rooms[roomID] = peers
	}
	peers[sess.peer.ID()] = sess.peer
	sess.addRoom(teamID)

	wasFirst := g.presence.AddConnection(teamID, sess.userID, sess.displayName, sess.peer.ID())
	if wasFirst {
		g.broadcastLocked(roomID, event.UserJoinedPayload{
			TeamID:           teamID,
			UserID:           sess.userID,
			DisplayName:      sess.displayName,
			ConnectionCount:  g.presence.ConnectionCount(teamID, sess.userID),
			TotalOnlineCount: g.presence.OnlineCount(teamID),
		}, sess.peer.ID())
	}
	snapshot := event.OnlineUsersPayload{
		TeamID:     teamID,
		Users:      g.presence.ListOnline(teamID, g.snapshotCap),
		TotalCount: g.presence.OnlineCount(teamID),
	}
	g.mu.Unlock()

	g.send(sess.peer, snapshot)
	g.send(sess.peer, event.JoinedTeamPayload{TeamID: teamID, Room: string(roomID)})

	g.log.Debug("joined team room",
		"team_id", teamID,
		"user_id", sess.userID,
		"conn_id", sess.peer.ID(),
		"first_connection", wasFirst,
	)
}

// LeaveTeam unsubscribes the connection from the room and updates
// presence. userLeft is only announced when the user went fully offline in
// that team, never when another tab is still connected.
func (g *Gateway) LeaveTeam(sess *Session, teamID domain.TeamID) {
	g.dropConnection(sess, teamID)
	g.send(sess.peer, event.LeftTeamPayload{TeamID: teamID, Room: string(RoomFor(teamID))})
}

// Disconnect sweeps every room the connection still holds, applying the
// same removal as an explicit leave. A room already left is a no-op in the
// presence registry, so the duplicate path never double-emits userLeft.
func (g *Gateway) Disconnect(sess *Session) {
	for _, teamID := range sess.roomSnapshot() {
		g.dropConnection(sess, teamID)
	}
	g.log.Debug("connection closed", "conn_id", sess.peer.ID(), "user_id", sess.userID)
}

func (g *Gateway) dropConnection(sess *Session, teamID domain.TeamID) {
	roomID := RoomFor(teamID)

	g.mu.Lock()
	defer g.mu.Unlock()

	if peers, ok := g.rooms[roomID]; ok {
		delete(peers, sess.peer.ID())
		if len(peers) == 0 {
			delete(g.rooms, roomID)
		}
	}
	sess.removeRoom(teamID)

	removal, ok := g.presence.RemoveConnection(sess.peer.ID(), teamID)
	if !ok || !removal.NowOffline {
		return
	}
	g.broadcastLocked(roomID, event.UserLeftPayload{
		TeamID:           teamID,
		UserID:           removal.UserID,
		DisplayName:      removal.DisplayName,
		ConnectionCount:  0,
		TotalOnlineCount: g.presence.OnlineCount(teamID),
	}, "")
}

// Broadcast fans a payload out to every connection subscribed to the
// team's room. Fire and forget: no acknowledgement, no retry.
func (g *Gateway) Broadcast(teamID domain.TeamID, payload event.Payload) {
	g.mu.Lock()
	g.broadcastLocked(RoomFor(teamID), payload, "")
	g.mu.Unlock()
}

// The Emit methods are the contract the REST command layer calls after a
// successful domain mutation.

func (g *Gateway) EmitTaskCreated(teamID domain.TeamID, payload event.TaskCreatedPayload) {
	g.Broadcast(teamID, payload)
}

func (g *Gateway) EmitTaskUpdated(teamID domain.TeamID, payload event.TaskUpdatedPayload) {
	g.Broadcast(teamID, payload)
}

func (g *Gateway) EmitTaskStatusChanged(teamID domain.TeamID, payload event.TaskStatusChangedPayload) {
	g.Broadcast(teamID, payload)
}

func (g *Gateway) EmitTaskActiveStatusChanged(teamID domain.TeamID, payload event.TaskActiveStatusChangedPayload) {
	g.Broadcast(teamID, payload)
}

func (g *Gateway) EmitTaskDeleted(teamID domain.TeamID, payload event.TaskDeletedPayload) {
	g.Broadcast(teamID, payload)
}

func (g *Gateway) EmitCommentCreated(teamID domain.TeamID, payload event.CommentCreatedPayload) {
	g.Broadcast(teamID, payload)
}

func (g *Gateway) EmitCommentUpdated(teamID domain.TeamID, payload event.CommentUpdatedPayload) {
	g.Broadcast(teamID, payload)
}

func (g *Gateway) EmitCommentDeleted(teamID domain.TeamID, payload event.CommentDeletedPayload) {
	g.Broadcast(teamID, payload)
}

func (g *Gateway) EmitMemberRoleChanged(teamID domain.TeamID, payload event.MemberRoleChangedPayload) {
	g.Broadcast(teamID, payload)
}

// Stats reports room and connection occupancy for the stats worker.
func (g *Gateway) Stats() (rooms, connections int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, peers := range g.rooms {
		connections += len(peers)
	}
	return len(g.rooms), connections
}

// broadcastLocked requires g.mu to be held: holding the lock across the
// whole fan-out is what keeps per-room emission order stable.
func (g *Gateway) broadcastLocked(roomID RoomID, payload event.Payload, exceptConnID string) {
	for connID, peer := range g.rooms[roomID] {
		if connID == exceptConnID {
			continue
		}
		if err := peer.Send(payload.EventName(), payload); err != nil {
			g.log.Warn("broadcast delivery failed",
				"room", roomID,
				"conn_id", connID,
				"event", payload.EventName(),
				"error", err,
			)
		}
	}
}

func (g *Gateway) send(peer *Peer, payload event.Payload) {
	if err := peer.Send(payload.EventName(), payload); err != nil {
		g.log.Warn("direct delivery failed",
			"conn_id", peer.ID(),
			"event", payload.EventName(),
			"error", err,
		)
	}
}

func (g *Gateway) sendError(peer *Peer, err error) {
	sendErr := peer.Send(event.Error, event.ErrorPayload{
		Code:    errors.CodeOf(err),
		Message: err.Error(),
	})
	if sendErr != nil {
		g.log.Warn("error delivery failed", "conn_id", peer.ID(), "error", sendErr)
	}
}

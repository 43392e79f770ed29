package event

import (
	"time"

	"team-lab/domain"
)

// Socket event names shared by clients and the gateway.
const (
	// Client -> Server
	JoinTeam  = "joinTeam"
	LeaveTeam = "leaveTeam"

	// Server -> Client
	JoinedTeam              = "joinedTeam"
	LeftTeam                = "leftTeam"
	TaskCreated             = "taskCreated"
	TaskUpdated             = "taskUpdated"
	TaskStatusChanged       = "taskStatusChanged"
	TaskActiveStatusChanged = "taskActiveStatusChanged"
	TaskDeleted             = "taskDeleted"
	CommentCreated          = "commentCreated"
	CommentUpdated          = "commentUpdated"
	CommentDeleted          = "commentDeleted"
	MemberRoleChanged       = "memberRoleChanged"
	UserJoined              = "userJoined"
	UserLeft                = "userLeft"
	OnlineUsers             = "onlineUsers"
	Error                   = "error"
)

// Payload is a broadcastable team event. Consumers must treat every payload
// as an idempotent delta: no cross-room ordering is guaranteed.
type Payload interface {
	EventName() string
	Team() domain.TeamID
}

type TaskCreatedPayload struct {
	TaskID          int64         `json:"taskId"`
	TeamID          domain.TeamID `json:"teamId"`
	TaskName        string        `json:"taskName"`
	TaskDescription *string       `json:"taskDescription"`
	TaskStatus      int           `json:"taskStatus"`
	ActStatus       int           `json:"actStatus"`
	StartAt         *string       `json:"startAt"`
	EndAt           *string       `json:"endAt"`
	CreatedBy       domain.UserID `json:"createdBy"`
}

func (p TaskCreatedPayload) EventName() string   { return TaskCreated }
func (p TaskCreatedPayload) Team() domain.TeamID { return p.TeamID }

type TaskUpdatedPayload struct {
	TaskID          int64         `json:"taskId"`
	TeamID          domain.TeamID `json:"teamId"`
	TaskName        *string       `json:"taskName,omitempty"`
	TaskDescription *string       `json:"taskDescription,omitempty"`
	TaskStatus      *int          `json:"taskStatus,omitempty"`
	StartAt         *string       `json:"startAt,omitempty"`
	EndAt           *string       `json:"endAt,omitempty"`
	UpdatedBy       domain.UserID `json:"updatedBy"`
}

func (p TaskUpdatedPayload) EventName() string   { return TaskUpdated }
func (p TaskUpdatedPayload) Team() domain.TeamID { return p.TeamID }

type TaskStatusChangedPayload struct {
	TaskID    int64         `json:"taskId"`
	TeamID    domain.TeamID `json:"teamId"`
	OldStatus int           `json:"oldStatus"`
	NewStatus int           `json:"newStatus"`
	UpdatedBy domain.UserID `json:"updatedBy"`
}

func (p TaskStatusChangedPayload) EventName() string   { return TaskStatusChanged }
func (p TaskStatusChangedPayload) Team() domain.TeamID { return p.TeamID }

type TaskActiveStatusChangedPayload struct {
	TaskID       int64         `json:"taskId"`
	TeamID       domain.TeamID `json:"teamId"`
	OldActStatus int           `json:"oldActStatus"`
	NewActStatus int           `json:"newActStatus"`
	UpdatedBy    domain.UserID `json:"updatedBy"`
}

func (p TaskActiveStatusChangedPayload) EventName() string   { return TaskActiveStatusChanged }
func (p TaskActiveStatusChangedPayload) Team() domain.TeamID { return p.TeamID }

type TaskDeletedPayload struct {
	TaskID    int64         `json:"taskId"`
	TeamID    domain.TeamID `json:"teamId"`
	DeletedBy domain.UserID `json:"deletedBy"`
}

func (p TaskDeletedPayload) EventName() string   { return TaskDeleted }
func (p TaskDeletedPayload) Team() domain.TeamID { return p.TeamID }

type CommentCreatedPayload struct {
	CommentID      int64         `json:"commentId"`
	TaskID         int64         `json:"taskId"`
	TeamID         domain.TeamID `json:"teamId"`
	UserID         domain.UserID `json:"userId"`
	UserName       *string       `json:"userName"`
	CommentContent string        `json:"commentContent"`
	CreatedAt      string        `json:"crtdAt"`
}

func (p CommentCreatedPayload) EventName() string   { return CommentCreated }
func (p CommentCreatedPayload) Team() domain.TeamID { return p.TeamID }

type CommentUpdatedPayload struct {
	CommentID      int64         `json:"commentId"`
	TaskID         int64         `json:"taskId"`
	TeamID         domain.TeamID `json:"teamId"`
	CommentContent string        `json:"commentContent"`
	ModifiedAt     string        `json:"mdfdAt"`
	UpdatedBy      domain.UserID `json:"updatedBy"`
}

func (p CommentUpdatedPayload) EventName() string   { return CommentUpdated }
func (p CommentUpdatedPayload) Team() domain.TeamID { return p.TeamID }

type CommentDeletedPayload struct {
	CommentID int64         `json:"commentId"`
	TaskID    int64         `json:"taskId"`
	TeamID    domain.TeamID `json:"teamId"`
	DeletedBy domain.UserID `json:"deletedBy"`
}

func (p CommentDeletedPayload) EventName() string   { return CommentDeleted }
func (p CommentDeletedPayload) Team() domain.TeamID { return p.TeamID }

type MemberRoleChangedPayload struct {
	TeamID       domain.TeamID `json:"teamId"`
	UserID       domain.UserID `json:"userId"`
	DisplayName  string        `json:"displayName"`
	PreviousRole domain.Role   `json:"previousRole"`
	NewRole      domain.Role   `json:"newRole"`
	ChangedBy    domain.UserID `json:"changedBy"`
}

func (p MemberRoleChangedPayload) EventName() string   { return MemberRoleChanged }
func (p MemberRoleChangedPayload) Team() domain.TeamID { return p.TeamID }

type UserJoinedPayload struct {
	TeamID           domain.TeamID `json:"teamId"`
	UserID           domain.UserID `json:"userId"`
	DisplayName      string        `json:"displayName"`
	ConnectionCount  int           `json:"connectionCount"`
	TotalOnlineCount int           `json:"totalOnlineCount"`
}

func (p UserJoinedPayload) EventName() string   { return UserJoined }
func (p UserJoinedPayload) Team() domain.TeamID { return p.TeamID }

type UserLeftPayload struct {
	TeamID           domain.TeamID `json:"teamId"`
	UserID           domain.UserID `json:"userId"`
	DisplayName      string        `json:"displayName"`
	ConnectionCount  int           `json:"connectionCount"`
	TotalOnlineCount int           `json:"totalOnlineCount"`
}

func (p UserLeftPayload) EventName() string   { return UserLeft }
func (p UserLeftPayload) Team() domain.TeamID { return p.TeamID }

type OnlineUser struct {
	UserID          domain.UserID `json:"userId"`
	DisplayName     string        `json:"displayName"`
	ConnectionCount int           `json:"connectionCount"`
}

type OnlineUsersPayload struct {
	TeamID     domain.TeamID `json:"teamId"`
	Users      []OnlineUser  `json:"users"`
	TotalCount int           `json:"totalCount"`
}

func (p OnlineUsersPayload) EventName() string   { return OnlineUsers }
func (p OnlineUsersPayload) Team() domain.TeamID { return p.TeamID }

type JoinedTeamPayload struct {
	TeamID domain.TeamID `json:"teamId"`
	Room   string        `json:"room"`
}

func (p JoinedTeamPayload) EventName() string   { return JoinedTeam }
func (p JoinedTeamPayload) Team() domain.TeamID { return p.TeamID }

type LeftTeamPayload struct {
	TeamID domain.TeamID `json:"teamId"`
	Room   string        `json:"room"`
}

func (p LeftTeamPayload) EventName() string   { return LeftTeam }
func (p LeftTeamPayload) Team() domain.TeamID { return p.TeamID }

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (p ErrorPayload) EventName() string   { return Error }
func (p ErrorPayload) Team() domain.TeamID { return 0 }

// Notification is an outbox entry produced after a successful domain
// mutation, consumed asynchronously by notifier workers. Delivery is
// fire-and-forget: a failed dispatch never rolls back the mutation.
type Notification struct {
	TeamID  domain.TeamID
	Event   string
	Payload any
	At      time.Time
}

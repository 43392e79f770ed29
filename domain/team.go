package domain

import "time"

type TeamID int64

type UserID int64

// ActStatus is the soft activation flag shared by teams and invitations.
// An INACTIVE record never becomes ACTIVE again.
type ActStatus string

const (
	ActStatusActive   ActStatus = "ACTIVE"
	ActStatusInactive ActStatus = "INACTIVE"
)

type Team struct {
	ID        TeamID    `json:"team_id"`
	Name      string    `json:"team_name"`
	ActStatus ActStatus `json:"act_status"`
	CreatedAt time.Time `json:"created_at"`
}

// TeamMember is unique per (TeamID, UserID). Exactly one MASTER exists per
// team, created with the team and never reassigned by role changes.
type TeamMember struct {
	TeamID   TeamID    `json:"team_id"`
	UserID   UserID    `json:"user_id"`
	Role     Role      `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

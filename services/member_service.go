package services

import (
	stderrors "errors"
	"log/slog"
	"time"

	"team-lab/domain"
	"team-lab/domain/event"
	"team-lab/errors"
	"team-lab/notify"
	"team-lab/repositories"
)

// RoleChangeEmitter is the slice of the realtime gateway the member
// service needs after a successful role mutation.
type RoleChangeEmitter interface {
	EmitMemberRoleChanged(teamID domain.TeamID, payload event.MemberRoleChangedPayload)
}

// MemberService owns team creation, membership lookups and the role-change
// command. It also implements the gateway's MembershipVerifier contract.
type MemberService struct {
	log     *slog.Logger
	members repositories.IMembershipRepository
	emitter RoleChangeEmitter
	outbox  *notify.Outbox
	now     func() time.Time
}

func NewMemberService(
	log *slog.Logger,
	members repositories.IMembershipRepository,
	emitter RoleChangeEmitter,
	outbox *notify.Outbox,
) *MemberService {
	return &MemberService{
		log:     log,
		members: members,
		emitter: emitter,
		outbox:  outbox,
		now:     time.Now,
	}
}

// AttachEmitter wires the realtime gateway in after construction. The
// gateway needs this service as its membership verifier, so one of the two
// references has to be set late.
func (s *MemberService) AttachEmitter(emitter RoleChangeEmitter) {
	s.emitter = emitter
}

// CreateTeam seeds a new active team with its single MASTER membership.
// The MASTER role is fixed here and never reassigned by role changes.
func (s *MemberService) CreateTeam(name string, masterID domain.UserID) (domain.Team, error) {
	if masterID == 0 {
		return domain.Team{}, errors.ErrUnauthorized
	}
	if name == "" {
		return domain.Team{}, errors.ErrBadRequest
	}

	teamID, err := s.members.NextTeamID()
	if err != nil {
		return domain.Team{}, err
	}
	now := s.now()
	team := domain.Team{
		ID:        teamID,
		Name:      name,
		ActStatus: domain.ActStatusActive,
		CreatedAt: now,
	}
	if err := s.members.SaveTeam(team); err != nil {
		return domain.Team{}, err
	}
	master := domain.TeamMember{
		TeamID:   teamID,
		UserID:   masterID,
		Role:     domain.RoleMaster,
		JoinedAt: now,
	}
	if err := s.members.SaveMember(master); err != nil {
		return domain.Team{}, err
	}
	s.log.Info("team created", "team_id", teamID, "master_id", masterID)
	return team, nil
}

// VerifyMembership implements contract.MembershipVerifier for the gateway.
func (s *MemberService) VerifyMembership(teamID domain.TeamID, userID domain.UserID) error {
	_, err := s.members.GetMember(teamID, userID)
	if stderrors.Is(err, errors.ErrNotFound) {
		return errors.ErrForbidden
	}
	return err
}

// ChangeRole applies the role hierarchy to a role mutation and broadcasts
// the outcome. MASTER can never be assigned, so the single MASTER per team
// is preserved by construction.
func (s *MemberService) ChangeRole(teamID domain.TeamID, actorID, targetID domain.UserID, newRole domain.Role, displayName string) (domain.TeamMember, error) {
	if actorID == 0 {
		return domain.TeamMember{}, errors.ErrUnauthorized
	}
	if !newRole.Valid() {
		return domain.TeamMember{}, errors.ErrBadRequest
	}

	actor, err := s.members.GetMember(teamID, actorID)
	if stderrors.Is(err, errors.ErrNotFound) {
		return domain.TeamMember{}, errors.ErrForbidden
	}
	if err != nil {
		return domain.TeamMember{}, err
	}
	target, err := s.members.GetMember(teamID, targetID)
	if err != nil {
		return domain.TeamMember{}, err
	}

	if !domain.CanChangeRole(actor.Role, target.Role, newRole) {
		return domain.TeamMember{}, errors.ErrForbidden
	}

	previous := target.Role
	target.Role = newRole
	if err := s.members.SaveMember(target); err != nil {
		return domain.TeamMember{}, err
	}

	payload := event.MemberRoleChangedPayload{
		TeamID:       teamID,
		UserID:       targetID,
		DisplayName:  displayName,
		PreviousRole: previous,
		NewRole:      newRole,
		ChangedBy:    actorID,
	}
	if s.emitter != nil {
		s.emitter.EmitMemberRoleChanged(teamID, payload)
	}
	if s.outbox != nil {
		s.outbox.Publish(event.Notification{
			TeamID:  teamID,
			Event:   event.MemberRoleChanged,
			Payload: payload,
			At:      s.now(),
		})
	}
	s.log.Info("member role changed",
		"team_id", teamID,
		"user_id", targetID,
		"previous_role", previous,
		"new_role", newRole,
		"changed_by", actorID,
	)
	return target, nil
}

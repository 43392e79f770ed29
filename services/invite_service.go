//go:generate go run go.uber.org/mock/mockgen -source=invite_service.go -destination=../mocks/mock_invite_service.go -package=mocks
package services

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"team-lab/auth"
	"team-lab/domain"
	"team-lab/domain/event"
	"team-lab/errors"
	"team-lab/notify"
	"team-lab/repositories"
)

// maxInviteHorizon bounds how far in the future an invite may expire.
// The token signature lifetime (8 days) is deliberately longer; EndAt in
// the store stays the authoritative expiry.
const maxInviteHorizon = 7 * 24 * time.Hour

type ITeamInviteService interface {
	Create(teamID domain.TeamID, requesterID domain.UserID, endAt time.Time, usageMaxCnt int) (InviteLink, error)
	Verify(token string) (InviteDescriptor, error)
	Accept(token string, userID domain.UserID) (JoinResult, error)
	Revoke(teamID domain.TeamID, requesterID domain.UserID) (int, error)
	List(teamID domain.TeamID, requesterID domain.UserID) ([]domain.TeamInvitation, error)
}

type InviteLink struct {
	Link        string
	EndAt       time.Time
	UsageMaxCnt int
}

type InviteDescriptor struct {
	TeamID      domain.TeamID
	TeamName    string
	IssuerID    domain.UserID
	EndAt       time.Time
	UsageMaxCnt int
	UsageCurCnt int
}

type JoinResult struct {
	TeamID   domain.TeamID
	TeamName string
}

type TeamInviteService struct {
	log            *slog.Logger
	invites        repositories.IInvitationRepository
	members        repositories.IMembershipRepository
	signer         auth.Signer
	outbox         *notify.Outbox
	frontendDomain string
	now            func() time.Time
}

func NewTeamInviteService(
	log *slog.Logger,
	invites repositories.IInvitationRepository,
	members repositories.IMembershipRepository,
	signer auth.Signer,
	outbox *notify.Outbox,
	frontendDomain string,
) *TeamInviteService {
	return &TeamInviteService{
		log:            log,
		invites:        invites,
		members:        members,
		signer:         signer,
		outbox:         outbox,
		frontendDomain: frontendDomain,
		now:            time.Now,
	}
}

// requireManagement loads the requester's membership and gates on
// MASTER or MANAGER. Non-members and plain members both get ErrForbidden.
func (s *TeamInviteService) requireManagement(teamID domain.TeamID, requesterID domain.UserID) error {
	if requesterID == 0 {
		return errors.ErrUnauthorized
	}
	member, err := s.members.GetMember(teamID, requesterID)
	if stderrors.Is(err, errors.ErrNotFound) {
		return errors.ErrForbidden
	}
	if err != nil {
		return err
	}
	if !member.Role.IsManagement() {
		return errors.ErrForbidden
	}
	return nil
}

// Create mints a signed invite token and persists the ACTIVE record with a
// zero usage counter. Multiple ACTIVE invites may coexist for one team;
// creation is not serialized against concurrent creations.
func (s *TeamInviteService) Create(teamID domain.TeamID, requesterID domain.UserID, endAt time.Time, usageMaxCnt int) (InviteLink, error) {
	if err := s.requireManagement(teamID, requesterID); err != nil {
		return InviteLink{}, err
	}

	now := s.now()
	if !endAt.After(now) {
		return InviteLink{}, fmt.Errorf("%w: expiry must be in the future", errors.ErrBadRequest)
	}
	if endAt.After(now.Add(maxInviteHorizon)) {
		return InviteLink{}, fmt.Errorf("%w: expiry exceeds the 7 day horizon", errors.ErrBadRequest)
	}
	if usageMaxCnt < 1 {
		return InviteLink{}, fmt.Errorf("%w: usage count must be at least 1", errors.ErrBadRequest)
	}

	token, err := s.signer.SignInvite(teamID, requesterID)
	if err != nil {
		return InviteLink{}, err
	}

	invite := domain.TeamInvitation{
		TeamID:      teamID,
		Token:       token,
		IssuerID:    requesterID,
		UsageMaxCnt: usageMaxCnt,
		UsageCurCnt: 0,
		ActStatus:   domain.ActStatusActive,
		EndAt:       endAt,
		CreatedAt:   now,
	}
	if err := s.invites.SaveInvite(invite); err != nil {
		return InviteLink{}, err
	}

	s.log.Info("invite created",
		"team_id", teamID,
		"issuer_id", requesterID,
		"usage_max_cnt", usageMaxCnt,
		"end_at", endAt,
	)
	return InviteLink{
		Link:        fmt.Sprintf("%s/teams/invitation?token=%s", s.frontendDomain, token),
		EndAt:       endAt,
		UsageMaxCnt: usageMaxCnt,
	}, nil
}

// Verify validates an invite token end to end: signature, stored record,
// team activation, team id cross-check, expiry and usage. It never mutates
// state, so its answer can be stale by the time Accept runs; Accept
// re-checks everything under the redemption lock.
func (s *TeamInviteService) Verify(token string) (InviteDescriptor, error) {
	claims, err := s.signer.VerifyInvite(token)
	if err != nil {
		return InviteDescriptor{}, err
	}

	invite, err := s.invites.GetActiveInvite(domain.TeamID(claims.TeamID), token)
	if err != nil {
		return InviteDescriptor{}, err
	}

	if s.now().After(invite.EndAt) {
		return InviteDescriptor{}, errors.ErrInviteExpired
	}

	team, err := s.members.GetTeam(invite.TeamID)
	if err != nil {
		return InviteDescriptor{}, err
	}
	if team.ActStatus != domain.ActStatusActive {
		return InviteDescriptor{}, errors.ErrNotFound
	}

	// Defense against record substitution: the decoded team id must match
	// the record the token resolved to.
	if domain.TeamID(claims.TeamID) != invite.TeamID {
		return InviteDescriptor{}, errors.ErrInvalidToken
	}

	if invite.Exhausted() {
		return InviteDescriptor{}, errors.ErrInviteExhausted
	}

	return InviteDescriptor{
		TeamID:      invite.TeamID,
		TeamName:    team.Name,
		IssuerID:    invite.IssuerID,
		EndAt:       invite.EndAt,
		UsageMaxCnt: invite.UsageMaxCnt,
		UsageCurCnt: invite.UsageCurCnt,
	}, nil
}

// Accept redeems a token for an authenticated user. The first usageMaxCnt
// concurrent redeemers win; the rest surface ErrInviteExhausted. Anonymous
// callers must complete signup first.
func (s *TeamInviteService) Accept(token string, userID domain.UserID) (JoinResult, error) {
	if userID == 0 {
		return JoinResult{}, errors.ErrUnauthorized
	}

	descriptor, err := s.Verify(token)
	if err != nil {
		return JoinResult{}, err
	}

	if _, err := s.members.GetMember(descriptor.TeamID, userID); err == nil {
		return JoinResult{}, errors.ErrAlreadyMember
	} else if !stderrors.Is(err, errors.ErrNotFound) {
		return JoinResult{}, err
	}

	if _, err := s.invites.RedeemInvite(descriptor.TeamID, token, userID, s.now()); err != nil {
		return JoinResult{}, err
	}

	if s.outbox != nil {
		s.outbox.Publish(event.Notification{
			TeamID: descriptor.TeamID,
			Event:  event.UserJoined,
			Payload: event.UserJoinedPayload{
				TeamID: descriptor.TeamID,
				UserID: userID,
			},
			At: s.now(),
		})
	}
	return JoinResult{TeamID: descriptor.TeamID, TeamName: descriptor.TeamName}, nil
}

// Revoke deactivates every ACTIVE invite of the team. Gated like Create.
func (s *TeamInviteService) Revoke(teamID domain.TeamID, requesterID domain.UserID) (int, error) {
	if err := s.requireManagement(teamID, requesterID); err != nil {
		return 0, err
	}
	revoked, err := s.invites.DeactivateInvites(teamID)
	if err != nil {
		return 0, err
	}
	s.log.Info("invites revoked", "team_id", teamID, "revoked", revoked)
	return revoked, nil
}

func (s *TeamInviteService) List(teamID domain.TeamID, requesterID domain.UserID) ([]domain.TeamInvitation, error) {
	if err := s.requireManagement(teamID, requesterID); err != nil {
		return nil, err
	}
	return s.invites.ListActiveInvites(teamID)
}

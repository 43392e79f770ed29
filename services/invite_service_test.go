// External test package: the mocks package imports services for the
// service interface types, so an internal test would form an import cycle.
package services_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"team-lab/auth"
	"team-lab/domain"
	"team-lab/errors"
	"team-lab/mocks"
	"team-lab/notify"
	"team-lab/services"
)

func newInviteService(t *testing.T) (*services.TeamInviteService, *mocks.MockIInvitationRepository, *mocks.MockIMembershipRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	invites := mocks.NewMockIInvitationRepository(ctrl)
	members := mocks.NewMockIMembershipRepository(ctrl)
	svc := services.NewTeamInviteService(
		slog.Default(),
		invites,
		members,
		auth.NewSigner("test-secret"),
		notify.NewOutbox(slog.Default(), 8),
		"https://teams.example.com",
	)
	return svc, invites, members
}

func managementMember(teamID domain.TeamID, userID domain.UserID, role domain.Role) domain.TeamMember {
	return domain.TeamMember{TeamID: teamID, UserID: userID, Role: role, JoinedAt: time.Now().UTC()}
}

func TestInviteService_Create(t *testing.T) {
	teamID := domain.TeamID(7)
	manager := domain.UserID(42)

	t.Run("should mint a deep link for a manager", func(t *testing.T) {
		req := require.New(t)
		svc, invites, members := newInviteService(t)
		endAt := time.Now().Add(48 * time.Hour)

		members.EXPECT().
			GetMember(teamID, manager).
			Return(managementMember(teamID, manager, domain.RoleManager), nil).
			Times(1)
		invites.EXPECT().
			SaveInvite(gomock.Any()).
			DoAndReturn(func(invite domain.TeamInvitation) error {
				req.Equal(teamID, invite.TeamID)
				req.Equal(manager, invite.IssuerID)
				req.Equal(10, invite.UsageMaxCnt)
				req.Equal(0, invite.UsageCurCnt)
				req.Equal(domain.ActStatusActive, invite.ActStatus)
				return nil
			}).
			Times(1)

		link, err := svc.Create(teamID, manager, endAt, 10)

		req.NoError(err)
		req.Contains(link.Link, "https://teams.example.com/teams/invitation?token=")
		req.Equal(10, link.UsageMaxCnt)
	})

	t.Run("should mint distinct tokens back to back", func(t *testing.T) {
		req := require.New(t)
		svc, invites, members := newInviteService(t)
		endAt := time.Now().Add(48 * time.Hour)

		members.EXPECT().
			GetMember(teamID, manager).
			Return(managementMember(teamID, manager, domain.RoleManager), nil).
			Times(2)
		var tokens []string
		invites.EXPECT().
			SaveInvite(gomock.Any()).
			DoAndReturn(func(invite domain.TeamInvitation) error {
				tokens = append(tokens, invite.Token)
				return nil
			}).
			Times(2)

		// Two mints in the same second must not share a store key, or the
		// second would overwrite the first record and reset its counter.
		first, err := svc.Create(teamID, manager, endAt, 1)
		req.NoError(err)
		second, err := svc.Create(teamID, manager, endAt, 1)
		req.NoError(err)

		req.Len(tokens, 2)
		req.NotEqual(tokens[0], tokens[1])
		req.NotEqual(first.Link, second.Link)
	})

	t.Run("should refuse anonymous requester", func(t *testing.T) {
		req := require.New(t)
		svc, _, _ := newInviteService(t)

		_, err := svc.Create(teamID, 0, time.Now().Add(time.Hour), 10)

		req.ErrorIs(err, errors.ErrUnauthorized)
	})

	t.Run("should refuse plain member", func(t *testing.T) {
		req := require.New(t)
		svc, _, members := newInviteService(t)

		members.EXPECT().
			GetMember(teamID, manager).
			Return(managementMember(teamID, manager, domain.RoleMember), nil).
			Times(1)

		_, err := svc.Create(teamID, manager, time.Now().Add(time.Hour), 10)

		req.ErrorIs(err, errors.ErrForbidden)
	})

	t.Run("should refuse non-member", func(t *testing.T) {
		req := require.New(t)
		svc, _, members := newInviteService(t)

		members.EXPECT().
			GetMember(teamID, manager).
			Return(domain.TeamMember{}, errors.ErrNotFound).
			Times(1)

		_, err := svc.Create(teamID, manager, time.Now().Add(time.Hour), 10)

		req.ErrorIs(err, errors.ErrForbidden)
	})

	t.Run("should bound the expiry window", func(t *testing.T) {
		req := require.New(t)
		svc, _, members := newInviteService(t)

		members.EXPECT().
			GetMember(teamID, manager).
			Return(managementMember(teamID, manager, domain.RoleMaster), nil).
			Times(3)

		_, err := svc.Create(teamID, manager, time.Now().Add(-time.Hour), 10)
		req.ErrorIs(err, errors.ErrBadRequest)

		_, err = svc.Create(teamID, manager, time.Now().Add(8*24*time.Hour), 10)
		req.ErrorIs(err, errors.ErrBadRequest)

		_, err = svc.Create(teamID, manager, time.Now().Add(time.Hour), 0)
		req.ErrorIs(err, errors.ErrBadRequest)
	})
}

func TestInviteService_Verify(t *testing.T) {
	teamID := domain.TeamID(7)
	issuer := domain.UserID(42)
	signer := auth.NewSigner("test-secret")

	validInvite := func(token string, endAt time.Time) domain.TeamInvitation {
		return domain.TeamInvitation{
			TeamID:      teamID,
			Token:       token,
			IssuerID:    issuer,
			UsageMaxCnt: 10,
			UsageCurCnt: 3,
			ActStatus:   domain.ActStatusActive,
			EndAt:       endAt,
		}
	}

	t.Run("should describe a valid invite", func(t *testing.T) {
		req := require.New(t)
		svc, invites, members := newInviteService(t)
		token, err := signer.SignInvite(teamID, issuer)
		req.NoError(err)

		invites.EXPECT().
			GetActiveInvite(teamID, token).
			Return(validInvite(token, time.Now().Add(time.Hour)), nil).
			Times(1)
		members.EXPECT().
			GetTeam(teamID).
			Return(domain.Team{ID: teamID, Name: "platform", ActStatus: domain.ActStatusActive}, nil).
			Times(1)

		descriptor, err := svc.Verify(token)

		req.NoError(err)
		req.Equal(teamID, descriptor.TeamID)
		req.Equal("platform", descriptor.TeamName)
		req.Equal(10, descriptor.UsageMaxCnt)
		req.Equal(3, descriptor.UsageCurCnt)
	})

	t.Run("should reject garbage token before any lookup", func(t *testing.T) {
		req := require.New(t)
		svc, _, _ := newInviteService(t)

		_, err := svc.Verify("not-a-jwt")

		req.ErrorIs(err, errors.ErrInvalidToken)
	})

	t.Run("should reject expired record even with a valid signature", func(t *testing.T) {
		req := require.New(t)
		svc, invites, _ := newInviteService(t)
		token, err := signer.SignInvite(teamID, issuer)
		req.NoError(err)

		invites.EXPECT().
			GetActiveInvite(teamID, token).
			Return(validInvite(token, time.Now().Add(-time.Minute)), nil).
			Times(1)

		_, err = svc.Verify(token)

		req.ErrorIs(err, errors.ErrInviteExpired)
	})

	t.Run("should hide invites of a deactivated team", func(t *testing.T) {
		req := require.New(t)
		svc, invites, members := newInviteService(t)
		token, err := signer.SignInvite(teamID, issuer)
		req.NoError(err)

		invites.EXPECT().
			GetActiveInvite(teamID, token).
			Return(validInvite(token, time.Now().Add(time.Hour)), nil).
			Times(1)
		members.EXPECT().
			GetTeam(teamID).
			Return(domain.Team{ID: teamID, ActStatus: domain.ActStatusInactive}, nil).
			Times(1)

		_, err = svc.Verify(token)

		req.ErrorIs(err, errors.ErrNotFound)
	})

	t.Run("should report exhausted usage", func(t *testing.T) {
		req := require.New(t)
		svc, invites, members := newInviteService(t)
		token, err := signer.SignInvite(teamID, issuer)
		req.NoError(err)

		invite := validInvite(token, time.Now().Add(time.Hour))
		invite.UsageCurCnt = invite.UsageMaxCnt
		invites.EXPECT().GetActiveInvite(teamID, token).Return(invite, nil).Times(1)
		members.EXPECT().
			GetTeam(teamID).
			Return(domain.Team{ID: teamID, Name: "platform", ActStatus: domain.ActStatusActive}, nil).
			Times(1)

		_, err = svc.Verify(token)

		req.ErrorIs(err, errors.ErrInviteExhausted)
	})
}

func TestInviteService_Accept(t *testing.T) {
	teamID := domain.TeamID(7)
	issuer := domain.UserID(42)
	joiner := domain.UserID(77)
	signer := auth.NewSigner("test-secret")

	t.Run("should join the team and report its name", func(t *testing.T) {
		req := require.New(t)
		svc, invites, members := newInviteService(t)
		token, err := signer.SignInvite(teamID, issuer)
		req.NoError(err)

		invite := domain.TeamInvitation{
			TeamID:      teamID,
			Token:       token,
			IssuerID:    issuer,
			UsageMaxCnt: 10,
			ActStatus:   domain.ActStatusActive,
			EndAt:       time.Now().Add(time.Hour),
		}
		invites.EXPECT().GetActiveInvite(teamID, token).Return(invite, nil).Times(1)
		members.EXPECT().
			GetTeam(teamID).
			Return(domain.Team{ID: teamID, Name: "platform", ActStatus: domain.ActStatusActive}, nil).
			Times(1)
		members.EXPECT().
			GetMember(teamID, joiner).
			Return(domain.TeamMember{}, errors.ErrNotFound).
			Times(1)
		invites.EXPECT().
			RedeemInvite(teamID, token, joiner, gomock.Any()).
			Return(invite, nil).
			Times(1)

		result, err := svc.Accept(token, joiner)

		req.NoError(err)
		req.Equal(teamID, result.TeamID)
		req.Equal("platform", result.TeamName)
	})

	t.Run("should send anonymous users to signup", func(t *testing.T) {
		req := require.New(t)
		svc, _, _ := newInviteService(t)

		_, err := svc.Accept("whatever", 0)

		req.ErrorIs(err, errors.ErrUnauthorized)
	})

	t.Run("should short-circuit when already a member", func(t *testing.T) {
		req := require.New(t)
		svc, invites, members := newInviteService(t)
		token, err := signer.SignInvite(teamID, issuer)
		req.NoError(err)

		invite := domain.TeamInvitation{
			TeamID:      teamID,
			Token:       token,
			UsageMaxCnt: 10,
			ActStatus:   domain.ActStatusActive,
			EndAt:       time.Now().Add(time.Hour),
		}
		invites.EXPECT().GetActiveInvite(teamID, token).Return(invite, nil).Times(1)
		members.EXPECT().
			GetTeam(teamID).
			Return(domain.Team{ID: teamID, ActStatus: domain.ActStatusActive}, nil).
			Times(1)
		members.EXPECT().
			GetMember(teamID, joiner).
			Return(managementMember(teamID, joiner, domain.RoleMember), nil).
			Times(1)
		// Redemption is never reached.
		invites.EXPECT().RedeemInvite(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err = svc.Accept(token, joiner)

		req.ErrorIs(err, errors.ErrAlreadyMember)
	})
}

func TestInviteService_Revoke_And_List(t *testing.T) {
	teamID := domain.TeamID(7)
	master := domain.UserID(42)

	t.Run("should revoke all active invites for management", func(t *testing.T) {
		req := require.New(t)
		svc, invites, members := newInviteService(t)

		members.EXPECT().
			GetMember(teamID, master).
			Return(managementMember(teamID, master, domain.RoleMaster), nil).
			Times(1)
		invites.EXPECT().DeactivateInvites(teamID).Return(3, nil).Times(1)

		revoked, err := svc.Revoke(teamID, master)

		req.NoError(err)
		req.Equal(3, revoked)
	})

	t.Run("should gate listing on management role", func(t *testing.T) {
		req := require.New(t)
		svc, _, members := newInviteService(t)

		members.EXPECT().
			GetMember(teamID, master).
			Return(managementMember(teamID, master, domain.RoleMember), nil).
			Times(1)

		_, err := svc.List(teamID, master)

		req.ErrorIs(err, errors.ErrForbidden)
	})
}

// External test package: the mocks package imports services for the
// service interface types, so an internal test would form an import cycle.
package services_test

import (
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"team-lab/domain"
	"team-lab/domain/event"
	"team-lab/errors"
	"team-lab/mocks"
	"team-lab/notify"
	"team-lab/services"
)

type recordingEmitter struct {
	mu       sync.Mutex
	payloads []event.MemberRoleChangedPayload
}

func (r *recordingEmitter) EmitMemberRoleChanged(_ domain.TeamID, payload event.MemberRoleChangedPayload) {
	r.mu.Lock()
	r.payloads = append(r.payloads, payload)
	r.mu.Unlock()
}

func newMemberService(t *testing.T) (*services.MemberService, *mocks.MockIMembershipRepository, *recordingEmitter, *notify.Outbox) {
	t.Helper()
	ctrl := gomock.NewController(t)
	members := mocks.NewMockIMembershipRepository(ctrl)
	emitter := &recordingEmitter{}
	outbox := notify.NewOutbox(slog.Default(), 8)
	svc := services.NewMemberService(slog.Default(), members, emitter, outbox)
	return svc, members, emitter, outbox
}

func TestMemberService_CreateTeam(t *testing.T) {
	t.Run("should seed the team with a single master", func(t *testing.T) {
		req := require.New(t)
		svc, members, _, _ := newMemberService(t)

		members.EXPECT().NextTeamID().Return(domain.TeamID(7), nil).Times(1)
		members.EXPECT().
			SaveTeam(gomock.Any()).
			DoAndReturn(func(team domain.Team) error {
				req.Equal(domain.TeamID(7), team.ID)
				req.Equal("platform", team.Name)
				req.Equal(domain.ActStatusActive, team.ActStatus)
				return nil
			}).
			Times(1)
		members.EXPECT().
			SaveMember(gomock.Any()).
			DoAndReturn(func(member domain.TeamMember) error {
				req.Equal(domain.TeamID(7), member.TeamID)
				req.Equal(domain.UserID(42), member.UserID)
				req.Equal(domain.RoleMaster, member.Role)
				return nil
			}).
			Times(1)

		team, err := svc.CreateTeam("platform", 42)

		req.NoError(err)
		req.Equal(domain.TeamID(7), team.ID)
	})

	t.Run("should refuse anonymous creator", func(t *testing.T) {
		req := require.New(t)
		svc, _, _, _ := newMemberService(t)

		_, err := svc.CreateTeam("platform", 0)

		req.ErrorIs(err, errors.ErrUnauthorized)
	})

	t.Run("should refuse empty name", func(t *testing.T) {
		req := require.New(t)
		svc, _, _, _ := newMemberService(t)

		_, err := svc.CreateTeam("", 42)

		req.ErrorIs(err, errors.ErrBadRequest)
	})
}

func TestMemberService_VerifyMembership(t *testing.T) {
	req := require.New(t)
	svc, members, _, _ := newMemberService(t)
	teamID := domain.TeamID(7)

	members.EXPECT().
		GetMember(teamID, domain.UserID(42)).
		Return(domain.TeamMember{TeamID: teamID, UserID: 42, Role: domain.RoleMember}, nil).
		Times(1)
	req.NoError(svc.VerifyMembership(teamID, 42))

	// Non-members are forbidden, not "not found": the team's existence is
	// not leaked to outsiders.
	members.EXPECT().
		GetMember(teamID, domain.UserID(99)).
		Return(domain.TeamMember{}, errors.ErrNotFound).
		Times(1)
	req.ErrorIs(svc.VerifyMembership(teamID, 99), errors.ErrForbidden)
}

func TestMemberService_ChangeRole(t *testing.T) {
	teamID := domain.TeamID(7)
	master := domain.UserID(1)
	manager := domain.UserID(2)
	member := domain.UserID(3)

	stored := func(userID domain.UserID, role domain.Role) domain.TeamMember {
		return domain.TeamMember{TeamID: teamID, UserID: userID, Role: role, JoinedAt: time.Now().UTC()}
	}

	t.Run("should promote and broadcast the change", func(t *testing.T) {
		req := require.New(t)
		svc, members, emitter, outbox := newMemberService(t)

		members.EXPECT().GetMember(teamID, master).Return(stored(master, domain.RoleMaster), nil).Times(1)
		members.EXPECT().GetMember(teamID, member).Return(stored(member, domain.RoleMember), nil).Times(1)
		members.EXPECT().
			SaveMember(gomock.Any()).
			DoAndReturn(func(m domain.TeamMember) error {
				req.Equal(domain.RoleManager, m.Role)
				return nil
			}).
			Times(1)

		updated, err := svc.ChangeRole(teamID, master, member, domain.RoleManager, "Charlie")

		req.NoError(err)
		req.Equal(domain.RoleManager, updated.Role)

		req.Len(emitter.payloads, 1)
		req.Equal(domain.RoleMember, emitter.payloads[0].PreviousRole)
		req.Equal(domain.RoleManager, emitter.payloads[0].NewRole)
		req.Equal(master, emitter.payloads[0].ChangedBy)

		select {
		case n := <-outbox.Events():
			req.Equal(event.MemberRoleChanged, n.Event)
			req.Equal(teamID, n.TeamID)
		default:
			req.FailNow("expected an outbox notification")
		}
	})

	t.Run("should forbid manager demoting a peer", func(t *testing.T) {
		req := require.New(t)
		svc, members, emitter, _ := newMemberService(t)

		members.EXPECT().GetMember(teamID, manager).Return(stored(manager, domain.RoleManager), nil).Times(1)
		members.EXPECT().GetMember(teamID, member).Return(stored(member, domain.RoleManager), nil).Times(1)
		members.EXPECT().SaveMember(gomock.Any()).Times(0)

		_, err := svc.ChangeRole(teamID, manager, member, domain.RoleMember, "Charlie")

		req.ErrorIs(err, errors.ErrForbidden)
		req.Empty(emitter.payloads)
	})

	t.Run("should never assign master", func(t *testing.T) {
		req := require.New(t)
		svc, members, _, _ := newMemberService(t)

		members.EXPECT().GetMember(teamID, master).Return(stored(master, domain.RoleMaster), nil).Times(1)
		members.EXPECT().GetMember(teamID, member).Return(stored(member, domain.RoleMember), nil).Times(1)

		_, err := svc.ChangeRole(teamID, master, member, domain.RoleMaster, "Charlie")

		req.ErrorIs(err, errors.ErrForbidden)
	})

	t.Run("should treat non-member actor as forbidden", func(t *testing.T) {
		req := require.New(t)
		svc, members, _, _ := newMemberService(t)

		members.EXPECT().
			GetMember(teamID, domain.UserID(99)).
			Return(domain.TeamMember{}, errors.ErrNotFound).
			Times(1)

		_, err := svc.ChangeRole(teamID, 99, member, domain.RoleManager, "Charlie")

		req.ErrorIs(err, errors.ErrForbidden)
	})

	t.Run("should reject unknown role", func(t *testing.T) {
		req := require.New(t)
		svc, _, _, _ := newMemberService(t)

		_, err := svc.ChangeRole(teamID, master, member, domain.Role("ADMIN"), "Charlie")

		req.ErrorIs(err, errors.ErrBadRequest)
	})
}

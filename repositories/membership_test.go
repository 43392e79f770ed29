package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"team-lab/domain"
	"team-lab/errors"
)

func Test_Team_Ids_Are_Monotonic_And_Start_At_One(t *testing.T) {
	req := require.New(t)
	repository := mustMembershipRepository(t, openTestDB(t))

	first, err := repository.NextTeamID()
	req.NoError(err)
	req.Equal(domain.TeamID(1), first)

	second, err := repository.NextTeamID()
	req.NoError(err)
	req.Greater(second, first)
}

func Test_Save_And_Get_Team(t *testing.T) {
	req := require.New(t)
	repository := mustMembershipRepository(t, openTestDB(t))

	team := domain.Team{
		ID:        1,
		Name:      "platform",
		ActStatus: domain.ActStatusActive,
		CreatedAt: time.Now().UTC(),
	}
	req.NoError(repository.SaveTeam(team))

	fetched, err := repository.GetTeam(1)
	req.NoError(err)
	req.Equal(team.Name, fetched.Name)
	req.Equal(domain.ActStatusActive, fetched.ActStatus)

	_, err = repository.GetTeam(99)
	req.ErrorIs(err, errors.ErrNotFound)
}

func Test_Save_And_List_Members(t *testing.T) {
	req := require.New(t)
	repository := mustMembershipRepository(t, openTestDB(t))
	now := time.Now().UTC()

	members := []domain.TeamMember{
		{TeamID: 1, UserID: 10, Role: domain.RoleMaster, JoinedAt: now},
		{TeamID: 1, UserID: 11, Role: domain.RoleMember, JoinedAt: now},
		{TeamID: 2, UserID: 10, Role: domain.RoleMaster, JoinedAt: now},
	}
	for _, member := range members {
		req.NoError(repository.SaveMember(member))
	}

	fetched, err := repository.GetMember(1, 11)
	req.NoError(err)
	req.Equal(domain.RoleMember, fetched.Role)

	_, err = repository.GetMember(1, 99)
	req.ErrorIs(err, errors.ErrNotFound)

	listed, err := repository.ListMembers(1)
	req.NoError(err)
	req.Len(listed, 2)
}

func Test_SaveMember_Overwrites_Role(t *testing.T) {
	req := require.New(t)
	repository := mustMembershipRepository(t, openTestDB(t))
	now := time.Now().UTC()

	member := domain.TeamMember{TeamID: 1, UserID: 10, Role: domain.RoleMember, JoinedAt: now}
	req.NoError(repository.SaveMember(member))

	member.Role = domain.RoleManager
	req.NoError(repository.SaveMember(member))

	fetched, err := repository.GetMember(1, 10)
	req.NoError(err)
	req.Equal(domain.RoleManager, fetched.Role)

	listed, err := repository.ListMembers(1)
	req.NoError(err)
	req.Len(listed, 1)
}

package repositories

import (
	"fmt"

	"team-lab/domain"
)

// Key layout in BadgerDB. Prefix scans stay team-scoped:
//
//	team:{team_id}             -> Team
//	mbr:{team_id}:{user_id}    -> TeamMember
//	inv:{team_id}:{token}      -> TeamInvitation
//
// The raw signed token is part of the invite key so a redemption resolves
// the exact record it locks without a scan.
func teamKey(teamID domain.TeamID) []byte {
	return []byte(fmt.Sprintf("team:%d", teamID))
}

func memberKey(teamID domain.TeamID, userID domain.UserID) []byte {
	return []byte(fmt.Sprintf("mbr:%d:%d", teamID, userID))
}

func memberPrefix(teamID domain.TeamID) []byte {
	return []byte(fmt.Sprintf("mbr:%d:", teamID))
}

func inviteKey(teamID domain.TeamID, token string) []byte {
	return []byte(fmt.Sprintf("inv:%d:%s", teamID, token))
}

func invitePrefix(teamID domain.TeamID) []byte {
	return []byte(fmt.Sprintf("inv:%d:", teamID))
}

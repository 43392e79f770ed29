package domain

// Role is a team-scoped permission level.
// Higher ranked roles manage lower ranked ones.
type Role string

const (
	RoleMaster  Role = "MASTER"
	RoleManager Role = "MANAGER"
	RoleMember  Role = "MEMBER"
)

var roleRanks = map[Role]int{
	RoleMaster:  3,
	RoleManager: 2,
	RoleMember:  1,
}

func (r Role) Valid() bool {
	_, ok := roleRanks[r]
	return ok
}

func (r Role) Rank() int {
	return roleRanks[r]
}

// IsManagement reports whether the role may issue, list or revoke
// team invitations.
func (r Role) IsManagement() bool {
	return r == RoleMaster || r == RoleManager
}

// CanManage reports whether an actor outranks the target's current role.
// Peers cannot manage each other.
func CanManage(actor, targetCurrent Role) bool {
	return actor.Rank() > targetCurrent.Rank()
}

// CanAssign reports whether an actor may hand out newRole.
// MASTER is never assignable: each team keeps exactly one, fixed at creation.
// MASTER assigns MANAGER or MEMBER; MANAGER only promotes to MANAGER.
func CanAssign(actor, newRole Role) bool {
	if newRole == RoleMaster {
		return false
	}
	switch actor {
	case RoleMaster:
		return true
	case RoleManager:
		return newRole == RoleManager
	default:
		return false
	}
}

// CanChangeRole combines both checks: the actor must outrank the target
// and be allowed to assign the requested role.
func CanChangeRole(actor, targetCurrent, newRole Role) bool {
	return CanManage(actor, targetCurrent) && CanAssign(actor, newRole)
}

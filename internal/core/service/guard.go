package service

import "github.com/fortress/user-system/internal/core/domain"

// The principal guard is the second, stricter gate on mutations touching the
// protected root account. It runs after the policy allows an operation and
// before anything is persisted. Policy denials answer "may this role do
// this?"; guard failures answer "this specific record forbids it regardless
// of role", and the two surface as distinct errors.

// GuardCreate rejects any attempt to mint a new principal. The principal role
// exists only through bootstrap seeding.
func GuardCreate(role domain.Role) error {
	if role == domain.RolePrincipal {
		return domain.ErrPrincipalProtected
	}
	return nil
}

// GuardUpdate enforces the principal invariants on an update of target to
// newRole by actorID:
//   - nothing may strip the principal role from the principal record;
//   - nothing may grant the principal role to any other record;
//   - only the principal may touch the principal's own record. The single
//     principal invariant makes any other actor a different account, so the
//     actor==target check is the whole rule.
func GuardUpdate(actorID int, target *domain.User, newRole domain.Role) error {
	if target.IsPrincipal() {
		if actorID != target.ID {
			return domain.ErrPrincipalProtected
		}
		if newRole != domain.RolePrincipal {
			return domain.ErrPrincipalProtected
		}
		return nil
	}
	if newRole == domain.RolePrincipal {
		return domain.ErrPrincipalProtected
	}
	return nil
}

// GuardDelete rejects deletion of the principal record for every actor,
// including the principal itself.
func GuardDelete(target *domain.User) error {
	if target.IsPrincipal() {
		return domain.ErrPrincipalProtected
	}
	return nil
}

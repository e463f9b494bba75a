package service

import "github.com/fortress/user-system/internal/core/domain"

// Operation enumerates the account operations subject to role checks.
type Operation string

const (
	OpViewAll     Operation = "view_all"
	OpViewOne     Operation = "view_one"
	OpCreate      Operation = "create"
	OpUpdateBasic Operation = "update_basic_fields"
	OpUpdateEmail Operation = "update_email"
	OpUpdateRole  Operation = "update_role"
	OpDelete      Operation = "delete"
)

// Decision is the transient outcome of a policy check.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision        { return Decision{Allowed: true} }
func deny(r string) Decision { return Decision{Allowed: false, Reason: r} }

// Decide is the pure role×operation permission table. Self-service tie-break:
// basic-field updates on the actor's own record are always allowed, but email
// and role changes stay principal-only even on self.
//
//	operation            principal   worker       user
//	view all / view one  allow       allow        allow
//	create               allow       deny         deny
//	update basic fields  allow       allow        self only
//	update email / role  allow       deny         deny
//	delete               allow       deny         deny
func Decide(actorRole domain.Role, actorID, targetID int, op Operation) Decision {
	switch op {
	case OpViewAll, OpViewOne:
		return allow()

	case OpCreate:
		if actorRole == domain.RolePrincipal {
			return allow()
		}
		return deny("only the principal may create accounts")

	case OpUpdateBasic:
		if actorID == targetID {
			return allow()
		}
		switch actorRole {
		case domain.RolePrincipal, domain.RoleWorker:
			return allow()
		case domain.RoleUser:
			return deny("users may only update their own record")
		}

	case OpUpdateEmail:
		if actorRole == domain.RolePrincipal {
			return allow()
		}
		return deny("only the principal may change emails")

	case OpUpdateRole:
		if actorRole == domain.RolePrincipal {
			return allow()
		}
		return deny("only the principal may change roles")

	case OpDelete:
		if actorRole == domain.RolePrincipal {
			return allow()
		}
		return deny("only the principal may delete accounts")
	}

	return deny("unknown role or operation")
}

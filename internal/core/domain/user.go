package domain

import "errors"

// Role represents an authorization tier in the system.
type Role string

const (
	// RolePrincipal is the single protected root account. Assigned once at
	// bootstrap, never granted or revoked at runtime.
	RolePrincipal Role = "principal"

	// RoleWorker is the mid-tier role: full read access plus basic-field
	// updates on any account.
	RoleWorker Role = "worker"

	// RoleUser is the lowest tier: read access plus basic-field updates on
	// the account's own record only.
	RoleUser Role = "user"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePrincipal, RoleWorker, RoleUser:
		return true
	}
	return false
}

// Gender is a demographic attribute carried on every account.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrTokenInvalid = errors.New("token invalid")
var ErrTokenExpired = errors.New("token expired")
var ErrUserNotFound = errors.New("user not found")
var ErrDuplicateEmail = errors.New("email already exists")
var ErrPolicyDenied = errors.New("operation not permitted for role")
var ErrPrincipalProtected = errors.New("principal account is protected")

// User is the core aggregate: an account identified by a unique integer id
// and a unique email address. PasswordHash is never serialised.
type User struct {
	ID           int    `json:"user_id"`
	Name         string `json:"name"`
	Age          int    `json:"age"`
	Gender       Gender `json:"gender"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
}

// IsPrincipal reports whether the account holds the protected root role.
func (u *User) IsPrincipal() bool {
	return u.Role == RolePrincipal
}

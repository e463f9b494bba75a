package ports

import (
	"context"

	"github.com/fortress/user-system/internal/core/domain"
)

// Actor identifies the authenticated caller of a user-management operation.
type Actor struct {
	ID   int
	Role domain.Role
}

// CreateUserInput carries all data needed to create an account.
type CreateUserInput struct {
	Name     string
	Age      int
	Gender   domain.Gender
	Email    string
	Password string
	Role     domain.Role
}

// UpdateUserInput carries an account update. Nil fields are untouched; for a
// full update the handler layer guarantees every field is set.
type UpdateUserInput struct {
	Name     *string
	Age      *int
	Gender   *domain.Gender
	Email    *string
	Password *string
	Role     *domain.Role
}

// ListUsersInput carries optional pagination: Length caps the page size and
// Offset is the 1-based index of the first record.
type ListUsersInput struct {
	Length *int
	Offset *int
}

// UserService exposes the account-management operations, each gated by the
// authorization policy and the principal guard.
type UserService interface {
	List(ctx context.Context, actor Actor, input ListUsersInput) ([]*domain.User, error)
	Get(ctx context.Context, actor Actor, id int) (*domain.User, error)
	Create(ctx context.Context, actor Actor, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, actor Actor, targetID int, input UpdateUserInput, partial bool) (*domain.User, error)
	Delete(ctx context.Context, actor Actor, targetID int) error
}

package ports

import (
	"context"

	"github.com/fortress/user-system/internal/core/domain"
)

// UserRepository defines the persistence contract for accounts. All operations
// are whole-record; partial update semantics are resolved by the service layer
// before Update is called. All returns accounts in stable persisted order.
type UserRepository interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	All(ctx context.Context) ([]*domain.User, error)
	// Insert assigns a new id and fails with domain.ErrDuplicateEmail when the
	// email is already taken.
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int) error
}

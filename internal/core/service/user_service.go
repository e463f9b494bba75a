package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/fortress/user-system/internal/core/domain"
	"github.com/fortress/user-system/internal/core/ports"
)

// UserService orchestrates account management: every mutation passes the
// authorization policy, then the principal guard, then the repository.
//
// Mutations are serialized under a single mutex so that "read current state,
// validate, write" is atomic; otherwise two concurrent creates with the same
// email (or a delete racing a role check) could both validate before either
// writes. Reads go straight to the repository.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	logger zerolog.Logger

	mu sync.Mutex
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, logger: logger}
}

// List returns accounts in stable persisted order, with optional pagination:
// Offset is the 1-based index of the first record, Length caps the page size.
func (s *UserService) List(ctx context.Context, actor ports.Actor, input ports.ListUsersInput) ([]*domain.User, error) {
	if d := Decide(actor.Role, actor.ID, 0, OpViewAll); !d.Allowed {
		return nil, domain.ErrPolicyDenied
	}

	users, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	start := 0
	if input.Offset != nil && *input.Offset > 0 {
		start = *input.Offset - 1
	}
	if start >= len(users) {
		return []*domain.User{}, nil
	}

	end := len(users)
	if input.Length != nil && *input.Length >= 0 && start+*input.Length < end {
		end = start + *input.Length
	}
	return users[start:end], nil
}

// Get returns a single account by id.
func (s *UserService) Get(ctx context.Context, actor ports.Actor, id int) (*domain.User, error) {
	if d := Decide(actor.Role, actor.ID, id, OpViewOne); !d.Allowed {
		return nil, domain.ErrPolicyDenied
	}
	return s.repo.FindByID(ctx, id)
}

// Create adds a new account. Requesting the principal role fails
// unconditionally, before any policy check: the principal exists only through
// bootstrap seeding. The plaintext secret is hashed before it reaches the
// repository.
func (s *UserService) Create(ctx context.Context, actor ports.Actor, input ports.CreateUserInput) (*domain.User, error) {
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}

	if err := GuardCreate(role); err != nil {
		return nil, err
	}
	if d := Decide(actor.Role, actor.ID, 0, OpCreate); !d.Allowed {
		return nil, domain.ErrPolicyDenied
	}

	digest, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created, err := s.repo.Insert(ctx, &domain.User{
		Name:         input.Name,
		Age:          input.Age,
		Gender:       input.Gender,
		Email:        input.Email,
		PasswordHash: digest,
		Role:         role,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int("user_id", created.ID).Str("role", string(created.Role)).Msg("user created")
	return created, nil
}

// Update applies a full or partial update to the target account. Changed
// fields are grouped into categories (email, role, basic) and the policy must
// allow every affected category; then the principal guard runs; then the
// whole record is persisted. A changed secret is re-hashed first.
func (s *UserService) Update(ctx context.Context, actor ports.Actor, targetID int, input ports.UpdateUserInput, partial bool) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	emailChanged := input.Email != nil && *input.Email != target.Email
	roleChanged := input.Role != nil && *input.Role != target.Role
	basicTouched := input.Name != nil || input.Age != nil || input.Gender != nil || input.Password != nil

	if basicTouched {
		if d := Decide(actor.Role, actor.ID, targetID, OpUpdateBasic); !d.Allowed {
			return nil, domain.ErrPolicyDenied
		}
	}
	if emailChanged {
		if d := Decide(actor.Role, actor.ID, targetID, OpUpdateEmail); !d.Allowed {
			return nil, domain.ErrPolicyDenied
		}
	}
	if roleChanged {
		if d := Decide(actor.Role, actor.ID, targetID, OpUpdateRole); !d.Allowed {
			return nil, domain.ErrPolicyDenied
		}
	}

	newRole := target.Role
	if input.Role != nil {
		newRole = *input.Role
	}
	if err := GuardUpdate(actor.ID, target, newRole); err != nil {
		return nil, err
	}

	if emailChanged {
		if _, err := s.repo.FindByEmail(ctx, *input.Email); err == nil {
			return nil, domain.ErrDuplicateEmail
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
	}

	updated := *target
	if input.Name != nil {
		updated.Name = *input.Name
	}
	if input.Age != nil {
		updated.Age = *input.Age
	}
	if input.Gender != nil {
		updated.Gender = *input.Gender
	}
	if input.Email != nil {
		updated.Email = *input.Email
	}
	if input.Password != nil {
		digest, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		updated.PasswordHash = digest
	}
	updated.Role = newRole

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}

	s.logger.Info().Int("user_id", targetID).Bool("partial", partial).Msg("user updated")
	return &updated, nil
}

// Delete removes the target account. The principal record is untouchable for
// every actor, including the principal itself, so the guard runs before the
// role check here.
func (s *UserService) Delete(ctx context.Context, actor ports.Actor, targetID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return err
	}
	if err := GuardDelete(target); err != nil {
		return err
	}
	if d := Decide(actor.Role, actor.ID, targetID, OpDelete); !d.Allowed {
		return domain.ErrPolicyDenied
	}

	if err := s.repo.Delete(ctx, targetID); err != nil {
		return err
	}

	s.logger.Info().Int("user_id", targetID).Msg("user deleted")
	return nil
}

package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/fortress/user-system/internal/core/domain"
	"github.com/fortress/user-system/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu     sync.Mutex
	users  []*domain.User
	nextID int
}

func newStubUserRepo(seed ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{}
	for _, u := range seed {
		clone := *u
		r.users = append(r.users, &clone)
		if u.ID > r.nextID {
			r.nextID = u.ID
		}
	}
	return r
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByID(_ context.Context, id int) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) All(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, len(r.users))
	for i, u := range r.users {
		out[i] = cloneUser(u)
	}
	return out, nil
}

func (r *stubUserRepo) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	r.nextID++
	clone := *user
	clone.ID = r.nextID
	r.users = append(r.users, &clone)
	return cloneUser(&clone), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == user.ID {
			r.users[i] = cloneUser(user)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *stubUserRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

// ---------------------------------------------------------------------------
// Deterministic stub hasher
// ---------------------------------------------------------------------------

type stubHasher struct{}

func (stubHasher) Hash(secret string) (string, error) {
	return "digest:" + secret, nil
}

func (stubHasher) Verify(secret, digest string) bool {
	return digest == "digest:"+secret
}

// ---------------------------------------------------------------------------
// Seed accounts
// ---------------------------------------------------------------------------

func seedPrincipal() *domain.User {
	return &domain.User{
		ID: 1, Name: "root", Age: 40, Gender: domain.GenderFemale,
		Email: "root@fortress.dev", PasswordHash: "digest:rootsecret",
		Role: domain.RolePrincipal,
	}
}

func seedWorker() *domain.User {
	return &domain.User{
		ID: 2, Name: "wendy", Age: 30, Gender: domain.GenderFemale,
		Email: "wendy@fortress.dev", PasswordHash: "digest:workersecret",
		Role: domain.RoleWorker,
	}
}

func seedUser() *domain.User {
	return &domain.User{
		ID: 3, Name: "ulysses", Age: 25, Gender: domain.GenderMale,
		Email: "ulysses@fortress.dev", PasswordHash: "digest:usersecret",
		Role: domain.RoleUser,
	}
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func rolePtr(r domain.Role) *domain.Role { return &r }

func countPrincipals(repo *stubUserRepo) int {
	users, _ := repo.All(context.Background())
	n := 0
	for _, u := range users {
		if u.IsPrincipal() {
			n++
		}
	}
	return n
}

func actorOf(u *domain.User) ports.Actor {
	return ports.Actor{ID: u.ID, Role: u.Role}
}

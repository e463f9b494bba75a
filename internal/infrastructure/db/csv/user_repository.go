// Package csv persists accounts as rows of a single CSV file. The whole file
// is loaded at open and rewritten on every mutation, mirroring the sequential
// nature of the format. Row order is the stable persisted order; ids are the
// row position + 1 at load time and max+1 for inserts.
package csv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"sync"

	"github.com/fortress/user-system/internal/core/domain"
)

var header = []string{"name", "age", "gender", "email", "password", "role"}

// UserRepository is a CSV-file-backed implementation of ports.UserRepository.
// An RWMutex keeps concurrent readers from observing a half-written record;
// cross-record invariants (unique email, single principal) are additionally
// serialized by the service layer.
type UserRepository struct {
	path string

	mu    sync.RWMutex
	users []*domain.User
}

// NewUserRepository loads the file at path. A missing file yields an empty
// store; more than one principal row is a hard error.
func NewUserRepository(path string) (*UserRepository, error) {
	r := &UserRepository{path: path}
	if err := r.load(); err != nil {
		return nil, err
	}

	principals := 0
	for _, u := range r.users {
		if u.IsPrincipal() {
			principals++
		}
	}
	if principals > 1 {
		return nil, fmt.Errorf("%w: %d principal rows in %s", domain.ErrPrincipalProtected, principals, path)
	}
	return r, nil
}

func (r *UserRepository) load() error {
	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open %s: %w", r.path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return fmt.Errorf("read %s: %w", r.path, err)
	}
	if len(rows) == 0 {
		return nil
	}

	// Skip the header row when present. A row only counts as the header when
	// every cell matches; a user literally named "name" stays a data row.
	if isHeaderRow(rows[0]) {
		rows = rows[1:]
	}

	users := make([]*domain.User, 0, len(rows))
	for i, row := range rows {
		if len(row) < len(header) {
			return fmt.Errorf("row %d in %s: expected %d columns, got %d", i+1, r.path, len(header), len(row))
		}
		age, err := strconv.Atoi(row[1])
		if err != nil {
			return fmt.Errorf("row %d in %s: parsing age: %w", i+1, r.path, err)
		}
		role := domain.Role(row[5])
		if !role.Valid() {
			return fmt.Errorf("row %d in %s: unknown role %q", i+1, r.path, row[5])
		}
		users = append(users, &domain.User{
			ID:           i + 1,
			Name:         row[0],
			Age:          age,
			Gender:       domain.Gender(row[2]),
			Email:        row[3],
			PasswordHash: row[4],
			Role:         role,
		})
	}

	r.users = users
	return nil
}

func isHeaderRow(row []string) bool {
	if len(row) != len(header) {
		return false
	}
	for i, cell := range row {
		if cell != header[i] {
			return false
		}
	}
	return true
}

// save rewrites the whole file. Caller must hold the write lock.
func (r *UserRepository) save() error {
	f, err := os.Create(r.path)
	if err != nil {
		return fmt.Errorf("create %s: %w", r.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, u := range r.users {
		row := []string{u.Name, strconv.Itoa(u.Age), string(u.Gender), u.Email, u.PasswordHash, string(u.Role)}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func (r *UserRepository) FindByID(_ context.Context, id int) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) All(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.User, len(r.users))
	for i, u := range r.users {
		clone := *u
		out[i] = &clone
	}
	return out, nil
}

func (r *UserRepository) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	maxID := 0
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrDuplicateEmail
		}
		if u.ID > maxID {
			maxID = u.ID
		}
	}

	clone := *user
	clone.ID = maxID + 1
	r.users = append(r.users, &clone)

	if err := r.save(); err != nil {
		r.users = r.users[:len(r.users)-1]
		return nil, err
	}

	created := clone
	return &created, nil
}

func (r *UserRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, u := range r.users {
		if u.ID == user.ID {
			clone := *user
			prev := r.users[i]
			r.users[i] = &clone
			if err := r.save(); err != nil {
				r.users[i] = prev
				return err
			}
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *UserRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, u := range r.users {
		if u.ID == id {
			prev := r.users
			r.users = append(append([]*domain.User{}, r.users[:i]...), r.users[i+1:]...)
			if err := r.save(); err != nil {
				r.users = prev
				return err
			}
			return nil
		}
	}
	return domain.ErrUserNotFound
}

package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"daycare-log/internal/domain/users"
)

type userRepo struct {
	s *Store
}

func (r *userRepo) Create(ctx context.Context, u users.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(u.ID) == "" {
		return errors.New("user id required")
	}
	if _, exists := r.s.users[u.ID]; exists {
		return errors.New("user already exists")
	}
	r.s.users[u.ID] = cloneUser(u)
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *userRepo) ListByRole(ctx context.Context, role users.Role) ([]users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]users.User, 0)
	for _, u := range r.s.users {
		if u.HasRole(role) {
			out = append(out, cloneUser(u))
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func cloneUser(u users.User) users.User {
	u.Roles = append([]users.Role(nil), u.Roles...)
	u.ChildIDs = cloneStrings(u.ChildIDs)
	if u.Teacher != nil {
		tp := *u.Teacher
		tp.ClassroomIDs = cloneStrings(tp.ClassroomIDs)
		u.Teacher = &tp
	}
	return u
}

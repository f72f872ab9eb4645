package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"daycare-log/internal/domain/children"
)

type childRepo struct {
	s *Store
}

func (r *childRepo) Create(ctx context.Context, c children.Child) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("child id required")
	}
	if _, exists := r.s.children[c.ID]; exists {
		return errors.New("child already exists")
	}
	r.s.children[c.ID] = cloneChild(c)
	return nil
}

func (r *childRepo) GetByID(ctx context.Context, id string) (children.Child, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.children[id]
	if !ok {
		return children.Child{}, children.ErrNotFound
	}
	return cloneChild(c), nil
}

func (r *childRepo) ListByClassroom(ctx context.Context, classroomID string) ([]children.Child, error) {
	return r.list(func(c children.Child) bool { return c.ClassroomID == classroomID }), nil
}

func (r *childRepo) ListByGuardian(ctx context.Context, guardianID string) ([]children.Child, error) {
	return r.list(func(c children.Child) bool { return c.HasGuardian(guardianID) }), nil
}

// ListByIDs respeta el orden de ids y omite los que no existen.
func (r *childRepo) ListByIDs(ctx context.Context, ids []string) ([]children.Child, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]children.Child, 0, len(ids))
	for _, id := range ids {
		if c, ok := r.s.children[id]; ok {
			out = append(out, cloneChild(c))
		}
	}
	return out, nil
}

func (r *childRepo) list(keep func(children.Child) bool) []children.Child {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]children.Child, 0)
	for _, c := range r.s.children {
		if keep(c) {
			out = append(out, cloneChild(c))
		}
	}

	// Orden estable por nombre (así lo lista la sala)
	sort.Slice(out, func(i, j int) bool {
		if out[i].FirstName == out[j].FirstName {
			return out[i].ID < out[j].ID
		}
		return out[i].FirstName < out[j].FirstName
	})
	return out
}

func cloneChild(c children.Child) children.Child {
	c.GuardianIDs = cloneStrings(c.GuardianIDs)
	if c.BirthDate != nil {
		bd := *c.BirthDate
		c.BirthDate = &bd
	}
	if c.LastEvent != nil {
		le := *c.LastEvent
		c.LastEvent = &le
	}
	return c
}

package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"daycare-log/internal/domain/classrooms"
)

type classroomRepo struct {
	s *Store
}

func (r *classroomRepo) Create(ctx context.Context, c classrooms.Classroom) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("classroom id required")
	}
	if _, exists := r.s.classrooms[c.ID]; exists {
		return errors.New("classroom already exists")
	}
	c.TeacherIDs = cloneStrings(c.TeacherIDs)
	r.s.classrooms[c.ID] = c
	return nil
}

func (r *classroomRepo) Update(ctx context.Context, c classrooms.Classroom) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.classrooms[c.ID]; !exists {
		return classrooms.ErrNotFound
	}
	c.TeacherIDs = cloneStrings(c.TeacherIDs)
	r.s.classrooms[c.ID] = c
	return nil
}

func (r *classroomRepo) GetByID(ctx context.Context, id string) (classrooms.Classroom, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.classrooms[id]
	if !ok {
		return classrooms.Classroom{}, classrooms.ErrNotFound
	}
	c.TeacherIDs = cloneStrings(c.TeacherIDs)
	return c, nil
}

func (r *classroomRepo) List(ctx context.Context) ([]classrooms.Classroom, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]classrooms.Classroom, 0, len(r.s.classrooms))
	for _, c := range r.s.classrooms {
		c.TeacherIDs = cloneStrings(c.TeacherIDs)
		out = append(out, c)
	}

	// Por nombre, como se muestran en el selector de salas
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

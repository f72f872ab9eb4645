package classrooms

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	byID map[string]Classroom
}

func (r *fakeRepo) Create(_ context.Context, c Classroom) error {
	if _, ok := r.byID[c.ID]; ok {
		return errors.New("classroom already exists")
	}
	r.byID[c.ID] = c
	return nil
}

func (r *fakeRepo) Update(_ context.Context, c Classroom) error {
	if _, ok := r.byID[c.ID]; !ok {
		return ErrNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (Classroom, error) {
	c, ok := r.byID[id]
	if !ok {
		return Classroom{}, ErrNotFound
	}
	return c, nil
}

func (r *fakeRepo) List(_ context.Context) ([]Classroom, error) {
	out := make([]Classroom, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	return out, nil
}

func newTestService() *Service {
	return NewService(&fakeRepo{byID: map[string]Classroom{}})
}

func TestCreateRenameAndTeachers(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	t0 := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return t0 }

	c, err := svc.Create(ctx, CreateInput{Name: "  Sala Roja ", TeacherIDs: []string{" t1 ", "", "t2"}, Year: 2026})
	require.NoError(t, err)
	assert.Equal(t, "Sala Roja", c.Name)
	assert.Equal(t, []string{"t1", "t2"}, c.TeacherIDs)
	assert.True(t, c.HasTeacher("t2"))

	svc.now = func() time.Time { return t0.Add(time.Hour) }
	renamed, err := svc.Rename(ctx, c.ID, "Sala Azul")
	require.NoError(t, err)
	assert.Equal(t, "Sala Azul", renamed.Name)
	assert.Equal(t, t0.Add(time.Hour), renamed.UpdatedAt)

	teachers, err := svc.TeachersOf(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t2"}, teachers)
}

func TestValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.Create(ctx, CreateInput{Name: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, CreateInput{Name: "Sala", Year: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Rename(ctx, "missing", "x")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.TeachersOf(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

package users

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu   sync.Mutex
	byID map[string]User
}

func newFakeRepo() *fakeRepo { return &fakeRepo{byID: map[string]User{}} }

func (r *fakeRepo) Create(_ context.Context, u User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[u.ID]; ok {
		return errors.New("user already exists")
	}
	r.byID[u.ID] = u
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *fakeRepo) ListByRole(_ context.Context, role Role) ([]User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []User{}
	for _, u := range r.byID {
		if u.HasRole(role) {
			out = append(out, u)
		}
	}
	return out, nil
}

func TestCreate_NormalizesAndStamps(t *testing.T) {
	svc := NewService(newFakeRepo())
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	u, err := svc.Create(context.Background(), CreateInput{
		Email:     "  Ana@Daycare.TEST ",
		FirstName: " Ana ",
		Roles:     []Role{RoleTeacher},
		Teacher:   &TeacherProfile{ClassroomIDs: []string{"room-1"}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "ana@daycare.test", u.Email)
	assert.Equal(t, "Ana", u.FullName())
	assert.Equal(t, now, u.CreatedAt)
	assert.True(t, u.TeachesIn("room-1"))
}

func TestCreate_Rejections(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	cases := map[string]CreateInput{
		"no email":        {Roles: []Role{RoleParent}},
		"bad email":       {Email: "nope", Roles: []Role{RoleParent}},
		"no roles":        {Email: "a@b.c"},
		"unknown role":    {Email: "a@b.c", Roles: []Role{"janitor"}},
		"profile no role": {Email: "a@b.c", Roles: []Role{RoleParent}, Teacher: &TeacherProfile{}},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(ctx, in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreate_KeepsProviderID(t *testing.T) {
	svc := NewService(newFakeRepo())
	u, err := svc.Create(context.Background(), CreateInput{ID: "idp|42", Email: "p@d.test", Roles: []Role{RoleParent}})
	require.NoError(t, err)
	assert.Equal(t, "idp|42", u.ID)

	got, err := svc.GetByID(context.Background(), " idp|42 ")
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)
}

func TestListByRole_ValidatesRole(t *testing.T) {
	svc := NewService(newFakeRepo())
	_, err := svc.ListByRole(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

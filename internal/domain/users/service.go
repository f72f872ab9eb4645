package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("user not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// CreateInput corresponde al "stub" que deja el flujo de invitación.
// ID es opcional: si viene, es el ID del proveedor de identidad.
type CreateInput struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	AvatarURL string
	Roles     []Role
	ChildIDs  []string
	Teacher   *TeacherProfile
}

func (s *Service) Create(ctx context.Context, in CreateInput) (User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return User{}, ErrInvalidInput
	}
	if len(in.Roles) == 0 {
		return User{}, ErrInvalidInput
	}
	roles := make([]Role, 0, len(in.Roles))
	for _, r := range in.Roles {
		if !r.Valid() {
			return User{}, ErrInvalidInput
		}
		roles = append(roles, r)
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = uuid.NewString()
	}

	now := s.now()
	u := User{
		ID:        id,
		Email:     email,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		AvatarURL: strings.TrimSpace(in.AvatarURL),
		Roles:     roles,
		ChildIDs:  in.ChildIDs,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Teacher != nil {
		if !u.HasRole(RoleTeacher) {
			return User{}, ErrInvalidInput
		}
		tp := *in.Teacher
		u.Teacher = &tp
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByRole(ctx context.Context, role Role) ([]User, error) {
	if !role.Valid() {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByRole(ctx, role)
}

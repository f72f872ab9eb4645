package classrooms

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("classroom not found")
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

type CreateInput struct {
	Name       string
	TeacherIDs []string
	Year       int
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Classroom, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Classroom{}, ErrInvalidInput
	}
	if in.Year < 0 {
		return Classroom{}, ErrInvalidInput
	}

	teachers := make([]string, 0, len(in.TeacherIDs))
	for _, id := range in.TeacherIDs {
		if id = strings.TrimSpace(id); id != "" {
			teachers = append(teachers, id)
		}
	}

	now := s.now()
	c := Classroom{
		ID:         uuid.NewString(),
		Name:       name,
		TeacherIDs: teachers,
		Year:       in.Year,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return Classroom{}, err
	}
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Classroom, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Classroom{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Classroom, error) {
	return s.repo.List(ctx)
}

func (s *Service) Rename(ctx context.Context, id, name string) (Classroom, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Classroom{}, ErrInvalidInput
	}
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return Classroom{}, err
	}
	c.Name = name
	c.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, c); err != nil {
		return Classroom{}, err
	}
	return c, nil
}

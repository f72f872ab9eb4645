package children

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("child not found")
)

// ClassroomLookup evita importar classrooms desde acá (mismo patrón que OwnerOf).
type ClassroomLookup interface {
	TeachersOf(ctx context.Context, classroomID string) ([]string, error)
}

type Service struct {
	repo       Repository
	classrooms ClassroomLookup
	now        func() time.Time
}

func NewService(repo Repository, classrooms ClassroomLookup) *Service {
	return &Service{
		repo:       repo,
		classrooms: classrooms,
		now:        time.Now,
	}
}

type CreateInput struct {
	FirstName   string
	LastName    string
	BirthDate   *time.Time
	AvatarURL   string
	ClassroomID string
	GuardianIDs []string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Child, error) {
	first := strings.TrimSpace(in.FirstName)
	classroomID := strings.TrimSpace(in.ClassroomID)
	if first == "" || classroomID == "" {
		return Child{}, ErrInvalidInput
	}
	if in.BirthDate != nil && in.BirthDate.After(s.now()) {
		return Child{}, ErrInvalidInput
	}
	if s.classrooms != nil {
		if _, err := s.classrooms.TeachersOf(ctx, classroomID); err != nil {
			return Child{}, ErrInvalidInput
		}
	}

	guardians := make([]string, 0, len(in.GuardianIDs))
	for _, id := range in.GuardianIDs {
		if id = strings.TrimSpace(id); id != "" {
			guardians = append(guardians, id)
		}
	}

	now := s.now()
	c := Child{
		ID:          uuid.NewString(),
		FirstName:   first,
		LastName:    strings.TrimSpace(in.LastName),
		BirthDate:   in.BirthDate,
		AvatarURL:   strings.TrimSpace(in.AvatarURL),
		ClassroomID: classroomID,
		GuardianIDs: guardians,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return Child{}, err
	}
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Child, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Child{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByClassroom(ctx context.Context, classroomID string) ([]Child, error) {
	classroomID = strings.TrimSpace(classroomID)
	if classroomID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByClassroom(ctx, classroomID)
}

func (s *Service) ListByIDs(ctx context.Context, ids []string) ([]Child, error) {
	if len(ids) == 0 {
		return []Child{}, nil
	}
	return s.repo.ListByIDs(ctx, ids)
}

func (s *Service) ListByGuardian(ctx context.Context, guardianID string) ([]Child, error) {
	guardianID = strings.TrimSpace(guardianID)
	if guardianID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByGuardian(ctx, guardianID)
}

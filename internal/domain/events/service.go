package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidPayload = errors.New("invalid event payload")
	ErrNotFound       = errors.New("event not found")
	ErrChildNotFound  = errors.New("child not found")
	ErrForbidden      = errors.New("forbidden")
)

// CreationError es el único error que ve quien llama a CreateEvents cuando falla la escritura.
// El texto no expone detalles de storage; la causa queda en Unwrap y en el log.
type CreationError struct {
	Cause error
}

func (e *CreationError) Error() string {
	return "could not save the event"
}

func (e *CreationError) Unwrap() error {
	return e.Cause
}

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type Service struct {
	repo Repository
	now  func() time.Time
	log  *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo: repo,
		now:  time.Now,
		log:  logger.Named("events"),
	}
}

type CreateEventsInput struct {
	Payload  Payload
	ChildIDs []string
	StaffID  string
}

// CreateEvents crea un evento por niño y actualiza el resumen de cada uno en una sola transacción.
// No reintenta.
func (s *Service) CreateEvents(ctx context.Context, in CreateEventsInput) ([]Event, error) {
	if err := in.Payload.Validate(); err != nil {
		return nil, err
	}

	staffID := strings.TrimSpace(in.StaffID)
	if staffID == "" {
		return nil, fmt.Errorf("%w: staff id is required", ErrInvalidPayload)
	}

	childIDs := NormalizeIDs(in.ChildIDs)
	if len(childIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one child is required", ErrInvalidPayload)
	}

	now := s.now()
	items := make([]FanOutItem, 0, len(childIDs))
	out := make([]Event, 0, len(childIDs))

	for _, childID := range childIDs {
		e := Event{
			ID:        uuid.NewString(),
			ChildID:   childID,
			StaffID:   staffID,
			EventTime: in.Payload.EventTime,
			Category:  in.Payload.Category,
			Details:   in.Payload.Details,
			Audit: Audit{
				CreatedAt: now,
				CreatedBy: staffID,
				UpdatedAt: now,
				UpdatedBy: staffID,
			},
		}
		// El resumen sale del evento de este niño, no del payload compartido.
		items = append(items, FanOutItem{Event: e, Summary: SummaryOf(e)})
		out = append(out, e)
	}

	if err := s.repo.CreateWithSummaries(ctx, items); err != nil {
		s.log.Error("fan-out write failed",
			zap.String("category", string(in.Payload.Category)),
			zap.Int("children", len(childIDs)),
			zap.String("staff_id", staffID),
			zap.Error(err),
		)
		return nil, &CreationError{Cause: err}
	}

	s.log.Debug("events created",
		zap.String("category", string(in.Payload.Category)),
		zap.Int("children", len(childIDs)),
	)
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Event{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// ListByChild devuelve los eventos no borrados del niño, más nuevos primero.
func (s *Service) ListByChild(ctx context.Context, childID string, filter ListFilter) ([]Event, error) {
	childID = strings.TrimSpace(childID)
	if childID == "" {
		return nil, ErrInvalidInput
	}
	for _, c := range filter.Categories {
		if !c.Valid() {
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, c)
		}
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	return s.repo.ListByChild(ctx, childID, filter)
}

// Delete hace borrado lógico. El resumen del niño no se reescribe.
func (s *Service) Delete(ctx context.Context, eventID, staffID string) (Event, error) {
	eventID = strings.TrimSpace(eventID)
	staffID = strings.TrimSpace(staffID)
	if eventID == "" || staffID == "" {
		return Event{}, ErrInvalidInput
	}
	if err := s.repo.SoftDelete(ctx, eventID, staffID, s.now()); err != nil {
		return Event{}, err
	}
	return s.repo.GetByID(ctx, eventID)
}

// NormalizeIDs recorta, descarta vacíos y deduplica manteniendo el orden.
func NormalizeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

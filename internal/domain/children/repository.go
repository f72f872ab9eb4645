package children

import "context"

// Repository no expone escritura de LastEvent: eso va por events.FanOutWriter.
type Repository interface {
	Create(ctx context.Context, c Child) error
	GetByID(ctx context.Context, id string) (Child, error)
	ListByClassroom(ctx context.Context, classroomID string) ([]Child, error)
	ListByIDs(ctx context.Context, ids []string) ([]Child, error)
	ListByGuardian(ctx context.Context, guardianID string) ([]Child, error)
}

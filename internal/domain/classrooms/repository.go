package classrooms

import "context"

type Repository interface {
	Create(ctx context.Context, c Classroom) error
	Update(ctx context.Context, c Classroom) error
	GetByID(ctx context.Context, id string) (Classroom, error)
	List(ctx context.Context) ([]Classroom, error)
}

package events

import (
	"fmt"
	"time"

	"daycare-log/internal/domain/events/details"
)

// Audit se estampa del lado del servicio, nunca viene del cliente.
type Audit struct {
	CreatedAt time.Time
	CreatedBy string
	UpdatedAt time.Time
	UpdatedBy string
	DeletedAt *time.Time
	DeletedBy string
}

// Event es un registro inmutable de una acción de cuidado para un niño.
// Solo se modifica para el borrado lógico.
type Event struct {
	ID      string
	ChildID string
	StaffID string

	// EventTime: cuándo ocurrió la acción (lo indica quien registra).
	EventTime time.Time

	Category Category
	Details  details.Details

	Audit Audit
}

func (e Event) Deleted() bool {
	return e.Audit.DeletedAt != nil
}

// Payload es lo que arma la sesión de registro: categoría + details + hora.
type Payload struct {
	Category  Category
	Details   details.Details
	EventTime time.Time
}

// Validate aplica las reglas del registro sobre el payload completo.
func (p Payload) Validate() error {
	cfg, ok := Lookup(p.Category)
	if !ok {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidPayload, p.Category)
	}
	if p.Details == nil {
		return fmt.Errorf("%w: details are required", ErrInvalidPayload)
	}
	if p.Details.Shape() != cfg.Shape {
		return fmt.Errorf("%w: %s expects %s details, got %s", ErrInvalidPayload, p.Category, cfg.Shape, p.Details.Shape())
	}
	if p.EventTime.IsZero() {
		return fmt.Errorf("%w: event time is required", ErrInvalidPayload)
	}
	if err := p.Details.Validate(); err != nil {
		return fmt.Errorf("%w: %s details: %w", ErrInvalidPayload, p.Category, err)
	}
	return nil
}

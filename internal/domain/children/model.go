package children

import (
	"time"

	"daycare-log/internal/domain/events"
)

// Child: identidad + sala + tutores + resumen del último evento.
// LastEvent es nil hasta el primer evento; solo lo escribe la creación de eventos.
type Child struct {
	ID        string
	FirstName string
	LastName  string
	BirthDate *time.Time
	AvatarURL string

	ClassroomID string
	GuardianIDs []string

	LastEvent *events.LastEventSummary

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c Child) HasGuardian(userID string) bool {
	for _, id := range c.GuardianIDs {
		if id == userID {
			return true
		}
	}
	return false
}

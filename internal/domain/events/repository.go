package events

import (
	"context"
	"time"
)

// FanOutItem es un evento más el resumen que debe quedar en su niño.
type FanOutItem struct {
	Event   Event
	Summary LastEventSummary
}

// FanOutWriter escribe todos los items en una sola transacción:
// o quedan N eventos y N resúmenes, o nada.
// Si algún niño no existe (o está borrado) devuelve ErrChildNotFound.
type FanOutWriter interface {
	CreateWithSummaries(ctx context.Context, items []FanOutItem) error
}

type Repository interface {
	FanOutWriter
	GetByID(ctx context.Context, id string) (Event, error)
	ListByChild(ctx context.Context, childID string, filter ListFilter) ([]Event, error)
	SoftDelete(ctx context.Context, id, deletedBy string, at time.Time) error
}

type ListFilter struct {
	// Day filtra [00:00, 00:00 del día siguiente) en la zona horaria de Day.
	Day        *time.Time
	Categories []Category
	Limit      int
}

// Window devuelve el rango del día si hay filtro por día.
func (f ListFilter) Window() (from, to time.Time, ok bool) {
	if f.Day == nil {
		return time.Time{}, time.Time{}, false
	}
	d := *f.Day
	from = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	return from, from.AddDate(0, 0, 1), true
}

// Matches se usa en storage que filtra en memoria. No mira Limit ni borrados.
func (f ListFilter) Matches(e Event) bool {
	if from, to, ok := f.Window(); ok {
		if e.EventTime.Before(from) || !e.EventTime.Before(to) {
			return false
		}
	}
	if len(f.Categories) == 0 {
		return true
	}
	for _, c := range f.Categories {
		if c == e.Category {
			return true
		}
	}
	return false
}

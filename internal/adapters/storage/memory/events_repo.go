package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"daycare-log/internal/domain/events"
)

type eventRepo struct {
	s *Store
}

// CreateWithSummaries prepara todo en copias y recién al final publica,
// siempre bajo el mismo lock. Cualquier error deja el store como estaba.
func (r *eventRepo) CreateWithSummaries(ctx context.Context, items []events.FanOutItem) error {
	if len(items) == 0 {
		return nil
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stagedEvents := make([]events.Event, 0, len(items))
	stagedSummaries := make(map[string]events.LastEventSummary, len(items))
	seen := make(map[string]struct{}, len(items))

	for i, it := range items {
		if err := ctx.Err(); err != nil {
			return err
		}

		e := it.Event
		if e.ID == "" {
			return errors.New("event id required")
		}
		if _, exists := r.s.events[e.ID]; exists {
			return errors.New("event already exists")
		}
		if _, dup := seen[e.ID]; dup {
			return errors.New("event already exists")
		}
		if _, ok := r.s.children[e.ChildID]; !ok {
			return fmt.Errorf("%w: %s", events.ErrChildNotFound, e.ChildID)
		}

		if r.s.fanOutHook != nil {
			if err := r.s.fanOutHook(i, it); err != nil {
				return err
			}
		}

		seen[e.ID] = struct{}{}
		stagedEvents = append(stagedEvents, e)
		stagedSummaries[e.ChildID] = it.Summary
	}

	// commit
	for _, e := range stagedEvents {
		r.s.events[e.ID] = e
	}
	for _, e := range stagedEvents {
		c := r.s.children[e.ChildID]
		sum := stagedSummaries[e.ChildID]
		c.LastEvent = &sum
		c.UpdatedAt = e.Audit.CreatedAt
		r.s.children[e.ChildID] = c
	}
	return nil
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (events.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.events[id]
	if !ok {
		return events.Event{}, events.ErrNotFound
	}
	return e, nil
}

func (r *eventRepo) ListByChild(ctx context.Context, childID string, filter events.ListFilter) ([]events.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	out := make([]events.Event, 0)
	for _, e := range r.s.events {
		if e.ChildID != childID || e.Deleted() {
			continue
		}
		if !filter.Matches(e) {
			continue
		}
		out = append(out, e)
	}

	// Orden por event_time desc (más reciente primero)
	sort.Slice(out, func(i, j int) bool {
		if out[i].EventTime.Equal(out[j].EventTime) {
			return out[i].Audit.CreatedAt.After(out[j].Audit.CreatedAt)
		}
		return out[i].EventTime.After(out[j].EventTime)
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *eventRepo) SoftDelete(ctx context.Context, id, deletedBy string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.events[id]
	if !ok || e.Deleted() {
		return events.ErrNotFound
	}
	e.Audit.DeletedAt = &at
	e.Audit.DeletedBy = deletedBy
	e.Audit.UpdatedAt = at
	e.Audit.UpdatedBy = deletedBy
	r.s.events[id] = e
	return nil
}

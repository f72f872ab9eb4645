package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"daycare-log/internal/domain/events"
)

type EventsRepo struct {
	s *Store
}

const eventColumns = `
	id, child_id, staff_id,
	event_time, category, details,
	created_at, created_by, updated_at, updated_by,
	deleted_at, deleted_by`

// CreateWithSummaries escribe todo en una transacción: por cada item actualiza el
// resumen del niño (0 filas = niño inexistente) e inserta el evento.
// Cualquier error hace rollback.
func (r *EventsRepo) CreateWithSummaries(ctx context.Context, items []events.FanOutItem) (err error) {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	updateSummary := r.s.q(`
		UPDATE children
		SET last_event = $2, updated_at = $3
		WHERE id = $1
	`)
	insertEvent := r.s.q(`
		INSERT INTO events (
			id, child_id, staff_id,
			event_time, category, details,
			created_at, created_by, updated_at, updated_by
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`)

	for _, it := range items {
		e := it.Event

		summary, err := json.Marshal(it.Summary)
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, updateSummary, e.ChildID, string(summary), utc(e.Audit.CreatedAt))
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: %s", events.ErrChildNotFound, e.ChildID)
		}

		detailsJSON, err := json.Marshal(e.Details)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, insertEvent,
			e.ID,
			e.ChildID,
			e.StaffID,
			utc(e.EventTime),
			string(e.Category),
			string(detailsJSON),
			utc(e.Audit.CreatedAt),
			e.Audit.CreatedBy,
			utc(e.Audit.UpdatedAt),
			e.Audit.UpdatedBy,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *EventsRepo) GetByID(ctx context.Context, id string) (events.Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return events.Event{}, events.ErrNotFound
	}

	row := r.s.db.QueryRowContext(ctx, r.s.q(`SELECT `+eventColumns+` FROM events WHERE id = $1`), id)
	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return events.Event{}, events.ErrNotFound
		}
		return events.Event{}, err
	}
	return e, nil
}

func (r *EventsRepo) ListByChild(ctx context.Context, childID string, filter events.ListFilter) ([]events.Event, error) {
	childID = strings.TrimSpace(childID)
	if childID == "" {
		return nil, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`
		SELECT ` + eventColumns + `
		FROM events
		WHERE child_id = $1 AND deleted_at IS NULL
	`)
	args := []any{childID}
	argN := 2

	if from, to, ok := filter.Window(); ok {
		sb.WriteString(" AND event_time >= $" + strconv.Itoa(argN) + " AND event_time < $" + strconv.Itoa(argN+1))
		args = append(args, utc(from), utc(to))
		argN += 2
	}

	if len(filter.Categories) > 0 {
		sb.WriteString(" AND category IN (" + placeholders(argN, len(filter.Categories)) + ")")
		for _, c := range filter.Categories {
			args = append(args, string(c))
		}
		argN += len(filter.Categories)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	sb.WriteString(" ORDER BY event_time DESC, created_at DESC LIMIT $" + strconv.Itoa(argN))
	args = append(args, limit)

	rows, err := r.s.db.QueryContext(ctx, r.s.q(sb.String()), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]events.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EventsRepo) SoftDelete(ctx context.Context, id, deletedBy string, at time.Time) error {
	res, err := r.s.db.ExecContext(ctx, r.s.q(`
		UPDATE events
		SET deleted_at = $2, deleted_by = $3, updated_at = $2, updated_by = $3
		WHERE id = $1 AND deleted_at IS NULL
	`), id, utc(at), deletedBy)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return events.ErrNotFound
	}
	return nil
}

func scanEvent(sc scanner) (events.Event, error) {
	var (
		e         events.Event
		category  string
		raw       []byte
		deletedAt sql.NullTime
		deletedBy sql.NullString
	)
	if err := sc.Scan(
		&e.ID,
		&e.ChildID,
		&e.StaffID,
		&e.EventTime,
		&category,
		&raw,
		&e.Audit.CreatedAt,
		&e.Audit.CreatedBy,
		&e.Audit.UpdatedAt,
		&e.Audit.UpdatedBy,
		&deletedAt,
		&deletedBy,
	); err != nil {
		return events.Event{}, err
	}

	e.Category = events.Category(category)
	d, err := events.DecodeDetails(e.Category, raw)
	if err != nil {
		return events.Event{}, fmt.Errorf("event %s: %w", e.ID, err)
	}
	e.Details = d
	e.Audit.DeletedAt = fromNullTime(deletedAt)
	e.Audit.DeletedBy = deletedBy.String
	return e, nil
}

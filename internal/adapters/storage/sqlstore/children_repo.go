package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"daycare-log/internal/domain/children"
	"daycare-log/internal/domain/events"
)

type ChildrenRepo struct {
	s *Store
}

const childColumns = `
	id, first_name, last_name, birth_date, avatar_url,
	classroom_id, guardian_ids, last_event,
	created_at, updated_at`

// Create no escribe last_event: el niño nace sin resumen.
func (r *ChildrenRepo) Create(ctx context.Context, c children.Child) error {
	guardians, err := jsonStrings(c.GuardianIDs)
	if err != nil {
		return err
	}
	_, err = r.s.db.ExecContext(ctx, r.s.q(`
		INSERT INTO children (
			id, first_name, last_name, birth_date, avatar_url,
			classroom_id, guardian_ids,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`),
		c.ID,
		c.FirstName,
		c.LastName,
		toNullTime(c.BirthDate),
		c.AvatarURL,
		c.ClassroomID,
		guardians,
		utc(c.CreatedAt),
		utc(c.UpdatedAt),
	)
	return err
}

func (r *ChildrenRepo) GetByID(ctx context.Context, id string) (children.Child, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return children.Child{}, children.ErrNotFound
	}
	row := r.s.db.QueryRowContext(ctx, r.s.q(`SELECT `+childColumns+` FROM children WHERE id = $1`), id)
	c, err := scanChild(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return children.Child{}, children.ErrNotFound
		}
		return children.Child{}, err
	}
	return c, nil
}

func (r *ChildrenRepo) ListByClassroom(ctx context.Context, classroomID string) ([]children.Child, error) {
	return r.list(ctx, `WHERE classroom_id = $1`, classroomID)
}

func (r *ChildrenRepo) ListByGuardian(ctx context.Context, guardianID string) ([]children.Child, error) {
	return r.list(ctx, `WHERE `+r.s.d.JSONArrayContains("guardian_ids", "$1"), guardianID)
}

// ListByIDs respeta el orden de ids y omite los que no existen.
func (r *ChildrenRepo) ListByIDs(ctx context.Context, ids []string) ([]children.Child, error) {
	if len(ids) == 0 {
		return []children.Child{}, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	found, err := r.list(ctx, `WHERE id IN (`+placeholders(1, len(ids))+`)`, args...)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]children.Child, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}
	out := make([]children.Child, 0, len(found))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *ChildrenRepo) list(ctx context.Context, where string, args ...any) ([]children.Child, error) {
	rows, err := r.s.db.QueryContext(ctx, r.s.q(`
		SELECT `+childColumns+`
		FROM children
		`+where+`
		ORDER BY first_name ASC, id ASC
	`), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]children.Child, 0)
	for rows.Next() {
		c, err := scanChild(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanChild(sc scanner) (children.Child, error) {
	var (
		c         children.Child
		bd        sql.NullTime
		guardians []byte
		lastEvent []byte
	)
	if err := sc.Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&bd,
		&c.AvatarURL,
		&c.ClassroomID,
		&guardians,
		&lastEvent,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return children.Child{}, err
	}

	c.BirthDate = fromNullTime(bd)

	ids, err := parseStrings(guardians)
	if err != nil {
		return children.Child{}, err
	}
	c.GuardianIDs = ids

	if len(lastEvent) > 0 && string(lastEvent) != "null" {
		var sum events.LastEventSummary
		if err := json.Unmarshal(lastEvent, &sum); err != nil {
			return children.Child{}, err
		}
		c.LastEvent = &sum
	}
	return c, nil
}

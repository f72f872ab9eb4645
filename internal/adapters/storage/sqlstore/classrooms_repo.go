package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"daycare-log/internal/domain/classrooms"
)

type ClassroomsRepo struct {
	s *Store
}

func (r *ClassroomsRepo) Create(ctx context.Context, c classrooms.Classroom) error {
	teachers, err := jsonStrings(c.TeacherIDs)
	if err != nil {
		return err
	}
	_, err = r.s.db.ExecContext(ctx, r.s.q(`
		INSERT INTO classrooms (id, name, teacher_ids, year, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`),
		c.ID,
		c.Name,
		teachers,
		c.Year,
		utc(c.CreatedAt),
		utc(c.UpdatedAt),
	)
	return err
}

func (r *ClassroomsRepo) Update(ctx context.Context, c classrooms.Classroom) error {
	teachers, err := jsonStrings(c.TeacherIDs)
	if err != nil {
		return err
	}
	res, err := r.s.db.ExecContext(ctx, r.s.q(`
		UPDATE classrooms
		SET
			name = $2,
			teacher_ids = $3,
			year = $4,
			updated_at = $5
		WHERE id = $1
	`),
		c.ID,
		c.Name,
		teachers,
		c.Year,
		utc(c.UpdatedAt),
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return classrooms.ErrNotFound
	}
	return nil
}

func (r *ClassroomsRepo) GetByID(ctx context.Context, id string) (classrooms.Classroom, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return classrooms.Classroom{}, classrooms.ErrNotFound
	}
	row := r.s.db.QueryRowContext(ctx, r.s.q(`
		SELECT id, name, teacher_ids, year, created_at, updated_at
		FROM classrooms
		WHERE id = $1
	`), id)

	c, err := scanClassroom(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return classrooms.Classroom{}, classrooms.ErrNotFound
		}
		return classrooms.Classroom{}, err
	}
	return c, nil
}

func (r *ClassroomsRepo) List(ctx context.Context) ([]classrooms.Classroom, error) {
	rows, err := r.s.db.QueryContext(ctx, `
		SELECT id, name, teacher_ids, year, created_at, updated_at
		FROM classrooms
		ORDER BY name ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]classrooms.Classroom, 0)
	for rows.Next() {
		c, err := scanClassroom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanClassroom(sc scanner) (classrooms.Classroom, error) {
	var c classrooms.Classroom
	var teachers []byte
	if err := sc.Scan(&c.ID, &c.Name, &teachers, &c.Year, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return classrooms.Classroom{}, err
	}
	ids, err := parseStrings(teachers)
	if err != nil {
		return classrooms.Classroom{}, err
	}
	c.TeacherIDs = ids
	return c, nil
}

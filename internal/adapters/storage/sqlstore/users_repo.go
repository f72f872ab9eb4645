package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"daycare-log/internal/domain/users"
)

type UsersRepo struct {
	s *Store
}

type teacherProfileJSON struct {
	Phone        string   `json:"phone,omitempty"`
	Shift        string   `json:"shift,omitempty"`
	EmployeeID   string   `json:"employee_id,omitempty"`
	ClassroomIDs []string `json:"classroom_ids,omitempty"`
}

const userColumns = `
	id, email, first_name, last_name, avatar_url,
	roles, child_ids, teacher_profile,
	created_at, updated_at`

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	roles := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		roles = append(roles, string(role))
	}
	rolesJSON, err := jsonStrings(roles)
	if err != nil {
		return err
	}
	childrenJSON, err := jsonStrings(u.ChildIDs)
	if err != nil {
		return err
	}

	var teacher sql.NullString
	if u.Teacher != nil {
		b, err := json.Marshal(teacherProfileJSON{
			Phone:        u.Teacher.Phone,
			Shift:        u.Teacher.Shift,
			EmployeeID:   u.Teacher.EmployeeID,
			ClassroomIDs: u.Teacher.ClassroomIDs,
		})
		if err != nil {
			return err
		}
		teacher = sql.NullString{String: string(b), Valid: true}
	}

	_, err = r.s.db.ExecContext(ctx, r.s.q(`
		INSERT INTO users (`+userColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`),
		u.ID,
		u.Email,
		u.FirstName,
		u.LastName,
		u.AvatarURL,
		rolesJSON,
		childrenJSON,
		teacher,
		utc(u.CreatedAt),
		utc(u.UpdatedAt),
	)
	return err
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return users.User{}, users.ErrNotFound
	}

	row := r.s.db.QueryRowContext(ctx, r.s.q(`SELECT `+userColumns+` FROM users WHERE id = $1`), id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) ListByRole(ctx context.Context, role users.Role) ([]users.User, error) {
	rows, err := r.s.db.QueryContext(ctx, r.s.q(`
		SELECT `+userColumns+`
		FROM users
		WHERE `+r.s.d.JSONArrayContains("roles", "$1")+`
		ORDER BY created_at ASC
	`), string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]users.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func scanUser(sc scanner) (users.User, error) {
	var (
		u                     users.User
		rolesRaw, childrenRaw []byte
		teacherRaw            []byte
	)
	if err := sc.Scan(
		&u.ID,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.AvatarURL,
		&rolesRaw,
		&childrenRaw,
		&teacherRaw,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return users.User{}, err
	}

	roles, err := parseStrings(rolesRaw)
	if err != nil {
		return users.User{}, err
	}
	for _, role := range roles {
		u.Roles = append(u.Roles, users.Role(role))
	}
	if u.ChildIDs, err = parseStrings(childrenRaw); err != nil {
		return users.User{}, err
	}
	if len(teacherRaw) > 0 {
		var tp teacherProfileJSON
		if err := json.Unmarshal(teacherRaw, &tp); err != nil {
			return users.User{}, err
		}
		u.Teacher = &users.TeacherProfile{
			Phone:        tp.Phone,
			Shift:        tp.Shift,
			EmployeeID:   tp.EmployeeID,
			ClassroomIDs: tp.ClassroomIDs,
		}
	}
	return u, nil
}

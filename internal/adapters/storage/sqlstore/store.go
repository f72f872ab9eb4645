package sqlstore

import (
	"database/sql"
	"encoding/json"
	"time"

	"daycare-log/internal/domain/children"
	"daycare-log/internal/domain/classrooms"
	"daycare-log/internal/domain/events"
	"daycare-log/internal/domain/users"
)

// Store implementa los repos sobre database/sql. Postgres y SQLite comparten el SQL.
type Store struct {
	db *sql.DB
	d  Dialect
}

func New(db *sql.DB, d Dialect) *Store {
	return &Store{db: db, d: d}
}

func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Users() users.Repository           { return &UsersRepo{s: s} }
func (s *Store) Classrooms() classrooms.Repository { return &ClassroomsRepo{s: s} }
func (s *Store) Children() children.Repository     { return &ChildrenRepo{s: s} }
func (s *Store) Events() events.Repository         { return &EventsRepo{s: s} }

func (s *Store) q(query string) string { return s.d.Rebind(query) }

// Todas las horas se guardan en UTC para que el orden y los rangos sean comparables en ambos motores.
func utc(t time.Time) time.Time { return t.UTC() }

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func fromNullTime(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

// jsonStrings serializa un slice como array JSON (nunca null).
func jsonStrings(in []string) (string, error) {
	if in == nil {
		in = []string{}
	}
	b, err := json.Marshal(in)
	return string(b), err
}

func parseStrings(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

package memory

import (
	"sync"

	"daycare-log/internal/domain/children"
	"daycare-log/internal/domain/classrooms"
	"daycare-log/internal/domain/events"
	"daycare-log/internal/domain/users"
)

// FanOutHook se llama antes de preparar cada item del fan-out.
// Si devuelve error la escritura completa se aborta (sirve para simular fallas).
type FanOutHook func(step int, item events.FanOutItem) error

type Option func(*Store)

func WithFanOutHook(h FanOutHook) Option {
	return func(s *Store) { s.fanOutHook = h }
}

// Store comparte un solo lock entre todos los repos: el fan-out toca eventos y niños
// y tiene que verse atómico para cualquier lector.
type Store struct {
	mu sync.RWMutex

	users      map[string]users.User
	classrooms map[string]classrooms.Classroom
	children   map[string]children.Child
	events     map[string]events.Event

	fanOutHook FanOutHook
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		users:      make(map[string]users.User),
		classrooms: make(map[string]classrooms.Classroom),
		children:   make(map[string]children.Child),
		events:     make(map[string]events.Event),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Users() users.Repository           { return &userRepo{s: s} }
func (s *Store) Classrooms() classrooms.Repository { return &classroomRepo{s: s} }
func (s *Store) Children() children.Repository     { return &childRepo{s: s} }
func (s *Store) Events() events.Repository         { return &eventRepo{s: s} }

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

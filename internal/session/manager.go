package session

import (
	"context"
	"sync"

	"daycare-log/internal/ports/auth"

	"go.uber.org/zap"
)

// Manager es el único que escribe "quién está logueado".
// Arranca en Loading y publica cada cambio a los suscriptores.
// Los suscriptores lentos solo ven el último valor.
type Manager struct {
	resolver ProfileResolver
	log      *zap.Logger

	mu      sync.RWMutex
	current State
	subs    map[int]chan State
	nextSub int
	closed  bool
}

func NewManager(resolver ProfileResolver, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		resolver: resolver,
		log:      logger.Named("session"),
		current:  Loading(),
		subs:     map[int]chan State{},
	}
}

func (m *Manager) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Subscribe devuelve un canal con buffer 1 que recibe primero el estado actual.
// cancel es idempotente.
func (m *Manager) Subscribe() (<-chan State, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan State, 1)
	if m.closed {
		close(ch)
		return ch, func() {}
	}

	id := m.nextSub
	m.nextSub++
	m.subs[id] = ch
	ch <- m.current

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			if c, ok := m.subs[id]; ok {
				delete(m.subs, id)
				close(c)
			}
		})
	}
}

// Run consume las notificaciones del proveedor en orden hasta que ctx termine
// o el canal se cierre.
func (m *Manager) Run(ctx context.Context, provider auth.IdentityProvider) {
	changes := provider.Changes()
	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-changes:
			if !ok {
				return
			}
			m.handle(ctx, change)
		}
	}
}

func (m *Manager) handle(ctx context.Context, change auth.IdentityChange) {
	if !change.Present {
		m.publish(Unauthenticated())
		return
	}

	m.publish(Loading())

	st, err := Resolve(ctx, m.resolver, change)
	if err != nil {
		m.log.Warn("session resolution failed", zap.String("user_id", change.UserID), zap.Error(err))
	}
	m.publish(st)
}

func (m *Manager) publish(st State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}

	st.Version = m.current.Version + 1
	m.current = st

	for _, ch := range m.subs {
		// Descarta el valor viejo si el suscriptor no lo leyó.
		select {
		case <-ch:
		default:
		}
		ch <- st
	}
}

// Close cierra todas las suscripciones. Después de Close no se publica nada.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	for id, ch := range m.subs {
		delete(m.subs, id)
		close(ch)
	}
}

package access

import (
	"context"
	"sync"

	"daycare-log/internal/session"
)

// Navigator es la capa de render/navegación (colaborador externo).
type Navigator interface {
	Navigate(target string)
}

type NavigatorFunc func(target string)

func (f NavigatorFunc) Navigate(target string) { f(target) }

// SessionSource lo implementa session.Manager.
type SessionSource interface {
	Subscribe() (<-chan session.State, func())
}

// Gate evalúa la pantalla actual con cada visita y con cada cambio de sesión.
// Dentro de una misma visita no repite un redirect al mismo destino;
// una visita nueva siempre reevalúa desde cero.
type Gate struct {
	nav Navigator

	mu       sync.Mutex
	state    session.State
	screen   *Screen
	decision Decision
	issued   string
}

func NewGate(nav Navigator) *Gate {
	return &Gate{nav: nav, state: session.Loading(), decision: Decision{Kind: RenderLoading}}
}

// Visit entra a una pantalla y devuelve la decisión inmediata.
func (g *Gate) Visit(s Screen) Decision {
	g.mu.Lock()
	g.screen = &s
	g.issued = ""
	target, d := g.evaluateLocked()
	g.mu.Unlock()

	g.navigate(target)
	return d
}

// Leave sale de la pantalla actual; los cambios de sesión posteriores no navegan.
func (g *Gate) Leave() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.screen = nil
	g.issued = ""
}

// Update aplica un nuevo estado de sesión a la pantalla actual.
func (g *Gate) Update(st session.State) Decision {
	g.mu.Lock()
	g.state = st
	target, d := g.evaluateLocked()
	g.mu.Unlock()

	g.navigate(target)
	return d
}

func (g *Gate) Decision() Decision {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.decision
}

// Watch consume la fuente de sesión hasta que ctx termine o la fuente cierre.
func (g *Gate) Watch(ctx context.Context, src SessionSource) {
	ch, cancel := src.Subscribe()
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case st, ok := <-ch:
			if !ok {
				return
			}
			g.Update(st)
		}
	}
}

// evaluateLocked devuelve el destino a navegar ("" = ninguno). La navegación
// se hace fuera del lock porque el Navigator puede llamar de nuevo a Visit.
func (g *Gate) evaluateLocked() (string, Decision) {
	if g.screen == nil {
		g.decision = Decision{Kind: RenderLoading}
		return "", g.decision
	}

	d := Evaluate(g.state, g.screen.Role)
	g.decision = d

	if d.Kind != Redirect {
		g.issued = ""
		return "", d
	}
	if d.Target == g.issued {
		return "", d
	}
	g.issued = d.Target
	return d.Target, d
}

func (g *Gate) navigate(target string) {
	if target == "" || g.nav == nil {
		return
	}
	g.nav.Navigate(target)
}

// Package session mantiene quién es el usuario actual y lo publica a los suscriptores.
package session

import "daycare-log/internal/domain/users"

type Status string

const (
	StatusLoading         Status = "loading"
	StatusAuthenticated   Status = "authenticated"
	StatusUnauthenticated Status = "unauthenticated"
)

// State es un valor autoritativo: User solo viene con StatusAuthenticated
// y siempre es el perfil completo.
type State struct {
	Status Status
	User   *users.User

	// Version crece con cada publicación del Manager.
	Version uint64
}

func Loading() State { return State{Status: StatusLoading} }

func Unauthenticated() State { return State{Status: StatusUnauthenticated} }

func Authenticated(u users.User) State {
	return State{Status: StatusAuthenticated, User: &u}
}

// Roles devuelve los roles del usuario o nil si no hay sesión.
func (s State) Roles() []users.Role {
	if s.Status != StatusAuthenticated || s.User == nil {
		return nil
	}
	return s.User.Roles
}

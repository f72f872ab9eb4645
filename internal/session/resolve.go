package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"daycare-log/internal/domain/users"
	"daycare-log/internal/ports/auth"
)

// ProfileResolver obtiene el perfil de aplicación de una identidad.
// users.Service lo implementa.
type ProfileResolver interface {
	GetByID(ctx context.Context, id string) (users.User, error)
}

// Resolve convierte una identidad en un State final (nunca Loading).
// Si el perfil no existe o falla la lectura el resultado es Unauthenticated;
// el error vuelve para que el caller lo loguee.
func Resolve(ctx context.Context, resolver ProfileResolver, id auth.IdentityChange) (State, error) {
	uid := strings.TrimSpace(id.UserID)
	if !id.Present || uid == "" {
		return Unauthenticated(), nil
	}

	u, err := resolver.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return Unauthenticated(), fmt.Errorf("no profile for identity %q: %w", uid, err)
		}
		return Unauthenticated(), fmt.Errorf("resolve profile %q: %w", uid, err)
	}
	if u.ID == "" {
		return Unauthenticated(), fmt.Errorf("empty profile for identity %q", uid)
	}
	return Authenticated(u), nil
}

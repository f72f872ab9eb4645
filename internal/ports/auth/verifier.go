package auth

import "context"

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// IdentityProvider emite los cambios de identidad (sign-in / sign-out).
// El canal se cierra cuando el proveedor deja de emitir.
type IdentityProvider interface {
	Changes() <-chan IdentityChange
}

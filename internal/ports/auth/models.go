package auth

// Claims representa la información extraída del token.
type Claims struct {
	UserID string
	Email  string
}

// IdentityChange es una notificación del proveedor de identidad:
// Present=false significa sign-out (o nunca hubo sesión).
type IdentityChange struct {
	UserID  string
	Email   string
	Present bool
}

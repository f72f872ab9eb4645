package session

import (
	"context"
	"net/http"

	"daycare-log/internal/domain/users"
	"daycare-log/internal/middleware"
	"daycare-log/internal/platform/logger"
	"daycare-log/internal/ports/auth"

	"go.uber.org/zap"
)

type ctxKey struct{}

// Middleware resuelve la sesión de cada request a partir de los claims de AuthContext.
// Se evalúa por request: nunca se reutiliza un perfil de un request anterior.
func Middleware(resolver ProfileResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := auth.IdentityChange{}
			if c, ok := middleware.GetClaims(r.Context()); ok {
				identity = auth.IdentityChange{UserID: c.UserID, Email: c.Email, Present: c.UserID != ""}
			}

			st, err := Resolve(r.Context(), resolver, identity)
			if err != nil {
				logger.FromContext(r.Context()).Info("request session unresolved", zap.Error(err))
			}

			next.ServeHTTP(w, r.WithContext(WithState(r.Context(), st)))
		})
	}
}

func WithState(ctx context.Context, st State) context.Context {
	return context.WithValue(ctx, ctxKey{}, st)
}

// FromContext devuelve Loading si el middleware no corrió.
func FromContext(ctx context.Context) State {
	if st, ok := ctx.Value(ctxKey{}).(State); ok {
		return st
	}
	return Loading()
}

// CurrentUser devuelve el usuario autenticado del request.
func CurrentUser(ctx context.Context) (users.User, bool) {
	st := FromContext(ctx)
	if st.Status != StatusAuthenticated || st.User == nil {
		return users.User{}, false
	}
	return *st.User, true
}

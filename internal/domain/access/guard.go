// Package access decide qué se renderiza en cada pantalla según el estado de sesión y los roles.
package access

import (
	"daycare-log/internal/domain/users"
	"daycare-log/internal/session"
)

type DecisionKind string

const (
	RenderLoading DecisionKind = "loading"
	Redirect      DecisionKind = "redirect"
	Render        DecisionKind = "render"
)

// Decision: Target solo aplica a Redirect.
type Decision struct {
	Kind   DecisionKind `json:"decision"`
	Target string       `json:"target,omitempty"`
}

const (
	PathSignIn           = "/sign-in"
	PathAdminHome        = "/admin"
	PathTeacherEvents    = "/teacher/events"
	PathGuardianTimeline = "/guardian/timeline"
)

// LandingFor elige la pantalla por defecto: admin > teacher > parent.
// Sin roles conocidos cae en la bitácora de tutor.
func LandingFor(roles []users.Role) string {
	has := func(r users.Role) bool {
		for _, x := range roles {
			if x == r {
				return true
			}
		}
		return false
	}
	switch {
	case has(users.RoleAdmin):
		return PathAdminHome
	case has(users.RoleTeacher):
		return PathTeacherEvents
	default:
		return PathGuardianTimeline
	}
}

// Evaluate nunca falla: los estados no autorizados terminan en Redirect.
// Con varios roles requeridos alcanza con tener uno; sin roles, cualquier sesión autenticada pasa.
func Evaluate(st session.State, required ...users.Role) Decision {
	switch st.Status {
	case session.StatusAuthenticated:
	case session.StatusUnauthenticated:
		return Decision{Kind: Redirect, Target: PathSignIn}
	default:
		return Decision{Kind: RenderLoading}
	}

	if st.User == nil {
		return Decision{Kind: Redirect, Target: PathSignIn}
	}
	if len(required) == 0 {
		return Decision{Kind: Render}
	}
	for _, r := range required {
		if st.User.HasRole(r) {
			return Decision{Kind: Render}
		}
	}
	return Decision{Kind: Redirect, Target: LandingFor(st.User.Roles)}
}

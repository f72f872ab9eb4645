package access

import (
	"encoding/json"
	"net/http"

	"daycare-log/internal/domain/users"
	"daycare-log/internal/session"

	"github.com/go-chi/chi/v5"
)

type guardResponse struct {
	Screen   string       `json:"screen"`
	Path     string       `json:"path"`
	Decision DecisionKind `json:"decision"`
	Target   string       `json:"target,omitempty"`
}

type deniedResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect"`
}

// RequireRole evalúa la sesión del request en cada llamada (sin cache).
// 401 + /sign-in si no hay sesión; 403 + landing si falta el rol.
func RequireRole(roles ...users.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := Evaluate(session.FromContext(r.Context()), roles...)
			switch d.Kind {
			case Render:
				next.ServeHTTP(w, r)
			case Redirect:
				if d.Target == PathSignIn {
					writeJSON(w, http.StatusUnauthorized, deniedResponse{Error: "unauthorized", Redirect: d.Target})
					return
				}
				writeJSON(w, http.StatusForbidden, deniedResponse{Error: "forbidden", Redirect: d.Target})
			default:
				w.Header().Set("Retry-After", "1")
				http.Error(w, "session loading", http.StatusServiceUnavailable)
			}
		})
	}
}

func RegisterRoutes(r chi.Router) {
	r.Get("/guard/{screen}", guardHandler())
}

// guardHandler godoc
// @Summary Evaluar acceso a una pantalla
// @Description Devuelve qué debe hacer la capa de render para la pantalla: render, redirect (con destino) o loading. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags access
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param screen path string true "Nombre de la pantalla (ej: admin, teacher-events, guardian-timeline)"
// @Success 200 {object} guardResponse
// @Failure 404 {string} string "unknown screen"
// @Router /guard/{screen} [get]
func guardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := ScreenByName(chi.URLParam(r, "screen"))
		if !ok {
			http.Error(w, "unknown screen", http.StatusNotFound)
			return
		}

		d := Evaluate(session.FromContext(r.Context()), s.Role)
		writeJSON(w, http.StatusOK, guardResponse{
			Screen:   s.Name,
			Path:     s.Path,
			Decision: d.Kind,
			Target:   d.Target,
		})
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

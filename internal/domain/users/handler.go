package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"daycare-log/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes: este paquete no puede usar access/session (ellos dependen de users),
// así que resuelve al usuario actual con los claims igual que el resto de handlers.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/me", getMeHandler(svc))

	r.Route("/users", func(ur chi.Router) {
		ur.Post("/", createUserHandler(svc))
		ur.Get("/", listUsersHandler(svc))
	})
}

type teacherProfileDTO struct {
	Phone        string   `json:"phone"`
	Shift        string   `json:"shift"`
	EmployeeID   string   `json:"employee_id"`
	ClassroomIDs []string `json:"classroom_ids"`
}

type createUserRequest struct {
	ID        string             `json:"id"` // opcional: ID del proveedor de identidad
	Email     string             `json:"email"`
	FirstName string             `json:"first_name"`
	LastName  string             `json:"last_name"`
	AvatarURL string             `json:"avatar_url"`
	Roles     []Role             `json:"roles" enums:"admin,teacher,parent"`
	ChildIDs  []string           `json:"child_ids"`
	Teacher   *teacherProfileDTO `json:"teacher_profile"`
}

type userResponse struct {
	ID        string             `json:"id"`
	Email     string             `json:"email"`
	FirstName string             `json:"first_name"`
	LastName  string             `json:"last_name"`
	AvatarURL string             `json:"avatar_url,omitempty"`
	Roles     []Role             `json:"roles"`
	ChildIDs  []string           `json:"child_ids,omitempty"`
	Teacher   *teacherProfileDTO `json:"teacher_profile,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// currentUser: 401 sin claims o sin perfil (nunca un perfil parcial).
func currentUser(w http.ResponseWriter, r *http.Request, svc *Service) (User, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return User{}, false
	}
	u, err := svc.GetByID(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return User{}, false
	}
	return u, true
}

// getMeHandler godoc
// @Summary Mi perfil
// @Description Perfil de aplicación del usuario logueado (roles y perfil docente). Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags users
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} userResponse
// @Failure 401 {string} string "unauthorized"
// @Router /me [get]
func getMeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := currentUser(w, r, svc)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, toUserResponse(u))
	}
}

// createUserHandler godoc
// @Summary Crear usuario (stub de invitación)
// @Description Solo admin. Crea el perfil de aplicación que luego se asocia a la identidad del proveedor.
// @Tags users
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createUserRequest true "Datos del usuario"
// @Success 201 {object} userResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /users [post]
func createUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := currentUser(w, r, svc)
		if !ok {
			return
		}
		if !caller.HasRole(RoleAdmin) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req createUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := CreateInput{
			ID:        req.ID,
			Email:     req.Email,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			AvatarURL: req.AvatarURL,
			Roles:     req.Roles,
			ChildIDs:  req.ChildIDs,
		}
		if req.Teacher != nil {
			in.Teacher = &TeacherProfile{
				Phone:        req.Teacher.Phone,
				Shift:        req.Teacher.Shift,
				EmployeeID:   req.Teacher.EmployeeID,
				ClassroomIDs: req.Teacher.ClassroomIDs,
			}
		}

		u, err := svc.Create(r.Context(), in)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toUserResponse(u))
	}
}

// listUsersHandler godoc
// @Summary Listar usuarios por rol
// @Description Solo admin.
// @Tags users
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param role query string true "admin, teacher o parent"
// @Success 200 {array} userResponse
// @Failure 400 {string} string "invalid role"
// @Failure 403 {string} string "forbidden"
// @Router /users [get]
func listUsersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := currentUser(w, r, svc)
		if !ok {
			return
		}
		if !caller.HasRole(RoleAdmin) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		items, err := svc.ListByRole(r.Context(), Role(strings.TrimSpace(r.URL.Query().Get("role"))))
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "invalid role", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]userResponse, 0, len(items))
		for _, u := range items {
			out = append(out, toUserResponse(u))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toUserResponse(u User) userResponse {
	out := userResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		AvatarURL: u.AvatarURL,
		Roles:     u.Roles,
		ChildIDs:  u.ChildIDs,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.Teacher != nil {
		out.Teacher = &teacherProfileDTO{
			Phone:        u.Teacher.Phone,
			Shift:        u.Teacher.Shift,
			EmployeeID:   u.Teacher.EmployeeID,
			ClassroomIDs: u.Teacher.ClassroomIDs,
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

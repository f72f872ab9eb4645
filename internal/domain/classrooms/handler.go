package classrooms

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"daycare-log/internal/domain/access"
	"daycare-log/internal/domain/users"
	"daycare-log/internal/session"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registra rutas planas (sin subrouter) porque children cuelga
// /classrooms/{classroomID}/children del mismo árbol.
func RegisterRoutes(r chi.Router, svc *Service) {
	staff := r.With(access.RequireRole(users.RoleAdmin, users.RoleTeacher))
	admin := r.With(access.RequireRole(users.RoleAdmin))

	staff.Get("/classrooms", listClassroomsHandler(svc))
	admin.Post("/classrooms", createClassroomHandler(svc))
	staff.Get("/classrooms/{classroomID}", getClassroomHandler(svc))
	admin.Patch("/classrooms/{classroomID}", renameClassroomHandler(svc))
}

type createClassroomRequest struct {
	Name       string   `json:"name"`
	TeacherIDs []string `json:"teacher_ids"`
	Year       int      `json:"year"`
}

type renameClassroomRequest struct {
	Name string `json:"name"`
}

type classroomResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	TeacherIDs []string  `json:"teacher_ids"`
	Year       int       `json:"year"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// visibleTo: admin ve todas; teacher solo las suyas.
func visibleTo(u users.User, c Classroom) bool {
	return u.HasRole(users.RoleAdmin) || c.HasTeacher(u.ID) || u.TeachesIn(c.ID)
}

// listClassroomsHandler godoc
// @Summary Listar salas
// @Description Admin ve todas las salas; teacher solo las asignadas. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags classrooms
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} classroomResponse
// @Failure 401 {object} map[string]string "unauthorized"
// @Failure 403 {object} map[string]string "forbidden"
// @Failure 500 {string} string "internal error"
// @Router /classrooms [get]
func listClassroomsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := session.CurrentUser(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]classroomResponse, 0, len(items))
		for _, c := range items {
			if visibleTo(u, c) {
				out = append(out, toClassroomResponse(c))
			}
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createClassroomHandler godoc
// @Summary Crear sala
// @Description Solo admin. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags classrooms
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createClassroomRequest true "Datos de la sala"
// @Success 201 {object} classroomResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 401 {object} map[string]string "unauthorized"
// @Failure 403 {object} map[string]string "forbidden"
// @Router /classrooms [post]
func createClassroomHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createClassroomRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Create(r.Context(), CreateInput{
			Name:       req.Name,
			TeacherIDs: req.TeacherIDs,
			Year:       req.Year,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toClassroomResponse(c))
	}
}

// getClassroomHandler godoc
// @Summary Ver sala
// @Tags classrooms
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param classroomID path string true "ID de la sala"
// @Success 200 {object} classroomResponse
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "classroom not found"
// @Router /classrooms/{classroomID} [get]
func getClassroomHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := session.CurrentUser(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		c, err := svc.GetByID(r.Context(), chi.URLParam(r, "classroomID"))
		if err != nil {
			http.Error(w, "classroom not found", http.StatusNotFound)
			return
		}
		if !visibleTo(u, c) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		writeJSON(w, http.StatusOK, toClassroomResponse(c))
	}
}

// renameClassroomHandler godoc
// @Summary Renombrar sala
// @Description Solo admin.
// @Tags classrooms
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param classroomID path string true "ID de la sala"
// @Param payload body renameClassroomRequest true "Nuevo nombre"
// @Success 200 {object} classroomResponse
// @Failure 400 {string} string "invalid input"
// @Failure 404 {string} string "classroom not found"
// @Router /classrooms/{classroomID} [patch]
func renameClassroomHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req renameClassroomRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Rename(r.Context(), chi.URLParam(r, "classroomID"), req.Name)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "classroom not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toClassroomResponse(c))
	}
}

func toClassroomResponse(c Classroom) classroomResponse {
	teachers := c.TeacherIDs
	if teachers == nil {
		teachers = []string{}
	}
	return classroomResponse{
		ID:         c.ID,
		Name:       c.Name,
		TeacherIDs: teachers,
		Year:       c.Year,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package children

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"daycare-log/internal/domain/access"
	"daycare-log/internal/domain/events"
	"daycare-log/internal/domain/users"
	"daycare-log/internal/session"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	authed := r.With(access.RequireRole())
	staff := r.With(access.RequireRole(users.RoleAdmin, users.RoleTeacher))
	admin := r.With(access.RequireRole(users.RoleAdmin))

	admin.Post("/children", createChildHandler(svc))
	authed.Get("/children/{childID}", getChildHandler(svc))
	staff.Get("/classrooms/{classroomID}/children", listClassroomChildrenHandler(svc))

	// Hijos del tutor logueado
	authed.Get("/me/children", listMyChildrenHandler(svc))
}

type createChildRequest struct {
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	BirthDate   string   `json:"birth_date"` // YYYY-MM-DD opcional
	AvatarURL   string   `json:"avatar_url"`
	ClassroomID string   `json:"classroom_id"`
	GuardianIDs []string `json:"guardian_ids"`
}

type childResponse struct {
	ID          string                   `json:"id"`
	FirstName   string                   `json:"first_name"`
	LastName    string                   `json:"last_name"`
	BirthDate   *time.Time               `json:"birth_date,omitempty"`
	AvatarURL   string                   `json:"avatar_url,omitempty"`
	ClassroomID string                   `json:"classroom_id"`
	GuardianIDs []string                 `json:"guardian_ids"`
	LastEvent   *events.LastEventSummary `json:"last_event"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// createChildHandler godoc
// @Summary Crear niño
// @Description Solo admin. El niño nace sin last_event. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags children
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createChildRequest true "Datos del niño; birth_date en formato YYYY-MM-DD"
// @Success 201 {object} childResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 401 {object} map[string]string "unauthorized"
// @Failure 403 {object} map[string]string "forbidden"
// @Router /children [post]
func createChildHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createChildRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var bd *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse("2006-01-02", req.BirthDate)
			if err != nil {
				http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			bd = &t
		}

		c, err := svc.Create(r.Context(), CreateInput{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			BirthDate:   bd,
			AvatarURL:   req.AvatarURL,
			ClassroomID: req.ClassroomID,
			GuardianIDs: req.GuardianIDs,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toChildResponse(c))
	}
}

// getChildHandler godoc
// @Summary Ver niño
// @Description Incluye el resumen del último evento. Admin ve todo; teacher niños de sus salas; parent sus hijos.
// @Tags children
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param childID path string true "ID del niño"
// @Success 200 {object} childResponse
// @Failure 401 {object} map[string]string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "child not found"
// @Router /children/{childID} [get]
func getChildHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := session.CurrentUser(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		c, err := svc.GetByID(r.Context(), chi.URLParam(r, "childID"))
		if err != nil {
			http.Error(w, "child not found", http.StatusNotFound)
			return
		}

		allowed, err := svc.CanRead(r.Context(), u, c)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !allowed {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		writeJSON(w, http.StatusOK, toChildResponse(c))
	}
}

// listClassroomChildrenHandler godoc
// @Summary Niños de una sala
// @Description Admin o teacher de la sala.
// @Tags children
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param classroomID path string true "ID de la sala"
// @Success 200 {array} childResponse
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "classroom not found"
// @Router /classrooms/{classroomID}/children [get]
func listClassroomChildrenHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := session.CurrentUser(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		classroomID := chi.URLParam(r, "classroomID")
		if !u.HasRole(users.RoleAdmin) {
			teaches, err := svc.teaches(r.Context(), u, classroomID)
			if err != nil {
				http.Error(w, "classroom not found", http.StatusNotFound)
				return
			}
			if !teaches {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
		}

		items, err := svc.ListByClassroom(r.Context(), classroomID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toChildResponses(items))
	}
}

// listMyChildrenHandler godoc
// @Summary Mis hijos (tutor)
// @Description Niños que tienen al usuario logueado como tutor.
// @Tags children
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} childResponse
// @Failure 401 {object} map[string]string "unauthorized"
// @Router /me/children [get]
func listMyChildrenHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := session.CurrentUser(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByGuardian(r.Context(), u.ID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toChildResponses(items))
	}
}

func toChildResponses(items []Child) []childResponse {
	out := make([]childResponse, 0, len(items))
	for _, c := range items {
		out = append(out, toChildResponse(c))
	}
	return out
}

func toChildResponse(c Child) childResponse {
	guardians := c.GuardianIDs
	if guardians == nil {
		guardians = []string{}
	}
	return childResponse{
		ID:          c.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		BirthDate:   c.BirthDate,
		AvatarURL:   c.AvatarURL,
		ClassroomID: c.ClassroomID,
		GuardianIDs: guardians,
		LastEvent:   c.LastEvent,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

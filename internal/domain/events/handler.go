package events

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"daycare-log/internal/domain/access"
	"daycare-log/internal/domain/events/details"
	"daycare-log/internal/domain/users"
	"daycare-log/internal/session"

	"github.com/go-chi/chi/v5"
)

// ChildAccess resuelve permisos sobre niños sin importar el paquete children.
type ChildAccess interface {
	CanReadChild(ctx context.Context, u users.User, childID string) error
	CanLogEvents(ctx context.Context, u users.User, childIDs []string) error
}

func RegisterRoutes(r chi.Router, svc *Service, childAccess ChildAccess) {
	r.Get("/event-categories", listCategoriesHandler())

	r.Route("/events", func(er chi.Router) {
		er.Use(access.RequireRole(users.RoleTeacher, users.RoleAdmin))
		er.Post("/", createEventsHandler(svc, childAccess))
		er.Delete("/{eventID}", deleteEventHandler(svc, childAccess))
	})

	r.With(access.RequireRole()).Get("/children/{childID}/events", listChildEventsHandler(svc, childAccess))
}

// createEventsRequest: un evento grupal se manda una vez con varios child_ids.
type createEventsRequest struct {
	Category  Category        `json:"category" enums:"food,sleep,diaper,medicine,activity,incident,general_note"`
	Details   json.RawMessage `json:"details" swaggertype:"object"`
	EventTime string          `json:"event_time"` // RFC3339
	ChildIDs  []string        `json:"child_ids"`
}

type eventResponse struct {
	ID        string          `json:"id"`
	ChildID   string          `json:"child_id"`
	StaffID   string          `json:"staff_id"`
	EventTime time.Time       `json:"event_time"`
	Category  Category        `json:"category"`
	Details   details.Details `json:"details" swaggertype:"object"`
	Summary   string          `json:"summary"`
	CreatedAt time.Time       `json:"created_at"`
	CreatedBy string          `json:"created_by"`
	UpdatedAt time.Time       `json:"updated_at"`
	UpdatedBy string          `json:"updated_by"`
	DeletedAt *time.Time      `json:"deleted_at,omitempty"`
	DeletedBy string          `json:"deleted_by,omitempty"`
}

type createEventsResponse struct {
	Events []eventResponse `json:"events"`
}

// listCategoriesHandler godoc
// @Summary Catálogo de categorías de evento
// @Description Devuelve el registro de categorías en orden de presentación: etiqueta, color, ícono, tipo de formulario y opciones.
// @Tags events
// @Produce json
// @Success 200 {array} CategoryConfig
// @Router /event-categories [get]
func listCategoriesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, Categories())
	}
}

// createEventsHandler godoc
// @Summary Registrar evento (individual o grupal)
// @Description Crea un evento por cada niño indicado y actualiza el resumen de cada uno en una sola transacción: o se guardan todos o ninguno. Requiere rol teacher (asignada a la sala de cada niño) o admin. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags events
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createEventsRequest true "Categoría, details según la categoría, event_time RFC3339 y child_ids"
// @Success 201 {object} createEventsResponse
// @Failure 400 {string} string "invalid json / payload inválido para la categoría"
// @Failure 401 {object} map[string]string "unauthorized"
// @Failure 403 {object} map[string]string "forbidden"
// @Failure 422 {string} string "could not save the event"
// @Failure 500 {string} string "could not save the event"
// @Router /events [post]
func createEventsHandler(svc *Service, childAccess ChildAccess) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := session.CurrentUser(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createEventsRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		t, err := time.Parse(time.RFC3339, strings.TrimSpace(req.EventTime))
		if err != nil {
			http.Error(w, "event_time must be RFC3339", http.StatusBadRequest)
			return
		}

		d, err := DecodeDetails(req.Category, req.Details)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		childIDs := NormalizeIDs(req.ChildIDs)
		if err := childAccess.CanLogEvents(r.Context(), u, childIDs); err != nil {
			writeCreateError(w, err)
			return
		}

		created, err := svc.CreateEvents(r.Context(), CreateEventsInput{
			Payload:  Payload{Category: req.Category, Details: d, EventTime: t},
			ChildIDs: childIDs,
			StaffID:  u.ID,
		})
		if err != nil {
			writeCreateError(w, err)
			return
		}

		out := createEventsResponse{Events: make([]eventResponse, 0, len(created))}
		for _, e := range created {
			out.Events = append(out.Events, toEventResponse(e))
		}
		writeJSON(w, http.StatusCreated, out)
	}
}

// writeCreateError: el texto de fallo de guardado es siempre el mismo.
func writeCreateError(w http.ResponseWriter, err error) {
	const saveFailed = "could not save the event"

	switch {
	case errors.Is(err, ErrInvalidPayload):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrChildNotFound):
		http.Error(w, saveFailed, http.StatusUnprocessableEntity)
	default:
		http.Error(w, saveFailed, http.StatusInternalServerError)
	}
}

// listChildEventsHandler godoc
// @Summary Bitácora de un niño
// @Description Lista los eventos no borrados del niño, más nuevos primero. Admin ve todo; teacher solo niños de sus salas; parent solo sus hijos. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags events
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param childID path string true "ID del niño"
// @Param date query string false "Día (YYYY-MM-DD)"
// @Param tz query string false "Zona horaria IANA para el día (default UTC)"
// @Param categories query string false "Lista CSV de categorías (ej: food,sleep)"
// @Param limit query int false "Máximo de eventos a devolver (1-200). Por defecto 50"
// @Success 200 {array} eventResponse
// @Failure 400 {string} string "Parámetros de filtro inválidos"
// @Failure 401 {object} map[string]string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "child not found"
// @Failure 500 {string} string "internal error"
// @Router /children/{childID}/events [get]
func listChildEventsHandler(svc *Service, childAccess ChildAccess) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := session.CurrentUser(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		childID := chi.URLParam(r, "childID")
		if err := childAccess.CanReadChild(r.Context(), u, childID); err != nil {
			switch {
			case errors.Is(err, ErrChildNotFound):
				http.Error(w, "child not found", http.StatusNotFound)
			case errors.Is(err, ErrForbidden):
				http.Error(w, "forbidden", http.StatusForbidden)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		filter, err := parseListFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.ListByChild(r.Context(), childID, filter)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]eventResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEventResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// deleteEventHandler godoc
// @Summary Borrar (lógico) un evento
// @Description Marca el evento como borrado. No modifica el resumen del niño. Requiere rol teacher (asignada a la sala del niño) o admin. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags events
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param eventID path string true "ID del evento"
// @Success 200 {object} eventResponse
// @Failure 401 {object} map[string]string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "event not found"
// @Failure 500 {string} string "internal error"
// @Router /events/{eventID} [delete]
func deleteEventHandler(svc *Service, childAccess ChildAccess) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := session.CurrentUser(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		ev, err := svc.GetByID(r.Context(), chi.URLParam(r, "eventID"))
		if err != nil || ev.Deleted() {
			http.Error(w, "event not found", http.StatusNotFound)
			return
		}

		// Permisos primero, para no filtrar datos del evento.
		if err := childAccess.CanLogEvents(r.Context(), u, []string{ev.ChildID}); err != nil {
			if errors.Is(err, ErrForbidden) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			http.Error(w, "event not found", http.StatusNotFound)
			return
		}

		deleted, err := svc.Delete(r.Context(), ev.ID, u.ID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "event not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toEventResponse(deleted))
	}
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	q := r.URL.Query()

	limit := defaultListLimit
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= maxListLimit {
			limit = n
		}
	}
	filter := ListFilter{Limit: limit}

	// categories=food,sleep
	if v := strings.TrimSpace(q.Get("categories")); v != "" {
		for _, p := range strings.Split(v, ",") {
			c := Category(strings.TrimSpace(p))
			if c == "" {
				continue
			}
			if !c.Valid() {
				return ListFilter{}, errors.New("unknown category " + string(c))
			}
			filter.Categories = append(filter.Categories, c)
		}
	}

	// date=YYYY-MM-DD (&tz=America/Santiago)
	if v := strings.TrimSpace(q.Get("date")); v != "" {
		loc := time.UTC
		if tz := strings.TrimSpace(q.Get("tz")); tz != "" {
			l, err := time.LoadLocation(tz)
			if err != nil {
				return ListFilter{}, errors.New("tz must be an IANA time zone")
			}
			loc = l
		}
		day, err := time.ParseInLocation("2006-01-02", v, loc)
		if err != nil {
			return ListFilter{}, errors.New("date must be YYYY-MM-DD")
		}
		filter.Day = &day
	}

	return filter, nil
}

func toEventResponse(e Event) eventResponse {
	return eventResponse{
		ID:        e.ID,
		ChildID:   e.ChildID,
		StaffID:   e.StaffID,
		EventTime: e.EventTime,
		Category:  e.Category,
		Details:   e.Details,
		Summary:   Describe(e.Category, e.Details),
		CreatedAt: e.Audit.CreatedAt,
		CreatedBy: e.Audit.CreatedBy,
		UpdatedAt: e.Audit.UpdatedAt,
		UpdatedBy: e.Audit.UpdatedBy,
		DeletedAt: e.Audit.DeletedAt,
		DeletedBy: e.Audit.DeletedBy,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
// Si más adelante se repite en más módulos, recién conviene extraerlo a un helper común.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"daycare-log/internal/adapters/auth/jwtverifier"
	"daycare-log/internal/adapters/storage"
	"daycare-log/internal/adapters/storage/memory"
	"daycare-log/internal/domain/users"
	"daycare-log/internal/router"
)

const (
	adminID   = "admin-1"
	teacherID = "teacher-1"
	parentID  = "parent-1"
)

// newServer arma el router sobre un store in-memory con tres usuarios base.
func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	repos := storage.From(memory.NewStore())
	svcs := router.NewServices(repos, nil)
	ctx := context.Background()

	for _, in := range []users.CreateInput{
		{ID: adminID, Email: "admin@daycare.test", Roles: []users.Role{users.RoleAdmin}},
		{ID: teacherID, Email: "ana@daycare.test", FirstName: "Ana", Roles: []users.Role{users.RoleTeacher}},
		{ID: parentID, Email: "pablo@daycare.test", Roles: []users.Role{users.RoleParent}},
	} {
		if _, err := svcs.Users.Create(ctx, in); err != nil {
			t.Fatalf("seed user %s: %v", in.ID, err)
		}
	}

	ts := httptest.NewServer(router.NewRouter(router.Options{Repos: repos}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_GroupDiaperEvent(t *testing.T) {
	ts := newServer(t)

	// 1) Admin crea sala con la docente asignada
	classroomID := createClassroom(t, ts.URL, "Sala Roja", teacherID)

	// 2) Admin crea dos niños; A tiene al tutor
	childA := createChild(t, ts.URL, map[string]any{
		"first_name": "Alma", "classroom_id": classroomID, "guardian_ids": []string{parentID},
	})
	childB := createChild(t, ts.URL, map[string]any{
		"first_name": "Bruno", "classroom_id": classroomID,
	})

	// 3) La docente registra el mismo cambio de pañal para los dos
	{
		st, body := doReq(t, ts.URL, "POST", "/events", teacherID, map[string]any{
			"category":   "diaper",
			"details":    map[string]any{"type": "poo"},
			"event_time": "2026-03-02T10:30:00Z",
			"child_ids":  []string{childA, childB},
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 creating events, got %d body=%s", st, string(body))
		}
		var out struct {
			Events []struct {
				ChildID string `json:"child_id"`
				StaffID string `json:"staff_id"`
			} `json:"events"`
		}
		mustJSON(t, body, &out)
		if len(out.Events) != 2 {
			t.Fatalf("expected 2 events, got %d", len(out.Events))
		}
		if out.Events[0].ChildID != childA || out.Events[1].ChildID != childB {
			t.Fatalf("unexpected child order: %+v", out.Events)
		}
		if out.Events[0].StaffID != teacherID {
			t.Fatalf("expected staff %s, got %s", teacherID, out.Events[0].StaffID)
		}
	}

	// 4) Cada niño queda con su resumen
	for _, id := range []string{childA, childB} {
		st, body := doReq(t, ts.URL, "GET", "/children/"+id, adminID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get child, got %d body=%s", st, string(body))
		}
		var c struct {
			LastEvent *struct {
				Category    string `json:"category"`
				Description string `json:"description"`
			} `json:"last_event"`
		}
		mustJSON(t, body, &c)
		if c.LastEvent == nil || c.LastEvent.Category != "diaper" || c.LastEvent.Description != "Diaper change (poo)." {
			t.Fatalf("unexpected last_event for %s: %s", id, string(body))
		}
	}

	// 5) El tutor ve la bitácora de su hijo, no la del otro
	{
		st, body := doReq(t, ts.URL, "GET", "/children/"+childA+"/events?date=2026-03-02", parentID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 timeline for guardian, got %d body=%s", st, string(body))
		}
		var list []map[string]any
		mustJSON(t, body, &list)
		if len(list) != 1 {
			t.Fatalf("expected 1 event in timeline, got %d", len(list))
		}

		st, _ = doReq(t, ts.URL, "GET", "/children/"+childB+"/events", parentID, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 for other child timeline, got %d", st)
		}
	}

	// 6) Tutor lista sus hijos
	{
		st, body := doReq(t, ts.URL, "GET", "/me/children", parentID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 my children, got %d", st)
		}
		var list []map[string]any
		mustJSON(t, body, &list)
		if len(list) != 1 || list[0]["id"] != childA {
			t.Fatalf("unexpected my children: %s", string(body))
		}
	}
}

func TestHTTP_CreateEvents_Rejections(t *testing.T) {
	ts := newServer(t)
	classroomID := createClassroom(t, ts.URL, "Sala Azul")
	childA := createChild(t, ts.URL, map[string]any{"first_name": "Alma", "classroom_id": classroomID})

	valid := func(ids ...string) map[string]any {
		return map[string]any{
			"category":   "diaper",
			"details":    map[string]any{"type": "pee"},
			"event_time": "2026-03-02T10:30:00Z",
			"child_ids":  ids,
		}
	}

	// Sin sesión: 401 con destino sign-in
	{
		st, body := doReq(t, ts.URL, "POST", "/events", "", valid(childA))
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without session, got %d", st)
		}
		if !strings.Contains(string(body), "/sign-in") {
			t.Fatalf("expected sign-in redirect, got %s", string(body))
		}
	}

	// Tutor no puede registrar: 403 con su landing
	{
		st, body := doReq(t, ts.URL, "POST", "/events", parentID, valid(childA))
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 for guardian, got %d", st)
		}
		if !strings.Contains(string(body), "/guardian/timeline") {
			t.Fatalf("expected guardian landing, got %s", string(body))
		}
	}

	// Docente sin asignación a la sala
	{
		st, _ := doReq(t, ts.URL, "POST", "/events", teacherID, valid(childA))
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 for unassigned teacher, got %d", st)
		}
	}

	// Details inválidos para la categoría
	{
		bad := valid(childA)
		bad["details"] = map[string]any{"type": "wet"}
		st, _ := doReq(t, ts.URL, "POST", "/events", adminID, bad)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for invalid details, got %d", st)
		}
	}

	// Un niño inexistente: no se guarda nada
	{
		st, body := doReq(t, ts.URL, "POST", "/events", adminID, valid(childA, "ghost"))
		if st != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422 for unknown child, got %d", st)
		}
		if strings.TrimSpace(string(body)) != "could not save the event" {
			t.Fatalf("unexpected body: %q", string(body))
		}

		st, body = doReq(t, ts.URL, "GET", "/children/"+childA+"/events", adminID, nil)
		if st != http.StatusOK || strings.TrimSpace(string(body)) != "[]" {
			t.Fatalf("expected empty timeline after failed fan-out, got %d %s", st, string(body))
		}
	}
}

func TestHTTP_DeleteEvent_KeepsSummary(t *testing.T) {
	ts := newServer(t)
	classroomID := createClassroom(t, ts.URL, "Sala Verde", teacherID)
	childA := createChild(t, ts.URL, map[string]any{"first_name": "Alma", "classroom_id": classroomID})

	st, body := doReq(t, ts.URL, "POST", "/events", teacherID, map[string]any{
		"category":   "food",
		"details":    map[string]any{"mealType": "lunch", "description": "rice"},
		"event_time": "2026-03-02T12:00:00Z",
		"child_ids":  []string{childA},
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", st, string(body))
	}
	var out struct {
		Events []struct {
			ID string `json:"id"`
		} `json:"events"`
	}
	mustJSON(t, body, &out)

	st, _ = doReq(t, ts.URL, "DELETE", "/events/"+out.Events[0].ID, teacherID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 delete, got %d", st)
	}
	st, _ = doReq(t, ts.URL, "DELETE", "/events/"+out.Events[0].ID, teacherID, nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 deleting twice, got %d", st)
	}

	_, body = doReq(t, ts.URL, "GET", "/children/"+childA, adminID, nil)
	if !strings.Contains(string(body), "Ate lunch: rice.") {
		t.Fatalf("expected summary to survive delete, got %s", string(body))
	}
}

func TestHTTP_GuardAndCatalog(t *testing.T) {
	ts := newServer(t)

	cases := []struct {
		user, screen, decision, target string
	}{
		{"", "admin", "redirect", "/sign-in"},
		{teacherID, "admin", "redirect", "/teacher/events"},
		{teacherID, "teacher-events", "render", ""},
		{parentID, "teacher-log", "redirect", "/guardian/timeline"},
		{adminID, "admin-users", "render", ""},
		{"unknown-user", "guardian-timeline", "redirect", "/sign-in"},
	}
	for _, tc := range cases {
		st, body := doReq(t, ts.URL, "GET", "/guard/"+tc.screen, tc.user, nil)
		if st != http.StatusOK {
			t.Fatalf("guard %s/%s: expected 200, got %d", tc.user, tc.screen, st)
		}
		var d struct {
			Decision string `json:"decision"`
			Target   string `json:"target"`
		}
		mustJSON(t, body, &d)
		if d.Decision != tc.decision || d.Target != tc.target {
			t.Fatalf("guard %s/%s: got %+v", tc.user, tc.screen, d)
		}
	}

	st, body := doReq(t, ts.URL, "GET", "/event-categories", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 catalog, got %d", st)
	}
	var cats []struct {
		Category string `json:"category"`
	}
	mustJSON(t, body, &cats)
	if len(cats) != 7 || cats[0].Category != "food" || cats[6].Category != "general_note" {
		t.Fatalf("unexpected catalog: %s", string(body))
	}
}

func TestHTTP_BearerTokens(t *testing.T) {
	repos := storage.From(memory.NewStore())
	svcs := router.NewServices(repos, nil)
	if _, err := svcs.Users.Create(context.Background(), users.CreateInput{
		ID: adminID, Email: "admin@daycare.test", Roles: []users.Role{users.RoleAdmin},
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	v, err := jwtverifier.New("test-secret", "daycare-log")
	if err != nil {
		t.Fatalf("verifier: %v", err)
	}
	ts := httptest.NewServer(router.NewRouter(router.Options{Repos: repos, AuthVerifier: v}))
	defer ts.Close()

	tok, err := v.Sign(adminID, "admin@daycare.test", time.Hour, time.Now())
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req, _ := http.NewRequest("GET", ts.URL+"/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with bearer token, got %d", res.StatusCode)
	}

	// Con verifier configurado el header de debug no vale
	st, _ := doReq(t, ts.URL, "GET", "/me", adminID, nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 with debug header in prod mode, got %d", st)
	}
}

// -------------------------
// Helpers
// -------------------------

func createClassroom(t *testing.T, baseURL, name string, teacherIDs ...string) string {
	t.Helper()
	st, body := doReq(t, baseURL, "POST", "/classrooms", adminID, map[string]any{
		"name":        name,
		"teacher_ids": teacherIDs,
		"year":        2026,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 creating classroom, got %d body=%s", st, string(body))
	}
	var out struct {
		ID string `json:"id"`
	}
	mustJSON(t, body, &out)
	return out.ID
}

func createChild(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()
	st, body := doReq(t, baseURL, "POST", "/children", adminID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 creating child, got %d body=%s", st, string(body))
	}
	var out struct {
		ID string `json:"id"`
	}
	mustJSON(t, body, &out)
	return out.ID
}

func mustJSON(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("decode json: %v body=%s", err, string(body))
	}
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}

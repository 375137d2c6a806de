/*
handlers_test.go - Handler tests over an in-memory store

Tests for:
- Collaborator CRUD and comma-decimal hour normalization
- Engine endpoints (availability, release forecast, daily allocation)
- Calendar arithmetic endpoint
- Scenario loading
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/warp/capacity-engine/capacity"
	"github.com/warp/capacity-engine/schedule"
	"github.com/warp/capacity-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestHandler(t *testing.T) (*Handler, http.Handler) {
	store, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	h := NewHandler(store, capacity.NewEngine(capacity.DefaultPolicy()))
	return h, NewRouter(h)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return out
}

func datePtrOf(d schedule.Date) *schedule.Date { return &d }

// seedPlanningData inserts one collaborator, a delivery project and a 40h
// task covering the first working week of September 2025.
func seedPlanningData(t *testing.T, h *Handler) {
	t.Helper()
	ctx := context.Background()

	if err := h.Store.SaveCollaborator(ctx, capacity.Collaborator{
		ID: "ana", Name: "Ana", DailyAvailableHours: capacity.NewHours(8),
	}); err != nil {
		t.Fatalf("Failed to save collaborator: %v", err)
	}

	delivery := schedule.NewDate(2025, time.September, 30)
	if err := h.Store.SaveProject(ctx, capacity.Project{
		ID: "proj-a", Name: "Delivery A", EstimatedDelivery: &delivery,
	}); err != nil {
		t.Fatalf("Failed to save project: %v", err)
	}
	if err := h.Store.SaveProjectMember(ctx, capacity.ProjectMember{
		ProjectID: "proj-a", CollaboratorID: "ana",
	}); err != nil {
		t.Fatalf("Failed to save member: %v", err)
	}

	if err := h.Store.SaveTask(ctx, capacity.Task{
		ID:                "task-1",
		ProjectID:         "proj-a",
		Name:              "Build",
		AssigneeID:        "ana",
		EstimatedHours:    capacity.NewHours(40),
		ScheduledStart:    datePtrOf(schedule.NewDate(2025, time.September, 1)),
		EstimatedDelivery: datePtrOf(schedule.NewDate(2025, time.September, 5)),
		Status:            capacity.StatusInProgress,
	}); err != nil {
		t.Fatalf("Failed to save task: %v", err)
	}
}

// =============================================================================
// COLLABORATOR TESTS
// =============================================================================

func TestCreateCollaborator_CommaDecimalHours(t *testing.T) {
	// GIVEN: A form posting "7,5" hours (comma decimal separator)
	// WHEN: Creating the collaborator
	// THEN: The value is normalized to 7.5 before storage

	_, router := newTestHandler(t)

	rec := doJSON(t, router, http.MethodPost, "/api/collaborators", map[string]any{
		"id":                    "ana",
		"name":                  "Ana",
		"daily_available_hours": "7,5",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
	}

	got := decode[CollaboratorDTO](t, rec)
	if got.DailyAvailableHours != 7.5 {
		t.Errorf("expected 7.5 daily hours, got %v", got.DailyAvailableHours)
	}
}

func TestCreateCollaborator_MissingFields_400(t *testing.T) {
	_, router := newTestHandler(t)

	rec := doJSON(t, router, http.MethodPost, "/api/collaborators", map[string]any{"id": "ana"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetCollaborator_NotFound(t *testing.T) {
	_, router := newTestHandler(t)

	rec := doJSON(t, router, http.MethodGet, "/api/collaborators/ghost", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

// =============================================================================
// ENGINE ENDPOINT TESTS
// =============================================================================

func TestGetAvailability_EndToEnd(t *testing.T) {
	// GIVEN: A 40h planned task in September 2025 (22 working days, 8h/day)
	// WHEN: Requesting the month's availability
	// THEN: 40h planned against a 176h target, normal status

	h, router := newTestHandler(t)
	seedPlanningData(t, h)

	rec := doJSON(t, router, http.MethodGet, "/api/collaborators/ana/availability?month=2025-09", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	got := decode[AvailabilityDTO](t, rec)
	if got.PlannedHours != 40 {
		t.Errorf("expected 40 planned hours, got %v", got.PlannedHours)
	}
	if got.TargetHours != 176 {
		t.Errorf("expected 176 target hours, got %v", got.TargetHours)
	}
	if got.Status != "normal" {
		t.Errorf("expected normal status, got %q", got.Status)
	}
	if len(got.Breakdown.Planned) != 1 {
		t.Errorf("expected one planned breakdown item, got %d", len(got.Breakdown.Planned))
	}
}

func TestGetAvailability_BadMonth_400(t *testing.T) {
	h, router := newTestHandler(t)
	seedPlanningData(t, h)

	rec := doJSON(t, router, http.MethodGet, "/api/collaborators/ana/availability?month=September", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetReleaseForecast_ExplicitToday(t *testing.T) {
	// GIVEN: A 40h backlog and an explicit "today" of Monday Sep 1
	// WHEN: Forecasting
	// THEN: Ideal clears on Friday Sep 5; realistic (half capacity) on Sep 12

	h, router := newTestHandler(t)
	seedPlanningData(t, h)

	rec := doJSON(t, router, http.MethodGet, "/api/collaborators/ana/release?from=2025-09-01", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	got := decode[ReleaseForecastDTO](t, rec)
	if got.Ideal == nil || *got.Ideal != "2025-09-05" {
		t.Errorf("expected ideal 2025-09-05, got %v", got.Ideal)
	}
	if got.Realistic == nil || *got.Realistic != "2025-09-12" {
		t.Errorf("expected realistic 2025-09-12, got %v", got.Realistic)
	}
	if got.IsSaturated {
		t.Error("forecast should not be saturated")
	}
}

func TestGetDailyAllocation_Week(t *testing.T) {
	h, router := newTestHandler(t)
	seedPlanningData(t, h)

	rec := doJSON(t, router, http.MethodGet,
		"/api/collaborators/ana/allocation?start=2025-09-01&end=2025-09-05", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	got := decode[[]DailyAllocationDTO](t, rec)
	if len(got) != 5 {
		t.Fatalf("expected 5 days, got %d", len(got))
	}
	for _, day := range got {
		if day.PlannedHours != 8 {
			t.Errorf("expected 8h planned on %s, got %v", day.Date, day.PlannedHours)
		}
		if day.Overloaded {
			t.Errorf("unexpected overload on %s", day.Date)
		}
	}
}

func TestGetDailyAllocation_InvertedRange_400(t *testing.T) {
	h, router := newTestHandler(t)
	seedPlanningData(t, h)

	rec := doJSON(t, router, http.MethodGet,
		"/api/collaborators/ana/allocation?start=2025-09-05&end=2025-09-01", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

// =============================================================================
// CALENDAR ENDPOINT TESTS
// =============================================================================

func TestGetWorkingDays_Month(t *testing.T) {
	_, router := newTestHandler(t)

	rec := doJSON(t, router, http.MethodGet, "/api/calendar/working-days?month=2025-09", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	got := decode[WorkingDaysDTO](t, rec)
	if got.WorkingDays != 22 {
		t.Errorf("expected 22 working days in September 2025, got %v", got.WorkingDays)
	}
}

func TestGetWorkingDays_HolidayReduces(t *testing.T) {
	h, router := newTestHandler(t)

	err := h.Store.SaveHoliday(context.Background(), schedule.Holiday{
		ID: "hol-1", Name: "Holiday", Type: schedule.HolidayNational,
		Date: schedule.NewDate(2025, time.September, 1),
	})
	if err != nil {
		t.Fatalf("Failed to save holiday: %v", err)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/calendar/working-days?month=2025-09", nil)
	got := decode[WorkingDaysDTO](t, rec)
	if got.WorkingDays != 21 {
		t.Errorf("expected 21 working days with a Monday holiday, got %v", got.WorkingDays)
	}
}

func TestGetWorkingDays_InvertedRange_400(t *testing.T) {
	_, router := newTestHandler(t)

	rec := doJSON(t, router, http.MethodGet,
		"/api/calendar/working-days?start=2025-09-05&end=2025-09-01", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

// =============================================================================
// VALIDATION TESTS
// =============================================================================

func TestCreateAbsence_InvertedDates_400(t *testing.T) {
	_, router := newTestHandler(t)

	rec := doJSON(t, router, http.MethodPost, "/api/absences", AbsenceDTO{
		ID:             "abs-1",
		CollaboratorID: "ana",
		StartDate:      "2025-09-10",
		EndDate:        "2025-09-01",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateTask_DefaultsStatusToBacklog(t *testing.T) {
	h, router := newTestHandler(t)
	seedPlanningData(t, h)

	rec := doJSON(t, router, http.MethodPost, "/api/tasks", map[string]any{
		"id":              "task-2",
		"project_id":      "proj-a",
		"name":            "Polish",
		"estimated_hours": 10,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
	}

	got := decode[TaskDTO](t, rec)
	if got.Status != "backlog" {
		t.Errorf("expected backlog status, got %q", got.Status)
	}
}

// =============================================================================
// SCENARIO TESTS
// =============================================================================

func TestLoadScenario_StudioTeam(t *testing.T) {
	_, router := newTestHandler(t)

	rec := doJSON(t, router, http.MethodPost, "/api/scenarios/load",
		LoadScenarioRequest{ScenarioID: "studio-team"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/collaborators", nil)
	collabs := decode[[]CollaboratorDTO](t, rec)
	if len(collabs) != 2 {
		t.Errorf("expected 2 collaborators after loading studio-team, got %d", len(collabs))
	}

	rec = doJSON(t, router, http.MethodGet, "/api/scenarios/current", nil)
	current := decode[map[string]string](t, rec)
	if current["scenario_id"] != "studio-team" {
		t.Errorf("expected current scenario studio-team, got %q", current["scenario_id"])
	}
}

func TestLoadScenario_Unknown_400(t *testing.T) {
	_, router := newTestHandler(t)

	rec := doJSON(t, router, http.MethodPost, "/api/scenarios/load",
		LoadScenarioRequest{ScenarioID: "nope"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestResetDatabase_ClearsEverything(t *testing.T) {
	h, router := newTestHandler(t)
	seedPlanningData(t, h)

	rec := doJSON(t, router, http.MethodPost, "/api/scenarios/reset", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/collaborators", nil)
	collabs := decode[[]CollaboratorDTO](t, rec)
	if len(collabs) != 0 {
		t.Errorf("expected no collaborators after reset, got %d", len(collabs))
	}
}

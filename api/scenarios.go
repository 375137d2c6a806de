/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	data for testing and demos. Each scenario creates collaborators,
	projects, memberships, tasks, timesheet entries and calendar data that
	demonstrate specific engine behavior.

AVAILABLE SCENARIOS:

	studio-team:       Small studio with one delivery project and a
	                   retainer, mixed load
	overloaded-sprint: One collaborator with more committed work than the
	                   month can hold

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Create collaborators and clients
 3. Create projects and memberships
 4. Add tasks with estimates and delivery windows
 5. Add logged hours, absences and holidays

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "studio-team"}

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: response helpers
  - store/sqlite: the store being seeded
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/warp/capacity-engine/capacity"
	"github.com/warp/capacity-engine/schedule"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "studio-team",
		Name:        "Studio Team",
		Description: "Delivery project plus retainer; mixed planned and continuous load",
	},
	{
		ID:          "overloaded-sprint",
		Name:        "Overloaded Sprint",
		Description: "More committed hours than the month holds; overload and saturation",
	},
}

// ListScenarios returns the available demo scenarios.
// GET /api/scenarios
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario ID.
// GET /api/scenarios/current
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"scenario_id": h.currentScenario})
}

// LoadScenario resets the database and loads the requested scenario.
// POST /api/scenarios/load
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}

	var err error
	switch req.ScenarioID {
	case "studio-team":
		err = h.loadStudioTeamScenario(ctx)
	case "overloaded-sprint":
		err = h.loadOverloadedSprintScenario(ctx)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown scenario: %s", req.ScenarioID), nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	h.currentScenario = req.ScenarioID
	log.Printf("[Scenario] Loaded %s", req.ScenarioID)
	writeJSON(w, http.StatusOK, map[string]string{"scenario_id": req.ScenarioID})
}

// ResetDatabase clears all data.
// POST /api/scenarios/reset
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

// loadStudioTeamScenario seeds a small studio: one delivery project with a
// committed window and one retainer with no deadline. Dates anchor on the
// current month so the dashboard shows live data.
func (h *Handler) loadStudioTeamScenario(ctx context.Context) error {
	today := schedule.DateOf(time.Now())
	month := schedule.MonthPeriod(today.Year(), today.Month())

	ana := capacity.Collaborator{
		ID:                  "ana",
		Name:                "Ana Ribeiro",
		Email:               "ana@studio.example",
		DailyAvailableHours: capacity.NewHours(8),
	}
	bruno := capacity.Collaborator{
		ID:                  "bruno",
		Name:                "Bruno Costa",
		Email:               "bruno@studio.example",
		DailyAvailableHours: capacity.NewHours(6),
	}
	for _, c := range []capacity.Collaborator{ana, bruno} {
		if err := h.Store.SaveCollaborator(ctx, c); err != nil {
			return err
		}
	}

	delivery := month.End
	website := capacity.Project{
		ID:                "proj-website",
		Name:              "Website Relaunch",
		StartDate:         &month.Start,
		EstimatedDelivery: &delivery,
	}
	retainer := capacity.Project{
		ID:   "proj-retainer",
		Name: "Support Retainer",
	}
	for _, p := range []capacity.Project{website, retainer} {
		if err := h.Store.SaveProject(ctx, p); err != nil {
			return err
		}
	}

	members := []capacity.ProjectMember{
		{ProjectID: website.ID, CollaboratorID: ana.ID, Role: "lead"},
		{ProjectID: website.ID, CollaboratorID: bruno.ID},
		{ProjectID: retainer.ID, CollaboratorID: ana.ID},
	}
	for _, m := range members {
		if err := h.Store.SaveProjectMember(ctx, m); err != nil {
			return err
		}
	}

	tasks := []capacity.Task{
		{
			ID:                "task-frontend",
			ProjectID:         website.ID,
			Name:              "Frontend build",
			AssigneeID:        ana.ID,
			EstimatedHours:    capacity.NewHours(60),
			ScheduledStart:    &month.Start,
			EstimatedDelivery: &delivery,
			Status:            capacity.StatusInProgress,
		},
		{
			ID:                "task-cms",
			ProjectID:         website.ID,
			Name:              "CMS migration",
			AssigneeID:        bruno.ID,
			Collaborators:     []string{ana.ID},
			EstimatedHours:    capacity.NewHours(40),
			ScheduledStart:    &month.Start,
			EstimatedDelivery: &delivery,
			Status:            capacity.StatusBacklog,
		},
		{
			ID:             "task-support",
			ProjectID:      retainer.ID,
			Name:           "Support rotation",
			AssigneeID:     ana.ID,
			EstimatedHours: capacity.NewHours(20),
			Status:         capacity.StatusInProgress,
		},
	}
	for _, t := range tasks {
		if err := h.Store.SaveTask(ctx, t); err != nil {
			return err
		}
	}

	entries := []capacity.TimesheetEntry{
		{ID: "ts-1", CollaboratorID: ana.ID, TaskID: "task-frontend", ProjectID: website.ID, Date: month.Start, TotalHours: capacity.NewHours(8)},
		{ID: "ts-2", CollaboratorID: ana.ID, TaskID: "task-frontend", ProjectID: website.ID, Date: month.Start.AddDays(1), TotalHours: capacity.NewHours(6)},
	}
	for _, e := range entries {
		if err := h.Store.SaveTimesheetEntry(ctx, e); err != nil {
			return err
		}
	}

	absence := schedule.Absence{
		ID:             "abs-ana-1",
		CollaboratorID: ana.ID,
		StartDate:      month.Start.AddDays(14),
		EndDate:        month.Start.AddDays(15),
		Status:         schedule.AbsenceApproved,
	}
	if err := h.Store.SaveAbsence(ctx, absence); err != nil {
		return err
	}

	holiday := schedule.Holiday{
		ID:   "hol-1",
		Name: "Corporate holiday",
		Type: schedule.HolidayCorporate,
		Date: month.Start.AddDays(9),
	}
	return h.Store.SaveHoliday(ctx, holiday)
}

// loadOverloadedSprintScenario seeds one collaborator with far more
// committed hours than the month holds, demonstrating overloaded days
// and a saturated realistic forecast.
func (h *Handler) loadOverloadedSprintScenario(ctx context.Context) error {
	today := schedule.DateOf(time.Now())
	month := schedule.MonthPeriod(today.Year(), today.Month())

	carla := capacity.Collaborator{
		ID:                  "carla",
		Name:                "Carla Mendes",
		Email:               "carla@studio.example",
		DailyAvailableHours: capacity.NewHours(8),
	}
	if err := h.Store.SaveCollaborator(ctx, carla); err != nil {
		return err
	}

	deadline := month.Start.AddDays(11)
	crunch := capacity.Project{
		ID:                "proj-crunch",
		Name:              "Launch Crunch",
		StartDate:         &month.Start,
		EstimatedDelivery: &deadline,
	}
	if err := h.Store.SaveProject(ctx, crunch); err != nil {
		return err
	}
	if err := h.Store.SaveProjectMember(ctx, capacity.ProjectMember{ProjectID: crunch.ID, CollaboratorID: carla.ID}); err != nil {
		return err
	}

	tasks := []capacity.Task{
		{
			ID:                "task-launch-1",
			ProjectID:         crunch.ID,
			Name:              "Launch integration",
			AssigneeID:        carla.ID,
			EstimatedHours:    capacity.NewHours(120),
			ScheduledStart:    &month.Start,
			EstimatedDelivery: &deadline,
			Status:            capacity.StatusInProgress,
		},
		{
			ID:                "task-launch-2",
			ProjectID:         crunch.ID,
			Name:              "Launch QA",
			AssigneeID:        carla.ID,
			EstimatedHours:    capacity.NewHours(80),
			ScheduledStart:    &month.Start,
			EstimatedDelivery: &deadline,
			Status:            capacity.StatusBacklog,
		},
	}
	for _, t := range tasks {
		if err := h.Store.SaveTask(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

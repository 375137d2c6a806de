/*
handlers.go - HTTP API handlers for the capacity planning system

PURPOSE:
  Exposes the planning data CRUD and the capacity engine via REST API.
  Handlers stay thin:
  1. Parse and validate input
  2. Load the relevant snapshot from the store
  3. Call the engine (pure computation, no writes)
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input (inverted ranges included)
  - 404: Resource not found
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/warp/capacity-engine/capacity"
	"github.com/warp/capacity-engine/schedule"
	"github.com/warp/capacity-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  *sqlite.Store
	Engine *capacity.Engine

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler creates a new handler with the given store and engine.
func NewHandler(store *sqlite.Store, engine *capacity.Engine) *Handler {
	return &Handler{Store: store, Engine: engine}
}

// =============================================================================
// COLLABORATOR HANDLERS
// =============================================================================

// ListCollaborators returns all collaborators.
func (h *Handler) ListCollaborators(w http.ResponseWriter, r *http.Request) {
	collabs, err := h.Store.ListCollaborators(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list collaborators", err)
		return
	}

	dtos := make([]CollaboratorDTO, len(collabs))
	for i, c := range collabs {
		dtos[i] = toCollaboratorDTO(c)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateCollaborator creates or updates a collaborator.
func (h *Handler) CreateCollaborator(w http.ResponseWriter, r *http.Request) {
	var req CreateCollaboratorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "id and name are required", nil)
		return
	}

	collab := capacity.Collaborator{
		ID:                    req.ID,
		Name:                  req.Name,
		Email:                 req.Email,
		DailyAvailableHours:   capacity.NewHours(float64(req.DailyAvailableHours)),
		MonthlyAvailableHours: capacity.NewHours(float64(req.MonthlyAvailableHours)),
	}
	if err := h.Store.SaveCollaborator(r.Context(), collab); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save collaborator", err)
		return
	}
	writeJSON(w, http.StatusCreated, toCollaboratorDTO(collab))
}

// GetCollaborator returns a single collaborator.
func (h *Handler) GetCollaborator(w http.ResponseWriter, r *http.Request) {
	collab, ok := h.loadCollaborator(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toCollaboratorDTO(*collab))
}

// DeleteCollaborator removes a collaborator.
func (h *Handler) DeleteCollaborator(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteCollaborator(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete collaborator", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) loadCollaborator(w http.ResponseWriter, r *http.Request) (*capacity.Collaborator, bool) {
	id := chi.URLParam(r, "id")
	collab, err := h.Store.GetCollaborator(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get collaborator", err)
		return nil, false
	}
	if collab == nil {
		writeError(w, http.StatusNotFound, "Collaborator not found", nil)
		return nil, false
	}
	return collab, true
}

// =============================================================================
// ENGINE ENDPOINTS
// =============================================================================

// GetAvailability computes the monthly availability report.
// GET /api/collaborators/{id}/availability?month=YYYY-MM
func (h *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	collab, ok := h.loadCollaborator(w, r)
	if !ok {
		return
	}

	monthParam := r.URL.Query().Get("month")
	if monthParam == "" {
		monthParam = time.Now().Format("2006-01")
	}
	month, err := schedule.ParseMonth(monthParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month format (use YYYY-MM)", err)
		return
	}

	snap, err := h.Store.LoadSnapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load snapshot", err)
		return
	}

	report, err := h.Engine.MonthlyAvailability(*collab, month, snap)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Availability computation failed", err)
		return
	}

	writeJSON(w, http.StatusOK, AvailabilityDTO{
		CollaboratorID:  collab.ID,
		Month:           monthParam,
		OccupancyRate:   report.OccupancyRate,
		PlannedHours:    report.PlannedHours.Float64(),
		ContinuousHours: report.ContinuousHours.Float64(),
		Balance:         report.Balance.Float64(),
		TargetHours:     report.TargetHours.Float64(),
		Status:          string(report.Status),
		Breakdown: BreakdownDTO{
			Planned:    toItemDTOs(report.Breakdown.Planned),
			Continuous: toItemDTOs(report.Breakdown.Continuous),
		},
	})
}

// GetReleaseForecast projects the collaborator's release date.
// GET /api/collaborators/{id}/release?from=YYYY-MM-DD
func (h *Handler) GetReleaseForecast(w http.ResponseWriter, r *http.Request) {
	collab, ok := h.loadCollaborator(w, r)
	if !ok {
		return
	}

	// "today" defaults to the server clock but stays overridable; the
	// engine itself never reads a clock.
	today := schedule.DateOf(time.Now())
	if from := r.URL.Query().Get("from"); from != "" {
		var err error
		today, err = schedule.ParseDate(from)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid from date (use YYYY-MM-DD)", err)
			return
		}
	}

	snap, err := h.Store.LoadSnapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load snapshot", err)
		return
	}

	forecast := h.Engine.ReleaseForecast(*collab, today, snap)
	writeJSON(w, http.StatusOK, ReleaseForecastDTO{
		CollaboratorID: collab.ID,
		Ideal:          optionalDateString(forecast.Ideal),
		Realistic:      optionalDateString(forecast.Realistic),
		IsSaturated:    forecast.IsSaturated,
	})
}

// GetDailyAllocation simulates the day-by-day allocation heatmap.
// GET /api/collaborators/{id}/allocation?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handler) GetDailyAllocation(w http.ResponseWriter, r *http.Request) {
	collab, ok := h.loadCollaborator(w, r)
	if !ok {
		return
	}

	start, err := schedule.ParseDate(r.URL.Query().Get("start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start date (use YYYY-MM-DD)", err)
		return
	}
	end, err := schedule.ParseDate(r.URL.Query().Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end date (use YYYY-MM-DD)", err)
		return
	}

	snap, err := h.Store.LoadSnapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load snapshot", err)
		return
	}

	daily := collab.DailyCapacity(h.Engine.Policy.DailyFallbackHours)
	days, err := h.Engine.SimulateDaily(collab.ID, start, end, snap, daily)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidRange) {
			writeError(w, http.StatusBadRequest, "end must not precede start", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Simulation failed", err)
		return
	}

	dtos := make([]DailyAllocationDTO, len(days))
	for i, d := range days {
		dtos[i] = DailyAllocationDTO{
			Date:            d.Date.String(),
			PlannedHours:    d.PlannedHours.Float64(),
			ContinuousHours: d.ContinuousHours.Float64(),
			BufferHours:     d.BufferHours.Float64(),
			Capacity:        d.Capacity.Float64(),
			Overloaded:      d.Overloaded,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetWorkingDays sums working days over a month or explicit range.
// GET /api/calendar/working-days?month=YYYY-MM
// GET /api/calendar/working-days?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handler) GetWorkingDays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.Store.ListHolidays(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list holidays", err)
		return
	}

	var period schedule.Period
	if monthParam := r.URL.Query().Get("month"); monthParam != "" {
		period, err = schedule.ParseMonth(monthParam)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid month format (use YYYY-MM)", err)
			return
		}
	} else {
		period.Start, err = schedule.ParseDate(r.URL.Query().Get("start"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid start date (use YYYY-MM-DD)", err)
			return
		}
		period.End, err = schedule.ParseDate(r.URL.Query().Get("end"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid end date (use YYYY-MM-DD)", err)
			return
		}
	}

	total, err := schedule.WorkingDaysInPeriod(period, holidays)
	if err != nil {
		writeError(w, http.StatusBadRequest, "end must not precede start", err)
		return
	}

	writeJSON(w, http.StatusOK, WorkingDaysDTO{
		Start:       period.Start.String(),
		End:         period.End.String(),
		WorkingDays: total.InexactFloat64(),
	})
}

// =============================================================================
// CLIENT HANDLERS
// =============================================================================

func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Store.ListClients(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list clients", err)
		return
	}
	dtos := make([]ClientDTO, len(clients))
	for i, c := range clients {
		dtos[i] = ClientDTO{ID: c.ID, Name: c.Name, Email: c.Email}
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req ClientDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "id and name are required", nil)
		return
	}
	if err := h.Store.SaveClient(r.Context(), sqlite.Client{ID: req.ID, Name: req.Name, Email: req.Email}); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save client", err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteClient(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete client", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// PROJECT HANDLERS
// =============================================================================

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Store.ListProjects(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list projects", err)
		return
	}
	dtos := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		dtos[i] = toProjectDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "id and name are required", nil)
		return
	}

	start, err := parseOptionalDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date (use YYYY-MM-DD)", err)
		return
	}
	delivery, err := parseOptionalDate(req.EstimatedDelivery)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid estimated_delivery (use YYYY-MM-DD)", err)
		return
	}
	if start != nil && delivery != nil && delivery.Before(*start) {
		writeError(w, http.StatusBadRequest, "estimated_delivery must not precede start_date", schedule.ErrInvalidRange)
		return
	}

	project := capacity.Project{
		ID:                req.ID,
		ClientID:          req.ClientID,
		Name:              req.Name,
		StartDate:         start,
		EstimatedDelivery: delivery,
	}
	if err := h.Store.SaveProject(r.Context(), project); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save project", err)
		return
	}
	writeJSON(w, http.StatusCreated, toProjectDTO(project))
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.Store.GetProject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get project", err)
		return
	}
	if project == nil {
		writeError(w, http.StatusNotFound, "Project not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toProjectDTO(*project))
}

func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteProject(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete project", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddProjectMember links a collaborator to a project.
// POST /api/projects/{id}/members
func (h *Handler) AddProjectMember(w http.ResponseWriter, r *http.Request) {
	var req ProjectMemberDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	req.ProjectID = chi.URLParam(r, "id")
	if req.CollaboratorID == "" {
		writeError(w, http.StatusBadRequest, "collaborator_id is required", nil)
		return
	}

	member := capacity.ProjectMember{
		ProjectID:      req.ProjectID,
		CollaboratorID: req.CollaboratorID,
		Role:           req.Role,
	}
	if err := h.Store.SaveProjectMember(r.Context(), member); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save member", err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

// RemoveProjectMember unlinks a collaborator from a project.
// DELETE /api/projects/{id}/members/{collaboratorId}
func (h *Handler) RemoveProjectMember(w http.ResponseWriter, r *http.Request) {
	err := h.Store.DeleteProjectMember(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "collaboratorId"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to remove member", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// TASK HANDLERS
// =============================================================================

func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.Store.ListTasks(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list tasks", err)
		return
	}
	dtos := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = toTaskDTO(t)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" || req.ProjectID == "" {
		writeError(w, http.StatusBadRequest, "id and project_id are required", nil)
		return
	}

	task := capacity.Task{
		ID:             req.ID,
		ProjectID:      req.ProjectID,
		Name:           req.Name,
		AssigneeID:     req.AssigneeID,
		Collaborators:  req.Collaborators,
		EstimatedHours: capacity.NewHours(float64(req.EstimatedHours)).ClampZero(),
		Status:         capacity.TaskStatus(req.Status),
	}
	if task.Status == "" {
		task.Status = capacity.StatusBacklog
	}

	var err error
	if task.ScheduledStart, err = parseOptionalDate(req.ScheduledStart); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scheduled_start (use YYYY-MM-DD)", err)
		return
	}
	if task.ActualStart, err = parseOptionalDate(req.ActualStart); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid actual_start (use YYYY-MM-DD)", err)
		return
	}
	if task.EstimatedDelivery, err = parseOptionalDate(req.EstimatedDelivery); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid estimated_delivery (use YYYY-MM-DD)", err)
		return
	}
	if task.ActualDelivery, err = parseOptionalDate(req.ActualDelivery); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid actual_delivery (use YYYY-MM-DD)", err)
		return
	}

	if err := h.Store.SaveTask(r.Context(), task); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save task", err)
		return
	}
	writeJSON(w, http.StatusCreated, toTaskDTO(task))
}

func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.Store.GetTask(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get task", err)
		return
	}
	if task == nil {
		writeError(w, http.StatusNotFound, "Task not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toTaskDTO(*task))
}

func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteTask(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete task", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// TIMESHEET HANDLERS
// =============================================================================

func (h *Handler) ListTimesheetEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Store.ListTimesheetEntries(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list timesheet entries", err)
		return
	}
	dtos := make([]TimesheetEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = TimesheetEntryDTO{
			ID:             e.ID,
			CollaboratorID: e.CollaboratorID,
			TaskID:         e.TaskID,
			ProjectID:      e.ProjectID,
			Date:           e.Date.String(),
			TotalHours:     e.TotalHours.Float64(),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateTimesheetEntry(w http.ResponseWriter, r *http.Request) {
	var req CreateTimesheetEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" || req.CollaboratorID == "" {
		writeError(w, http.StatusBadRequest, "id and collaborator_id are required", nil)
		return
	}
	date, err := schedule.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", err)
		return
	}
	if req.TotalHours < 0 {
		writeError(w, http.StatusBadRequest, "total_hours must not be negative", nil)
		return
	}

	entry := capacity.TimesheetEntry{
		ID:             req.ID,
		CollaboratorID: req.CollaboratorID,
		TaskID:         req.TaskID,
		ProjectID:      req.ProjectID,
		Date:           date,
		TotalHours:     capacity.NewHours(float64(req.TotalHours)),
	}
	if err := h.Store.SaveTimesheetEntry(r.Context(), entry); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save timesheet entry", err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (h *Handler) DeleteTimesheetEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteTimesheetEntry(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete timesheet entry", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// ABSENCE HANDLERS
// =============================================================================

func (h *Handler) ListAbsences(w http.ResponseWriter, r *http.Request) {
	absences, err := h.Store.ListAbsences(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list absences", err)
		return
	}
	dtos := make([]AbsenceDTO, len(absences))
	for i, a := range absences {
		dtos[i] = AbsenceDTO{
			ID:             a.ID,
			CollaboratorID: a.CollaboratorID,
			StartDate:      a.StartDate.String(),
			EndDate:        a.EndDate.String(),
			Part:           string(a.Part),
			EndTime:        a.EndTime,
			Status:         string(a.Status),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateAbsence(w http.ResponseWriter, r *http.Request) {
	var req AbsenceDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" || req.CollaboratorID == "" {
		writeError(w, http.StatusBadRequest, "id and collaborator_id are required", nil)
		return
	}

	start, err := schedule.ParseDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date (use YYYY-MM-DD)", err)
		return
	}
	end, err := schedule.ParseDate(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date (use YYYY-MM-DD)", err)
		return
	}
	if end.Before(start) {
		writeError(w, http.StatusBadRequest, "end_date must not precede start_date", schedule.ErrInvalidRange)
		return
	}

	absence := schedule.Absence{
		ID:             req.ID,
		CollaboratorID: req.CollaboratorID,
		StartDate:      start,
		EndDate:        end,
		Part:           schedule.DayPart(req.Part),
		EndTime:        req.EndTime,
		Status:         schedule.AbsenceStatus(req.Status),
	}
	if absence.Status == "" {
		absence.Status = schedule.AbsencePending
	}
	if err := h.Store.SaveAbsence(r.Context(), absence); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save absence", err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (h *Handler) DeleteAbsence(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteAbsence(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete absence", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// HOLIDAY HANDLERS
// =============================================================================

func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.Store.ListHolidays(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list holidays", err)
		return
	}
	dtos := make([]HolidayDTO, len(holidays))
	for i, hol := range holidays {
		dtos[i] = HolidayDTO{
			ID:      hol.ID,
			Name:    hol.Name,
			Type:    string(hol.Type),
			Date:    hol.Date.String(),
			EndDate: optionalDateString(hol.EndDate),
			Part:    string(hol.Part),
			EndTime: hol.EndTime,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req HolidayDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "id and name are required", nil)
		return
	}

	date, err := schedule.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", err)
		return
	}
	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date (use YYYY-MM-DD)", err)
		return
	}
	if endDate != nil && endDate.Before(date) {
		writeError(w, http.StatusBadRequest, "end_date must not precede date", schedule.ErrInvalidRange)
		return
	}

	holiday := schedule.Holiday{
		ID:      req.ID,
		Name:    req.Name,
		Type:    schedule.HolidayType(req.Type),
		Date:    date,
		EndDate: endDate,
		Part:    schedule.DayPart(req.Part),
		EndTime: req.EndTime,
	}
	if err := h.Store.SaveHoliday(r.Context(), holiday); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save holiday", err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteHoliday(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete holiday", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

LOCALE NORMALIZATION:
  Upstream forms submit hour quantities with a comma decimal separator
  ("7,5"). HoursField accepts a JSON number or such a string and
  normalizes it to a dot-decimal value before anything reaches the
  engine. Engine inputs are always plain numbers.

SEE ALSO:
  - handlers.go: Uses these types
  - capacity/types.go: the domain shapes these map onto
*/
package api

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/warp/capacity-engine/capacity"
	"github.com/warp/capacity-engine/schedule"
)

// =============================================================================
// LOCALE-TOLERANT HOURS FIELD
// =============================================================================

// HoursField is a float64 that also accepts comma-decimal strings.
type HoursField float64

func (h *HoursField) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*h = HoursField(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("hours must be a number or numeric string: %s", data)
	}
	n, err := parseHours(s)
	if err != nil {
		return err
	}
	*h = HoursField(n)
	return nil
}

// parseHours normalizes a form-supplied decimal ("7,5" or "7.5") to a float.
func parseHours(s string) (float64, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	n, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid hours value %q", s)
	}
	return n, nil
}

// =============================================================================
// ENTITY TYPES
// =============================================================================

type ClientDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type CollaboratorDTO struct {
	ID                    string  `json:"id"`
	Name                  string  `json:"name"`
	Email                 string  `json:"email,omitempty"`
	DailyAvailableHours   float64 `json:"daily_available_hours"`
	MonthlyAvailableHours float64 `json:"monthly_available_hours"`
}

type CreateCollaboratorRequest struct {
	ID                    string     `json:"id"`
	Name                  string     `json:"name"`
	Email                 string     `json:"email"`
	DailyAvailableHours   HoursField `json:"daily_available_hours"`
	MonthlyAvailableHours HoursField `json:"monthly_available_hours"`
}

type ProjectDTO struct {
	ID                string  `json:"id"`
	ClientID          string  `json:"client_id,omitempty"`
	Name              string  `json:"name"`
	StartDate         *string `json:"start_date,omitempty"`
	EstimatedDelivery *string `json:"estimated_delivery,omitempty"`
}

type CreateProjectRequest struct {
	ID                string  `json:"id"`
	ClientID          string  `json:"client_id"`
	Name              string  `json:"name"`
	StartDate         *string `json:"start_date,omitempty"`
	EstimatedDelivery *string `json:"estimated_delivery,omitempty"`
}

type ProjectMemberDTO struct {
	ProjectID      string `json:"project_id"`
	CollaboratorID string `json:"collaborator_id"`
	Role           string `json:"role,omitempty"`
}

type TaskDTO struct {
	ID                string   `json:"id"`
	ProjectID         string   `json:"project_id"`
	Name              string   `json:"name"`
	AssigneeID        string   `json:"assignee_id,omitempty"`
	Collaborators     []string `json:"collaborators,omitempty"`
	EstimatedHours    float64  `json:"estimated_hours"`
	ScheduledStart    *string  `json:"scheduled_start,omitempty"`
	ActualStart       *string  `json:"actual_start,omitempty"`
	EstimatedDelivery *string  `json:"estimated_delivery,omitempty"`
	ActualDelivery    *string  `json:"actual_delivery,omitempty"`
	Status            string   `json:"status"`
}

type CreateTaskRequest struct {
	ID                string     `json:"id"`
	ProjectID         string     `json:"project_id"`
	Name              string     `json:"name"`
	AssigneeID        string     `json:"assignee_id"`
	Collaborators     []string   `json:"collaborators,omitempty"`
	EstimatedHours    HoursField `json:"estimated_hours"`
	ScheduledStart    *string    `json:"scheduled_start,omitempty"`
	ActualStart       *string    `json:"actual_start,omitempty"`
	EstimatedDelivery *string    `json:"estimated_delivery,omitempty"`
	ActualDelivery    *string    `json:"actual_delivery,omitempty"`
	Status            string     `json:"status"`
}

type TimesheetEntryDTO struct {
	ID             string  `json:"id"`
	CollaboratorID string  `json:"collaborator_id"`
	TaskID         string  `json:"task_id,omitempty"`
	ProjectID      string  `json:"project_id,omitempty"`
	Date           string  `json:"date"`
	TotalHours     float64 `json:"total_hours"`
}

type CreateTimesheetEntryRequest struct {
	ID             string     `json:"id"`
	CollaboratorID string     `json:"collaborator_id"`
	TaskID         string     `json:"task_id"`
	ProjectID      string     `json:"project_id"`
	Date           string     `json:"date"`
	TotalHours     HoursField `json:"total_hours"`
}

type AbsenceDTO struct {
	ID             string `json:"id"`
	CollaboratorID string `json:"collaborator_id"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	Part           string `json:"period,omitempty"`
	EndTime        string `json:"end_time,omitempty"`
	Status         string `json:"status"`
}

type HolidayDTO struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Date    string  `json:"date"`
	EndDate *string `json:"end_date,omitempty"`
	Part    string  `json:"period,omitempty"`
	EndTime string  `json:"end_time,omitempty"`
}

// =============================================================================
// ENGINE RESULT TYPES
// =============================================================================

type AllocationItemDTO struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Hours float64 `json:"hours"`
}

type BreakdownDTO struct {
	Planned    []AllocationItemDTO `json:"planned"`
	Continuous []AllocationItemDTO `json:"continuous"`
}

// AvailabilityDTO is the monthly availability report.
type AvailabilityDTO struct {
	CollaboratorID  string       `json:"collaborator_id"`
	Month           string       `json:"month"`
	OccupancyRate   float64      `json:"occupancy_rate"`
	PlannedHours    float64      `json:"planned_hours"`
	ContinuousHours float64      `json:"continuous_hours"`
	Balance         float64      `json:"balance"`
	TargetHours     float64      `json:"target_hours"`
	Status          string       `json:"status"`
	Breakdown       BreakdownDTO `json:"breakdown"`
}

// DailyAllocationDTO is one day of the simulated heatmap.
type DailyAllocationDTO struct {
	Date            string  `json:"date"`
	PlannedHours    float64 `json:"planned_hours"`
	ContinuousHours float64 `json:"continuous_hours"`
	BufferHours     float64 `json:"buffer_hours"`
	Capacity        float64 `json:"capacity"`
	Overloaded      bool    `json:"overloaded"`
}

// ReleaseForecastDTO is the projected release date under both
// utilization assumptions. Null dates mean no backlog (or, for
// realistic, a saturated horizon).
type ReleaseForecastDTO struct {
	CollaboratorID string  `json:"collaborator_id"`
	Ideal          *string `json:"ideal"`
	Realistic      *string `json:"realistic"`
	IsSaturated    bool    `json:"is_saturated"`
}

type WorkingDaysDTO struct {
	Start       string  `json:"start"`
	End         string  `json:"end"`
	WorkingDays float64 `json:"working_days"`
}

// =============================================================================
// SCENARIOS AND ERRORS
// =============================================================================

type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// MAPPING HELPERS
// =============================================================================

func optionalDateString(d *schedule.Date) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func parseOptionalDate(s *string) (*schedule.Date, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := schedule.ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func toCollaboratorDTO(c capacity.Collaborator) CollaboratorDTO {
	return CollaboratorDTO{
		ID:                    c.ID,
		Name:                  c.Name,
		Email:                 c.Email,
		DailyAvailableHours:   c.DailyAvailableHours.Float64(),
		MonthlyAvailableHours: c.MonthlyAvailableHours.Float64(),
	}
}

func toProjectDTO(p capacity.Project) ProjectDTO {
	return ProjectDTO{
		ID:                p.ID,
		ClientID:          p.ClientID,
		Name:              p.Name,
		StartDate:         optionalDateString(p.StartDate),
		EstimatedDelivery: optionalDateString(p.EstimatedDelivery),
	}
}

func toTaskDTO(t capacity.Task) TaskDTO {
	return TaskDTO{
		ID:                t.ID,
		ProjectID:         t.ProjectID,
		Name:              t.Name,
		AssigneeID:        t.AssigneeID,
		Collaborators:     t.Collaborators,
		EstimatedHours:    t.EstimatedHours.Float64(),
		ScheduledStart:    optionalDateString(t.ScheduledStart),
		ActualStart:       optionalDateString(t.ActualStart),
		EstimatedDelivery: optionalDateString(t.EstimatedDelivery),
		ActualDelivery:    optionalDateString(t.ActualDelivery),
		Status:            string(t.Status),
	}
}

func toItemDTOs(items []capacity.AllocationItem) []AllocationItemDTO {
	out := make([]AllocationItemDTO, len(items))
	for i, item := range items {
		out[i] = AllocationItemDTO{ID: item.ID, Name: item.Name, Hours: item.Hours.Float64()}
	}
	return out
}

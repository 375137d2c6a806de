/*
Package capacity implements the capacity and availability planning engine.

PURPOSE:
  Given a collaborator's task assignments, logged hours, scheduled
  absences and the organization's holiday calendar, the engine computes
  how full the person's month is, splits the load into priority tiers,
  projects a day-by-day allocation, and forecasts the date on which the
  collaborator becomes free for new planned work.

KEY CONCEPTS IN THIS FILE (types.go):
  - Hours: a non-negative quantity of working hours (decimal-backed)
  - Collaborator, Project, Task, TimesheetEntry: read-only domain snapshots
  - Snapshot: the immutable input bundle every computation receives

DESIGN PRINCIPLES:
  1. Purity: every stage is a pure function of its Snapshot, no hidden clock
  2. Precision: decimal.Decimal everywhere hours or fractions are summed
  3. Graceful degradation: missing capacity falls back, bad estimates clamp
     to zero, empty calendars mean no exclusions

TIERS:
  Planned:    workload tied to a committed delivery window; always
              pre-empts Continuous
  Continuous: ongoing/reserve workload with no hard deadline; sized as a
              standing share of capacity when no Planned work exists

SEE ALSO:
  - policy.go: autonomous thresholds and reserve share (org configuration)
  - aggregate.go: monthly tier aggregation
  - simulate.go: day-by-day allocation
  - forecast.go: release date projection
*/
package capacity

import (
	"github.com/shopspring/decimal"

	"github.com/warp/capacity-engine/schedule"
)

// =============================================================================
// HOURS - Quantity of working hours
// =============================================================================

type Hours struct {
	Value decimal.Decimal
}

func NewHours(v float64) Hours {
	return Hours{Value: decimal.NewFromFloat(v)}
}

func HoursFromDecimal(d decimal.Decimal) Hours {
	return Hours{Value: d}
}

func ZeroHours() Hours {
	return Hours{Value: decimal.Zero}
}

func (h Hours) Add(other Hours) Hours          { return Hours{Value: h.Value.Add(other.Value)} }
func (h Hours) Sub(other Hours) Hours          { return Hours{Value: h.Value.Sub(other.Value)} }
func (h Hours) Mul(s decimal.Decimal) Hours    { return Hours{Value: h.Value.Mul(s)} }
func (h Hours) Div(s decimal.Decimal) Hours    { return Hours{Value: h.Value.Div(s)} }
func (h Hours) IsZero() bool                   { return h.Value.IsZero() }
func (h Hours) IsNegative() bool               { return h.Value.IsNegative() }
func (h Hours) IsPositive() bool               { return h.Value.IsPositive() }
func (h Hours) GreaterThan(other Hours) bool   { return h.Value.GreaterThan(other.Value) }
func (h Hours) LessThan(other Hours) bool      { return h.Value.LessThan(other.Value) }
func (h Hours) Float64() float64               { return h.Value.InexactFloat64() }
func (h Hours) String() string                 { return h.Value.String() }

// ClampZero floors negative quantities at zero. Negative or missing
// estimates degrade to zero remaining work instead of failing.
func (h Hours) ClampZero() Hours {
	if h.IsNegative() {
		return ZeroHours()
	}
	return h
}

// =============================================================================
// COLLABORATOR
// =============================================================================

// Collaborator is a person whose capacity is being planned. Mutated only
// by external administration; read-only to this engine.
type Collaborator struct {
	ID    string
	Name  string
	Email string

	// Target hours per working day. Zero or negative means "unknown";
	// the engine substitutes the policy fallback.
	DailyAvailableHours Hours

	// Monthly target, informational only.
	MonthlyAvailableHours Hours
}

// DailyCapacity returns the collaborator's daily target, or the fallback
// when the target is missing or malformed.
func (c Collaborator) DailyCapacity(fallback Hours) Hours {
	if c.DailyAvailableHours.IsPositive() {
		return c.DailyAvailableHours
	}
	return fallback
}

// =============================================================================
// PROJECT AND MEMBERSHIP
// =============================================================================

type Project struct {
	ID       string
	ClientID string
	Name     string

	StartDate         *schedule.Date
	EstimatedDelivery *schedule.Date
}

// ProjectMember links a collaborator to a project. Task hours count toward
// a collaborator only when this link exists.
type ProjectMember struct {
	ProjectID      string
	CollaboratorID string
	Role           string
}

// =============================================================================
// TASK
// =============================================================================

type TaskStatus string

const (
	StatusBacklog    TaskStatus = "backlog"
	StatusInProgress TaskStatus = "in_progress"
	StatusReview     TaskStatus = "review"
	StatusDone       TaskStatus = "done"
	StatusCanceled   TaskStatus = "canceled"
)

// Terminal reports whether the status removes the task from projection.
func (s TaskStatus) Terminal() bool {
	return s == StatusDone || s == StatusCanceled
}

type Task struct {
	ID        string
	ProjectID string
	Name      string

	// Primary assignee plus zero or more secondary collaborators.
	AssigneeID    string
	Collaborators []string

	EstimatedHours Hours

	ScheduledStart    *schedule.Date
	ActualStart       *schedule.Date
	EstimatedDelivery *schedule.Date
	ActualDelivery    *schedule.Date

	Status TaskStatus
}

// AssignedTo reports whether the collaborator is the primary assignee or
// one of the secondary collaborators.
func (t Task) AssignedTo(collaboratorID string) bool {
	if t.AssigneeID == collaboratorID {
		return true
	}
	for _, id := range t.Collaborators {
		if id == collaboratorID {
			return true
		}
	}
	return false
}

// =============================================================================
// TIMESHEET ENTRY
// =============================================================================

// TimesheetEntry records hours already worked. Immutable historical fact
// once past; duplicates are summed defensively, never rejected.
type TimesheetEntry struct {
	ID             string
	CollaboratorID string
	TaskID         string
	ProjectID      string
	Date           schedule.Date
	TotalHours     Hours
}

// =============================================================================
// SNAPSHOT - Immutable input bundle
// =============================================================================

// Snapshot is the read-only input set every engine computation receives.
// The engine holds no state between calls; callers supply a consistent
// snapshot across dependent calls.
type Snapshot struct {
	Projects       []Project
	ProjectMembers []ProjectMember
	Tasks          []Task
	Entries        []TimesheetEntry
	Holidays       []schedule.Holiday
	Absences       []schedule.Absence
}

// memberProjects returns the set of project IDs the collaborator belongs to.
func (s Snapshot) memberProjects(collaboratorID string) map[string]bool {
	out := make(map[string]bool)
	for _, m := range s.ProjectMembers {
		if m.CollaboratorID == collaboratorID {
			out[m.ProjectID] = true
		}
	}
	return out
}

func (s Snapshot) projectByID(id string) (Project, bool) {
	for _, p := range s.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}

// plannedProjects returns the set of project IDs classified as Planned:
// the project carries a committed delivery window, either directly or on
// at least one of its tasks.
func (s Snapshot) plannedProjects() map[string]bool {
	out := make(map[string]bool)
	for _, p := range s.Projects {
		if p.EstimatedDelivery != nil {
			out[p.ID] = true
		}
	}
	for _, t := range s.Tasks {
		if t.EstimatedDelivery != nil {
			out[t.ProjectID] = true
		}
	}
	return out
}

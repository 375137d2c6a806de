package capacity

import (
	"github.com/warp/capacity-engine/schedule"
)

// =============================================================================
// ENGINE - Pure planning computations over immutable snapshots
// =============================================================================

// Engine bundles the planning stages with their organizational policy.
// It holds no mutable state; every method is a pure function of its
// arguments and is safe to call concurrently.
type Engine struct {
	Policy Policy
}

// NewEngine creates an engine, filling missing policy fields from the
// defaults.
func NewEngine(policy Policy) *Engine {
	return &Engine{Policy: policy.normalized()}
}

// =============================================================================
// AVAILABILITY - Aggregation + capacity in one call
// =============================================================================

// Availability is the monthly availability report for one collaborator:
// how full the month is, in which tier the load sits, and where every
// hour comes from.
type Availability struct {
	OccupancyRate   float64
	PlannedHours    Hours
	ContinuousHours Hours
	Balance         Hours
	TargetHours     Hours
	Status          Status
	Breakdown       Breakdown
}

// MonthlyAvailability aggregates the collaborator's month and scores it
// against their capacity target.
func (e *Engine) MonthlyAvailability(collab Collaborator, month schedule.Period, snap Snapshot) (Availability, error) {
	alloc, err := e.Aggregate(collab, month, snap)
	if err != nil {
		return Availability{}, err
	}

	report, err := e.Capacity(alloc.PlannedHours, alloc.ContinuousHours, collab, month, snap.Holidays, snap.Absences)
	if err != nil {
		return Availability{}, err
	}

	return Availability{
		OccupancyRate:   report.OccupancyRate.InexactFloat64(),
		PlannedHours:    alloc.PlannedHours,
		ContinuousHours: alloc.ContinuousHours,
		Balance:         report.Balance,
		TargetHours:     report.TargetHours,
		Status:          report.Status,
		Breakdown:       alloc.Breakdown,
	}, nil
}

// =============================================================================
// SHARED TASK SELECTION AND SIZING
// =============================================================================

// relevantTasks selects the tasks that contribute to the collaborator's
// workload: assigned (primary or secondary), linked through project
// membership, and not in a terminal status.
func relevantTasks(collaboratorID string, snap Snapshot) []Task {
	member := snap.memberProjects(collaboratorID)
	var out []Task
	for _, t := range snap.Tasks {
		if t.Status.Terminal() {
			continue
		}
		if !t.AssignedTo(collaboratorID) {
			continue
		}
		if !member[t.ProjectID] {
			continue
		}
		out = append(out, t)
	}
	return out
}

// loggedHours sums the collaborator's timesheet entries against a task.
// A nil window means the full history counts (used by the forecaster);
// otherwise only entries inside the window reduce the estimate.
func loggedHours(collaboratorID, taskID string, entries []TimesheetEntry, window *schedule.Period) Hours {
	total := ZeroHours()
	for _, e := range entries {
		if e.CollaboratorID != collaboratorID || e.TaskID != taskID {
			continue
		}
		if window != nil && !window.Contains(e.Date) {
			continue
		}
		total = total.Add(e.TotalHours)
	}
	return total
}

// remainingHours is the task's estimate minus logged hours, clamped at zero.
func remainingHours(t Task, collaboratorID string, entries []TimesheetEntry, window *schedule.Period) Hours {
	return t.EstimatedHours.ClampZero().Sub(loggedHours(collaboratorID, t.ID, entries, window)).ClampZero()
}

// taskWindow resolves the task's own date range, falling back to the
// analysis window's bounds when dates are missing.
func taskWindow(t Task, fallback schedule.Period) schedule.Period {
	start := fallback.Start
	if t.ActualStart != nil {
		start = *t.ActualStart
	} else if t.ScheduledStart != nil {
		start = *t.ScheduledStart
	}

	end := fallback.End
	if t.EstimatedDelivery != nil {
		end = *t.EstimatedDelivery
	}

	if end.Before(start) {
		// Degenerate task dates collapse to the single start day.
		end = start
	}
	return schedule.Period{Start: start, End: end}
}

// displayName prefers the task's own name, then its project's.
func displayName(t Task, snap Snapshot) string {
	if t.Name != "" {
		return t.Name
	}
	if p, ok := snap.projectByID(t.ProjectID); ok && p.Name != "" {
		return p.Name
	}
	return t.ID
}

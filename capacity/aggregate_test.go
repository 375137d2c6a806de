package capacity_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/capacity-engine/capacity"
	"github.com/warp/capacity-engine/schedule"
)

// =============================================================================
// TEST HELPERS
// =============================================================================
// September 2025 anchors every fixture: the 1st is a Monday and the month
// has 22 working days, which keeps expected values easy to derive by hand.

func sep(day int) schedule.Date {
	return schedule.NewDate(2025, time.September, day)
}

func frac(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sepPtr(day int) *schedule.Date {
	d := sep(day)
	return &d
}

func datePtr(year int, month time.Month, day int) *schedule.Date {
	d := schedule.NewDate(year, month, day)
	return &d
}

func september() schedule.Period {
	return schedule.MonthPeriod(2025, time.September)
}

func ana() capacity.Collaborator {
	return capacity.Collaborator{
		ID:                  "ana",
		Name:                "Ana",
		DailyAvailableHours: capacity.NewHours(8),
	}
}

func newEngine() *capacity.Engine {
	return capacity.NewEngine(capacity.DefaultPolicy())
}

// plannedSnapshot builds a snapshot with one delivery-bound project and its
// member "ana"; tasks are appended by the caller.
func plannedSnapshot(tasks ...capacity.Task) capacity.Snapshot {
	return capacity.Snapshot{
		Projects: []capacity.Project{
			{ID: "proj-a", Name: "Delivery A", EstimatedDelivery: sepPtr(30)},
		},
		ProjectMembers: []capacity.ProjectMember{
			{ProjectID: "proj-a", CollaboratorID: "ana"},
		},
		Tasks: tasks,
	}
}

// continuousSnapshot builds a snapshot with one project that carries no
// delivery window anywhere.
func continuousSnapshot(tasks ...capacity.Task) capacity.Snapshot {
	return capacity.Snapshot{
		Projects: []capacity.Project{
			{ID: "proj-ret", Name: "Retainer"},
		},
		ProjectMembers: []capacity.ProjectMember{
			{ProjectID: "proj-ret", CollaboratorID: "ana"},
		},
		Tasks: tasks,
	}
}

func plannedTask(id string, estimated float64, startDay, endDay int) capacity.Task {
	return capacity.Task{
		ID:                id,
		ProjectID:         "proj-a",
		Name:              id,
		AssigneeID:        "ana",
		EstimatedHours:    capacity.NewHours(estimated),
		ScheduledStart:    sepPtr(startDay),
		EstimatedDelivery: sepPtr(endDay),
		Status:            capacity.StatusInProgress,
	}
}

func continuousTask(id string, estimated float64) capacity.Task {
	return capacity.Task{
		ID:             id,
		ProjectID:      "proj-ret",
		Name:           id,
		AssigneeID:     "ana",
		EstimatedHours: capacity.NewHours(estimated),
		Status:         capacity.StatusInProgress,
	}
}

func assertHours(t *testing.T, expected float64, got capacity.Hours, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, expected, got.Float64(), 0.0001, msgAndArgs...)
}

// =============================================================================
// PLANNED TIER TESTS
// =============================================================================

func TestAggregate_PlannedTaskFullyInMonth(t *testing.T) {
	// GIVEN: A 40h task whose window sits wholly inside September
	// WHEN: Aggregating September
	// THEN: The full remainder lands in the Planned tier

	snap := plannedSnapshot(plannedTask("task-1", 40, 1, 5))

	alloc, err := newEngine().Aggregate(ana(), september(), snap)
	require.NoError(t, err)

	assertHours(t, 40, alloc.PlannedHours)
	assertHours(t, 0, alloc.ContinuousHours)
	require.Len(t, alloc.Breakdown.Planned, 1)
	assert.Equal(t, "task-1", alloc.Breakdown.Planned[0].ID)
	assertHours(t, 40, alloc.Breakdown.Planned[0].Hours)
}

func TestAggregate_ProportionalAttributionAcrossMonths(t *testing.T) {
	// GIVEN: A 60h task spanning Sep 1 - Oct 10 (22 + 8 = 30 working days)
	// WHEN: Aggregating September
	// THEN: September receives 60 * 22/30 = 44h

	snap := plannedSnapshot(plannedTask("task-1", 60, 1, 5))
	snap.Tasks[0].EstimatedDelivery = datePtr(2025, time.October, 10)

	alloc, err := newEngine().Aggregate(ana(), september(), snap)
	require.NoError(t, err)

	assertHours(t, 44, alloc.PlannedHours)
}

func TestAggregate_LoggedHoursReduceRemaining(t *testing.T) {
	// GIVEN: A 40h task with 8h already logged inside the month
	// WHEN: Aggregating
	// THEN: Only the 32h remainder is attributed

	snap := plannedSnapshot(plannedTask("task-1", 40, 1, 5))
	snap.Entries = []capacity.TimesheetEntry{
		{ID: "ts-1", CollaboratorID: "ana", TaskID: "task-1", Date: sep(1), TotalHours: capacity.NewHours(8)},
	}

	alloc, err := newEngine().Aggregate(ana(), september(), snap)
	require.NoError(t, err)

	assertHours(t, 32, alloc.PlannedHours)
}

func TestAggregate_LoggedHoursOutsideMonthIgnored(t *testing.T) {
	// Entries outside the analysis month do not reduce the month's share.
	snap := plannedSnapshot(plannedTask("task-1", 40, 1, 5))
	snap.Entries = []capacity.TimesheetEntry{
		{ID: "ts-old", CollaboratorID: "ana", TaskID: "task-1",
			Date: schedule.NewDate(2025, time.August, 15), TotalHours: capacity.NewHours(10)},
	}

	alloc, err := newEngine().Aggregate(ana(), september(), snap)
	require.NoError(t, err)

	assertHours(t, 40, alloc.PlannedHours)
}

func TestAggregate_OverLoggedTaskClampsToZero(t *testing.T) {
	// More hours logged than estimated never produces negative work.
	snap := plannedSnapshot(plannedTask("task-1", 10, 1, 5))
	snap.Entries = []capacity.TimesheetEntry{
		{ID: "ts-1", CollaboratorID: "ana", TaskID: "task-1", Date: sep(1), TotalHours: capacity.NewHours(25)},
	}

	alloc, err := newEngine().Aggregate(ana(), september(), snap)
	require.NoError(t, err)

	assertHours(t, 0, alloc.PlannedHours)
	assert.Empty(t, alloc.Breakdown.Planned)
}

func TestAggregate_WindowOutsideMonth_NoContribution(t *testing.T) {
	task := plannedTask("task-1", 40, 1, 5)
	task.ScheduledStart = datePtr(2025, time.November, 3)
	task.EstimatedDelivery = datePtr(2025, time.November, 7)

	alloc, err := newEngine().Aggregate(ana(), september(), plannedSnapshot(task))
	require.NoError(t, err)

	assertHours(t, 0, alloc.PlannedHours)
}

// =============================================================================
// CONTINUOUS TIER TESTS
// =============================================================================

func TestAggregate_ContinuousOnly_ReserveShareOfMonth(t *testing.T) {
	// GIVEN: Only a retainer task (no delivery window anywhere)
	// WHEN: Aggregating September (22 working days, 8h/day, reserve 0.5)
	// THEN: Continuous is the standing reserve 8 * 22 * 0.5 = 88h and the
	//       breakdown still lists the task's literal remainder

	snap := continuousSnapshot(continuousTask("task-ret", 20))

	alloc, err := newEngine().Aggregate(ana(), september(), snap)
	require.NoError(t, err)

	assertHours(t, 88, alloc.ContinuousHours)
	require.Len(t, alloc.Breakdown.Continuous, 1)
	assertHours(t, 20, alloc.Breakdown.Continuous[0].Hours)
}

func TestAggregate_ContinuousReserveNetOfAbsences(t *testing.T) {
	// GIVEN: Only a retainer task and one approved week away (Sep 1-5)
	// WHEN: Aggregating September (17 of 22 working days remain)
	// THEN: The reserve follows the shrunken target: 8 * 17 * 0.5 = 68h

	snap := continuousSnapshot(continuousTask("task-ret", 20))
	snap.Absences = []schedule.Absence{{
		ID:             "abs-1",
		CollaboratorID: "ana",
		StartDate:      sep(1),
		EndDate:        sep(5),
		Status:         schedule.AbsenceApproved,
	}}

	alloc, err := newEngine().Aggregate(ana(), september(), snap)
	require.NoError(t, err)

	assertHours(t, 68, alloc.ContinuousHours)
}

func TestAggregate_ContinuousReserveIgnoresOtherCollaboratorsAbsence(t *testing.T) {
	// Someone else's absence never shrinks ana's reserve.
	snap := continuousSnapshot(continuousTask("task-ret", 20))
	snap.Absences = []schedule.Absence{{
		ID:             "abs-bruno",
		CollaboratorID: "bruno",
		StartDate:      sep(1),
		EndDate:        sep(5),
		Status:         schedule.AbsenceApproved,
	}}

	alloc, err := newEngine().Aggregate(ana(), september(), snap)
	require.NoError(t, err)

	assertHours(t, 88, alloc.ContinuousHours)
}

func TestAggregate_PlannedPreemptsContinuous(t *testing.T) {
	// GIVEN: Both a planned task and a retainer task
	// WHEN: Aggregating
	// THEN: The Continuous tier is zero (Planned pre-empts the reserve),
	//       the breakdown still names the retainer source

	snap := plannedSnapshot(plannedTask("task-1", 40, 1, 5))
	snap.Projects = append(snap.Projects, capacity.Project{ID: "proj-ret", Name: "Retainer"})
	snap.ProjectMembers = append(snap.ProjectMembers, capacity.ProjectMember{ProjectID: "proj-ret", CollaboratorID: "ana"})
	snap.Tasks = append(snap.Tasks, continuousTask("task-ret", 20))

	alloc, err := newEngine().Aggregate(ana(), september(), snap)
	require.NoError(t, err)

	assertHours(t, 40, alloc.PlannedHours)
	assertHours(t, 0, alloc.ContinuousHours)
	require.Len(t, alloc.Breakdown.Continuous, 1)
	assert.Equal(t, "task-ret", alloc.Breakdown.Continuous[0].ID)
}

func TestAggregate_TaskDeliveryWindowMakesProjectPlanned(t *testing.T) {
	// A project with no delivery of its own is still Planned when one of
	// its tasks carries a window.
	snap := continuousSnapshot(continuousTask("task-dated", 40))
	snap.Tasks[0].ScheduledStart = sepPtr(1)
	snap.Tasks[0].EstimatedDelivery = sepPtr(5)

	alloc, err := newEngine().Aggregate(ana(), september(), snap)
	require.NoError(t, err)

	assertHours(t, 40, alloc.PlannedHours)
	assertHours(t, 0, alloc.ContinuousHours)
}

// =============================================================================
// TASK SELECTION TESTS
// =============================================================================

func TestAggregate_TerminalStatusExcluded(t *testing.T) {
	done := plannedTask("task-done", 40, 1, 5)
	done.Status = capacity.StatusDone
	canceled := plannedTask("task-canceled", 40, 1, 5)
	canceled.Status = capacity.StatusCanceled

	alloc, err := newEngine().Aggregate(ana(), september(), plannedSnapshot(done, canceled))
	require.NoError(t, err)

	assertHours(t, 0, alloc.PlannedHours)
}

func TestAggregate_NonMemberExcluded(t *testing.T) {
	// Assigned to the task but not linked to the project: excluded.
	snap := plannedSnapshot(plannedTask("task-1", 40, 1, 5))
	snap.ProjectMembers = nil

	alloc, err := newEngine().Aggregate(ana(), september(), snap)
	require.NoError(t, err)

	assertHours(t, 0, alloc.PlannedHours)
}

func TestAggregate_SecondaryCollaboratorCounts(t *testing.T) {
	task := plannedTask("task-1", 40, 1, 5)
	task.AssigneeID = "bruno"
	task.Collaborators = []string{"ana"}

	alloc, err := newEngine().Aggregate(ana(), september(), plannedSnapshot(task))
	require.NoError(t, err)

	assertHours(t, 40, alloc.PlannedHours)
}

func TestAggregate_InvalidMonth_Error(t *testing.T) {
	month := schedule.Period{Start: sep(30), End: sep(1)}

	_, err := newEngine().Aggregate(ana(), month, plannedSnapshot())
	assert.True(t, errors.Is(err, schedule.ErrInvalidRange), "expected ErrInvalidRange, got %v", err)
}

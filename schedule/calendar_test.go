package schedule_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/capacity-engine/schedule"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func sep(day int) schedule.Date {
	return schedule.NewDate(2025, time.September, day)
}

func frac(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func wholeDayHoliday(day int) schedule.Holiday {
	return schedule.Holiday{ID: "hol", Name: "Holiday", Type: schedule.HolidayNational, Date: sep(day)}
}

func approvedAbsence(collaboratorID string, from, to int) schedule.Absence {
	return schedule.Absence{
		ID:             "abs",
		CollaboratorID: collaboratorID,
		StartDate:      sep(from),
		EndDate:        sep(to),
		Status:         schedule.AbsenceApproved,
	}
}

// =============================================================================
// WORKING FRACTION TESTS
// =============================================================================

func TestWorkingFraction_PlainWeekday_FullDay(t *testing.T) {
	// September 1, 2025 is a Monday with no exclusions
	got := schedule.WorkingFraction(sep(1), nil, nil, "ana")
	if !got.Equal(frac("1")) {
		t.Errorf("expected fraction 1, got %s", got)
	}
}

func TestWorkingFraction_Weekend_Zero(t *testing.T) {
	// September 6, 2025 is a Saturday
	got := schedule.WorkingFraction(sep(6), nil, nil, "ana")
	if !got.IsZero() {
		t.Errorf("expected fraction 0 on a Saturday, got %s", got)
	}
}

func TestWorkingFraction_WholeDayHoliday_Zero(t *testing.T) {
	got := schedule.WorkingFraction(sep(1), []schedule.Holiday{wholeDayHoliday(1)}, nil, "ana")
	if !got.IsZero() {
		t.Errorf("expected fraction 0 on a whole-day holiday, got %s", got)
	}
}

func TestWorkingFraction_MorningHoliday_HalfDay(t *testing.T) {
	hol := wholeDayHoliday(1)
	hol.Part = schedule.PartMorning

	got := schedule.WorkingFraction(sep(1), []schedule.Holiday{hol}, nil, "ana")
	if !got.Equal(frac("0.5")) {
		t.Errorf("expected fraction 0.5 on a morning holiday, got %s", got)
	}
}

func TestWorkingFraction_ApprovedAbsence_Zero(t *testing.T) {
	abs := approvedAbsence("ana", 1, 2)

	got := schedule.WorkingFraction(sep(2), nil, []schedule.Absence{abs}, "ana")
	if !got.IsZero() {
		t.Errorf("expected fraction 0 during an approved absence, got %s", got)
	}
}

func TestWorkingFraction_PendingAbsence_NoEffect(t *testing.T) {
	abs := approvedAbsence("ana", 1, 2)
	abs.Status = schedule.AbsencePending

	got := schedule.WorkingFraction(sep(1), nil, []schedule.Absence{abs}, "ana")
	if !got.Equal(frac("1")) {
		t.Errorf("pending absence should not reduce capacity, got %s", got)
	}
}

func TestWorkingFraction_OtherCollaboratorAbsence_NoEffect(t *testing.T) {
	abs := approvedAbsence("bruno", 1, 2)

	got := schedule.WorkingFraction(sep(1), nil, []schedule.Absence{abs}, "ana")
	if !got.Equal(frac("1")) {
		t.Errorf("another collaborator's absence should not reduce capacity, got %s", got)
	}
}

func TestWorkingFraction_EndTime_OnlyAppliesOnLastCoveredDay(t *testing.T) {
	// Three-day absence ending at 13:00: the first two days are fully
	// covered, the last covers (13:00 - 09:00) / 8h = half the day.
	abs := approvedAbsence("ana", 1, 3)
	abs.EndTime = "13:00"
	absences := []schedule.Absence{abs}

	if got := schedule.WorkingFraction(sep(1), nil, absences, "ana"); !got.IsZero() {
		t.Errorf("first covered day should be fully covered, got %s", got)
	}
	if got := schedule.WorkingFraction(sep(3), nil, absences, "ana"); !got.Equal(frac("0.5")) {
		t.Errorf("expected fraction 0.5 on the end-time day, got %s", got)
	}
}

func TestWorkingFraction_EndTime_QuarterOfWindow(t *testing.T) {
	// 11:00 is two hours into the 09:00 + 8h window: coverage 0.25
	abs := approvedAbsence("ana", 1, 1)
	abs.EndTime = "11:00"

	got := schedule.WorkingFraction(sep(1), nil, []schedule.Absence{abs}, "ana")
	if !got.Equal(frac("0.75")) {
		t.Errorf("expected fraction 0.75 for an 11:00 end time, got %s", got)
	}
}

func TestWorkingFraction_EndTime_Unparseable_DegradesToHalfDay(t *testing.T) {
	abs := approvedAbsence("ana", 1, 1)
	abs.EndTime = "not-a-time"

	got := schedule.WorkingFraction(sep(1), nil, []schedule.Absence{abs}, "ana")
	if !got.Equal(frac("0.5")) {
		t.Errorf("unparseable end time should degrade to half a day, got %s", got)
	}
}

func TestWorkingFraction_HolidayAndAbsenceOverlap_ClampedAtZero(t *testing.T) {
	// A day covered by both a holiday and an absence is fully unavailable,
	// never negative.
	got := schedule.WorkingFraction(
		sep(1),
		[]schedule.Holiday{wholeDayHoliday(1)},
		[]schedule.Absence{approvedAbsence("ana", 1, 1)},
		"ana",
	)
	if !got.IsZero() {
		t.Errorf("overlapping coverage should clamp to fraction 0, got %s", got)
	}
}

func TestWorkingFraction_MultiDayHoliday_CoversRange(t *testing.T) {
	end := sep(3)
	hol := schedule.Holiday{ID: "hol", Name: "Shutdown", Date: sep(1), EndDate: &end}

	if got := schedule.WorkingFraction(sep(2), []schedule.Holiday{hol}, nil, "ana"); !got.IsZero() {
		t.Errorf("middle of a multi-day holiday should be covered, got %s", got)
	}
	if got := schedule.WorkingFraction(sep(4), []schedule.Holiday{hol}, nil, "ana"); !got.Equal(frac("1")) {
		t.Errorf("day after a multi-day holiday should be free, got %s", got)
	}
}

// =============================================================================
// WORKING DAY SUM TESTS
// =============================================================================

func TestWorkingDaysInMonth_September2025(t *testing.T) {
	// September 2025: 30 days, 8 weekend days
	got := schedule.WorkingDaysInMonth(2025, time.September, nil)
	if !got.Equal(frac("22")) {
		t.Errorf("expected 22 working days, got %s", got)
	}
}

func TestWorkingDaysInMonth_WeekdayHolidayReduces(t *testing.T) {
	got := schedule.WorkingDaysInMonth(2025, time.September, []schedule.Holiday{wholeDayHoliday(1)})
	if !got.Equal(frac("21")) {
		t.Errorf("expected 21 working days with a Monday holiday, got %s", got)
	}
}

func TestWorkingDaysInMonth_WeekendHolidayIgnored(t *testing.T) {
	// September 6, 2025 is a Saturday: the holiday overlaps a day that is
	// already not a working day.
	got := schedule.WorkingDaysInMonth(2025, time.September, []schedule.Holiday{wholeDayHoliday(6)})
	if !got.Equal(frac("22")) {
		t.Errorf("weekend holiday should not change the sum, got %s", got)
	}
}

func TestWorkingDaysInRange_HalfDayHolidayCountsFractionally(t *testing.T) {
	hol := wholeDayHoliday(3)
	hol.Part = schedule.PartAfternoon

	got, err := schedule.WorkingDaysInRange(sep(1), sep(5), []schedule.Holiday{hol})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(frac("4.5")) {
		t.Errorf("expected 4.5 working days, got %s", got)
	}
}

func TestWorkingDaysInRange_IgnoresAbsences(t *testing.T) {
	// The range sum is an organization-level calendar; personal absences
	// only enter through WorkingFraction.
	got, err := schedule.WorkingDaysInRange(sep(1), sep(5), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(frac("5")) {
		t.Errorf("expected 5 working days Mon-Fri, got %s", got)
	}
}

func TestWorkingDaysInRange_InvertedRange_Error(t *testing.T) {
	_, err := schedule.WorkingDaysInRange(sep(5), sep(1), nil)
	if !errors.Is(err, schedule.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestWorkingDaysInRange_SingleDay(t *testing.T) {
	got, err := schedule.WorkingDaysInRange(sep(1), sep(1), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(frac("1")) {
		t.Errorf("expected 1 working day, got %s", got)
	}
}

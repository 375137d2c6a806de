/*
calendar.go - Holidays, absences and working fractions

PURPOSE:
  Computes how much of a standard working day is actually available on a
  given date. This is the leaf computation every other planning stage
  builds on: allocation, occupancy, daily simulation and release
  forecasting all consume working fractions.

COVERAGE RULES:
  - Weekend: the whole day is unavailable (fraction 0)
  - Whole-day holiday/absence: fraction 0
  - Morning or afternoon only: covers half a day
  - Explicit end time on the last covered day: covers the elapsed share
    of the standard working window instead of a fixed half day
  - Overlapping holidays and absences are summed then clamped, so a day
    covered by both is never subtracted twice below zero

WORKING-DAY SUMS:
  WorkingDaysInRange and WorkingDaysInMonth consider holidays only.
  Absences are personal: callers that have a collaborator in hand apply
  them through WorkingFraction.

SEE ALSO:
  - date.go: Date type and month helpers
  - capacity package: aggregation and simulation built on these fractions
*/
package schedule

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidRange is returned when a range's end precedes its start.
// This is the only hard failure in the calendar layer.
var ErrInvalidRange = errors.New("invalid range: end before start")

// Standard working window used to translate an explicit end time into a
// fraction of the day: 09:00 plus 8 working hours.
const (
	workdayStartHour   = 9
	workdayLengthHours = 8
)

var (
	one  = decimal.NewFromInt(1)
	half = decimal.RequireFromString("0.5")
)

// =============================================================================
// DAY PART - Sub-day coverage
// =============================================================================

// DayPart names how much of a day a holiday or absence covers.
type DayPart string

const (
	PartWhole     DayPart = "whole"
	PartMorning   DayPart = "morning"
	PartAfternoon DayPart = "afternoon"
)

// =============================================================================
// HOLIDAY - Organization-wide non-working day(s)
// =============================================================================

type HolidayType string

const (
	HolidayNational  HolidayType = "national"
	HolidayCorporate HolidayType = "corporate"
	HolidayLocal     HolidayType = "local"
)

// Holiday marks one or more days as not full working capacity.
// Type is informational only; every holiday reduces capacity the same way.
type Holiday struct {
	ID      string
	Name    string
	Type    HolidayType
	Date    Date
	EndDate *Date   // nil = single day
	Part    DayPart // empty = whole day
	EndTime string  // "HH:MM" partial coverage on the last covered day
}

func (h Holiday) lastDay() Date {
	if h.EndDate != nil {
		return *h.EndDate
	}
	return h.Date
}

func (h Holiday) covers(d Date) bool {
	return d.AfterOrEqual(h.Date) && d.BeforeOrEqual(h.lastDay())
}

// Coverage returns the share of the day the holiday covers, in [0, 1].
func (h Holiday) Coverage(d Date) decimal.Decimal {
	if !h.covers(d) {
		return decimal.Zero
	}
	return dayCoverage(d, h.lastDay(), h.Part, h.EndTime)
}

// =============================================================================
// ABSENCE - Personal scheduled time away
// =============================================================================

type AbsenceStatus string

const (
	AbsencePending  AbsenceStatus = "pending"
	AbsenceApproved AbsenceStatus = "approved"
	AbsenceRejected AbsenceStatus = "rejected"
)

// Absence is a collaborator's scheduled time away. Only approved
// absences remove capacity.
type Absence struct {
	ID             string
	CollaboratorID string
	StartDate      Date
	EndDate        Date
	Part           DayPart // empty = whole day
	EndTime        string  // "HH:MM" partial coverage on the boundary day
	Status         AbsenceStatus
}

func (a Absence) covers(d Date) bool {
	return d.AfterOrEqual(a.StartDate) && d.BeforeOrEqual(a.EndDate)
}

// Coverage returns the share of the day the absence covers, in [0, 1].
// Pending and rejected absences cover nothing.
func (a Absence) Coverage(d Date) decimal.Decimal {
	if a.Status != AbsenceApproved || !a.covers(d) {
		return decimal.Zero
	}
	return dayCoverage(d, a.EndDate, a.Part, a.EndTime)
}

// dayCoverage resolves the covered share of one day within a covered range.
// An explicit end time only applies on the final covered day; elsewhere the
// day part decides.
func dayCoverage(d, rangeEnd Date, part DayPart, endTime string) decimal.Decimal {
	if endTime != "" && d.Equal(rangeEnd) {
		return elapsedShare(endTime)
	}
	switch part {
	case PartMorning, PartAfternoon:
		return half
	default:
		return one
	}
}

// elapsedShare converts an "HH:MM" end time into the share of the standard
// working window already elapsed at that time.
func elapsedShare(endTime string) decimal.Decimal {
	t, err := time.Parse("15:04", endTime)
	if err != nil {
		// Unparseable end time degrades to a half day rather than failing.
		return half
	}
	elapsed := decimal.NewFromInt(int64(t.Hour()*60 + t.Minute() - workdayStartHour*60))
	share := elapsed.Div(decimal.NewFromInt(workdayLengthHours * 60))
	return clamp01(share)
}

func clamp01(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(one) {
		return one
	}
	return d
}

// =============================================================================
// WORKING FRACTIONS
// =============================================================================

// WorkingFraction returns the share of a standard working day available on
// the given date for the given collaborator, in [0, 1]. Weekends are fully
// unavailable; holiday and approved-absence coverage is summed and clamped
// so overlaps never produce a negative fraction.
func WorkingFraction(d Date, holidays []Holiday, absences []Absence, collaboratorID string) decimal.Decimal {
	if d.IsWeekend() {
		return decimal.Zero
	}
	covered := decimal.Zero
	for _, h := range holidays {
		covered = covered.Add(h.Coverage(d))
	}
	for _, a := range absences {
		if a.CollaboratorID != collaboratorID {
			continue
		}
		covered = covered.Add(a.Coverage(d))
	}
	return one.Sub(clamp01(covered))
}

// holidayFraction is WorkingFraction without per-collaborator absences.
func holidayFraction(d Date, holidays []Holiday) decimal.Decimal {
	return WorkingFraction(d, holidays, nil, "")
}

// WorkingDaysInRange sums the working fraction of every day in [start, end],
// considering holidays only. Returns ErrInvalidRange when end precedes start.
func WorkingDaysInRange(start, end Date, holidays []Holiday) (decimal.Decimal, error) {
	if end.Before(start) {
		return decimal.Zero, ErrInvalidRange
	}
	total := decimal.Zero
	for d := start; d.BeforeOrEqual(end); d = d.AddDays(1) {
		total = total.Add(holidayFraction(d, holidays))
	}
	return total, nil
}

// WorkingDaysInPeriod is WorkingDaysInRange over a Period.
func WorkingDaysInPeriod(p Period, holidays []Holiday) (decimal.Decimal, error) {
	return WorkingDaysInRange(p.Start, p.End, holidays)
}

// WorkingDaysInMonth sums working fractions over a calendar month.
func WorkingDaysInMonth(year int, month time.Month, holidays []Holiday) decimal.Decimal {
	p := MonthPeriod(year, month)
	total, _ := WorkingDaysInRange(p.Start, p.End, holidays)
	return total
}

/*
Package schedule provides the calendar arithmetic for capacity planning.

PURPOSE:
  This package answers one question in several forms: how much of a given
  calendar day (or range of days) is actually available for work? Weekends,
  holidays and approved absences all reduce availability, sometimes by a
  fraction of a day.

KEY CONCEPTS:
  - Date: a calendar day (no time-of-day component)
  - Period: an inclusive [Start, End] range of days
  - DayPart: how much of a day a holiday/absence covers (whole, morning, afternoon)
  - Working fraction: the share of a standard day available on a date, in [0, 1]

DESIGN PRINCIPLES:
  1. Purity: every function is a pure function of its arguments
  2. Precision: fractions use decimal.Decimal to avoid floating-point drift
  3. Clamping: overlapping holidays and absences never subtract below zero

SEE ALSO:
  - period.go: Period type and range helpers
  - calendar.go: Holiday, Absence and working-fraction computation
*/
package schedule

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Calendar day, no time-of-day
// =============================================================================

type Date struct {
	Time time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time.Time to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Comparison
func (d Date) Before(other Date) bool        { return d.normalize().Before(other.normalize()) }
func (d Date) After(other Date) bool         { return d.normalize().After(other.normalize()) }
func (d Date) Equal(other Date) bool         { return d.normalize().Equal(other.normalize()) }
func (d Date) BeforeOrEqual(other Date) bool { return d.Before(other) || d.Equal(other) }
func (d Date) AfterOrEqual(other Date) bool  { return d.After(other) || d.Equal(other) }

func (d Date) normalize() time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Arithmetic
func (d Date) AddDays(n int) Date   { return Date{Time: d.Time.AddDate(0, 0, n)} }
func (d Date) AddMonths(n int) Date { return Date{Time: d.Time.AddDate(0, n, 0)} }

// Properties
func (d Date) Year() int             { return d.Time.Year() }
func (d Date) Month() time.Month     { return d.Time.Month() }
func (d Date) Day() int              { return d.Time.Day() }
func (d Date) Weekday() time.Weekday { return d.Time.Weekday() }
func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
func (d Date) IsZero() bool { return d.Time.IsZero() }

func (d Date) String() string { return d.Time.Format("2006-01-02") }

// =============================================================================
// DATE UTILITIES
// =============================================================================

func StartOfMonth(year int, month time.Month) Date { return NewDate(year, month, 1) }

func EndOfMonth(year int, month time.Month) Date {
	return StartOfMonth(year, month).AddMonths(1).AddDays(-1)
}

// MonthPeriod returns the full calendar month as a period.
func MonthPeriod(year int, month time.Month) Period {
	return Period{Start: StartOfMonth(year, month), End: EndOfMonth(year, month)}
}

// ParseMonth parses a YYYY-MM string into the full month period.
func ParseMonth(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return MonthPeriod(t.Year(), t.Month()), nil
}

package models

import (
	"time"

	"github.com/rotaworks/rota/internal/constants"
)

// Driver is a rostered worker, keyed internally by ID and externally by the
// operator-facing driver number.
type Driver struct {
	ID     int64  `json:"id"`
	Number string `json:"number"`
	Name   string `json:"name,omitempty"`
}

// ShiftPattern is a repeating cycle of per-day shift-type labels.
// Days[0] lines up with the start date of any assignment using the pattern,
// and len(Days) must equal CycleLength. Each element is either a registered
// shift-type label or constants.DayOff.
type ShiftPattern struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	CycleLength int      `json:"cycle_length"`
	Days        []string `json:"days"`
}

// ShiftTypeTiming is the default clock-time window for one shift-type label.
// End earlier than Start means the shift runs past midnight.
type ShiftTypeTiming struct {
	Label string `json:"label"`
	Start string `json:"start"` // HH:MM
	End   string `json:"end"`   // HH:MM
}

// Wraps reports whether the window spans midnight.
func (t ShiftTypeTiming) Wraps() bool {
	return t.End < t.Start
}

// Assignment binds a driver to a shift pattern over an inclusive date range.
// A nil EndDate means the assignment is ongoing. PredecessorID records the
// assignment that was auto-truncated when this one was created, so ending or
// removing this assignment can reopen it.
type Assignment struct {
	ID            int64   `json:"id"`
	DriverID      int64   `json:"driver_id"`
	PatternID     int64   `json:"pattern_id"`
	StartDate     string  `json:"start_date"` // YYYY-MM-DD, inclusive
	EndDate       *string `json:"end_date,omitempty"`
	PredecessorID *int64  `json:"predecessor_id,omitempty"`
}

// ActiveOn reports whether the assignment covers the given date.
func (a Assignment) ActiveOn(date time.Time) (bool, error) {
	start, err := time.Parse(constants.DateFormat, a.StartDate)
	if err != nil {
		return false, Invalid("assignment %d has malformed start date %q", a.ID, a.StartDate)
	}
	day := DateOnly(date)
	if day.Before(start) {
		return false, nil
	}
	if a.EndDate != nil {
		end, err := time.Parse(constants.DateFormat, *a.EndDate)
		if err != nil {
			return false, Invalid("assignment %d has malformed end date %q", a.ID, *a.EndDate)
		}
		if day.After(end) {
			return false, nil
		}
	}
	return true, nil
}

// TimingRule overrides the default shift window for a driver. A nil
// AssignmentID means the rule applies to all of the driver's assignments;
// nil filter fields are wildcards. Lower Priority is evaluated first, but
// assignment-scoped rules always beat driver-wide ones regardless of the
// numeric priorities involved.
type TimingRule struct {
	ID           int64   `json:"id"`
	DriverID     int64   `json:"driver_id"`
	AssignmentID *int64  `json:"assignment_id,omitempty"`
	ShiftType    *string `json:"shift_type,omitempty"`
	CycleDay     *int    `json:"cycle_day,omitempty"`
	Weekday      *int    `json:"weekday,omitempty"` // Monday = 0 … Sunday = 6
	Start        string  `json:"start"`
	End          string  `json:"end"`
	Priority     int     `json:"priority"`
	Note         string  `json:"note,omitempty"`
}

// Wraps reports whether the override window spans midnight.
func (r TimingRule) Wraps() bool {
	return r.End < r.Start
}

// RosterEntry is one driver's resolved duty window for a single date.
type RosterEntry struct {
	Driver    Driver `json:"driver"`
	ShiftType string `json:"shift_type"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Custom    bool   `json:"custom"`
	Note      string `json:"note,omitempty"`
}

// WeekdayIndex maps time.Weekday onto the Monday = 0 … Sunday = 6 convention
// used by pattern cycles and timing-rule filters.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// DateOnly strips the clock-time portion of t. Calendar arithmetic throughout
// the engine runs on UTC midnights so DST transitions cannot skew day counts.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

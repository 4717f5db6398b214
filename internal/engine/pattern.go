package engine

import (
	"time"

	"github.com/rotaworks/rota/internal/constants"
	"github.com/rotaworks/rota/internal/models"
)

// CycleDayOn returns the zero-based position within the pattern cycle that
// date falls on for the given assignment. ok is false when the assignment is
// not active on that date. cycleLength must have passed write-time pattern
// validation; a non-positive value is rejected here only to keep the modulo
// defined.
func CycleDayOn(a models.Assignment, cycleLength int, date time.Time) (int, bool, error) {
	if cycleLength < 1 {
		return 0, false, models.Invalid("pattern %d has cycle length %d", a.PatternID, cycleLength)
	}
	active, err := a.ActiveOn(date)
	if err != nil || !active {
		return 0, false, err
	}
	start, err := time.Parse(constants.DateFormat, a.StartDate)
	if err != nil {
		return 0, false, models.Invalid("assignment %d has malformed start date %q", a.ID, a.StartDate)
	}
	// Both sides are UTC midnights, so the division is exact.
	offset := int(models.DateOnly(date).Sub(start).Hours() / 24)
	return offset % cycleLength, true, nil
}

// ShiftTypeOnDate resolves which pattern-day label the assignment puts its
// driver on for the given date. ok is false when the assignment is inactive
// on that date; a returned label may be constants.DayOff.
func ShiftTypeOnDate(a models.Assignment, p models.ShiftPattern, date time.Time) (string, bool, error) {
	if len(p.Days) != p.CycleLength {
		return "", false, models.Invalid("pattern %d has %d day entries but cycle length %d", p.ID, len(p.Days), p.CycleLength)
	}
	cycleDay, ok, err := CycleDayOn(a, p.CycleLength, date)
	if err != nil || !ok {
		return "", false, err
	}
	return p.Days[cycleDay], true, nil
}

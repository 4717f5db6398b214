package engine

import (
	"sort"

	"github.com/rotaworks/rota/internal/models"
)

// FindRule scans a driver's custom timing rules for the highest-precedence
// match. Candidates are considered in two ordered passes: rules scoped to the
// given assignment by ascending priority, then driver-wide rules (nil
// assignment id) by ascending priority. Assignment-scoped rules always win
// over driver-wide ones, whatever the numeric priorities say. Within a pass,
// the first rule whose non-nil filters all equal the query values matches.
// A nil return is a normal miss, not an error; the caller falls back to the
// shift type's default timing.
func FindRule(rules []models.TimingRule, assignmentID int64, shiftType string, cycleDay, weekday int) *models.TimingRule {
	var scoped, driverWide []models.TimingRule
	for _, r := range rules {
		switch {
		case r.AssignmentID != nil && *r.AssignmentID == assignmentID:
			scoped = append(scoped, r)
		case r.AssignmentID == nil:
			driverWide = append(driverWide, r)
		}
	}

	byPriority := func(rs []models.TimingRule) {
		sort.SliceStable(rs, func(i, j int) bool { return rs[i].Priority < rs[j].Priority })
	}
	byPriority(scoped)
	byPriority(driverWide)

	for _, group := range [][]models.TimingRule{scoped, driverWide} {
		for i := range group {
			if ruleMatches(group[i], shiftType, cycleDay, weekday) {
				return &group[i]
			}
		}
	}
	return nil
}

func ruleMatches(r models.TimingRule, shiftType string, cycleDay, weekday int) bool {
	if r.ShiftType != nil && *r.ShiftType != shiftType {
		return false
	}
	if r.CycleDay != nil && *r.CycleDay != cycleDay {
		return false
	}
	if r.Weekday != nil && *r.Weekday != weekday {
		return false
	}
	return true
}

// ResolveTiming picks the clock-time window for one resolved shift: the best
// custom rule if any, otherwise the registered default for the label.
// custom reports which branch was taken; note carries the matching rule's
// note text.
func ResolveTiming(rules []models.TimingRule, defaultTiming models.ShiftTypeTiming, assignmentID int64, shiftType string, cycleDay, weekday int) (start, end string, custom bool, note string) {
	if r := FindRule(rules, assignmentID, shiftType, cycleDay, weekday); r != nil {
		return r.Start, r.End, true, r.Note
	}
	return defaultTiming.Start, defaultTiming.End, false, ""
}

// WindowContains reports whether the clock time falls inside the [start, end)
// window. A window whose end is earlier than its start wraps past midnight
// and covers clock >= start as well as clock < end.
func WindowContains(start, end, clock string) bool {
	if end < start {
		return clock >= start || clock < end
	}
	return clock >= start && clock < end
}

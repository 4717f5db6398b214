package engine

import (
	"sort"
	"time"

	"github.com/rotaworks/rota/internal/constants"
	"github.com/rotaworks/rota/internal/models"
)

// Evaluator answers the point-in-time roster questions: who is on duty on a
// date, with what resolved hours, and how many are on duty at a clock time.
type Evaluator struct {
	store Store
}

// NewEvaluator creates an Evaluator backed by the given store.
func NewEvaluator(store Store) *Evaluator {
	return &Evaluator{store: store}
}

// RosterForDate resolves every assignment active on the date into a roster
// entry, bucketed by shift-type label. Drivers whose pattern day is the
// day-off sentinel are skipped, as are labels that have neither a custom rule
// nor a registered default timing. Entries within a bucket are sorted by
// resolved start time, then driver number.
func (e *Evaluator) RosterForDate(date time.Time) (map[string][]models.RosterEntry, error) {
	entries, err := e.resolveDate(date)
	if err != nil {
		return nil, err
	}

	roster := make(map[string][]models.RosterEntry)
	for _, entry := range entries {
		roster[entry.ShiftType] = append(roster[entry.ShiftType], entry)
	}
	for _, bucket := range roster {
		sort.Slice(bucket, func(i, j int) bool {
			if bucket[i].Start != bucket[j].Start {
				return bucket[i].Start < bucket[j].Start
			}
			return bucket[i].Driver.Number < bucket[j].Driver.Number
		})
	}
	return roster, nil
}

// OccupancyAt counts the drivers whose resolved duty window covers the given
// clock time on the given date, overnight-aware. The matching entries are
// returned alongside the count.
func (e *Evaluator) OccupancyAt(date time.Time, clock string) (int, []models.RosterEntry, error) {
	entries, err := e.resolveDate(date)
	if err != nil {
		return 0, nil, err
	}

	var onDuty []models.RosterEntry
	for _, entry := range entries {
		if WindowContains(entry.Start, entry.End, clock) {
			onDuty = append(onDuty, entry)
		}
	}
	sort.Slice(onDuty, func(i, j int) bool { return onDuty[i].Driver.Number < onDuty[j].Driver.Number })
	return len(onDuty), onDuty, nil
}

// OperationalDate applies the 06:00 cutover: before six in the morning the
// business day is still yesterday. Used only for today/tomorrow framing in
// the calling layer, never inside resolution itself.
func OperationalDate(now time.Time) time.Time {
	day := models.DateOnly(now)
	if now.Hour() < constants.OperationalCutoverHour {
		return day.AddDate(0, 0, -1)
	}
	return day
}

// resolveDate computes the full resolved roster for one date. Pattern and
// rule lookups are cached per call so a date query issues one storage read
// per referenced pattern and per rostered driver.
func (e *Evaluator) resolveDate(date time.Time) ([]models.RosterEntry, error) {
	day := models.DateOnly(date)
	assignments, err := e.store.GetAssignmentsActiveOn(day.Format(constants.DateFormat))
	if err != nil {
		return nil, err
	}

	patterns := make(map[int64]models.ShiftPattern)
	rulesByDriver := make(map[int64][]models.TimingRule)
	weekday := models.WeekdayIndex(day)

	var entries []models.RosterEntry
	for _, a := range assignments {
		pattern, ok := patterns[a.PatternID]
		if !ok {
			pattern, err = e.store.GetPattern(a.PatternID)
			if err != nil {
				return nil, err
			}
			patterns[a.PatternID] = pattern
		}

		label, active, err := ShiftTypeOnDate(a, pattern, day)
		if err != nil {
			return nil, err
		}
		if !active || label == constants.DayOff {
			continue
		}

		cycleDay, _, err := CycleDayOn(a, pattern.CycleLength, day)
		if err != nil {
			return nil, err
		}

		rules, ok := rulesByDriver[a.DriverID]
		if !ok {
			rules, err = e.store.GetRulesForDriver(a.DriverID)
			if err != nil {
				return nil, err
			}
			rulesByDriver[a.DriverID] = rules
		}

		var defaultTiming models.ShiftTypeTiming
		matched := FindRule(rules, a.ID, label, cycleDay, weekday)
		if matched == nil {
			defaultTiming, err = e.store.GetShiftType(label)
			if models.IsNotFound(err) {
				// Label with no timing row and no custom rule: nothing to
				// resolve, leave the driver off the roster.
				continue
			}
			if err != nil {
				return nil, err
			}
		}

		driver, err := e.store.GetDriver(a.DriverID)
		if err != nil {
			return nil, err
		}

		entry := models.RosterEntry{Driver: driver, ShiftType: label}
		if matched != nil {
			entry.Start, entry.End, entry.Custom, entry.Note = matched.Start, matched.End, true, matched.Note
		} else {
			entry.Start, entry.End = defaultTiming.Start, defaultTiming.End
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

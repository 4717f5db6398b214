package engine

import (
	"testing"
	"time"

	"github.com/rotaworks/rota/internal/constants"
	"github.com/rotaworks/rota/internal/models"
)

func setupEvaluator(t *testing.T) (*Evaluator, *memStore) {
	t.Helper()
	store := newMemStore()
	store.addTiming("earlies", "06:00", "14:00")
	store.addTiming("days", "08:00", "16:00")
	store.addTiming("lates", "14:00", "22:00")
	store.addTiming("nights", "22:00", "06:00")
	return NewEvaluator(store), store
}

func TestRosterForDate_BucketsByShiftType(t *testing.T) {
	ev, store := setupEvaluator(t)

	d1 := store.addDriver("D1")
	d2 := store.addDriver("D2")
	d3 := store.addDriver("D3")
	early := store.addPattern("all-earlies", "earlies")
	night := store.addPattern("all-nights", "nights")
	store.addAssignment(models.Assignment{DriverID: d1.ID, PatternID: early.ID, StartDate: "2024-01-01"})
	store.addAssignment(models.Assignment{DriverID: d2.ID, PatternID: early.ID, StartDate: "2024-01-01"})
	store.addAssignment(models.Assignment{DriverID: d3.ID, PatternID: night.ID, StartDate: "2024-01-01"})

	roster, err := ev.RosterForDate(date("2024-03-15"))
	if err != nil {
		t.Fatalf("RosterForDate failed: %v", err)
	}

	if len(roster["earlies"]) != 2 {
		t.Errorf("earlies bucket has %d drivers, want 2", len(roster["earlies"]))
	}
	if len(roster["nights"]) != 1 {
		t.Errorf("nights bucket has %d drivers, want 1", len(roster["nights"]))
	}
	if e := roster["earlies"][0]; e.Start != "06:00" || e.End != "14:00" || e.Custom {
		t.Errorf("unexpected earlies entry: %+v", e)
	}
}

func TestRosterForDate_SkipsDayOffAndInactive(t *testing.T) {
	ev, store := setupEvaluator(t)

	d1 := store.addDriver("D1")
	d2 := store.addDriver("D2")
	alternating := store.addPattern("alternating", "earlies", constants.DayOff)
	store.addAssignment(models.Assignment{DriverID: d1.ID, PatternID: alternating.ID, StartDate: "2024-01-01"})
	// Starts in the future, inactive on the query date.
	store.addAssignment(models.Assignment{DriverID: d2.ID, PatternID: alternating.ID, StartDate: "2024-06-01"})

	// 2024-01-02 is cycle day 1: day off for d1, d2 not yet active.
	roster, err := ev.RosterForDate(date("2024-01-02"))
	if err != nil {
		t.Fatalf("RosterForDate failed: %v", err)
	}
	if len(roster) != 0 {
		t.Errorf("roster = %v, want empty", roster)
	}
}

func TestRosterForDate_CustomRuleFlaggedWithNote(t *testing.T) {
	ev, store := setupEvaluator(t)

	d := store.addDriver("D1")
	p := store.addPattern("all-days", "days")
	a := store.addAssignment(models.Assignment{DriverID: d.ID, PatternID: p.ID, StartDate: "2024-01-01"})
	store.addRule(models.TimingRule{
		DriverID: d.ID, AssignmentID: &a.ID, Priority: 1,
		Start: "09:30", End: "17:30", Note: "late start agreed",
	})

	roster, err := ev.RosterForDate(date("2024-02-01"))
	if err != nil {
		t.Fatalf("RosterForDate failed: %v", err)
	}

	entries := roster["days"]
	if len(entries) != 1 {
		t.Fatalf("days bucket has %d entries, want 1", len(entries))
	}
	e := entries[0]
	if !e.Custom || e.Start != "09:30" || e.End != "17:30" || e.Note != "late start agreed" {
		t.Errorf("unexpected entry: %+v", e)
	}
}

func TestRosterForDate_WeekdayScopedRule(t *testing.T) {
	ev, store := setupEvaluator(t)

	d := store.addDriver("D1")
	p := store.addPattern("all-days", "days")
	store.addAssignment(models.Assignment{DriverID: d.ID, PatternID: p.ID, StartDate: "2024-01-01"})
	// Friday = 4 in the Monday-zero convention.
	store.addRule(models.TimingRule{
		DriverID: d.ID, Weekday: intPtr(4), Priority: 1, Start: "08:00", End: "13:00",
	})

	friday := date("2024-03-15")
	if models.WeekdayIndex(friday) != 4 {
		t.Fatal("test date is not a Friday")
	}
	roster, _ := ev.RosterForDate(friday)
	if e := roster["days"][0]; !e.Custom || e.End != "13:00" {
		t.Errorf("Friday entry = %+v, want custom 08:00-13:00", e)
	}

	saturday := date("2024-03-16")
	roster, _ = ev.RosterForDate(saturday)
	if e := roster["days"][0]; e.Custom {
		t.Errorf("Saturday entry = %+v, want default timing", e)
	}
}

func TestRosterForDate_UnknownLabelSkipped(t *testing.T) {
	ev, store := setupEvaluator(t)

	d := store.addDriver("D1")
	p := store.addPattern("mystery", "twilights")
	store.addAssignment(models.Assignment{DriverID: d.ID, PatternID: p.ID, StartDate: "2024-01-01"})

	roster, err := ev.RosterForDate(date("2024-02-01"))
	if err != nil {
		t.Fatalf("RosterForDate failed: %v", err)
	}
	if len(roster) != 0 {
		t.Errorf("roster = %v, want empty for unregistered label", roster)
	}
}

func TestRosterForDate_SortedByStartTime(t *testing.T) {
	ev, store := setupEvaluator(t)

	d1 := store.addDriver("D1")
	d2 := store.addDriver("D2")
	p := store.addPattern("all-days", "days")
	store.addAssignment(models.Assignment{DriverID: d1.ID, PatternID: p.ID, StartDate: "2024-01-01"})
	a2 := store.addAssignment(models.Assignment{DriverID: d2.ID, PatternID: p.ID, StartDate: "2024-01-01"})
	store.addRule(models.TimingRule{DriverID: d2.ID, AssignmentID: &a2.ID, Priority: 1, Start: "07:00", End: "15:00"})

	roster, _ := ev.RosterForDate(date("2024-02-01"))
	entries := roster["days"]
	if len(entries) != 2 {
		t.Fatalf("days bucket has %d entries, want 2", len(entries))
	}
	if entries[0].Driver.Number != "D2" || entries[1].Driver.Number != "D1" {
		t.Errorf("bucket order %s, %s; want D2 (07:00) before D1 (08:00)",
			entries[0].Driver.Number, entries[1].Driver.Number)
	}
}

func TestOccupancyAt_OvernightShift(t *testing.T) {
	ev, store := setupEvaluator(t)

	d := store.addDriver("D1")
	p := store.addPattern("all-nights", "nights")
	store.addAssignment(models.Assignment{DriverID: d.ID, PatternID: p.ID, StartDate: "2024-01-01"})

	cases := []struct {
		clock string
		want  int
	}{
		{"23:30", 1},
		{"05:00", 1},
		{"07:00", 0},
		{"21:00", 0},
	}
	for _, tc := range cases {
		count, _, err := ev.OccupancyAt(date("2024-02-01"), tc.clock)
		if err != nil {
			t.Fatalf("OccupancyAt(%s) failed: %v", tc.clock, err)
		}
		if count != tc.want {
			t.Errorf("OccupancyAt(%s) = %d, want %d", tc.clock, count, tc.want)
		}
	}
}

func TestOccupancyAt_EarliesAtSeven(t *testing.T) {
	ev, store := setupEvaluator(t)

	d := store.addDriver("D1")
	p := store.addPattern("alternating", "earlies", constants.DayOff)
	store.addAssignment(models.Assignment{DriverID: d.ID, PatternID: p.ID, StartDate: "2024-01-01"})

	// 2024-01-03 is cycle day 0 again: earlies, 06:00-14:00.
	count, onDuty, err := ev.OccupancyAt(date("2024-01-03"), "07:00")
	if err != nil {
		t.Fatalf("OccupancyAt failed: %v", err)
	}
	if count != 1 || len(onDuty) != 1 || onDuty[0].Driver.Number != "D1" {
		t.Errorf("count = %d, onDuty = %v; want D1 on duty", count, onDuty)
	}

	// Day off the next day.
	count, _, _ = ev.OccupancyAt(date("2024-01-04"), "07:00")
	if count != 0 {
		t.Errorf("count on day off = %d, want 0", count)
	}
}

func TestOperationalDate_Cutover(t *testing.T) {
	cases := []struct {
		now  string
		want string
	}{
		{"2024-03-10T05:59:00Z", "2024-03-09"},
		{"2024-03-10T06:00:00Z", "2024-03-10"},
		{"2024-03-10T23:30:00Z", "2024-03-10"},
		{"2024-03-10T00:00:00Z", "2024-03-09"},
	}
	for _, tc := range cases {
		now, err := time.Parse(time.RFC3339, tc.now)
		if err != nil {
			t.Fatal(err)
		}
		got := OperationalDate(now).Format(constants.DateFormat)
		if got != tc.want {
			t.Errorf("OperationalDate(%s) = %s, want %s", tc.now, got, tc.want)
		}
	}
}

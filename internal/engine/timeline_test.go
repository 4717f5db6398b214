package engine

import (
	"errors"
	"testing"

	"github.com/rotaworks/rota/internal/models"
)

func setupTimeline(t *testing.T) (*Timeline, *memStore, models.Driver, models.ShiftPattern) {
	t.Helper()
	store := newMemStore()
	driver := store.addDriver("D100")
	pattern := store.addPattern("standard", "days", "days", "days", "days")
	return NewTimeline(store), store, driver, pattern
}

func TestAssign_TruncatesEarlierOpenEndedAssignment(t *testing.T) {
	tl, store, driver, pattern := setupTimeline(t)

	old := store.addAssignment(models.Assignment{DriverID: driver.ID, PatternID: pattern.ID, StartDate: "2024-01-01"})

	created, err := tl.Assign(driver.ID, pattern.ID, date("2024-03-10"), nil)
	if err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	got, _ := store.GetAssignment(old.ID)
	if got.EndDate == nil || *got.EndDate != "2024-03-09" {
		t.Errorf("old assignment end date = %v, want 2024-03-09", got.EndDate)
	}
	if created.PredecessorID == nil || *created.PredecessorID != old.ID {
		t.Errorf("predecessor id = %v, want %d", created.PredecessorID, old.ID)
	}
}

func TestAssign_LeavesLaterStartingAssignmentsAlone(t *testing.T) {
	tl, store, driver, pattern := setupTimeline(t)

	future := store.addAssignment(models.Assignment{DriverID: driver.ID, PatternID: pattern.ID, StartDate: "2024-06-01"})

	if _, err := tl.Assign(driver.ID, pattern.ID, date("2024-03-10"), nil); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	got, _ := store.GetAssignment(future.ID)
	if got.EndDate != nil {
		t.Errorf("future assignment was truncated to %v, want untouched", *got.EndDate)
	}
}

func TestAssign_SkipsAlreadyEndedAssignments(t *testing.T) {
	tl, store, driver, pattern := setupTimeline(t)

	ended := "2024-02-01"
	a := store.addAssignment(models.Assignment{DriverID: driver.ID, PatternID: pattern.ID, StartDate: "2024-01-01", EndDate: &ended})

	created, err := tl.Assign(driver.ID, pattern.ID, date("2024-03-10"), nil)
	if err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	got, _ := store.GetAssignment(a.ID)
	if *got.EndDate != ended {
		t.Errorf("closed assignment end date changed to %s", *got.EndDate)
	}
	if created.PredecessorID != nil {
		t.Errorf("predecessor id = %v, want nil", created.PredecessorID)
	}
}

func TestAssign_TruncatesStillActiveClosedAssignment(t *testing.T) {
	tl, store, driver, pattern := setupTimeline(t)

	// Ends after the new start, so it is still active at the new start date.
	ended := "2024-04-30"
	a := store.addAssignment(models.Assignment{DriverID: driver.ID, PatternID: pattern.ID, StartDate: "2024-01-01", EndDate: &ended})

	if _, err := tl.Assign(driver.ID, pattern.ID, date("2024-03-10"), nil); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	got, _ := store.GetAssignment(a.ID)
	if *got.EndDate != "2024-03-09" {
		t.Errorf("end date = %s, want 2024-03-09", *got.EndDate)
	}
}

func TestAssign_ValidatesReferences(t *testing.T) {
	tl, _, driver, pattern := setupTimeline(t)

	if _, err := tl.Assign(999, pattern.ID, date("2024-03-10"), nil); !models.IsNotFound(err) {
		t.Errorf("unknown driver: got %v, want not-found", err)
	}
	if _, err := tl.Assign(driver.ID, 999, date("2024-03-10"), nil); !models.IsNotFound(err) {
		t.Errorf("unknown pattern: got %v, want not-found", err)
	}

	end := date("2024-03-01")
	if _, err := tl.Assign(driver.ID, pattern.ID, date("2024-03-10"), &end); !models.IsValidation(err) {
		t.Errorf("end before start: got %v, want validation error", err)
	}
}

func TestEndNow_RestoresTruncatedPredecessor(t *testing.T) {
	tl, store, driver, pattern := setupTimeline(t)

	old := store.addAssignment(models.Assignment{DriverID: driver.ID, PatternID: pattern.ID, StartDate: "2024-01-01"})
	created, err := tl.Assign(driver.ID, pattern.ID, date("2024-03-10"), nil)
	if err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	ended, err := tl.EndNow(created.ID, date("2024-05-01"))
	if err != nil {
		t.Fatalf("EndNow failed: %v", err)
	}
	if ended.EndDate == nil || *ended.EndDate != "2024-05-01" {
		t.Errorf("ended assignment end date = %v, want 2024-05-01", ended.EndDate)
	}

	restored, _ := store.GetAssignment(old.ID)
	if restored.EndDate != nil {
		t.Errorf("predecessor end date = %v, want nil (reopened)", *restored.EndDate)
	}
}

func TestEndNow_AlreadyEnded(t *testing.T) {
	tl, store, driver, pattern := setupTimeline(t)

	ended := "2024-02-01"
	a := store.addAssignment(models.Assignment{DriverID: driver.ID, PatternID: pattern.ID, StartDate: "2024-01-01", EndDate: &ended})

	if _, err := tl.EndNow(a.ID, date("2024-05-01")); !errors.Is(err, models.ErrAlreadyEnded) {
		t.Errorf("got %v, want ErrAlreadyEnded", err)
	}
}

func TestEndNow_HeuristicFallbackWithoutPredecessorID(t *testing.T) {
	tl, store, driver, pattern := setupTimeline(t)

	// Simulate rows created before the predecessor column existed: the old
	// assignment sits exactly on the boundary but no id links the two.
	boundary := "2024-03-09"
	old := store.addAssignment(models.Assignment{DriverID: driver.ID, PatternID: pattern.ID, StartDate: "2024-01-01", EndDate: &boundary})
	replacement := store.addAssignment(models.Assignment{DriverID: driver.ID, PatternID: pattern.ID, StartDate: "2024-03-10"})

	if _, err := tl.EndNow(replacement.ID, date("2024-05-01")); err != nil {
		t.Fatalf("EndNow failed: %v", err)
	}

	restored, _ := store.GetAssignment(old.ID)
	if restored.EndDate != nil {
		t.Errorf("heuristic restoration did not reopen the adjacent assignment")
	}
}

func TestEndNow_HeuristicPicksLatestStartAmongTies(t *testing.T) {
	tl, store, driver, pattern := setupTimeline(t)

	boundary := "2024-03-09"
	older := store.addAssignment(models.Assignment{DriverID: driver.ID, PatternID: pattern.ID, StartDate: "2023-06-01", EndDate: &boundary})
	newer := store.addAssignment(models.Assignment{DriverID: driver.ID, PatternID: pattern.ID, StartDate: "2024-01-01", EndDate: &boundary})
	replacement := store.addAssignment(models.Assignment{DriverID: driver.ID, PatternID: pattern.ID, StartDate: "2024-03-10"})

	if _, err := tl.EndNow(replacement.ID, date("2024-05-01")); err != nil {
		t.Fatalf("EndNow failed: %v", err)
	}

	gotOlder, _ := store.GetAssignment(older.ID)
	gotNewer, _ := store.GetAssignment(newer.ID)
	if gotNewer.EndDate != nil {
		t.Error("latest-starting boundary match was not reopened")
	}
	if gotOlder.EndDate == nil {
		t.Error("earlier boundary match must stay closed")
	}
}

func TestRemove_RestoresThenDeletes(t *testing.T) {
	tl, store, driver, pattern := setupTimeline(t)

	old := store.addAssignment(models.Assignment{DriverID: driver.ID, PatternID: pattern.ID, StartDate: "2024-01-01"})
	created, err := tl.Assign(driver.ID, pattern.ID, date("2024-03-10"), nil)
	if err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	if err := tl.Remove(created.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	if _, err := store.GetAssignment(created.ID); !models.IsNotFound(err) {
		t.Error("removed assignment still present")
	}
	restored, _ := store.GetAssignment(old.ID)
	if restored.EndDate != nil {
		t.Errorf("predecessor end date = %v, want nil (reopened)", *restored.EndDate)
	}
}

func TestRemove_UnknownAssignment(t *testing.T) {
	tl, _, _, _ := setupTimeline(t)
	if err := tl.Remove(12345); !models.IsNotFound(err) {
		t.Errorf("got %v, want not-found", err)
	}
}

func TestRestore_SkipsPredecessorEndedElsewhere(t *testing.T) {
	tl, store, driver, pattern := setupTimeline(t)

	old := store.addAssignment(models.Assignment{DriverID: driver.ID, PatternID: pattern.ID, StartDate: "2024-01-01"})
	created, err := tl.Assign(driver.ID, pattern.ID, date("2024-03-10"), nil)
	if err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	// Move the predecessor off the boundary, as if an operator re-ended it.
	moved, _ := store.GetAssignment(old.ID)
	other := "2024-02-15"
	moved.EndDate = &other
	store.assignments[moved.ID] = moved

	if _, err := tl.EndNow(created.ID, date("2024-05-01")); err != nil {
		t.Fatalf("EndNow failed: %v", err)
	}

	got, _ := store.GetAssignment(old.ID)
	if got.EndDate == nil || *got.EndDate != other {
		t.Errorf("predecessor off the boundary must not be reopened, end date = %v", got.EndDate)
	}
}

package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/rotaworks/rota/internal/models"
)

func TestRegistry_DefaultTiming(t *testing.T) {
	store := newMemStore()
	store.addTiming("nights", "22:00", "06:00")
	reg := NewRegistry(store)

	timing, err := reg.DefaultTiming("nights")
	if err != nil {
		t.Fatalf("DefaultTiming failed: %v", err)
	}
	if timing.Start != "22:00" || timing.End != "06:00" {
		t.Errorf("got %s-%s, want 22:00-06:00", timing.Start, timing.End)
	}
	if !timing.Wraps() {
		t.Error("nights timing should wrap midnight")
	}

	if _, err := reg.DefaultTiming("twilights"); !errors.Is(err, models.ErrUnknownShiftType) {
		t.Errorf("got %v, want ErrUnknownShiftType", err)
	}
}

func TestRegistry_DeleteBlockedByPatternReference(t *testing.T) {
	store := newMemStore()
	store.addTiming("lates", "14:00", "22:00")
	store.addPattern("late crew", "lates", "lates")
	reg := NewRegistry(store)

	err := reg.Delete("lates")
	if !models.IsConflict(err) {
		t.Fatalf("got %v, want conflict error", err)
	}
	if !strings.Contains(err.Error(), "late crew") {
		t.Errorf("conflict error %q does not name the referencing pattern", err.Error())
	}
}

func TestRegistry_DeleteBlockedByRuleReference(t *testing.T) {
	store := newMemStore()
	store.addTiming("lates", "14:00", "22:00")
	rule := store.addRule(models.TimingRule{DriverID: 1, ShiftType: strPtr("lates"), Priority: 1, Start: "15:00", End: "23:00"})
	reg := NewRegistry(store)

	err := reg.Delete("lates")
	if !models.IsConflict(err) {
		t.Fatalf("got %v, want conflict error", err)
	}
	if !strings.Contains(err.Error(), "rule") {
		t.Errorf("conflict error %q does not name the referencing rule %d", err.Error(), rule.ID)
	}
}

func TestRegistry_DeleteUnreferencedLabel(t *testing.T) {
	store := newMemStore()
	store.addTiming("twilights", "18:00", "02:00")
	reg := NewRegistry(store)

	if err := reg.Delete("twilights"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.GetShiftType("twilights"); !models.IsNotFound(err) {
		t.Error("label still registered after delete")
	}
}

func TestRegistry_SaveValidation(t *testing.T) {
	reg := NewRegistry(newMemStore())

	cases := []struct {
		name   string
		timing models.ShiftTypeTiming
	}{
		{"day off sentinel", models.ShiftTypeTiming{Label: "day off", Start: "08:00", End: "16:00"}},
		{"uppercase label", models.ShiftTypeTiming{Label: "Nights", Start: "22:00", End: "06:00"}},
		{"label with spaces", models.ShiftTypeTiming{Label: "split shift", Start: "08:00", End: "16:00"}},
		{"bad clock time", models.ShiftTypeTiming{Label: "days", Start: "8am", End: "16:00"}},
		{"zero-length window", models.ShiftTypeTiming{Label: "days", Start: "08:00", End: "08:00"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := reg.Save(tc.timing); !models.IsValidation(err) {
				t.Errorf("got %v, want validation error", err)
			}
		})
	}
}

func TestRegistry_SaveCustomLabel(t *testing.T) {
	store := newMemStore()
	reg := NewRegistry(store)

	if err := reg.Save(models.ShiftTypeTiming{Label: "split_2", Start: "10:00", End: "19:00"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := store.GetShiftType("split_2"); err != nil {
		t.Errorf("saved label not retrievable: %v", err)
	}
}

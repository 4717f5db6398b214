package engine

import (
	"fmt"

	"github.com/rotaworks/rota/internal/constants"
	"github.com/rotaworks/rota/internal/models"
	"github.com/rotaworks/rota/internal/validation"
)

// Registry manages the open-ended set of shift-type labels and their default
// clock-time windows. The four baseline labels are seeded by the initial
// schema migration, not here; the registry only guards writes and deletes.
type Registry struct {
	store RegistryStore
}

// NewRegistry creates a Registry backed by the given store.
func NewRegistry(store RegistryStore) *Registry {
	return &Registry{store: store}
}

// DefaultTiming returns the registered window for a label, or
// models.ErrUnknownShiftType when the label has no timing row.
func (r *Registry) DefaultTiming(label string) (models.ShiftTypeTiming, error) {
	t, err := r.store.GetShiftType(label)
	if err != nil {
		if models.IsNotFound(err) {
			return models.ShiftTypeTiming{}, fmt.Errorf("%w: %s", models.ErrUnknownShiftType, label)
		}
		return models.ShiftTypeTiming{}, err
	}
	return t, nil
}

// Save registers or updates a shift-type timing after validating the label
// and the window. The day-off sentinel can never carry a timing.
func (r *Registry) Save(t models.ShiftTypeTiming) error {
	if t.Label == constants.DayOff {
		return models.Invalid("%q is not a shift type", constants.DayOff)
	}
	if err := validation.ValidateLabel(t.Label); err != nil {
		return err
	}
	if err := validation.ValidateWindow(t.Start, t.End); err != nil {
		return err
	}
	return r.store.SaveShiftType(t)
}

// Delete removes a shift-type label. The delete is rejected with a
// ConflictError naming the specific referencing pattern or rule while the
// label is still in use anywhere.
func (r *Registry) Delete(label string) error {
	if _, err := r.DefaultTiming(label); err != nil {
		return err
	}

	patterns, err := r.store.GetAllPatterns()
	if err != nil {
		return err
	}
	for _, p := range patterns {
		for _, day := range p.Days {
			if day == label {
				return &models.ConflictError{Label: label, Ref: fmt.Sprintf("pattern %q", p.Name)}
			}
		}
	}

	rules, err := r.store.GetAllRules()
	if err != nil {
		return err
	}
	for _, rule := range rules {
		if rule.ShiftType != nil && *rule.ShiftType == label {
			return &models.ConflictError{Label: label, Ref: fmt.Sprintf("timing rule %d", rule.ID)}
		}
	}

	return r.store.DeleteShiftType(label)
}

// All returns every registered shift-type timing.
func (r *Registry) All() ([]models.ShiftTypeTiming, error) {
	return r.store.GetAllShiftTypes()
}

// Package engine implements the shift resolution core: cyclic pattern day
// lookup, the assignment timeline with overlap truncation and restoration,
// priority-ordered custom timing resolution, and the overnight-aware
// occupancy queries. It performs no I/O of its own and emits no output;
// storage is abstracted behind the narrow interfaces below.
package engine

import "github.com/rotaworks/rota/internal/models"

// Store is the read-only view of the roster data the query side needs.
type Store interface {
	GetDriver(id int64) (models.Driver, error)
	GetPattern(id int64) (models.ShiftPattern, error)
	GetShiftType(label string) (models.ShiftTypeTiming, error)
	GetAssignmentsActiveOn(date string) ([]models.Assignment, error)
	GetRulesForDriver(driverID int64) ([]models.TimingRule, error)
}

// Tx is a transaction-scoped view of the assignment timeline. Every mutating
// timeline operation (assign, end, remove) runs its reads and writes against
// one Tx so overlap truncation and restoration commit atomically.
type Tx interface {
	GetAssignment(id int64) (models.Assignment, error)
	GetAssignmentsForDriver(driverID int64) ([]models.Assignment, error)
	InsertAssignment(a models.Assignment) (int64, error)
	UpdateAssignment(a models.Assignment) error
	DeleteAssignment(id int64) error
}

// TimelineStore is what the assignment timeline manager requires.
type TimelineStore interface {
	GetDriver(id int64) (models.Driver, error)
	GetPattern(id int64) (models.ShiftPattern, error)
	InTx(fn func(Tx) error) error
}

// RegistryStore is what the shift timing registry requires.
type RegistryStore interface {
	GetShiftType(label string) (models.ShiftTypeTiming, error)
	GetAllShiftTypes() ([]models.ShiftTypeTiming, error)
	SaveShiftType(t models.ShiftTypeTiming) error
	DeleteShiftType(label string) error
	GetAllPatterns() ([]models.ShiftPattern, error)
	GetAllRules() ([]models.TimingRule, error)
}

package storage

import (
	"github.com/rotaworks/rota/internal/engine"
	"github.com/rotaworks/rota/internal/models"
)

// Tx is the transaction-scoped assignment view the engine mutates through.
type Tx = engine.Tx

// Provider is the full storage contract: entity CRUD for the calling layer
// plus the narrow read and transaction surfaces the engine consumes.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	// LoadForMigration opens the database without the schema version gate;
	// Load refuses a behind schema, which is the one state migrate must
	// be able to start from.
	LoadForMigration() error
	Close() error
	GetConfigPath() string
	// Migrate applies pending schema migrations, reporting through logFn.
	Migrate(logFn func(string)) (int, error)

	// Drivers
	AddDriver(d models.Driver) (int64, error)
	GetDriver(id int64) (models.Driver, error)
	GetDriverByNumber(number string) (models.Driver, error)
	GetAllDrivers() ([]models.Driver, error)
	UpdateDriver(d models.Driver) error
	// DeleteDriver removes the driver along with its assignments and timing rules.
	DeleteDriver(id int64) error

	// Shift patterns
	AddPattern(p models.ShiftPattern) (int64, error)
	GetPattern(id int64) (models.ShiftPattern, error)
	GetPatternByName(name string) (models.ShiftPattern, error)
	GetAllPatterns() ([]models.ShiftPattern, error)
	UpdatePattern(p models.ShiftPattern) error
	// DeletePattern removes the pattern and cascades to its assignments.
	DeletePattern(id int64) error

	// Shift types
	SaveShiftType(t models.ShiftTypeTiming) error
	GetShiftType(label string) (models.ShiftTypeTiming, error)
	GetAllShiftTypes() ([]models.ShiftTypeTiming, error)
	DeleteShiftType(label string) error

	// Assignments (reads; mutations go through InTx)
	GetAssignment(id int64) (models.Assignment, error)
	GetAllAssignments() ([]models.Assignment, error)
	GetAssignmentsForDriver(driverID int64) ([]models.Assignment, error)
	GetAssignmentsActiveOn(date string) ([]models.Assignment, error)

	// InTx runs fn inside a single database transaction. The overlap
	// truncation and predecessor restoration of the assignment timeline
	// read-then-write several rows and must commit all-or-nothing.
	InTx(fn func(Tx) error) error

	// Custom timing rules
	AddRule(r models.TimingRule) (int64, error)
	GetRule(id int64) (models.TimingRule, error)
	GetRulesForDriver(driverID int64) ([]models.TimingRule, error)
	GetAllRules() ([]models.TimingRule, error)
	DeleteRule(id int64) error
}

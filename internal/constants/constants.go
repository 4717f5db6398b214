package constants

const (
	// AppName is used for config paths, keyring entries, and the Postgres search_path
	AppName = "rota"

	// DefaultKeyringUser is the keyring account under which the DB connection string is stored
	DefaultKeyringUser = "default"

	// EnvDBConnection is the environment variable checked for a PostgreSQL connection string
	EnvDBConnection = "ROTA_DB_CONNECTION"
)

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard clock-time format used throughout the application (HH:MM)
	TimeFormat = "15:04"
)

const (
	// DayOff is the sentinel pattern-day label for a rest day
	DayOff = "day off"

	// OperationalCutoverHour is the hour at which the business day rolls over.
	// Before 06:00 the "operational date" is still the previous calendar day,
	// so overnight crews show up on the roster they started on.
	OperationalCutoverHour = 6
)

// Baseline shift-type labels seeded at store initialization.
const (
	ShiftEarlies = "earlies"
	ShiftDays    = "days"
	ShiftLates   = "lates"
	ShiftNights  = "nights"
)

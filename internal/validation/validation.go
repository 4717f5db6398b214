package validation

import (
	"regexp"
	"strings"
	"time"

	"github.com/rotaworks/rota/internal/constants"
	"github.com/rotaworks/rota/internal/models"
)

// labelPattern restricts shift-type labels to lowercase letters, digits and
// underscores, matching the open-ended label set of the original dashboard.
var labelPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ParseDate parses a YYYY-MM-DD date, accepting the shorthands "today" and
// "tomorrow" against the supplied reference time.
func ParseDate(s string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return models.DateOnly(now), nil
	case "tomorrow":
		return models.DateOnly(now).AddDate(0, 0, 1), nil
	}
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return time.Time{}, models.Invalid("invalid date %q, use YYYY-MM-DD", s)
	}
	return t, nil
}

// ParseClock validates an HH:MM 24-hour clock time and returns it in
// normalized zero-padded form.
func ParseClock(s string) (string, error) {
	t, err := time.Parse(constants.TimeFormat, strings.TrimSpace(s))
	if err != nil {
		return "", models.Invalid("invalid time %q, use HH:MM (24-hour)", s)
	}
	return t.Format(constants.TimeFormat), nil
}

// ValidLabel reports whether s is an acceptable shift-type label.
func ValidLabel(s string) bool {
	return labelPattern.MatchString(s)
}

// ValidateLabel rejects malformed shift-type labels.
func ValidateLabel(s string) error {
	if !ValidLabel(s) {
		return models.Invalid("invalid shift type label %q: use lowercase letters, digits and underscores", s)
	}
	return nil
}

// ValidatePattern enforces the pattern write-time contract: a positive cycle
// length, exactly one day entry per cycle day, and every entry either a known
// shift-type label or the day-off sentinel. Violations here must never reach
// the lookup path.
func ValidatePattern(p models.ShiftPattern, knownLabels []string) error {
	if strings.TrimSpace(p.Name) == "" {
		return models.Invalid("pattern name is required")
	}
	if p.CycleLength < 1 {
		return models.Invalid("cycle length must be at least 1, got %d", p.CycleLength)
	}
	if len(p.Days) != p.CycleLength {
		return models.Invalid("pattern has %d day entries but cycle length %d", len(p.Days), p.CycleLength)
	}

	known := make(map[string]bool, len(knownLabels))
	for _, l := range knownLabels {
		known[l] = true
	}

	for i, day := range p.Days {
		if day == constants.DayOff {
			continue
		}
		if !known[day] {
			return models.Invalid("day %d references unknown shift type %q", i+1, day)
		}
	}
	return nil
}

// ValidateWindow checks a start/end clock-time pair. Equal start and end is
// rejected; end before start is legal and means the window wraps midnight.
func ValidateWindow(start, end string) error {
	if _, err := ParseClock(start); err != nil {
		return err
	}
	if _, err := ParseClock(end); err != nil {
		return err
	}
	if start == end {
		return models.Invalid("shift window cannot start and end at the same time (%s)", start)
	}
	return nil
}

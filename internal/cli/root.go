// Package cli holds the shared command context and formatting helpers used
// by every subcommand. The CLI is the validating boundary: dates, clock
// times, and labels are parsed here and the engine only ever sees clean
// values.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rotaworks/rota/internal/engine"
	"github.com/rotaworks/rota/internal/models"
	"github.com/rotaworks/rota/internal/storage"
)

type Context struct {
	Store     storage.Provider
	Timeline  *engine.Timeline
	Evaluator *engine.Evaluator
	Registry  *engine.Registry
	Debug     bool
}

// NewContext wires the engine components onto a loaded store.
func NewContext(store storage.Provider) *Context {
	return &Context{
		Store:     store,
		Timeline:  engine.NewTimeline(store),
		Evaluator: engine.NewEvaluator(store),
		Registry:  engine.NewRegistry(store),
	}
}

// ResolveDriver accepts either a numeric driver id or an operator-facing
// driver number and returns the driver record.
func (c *Context) ResolveDriver(ref string) (models.Driver, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		if d, err := c.Store.GetDriver(id); err == nil {
			return d, nil
		}
	}
	return c.Store.GetDriverByNumber(ref)
}

// ResolvePattern accepts either a numeric pattern id or a pattern name.
func (c *Context) ResolvePattern(ref string) (models.ShiftPattern, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		if p, err := c.Store.GetPattern(id); err == nil {
			return p, nil
		}
	}
	return c.Store.GetPatternByName(ref)
}

// TitleCase renders a shift-type label for display, e.g. "split_2" ->
// "Split 2".
func TitleCase(label string) string {
	words := strings.Split(strings.ReplaceAll(label, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// FormatWindow renders a resolved shift window, marking overnight windows.
func FormatWindow(start, end string) string {
	if end < start {
		return fmt.Sprintf("%s-%s (+1d)", start, end)
	}
	return fmt.Sprintf("%s-%s", start, end)
}

// FormatDateRange renders an assignment's date range.
func FormatDateRange(start string, end *string) string {
	if end == nil {
		return fmt.Sprintf("%s - ongoing", start)
	}
	return fmt.Sprintf("%s - %s", start, *end)
}

// ParseWeekday maps a weekday name or Monday-zero index to the engine's
// weekday convention.
func ParseWeekday(s string) (int, error) {
	names := map[string]int{
		"mon": 0, "monday": 0,
		"tue": 1, "tuesday": 1,
		"wed": 2, "wednesday": 2,
		"thu": 3, "thursday": 3,
		"fri": 4, "friday": 4,
		"sat": 5, "saturday": 5,
		"sun": 6, "sunday": 6,
	}
	key := strings.TrimSpace(strings.ToLower(s))
	if idx, ok := names[key]; ok {
		return idx, nil
	}
	if n, err := strconv.Atoi(key); err == nil && n >= 0 && n <= 6 {
		return n, nil
	}
	return 0, models.Invalid("invalid weekday %q: use a name or 0-6 (Monday = 0)", s)
}

// WeekdayName renders a Monday-zero weekday index.
func WeekdayName(idx int) string {
	// time.Weekday is Sunday-zero.
	return time.Weekday((idx + 1) % 7).String()
}

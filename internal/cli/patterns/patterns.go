package patterns

import (
	"fmt"
	"strings"

	"github.com/rotaworks/rota/internal/cli"
	"github.com/rotaworks/rota/internal/models"
	"github.com/rotaworks/rota/internal/validation"
)

func knownLabels(ctx *cli.Context) ([]string, error) {
	timings, err := ctx.Store.GetAllShiftTypes()
	if err != nil {
		return nil, err
	}
	labels := make([]string, 0, len(timings))
	for _, t := range timings {
		labels = append(labels, t.Label)
	}
	return labels, nil
}

func splitDays(raw string) []string {
	parts := strings.Split(raw, ",")
	days := make([]string, 0, len(parts))
	for _, p := range parts {
		days = append(days, strings.TrimSpace(strings.ToLower(p)))
	}
	return days
}

type PatternAddCmd struct {
	Name string `arg:"" help:"Pattern name, e.g. 'week-on-week-off'."`
	Days string `arg:"" help:"Comma-separated shift types, one per cycle day, e.g. 'earlies,earlies,day off,lates'."`
}

func (cmd *PatternAddCmd) Run(ctx *cli.Context) error {
	days := splitDays(cmd.Days)
	p := models.ShiftPattern{
		Name:        strings.TrimSpace(cmd.Name),
		CycleLength: len(days),
		Days:        days,
	}
	labels, err := knownLabels(ctx)
	if err != nil {
		return err
	}
	if err := validation.ValidatePattern(p, labels); err != nil {
		return err
	}
	if _, err := ctx.Store.GetPatternByName(p.Name); err == nil {
		return fmt.Errorf("pattern %q already exists (use 'rota pattern edit')", p.Name)
	} else if !models.IsNotFound(err) {
		return err
	}
	id, err := ctx.Store.AddPattern(p)
	if err != nil {
		return err
	}
	fmt.Printf("Added pattern %q (id %d, %d-day cycle)\n", p.Name, id, p.CycleLength)
	return nil
}

type PatternEditCmd struct {
	Pattern string `arg:"" help:"Pattern id or name."`
	Days    string `arg:"" help:"Replacement comma-separated shift types, one per cycle day."`
	Rename  string `help:"New name for the pattern."`
}

func (cmd *PatternEditCmd) Run(ctx *cli.Context) error {
	p, err := ctx.ResolvePattern(cmd.Pattern)
	if err != nil {
		return err
	}
	days := splitDays(cmd.Days)
	p.Days = days
	p.CycleLength = len(days)
	if cmd.Rename != "" {
		p.Name = strings.TrimSpace(cmd.Rename)
	}
	labels, err := knownLabels(ctx)
	if err != nil {
		return err
	}
	if err := validation.ValidatePattern(p, labels); err != nil {
		return err
	}
	if err := ctx.Store.UpdatePattern(p); err != nil {
		return err
	}
	fmt.Printf("Updated pattern %q (%d-day cycle). Existing assignments resolve against the new cycle.\n", p.Name, p.CycleLength)
	return nil
}

type PatternListCmd struct{}

func (cmd *PatternListCmd) Run(ctx *cli.Context) error {
	patterns, err := ctx.Store.GetAllPatterns()
	if err != nil {
		return err
	}
	if len(patterns) == 0 {
		fmt.Println("No shift patterns registered.")
		return nil
	}
	for _, p := range patterns {
		fmt.Printf("%4d  %-24s %2d-day cycle: %s\n", p.ID, p.Name, p.CycleLength, strings.Join(p.Days, ", "))
	}
	return nil
}

type PatternRemoveCmd struct {
	Pattern string `arg:"" help:"Pattern id or name."`
}

func (cmd *PatternRemoveCmd) Run(ctx *cli.Context) error {
	p, err := ctx.ResolvePattern(cmd.Pattern)
	if err != nil {
		return err
	}
	assignments, err := ctx.Store.GetAllAssignments()
	if err != nil {
		return err
	}
	affected := 0
	for _, a := range assignments {
		if a.PatternID == p.ID {
			affected++
		}
	}
	if err := ctx.Store.DeletePattern(p.ID); err != nil {
		return err
	}
	if affected > 0 {
		fmt.Printf("Removed pattern %q and %d assignment(s) that used it\n", p.Name, affected)
	} else {
		fmt.Printf("Removed pattern %q\n", p.Name)
	}
	return nil
}

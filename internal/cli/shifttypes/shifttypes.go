package shifttypes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rotaworks/rota/internal/cli"
	"github.com/rotaworks/rota/internal/models"
	"github.com/rotaworks/rota/internal/validation"
)

type ShiftTypeSetCmd struct {
	Label string `arg:"" help:"Shift type label, e.g. 'earlies' or 'split_2'."`
	Start string `arg:"" help:"Default start time (HH:MM)."`
	End   string `arg:"" help:"Default end time (HH:MM). An end before the start spans midnight."`
}

func (cmd *ShiftTypeSetCmd) Run(ctx *cli.Context) error {
	start, err := validation.ParseClock(cmd.Start)
	if err != nil {
		return err
	}
	end, err := validation.ParseClock(cmd.End)
	if err != nil {
		return err
	}
	t := models.ShiftTypeTiming{
		Label: strings.TrimSpace(strings.ToLower(cmd.Label)),
		Start: start,
		End:   end,
	}
	if err := ctx.Registry.Save(t); err != nil {
		return err
	}
	suffix := ""
	if t.Wraps() {
		suffix = " (spans midnight)"
	}
	fmt.Printf("Shift type %s set to %s-%s%s\n", t.Label, t.Start, t.End, suffix)
	return nil
}

type ShiftTypeListCmd struct{}

func (cmd *ShiftTypeListCmd) Run(ctx *cli.Context) error {
	timings, err := ctx.Registry.All()
	if err != nil {
		return err
	}
	if len(timings) == 0 {
		fmt.Println("No shift types registered. Run 'rota init' to seed the baseline set.")
		return nil
	}
	sort.Slice(timings, func(i, j int) bool { return timings[i].Start < timings[j].Start })
	for _, t := range timings {
		fmt.Printf("%-12s %s\n", t.Label, cli.FormatWindow(t.Start, t.End))
	}
	return nil
}

type ShiftTypeRemoveCmd struct {
	Label string `arg:"" help:"Shift type label to remove."`
}

func (cmd *ShiftTypeRemoveCmd) Run(ctx *cli.Context) error {
	label := strings.TrimSpace(strings.ToLower(cmd.Label))
	if err := ctx.Registry.Delete(label); err != nil {
		return err
	}
	fmt.Printf("Removed shift type %s\n", label)
	return nil
}

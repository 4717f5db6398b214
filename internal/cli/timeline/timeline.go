package timeline

import (
	"fmt"
	"time"

	"github.com/rotaworks/rota/internal/cli"
	"github.com/rotaworks/rota/internal/constants"
	"github.com/rotaworks/rota/internal/validation"
)

type AssignCmd struct {
	Driver  string `arg:"" help:"Driver id or number."`
	Pattern string `arg:"" help:"Pattern id or name."`
	Start   string `arg:"" help:"Start date (YYYY-MM-DD, 'today', or 'tomorrow')."`
	End     string `help:"Optional end date; omit for an open-ended assignment."`
}

func (cmd *AssignCmd) Run(ctx *cli.Context) error {
	d, err := ctx.ResolveDriver(cmd.Driver)
	if err != nil {
		return err
	}
	p, err := ctx.ResolvePattern(cmd.Pattern)
	if err != nil {
		return err
	}
	now := time.Now()
	start, err := validation.ParseDate(cmd.Start, now)
	if err != nil {
		return err
	}
	var end *time.Time
	if cmd.End != "" {
		e, err := validation.ParseDate(cmd.End, now)
		if err != nil {
			return err
		}
		end = &e
	}

	a, err := ctx.Timeline.Assign(d.ID, p.ID, start, end)
	if err != nil {
		return err
	}
	fmt.Printf("Assigned %s to %q: %s (assignment %d)\n", d.Number, p.Name, cli.FormatDateRange(a.StartDate, a.EndDate), a.ID)
	if a.PredecessorID != nil {
		fmt.Printf("Previous assignment %d truncated to %s\n", *a.PredecessorID, start.AddDate(0, 0, -1).Format(constants.DateFormat))
	}
	return nil
}

type EndCmd struct {
	Assignment int64 `arg:"" help:"Assignment id to end as of today."`
}

func (cmd *EndCmd) Run(ctx *cli.Context) error {
	a, err := ctx.Timeline.EndNow(cmd.Assignment, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("Assignment %d ended on %s\n", a.ID, *a.EndDate)
	if a.PredecessorID != nil {
		if p, err := ctx.Store.GetAssignment(*a.PredecessorID); err == nil && p.EndDate == nil {
			fmt.Printf("Predecessor assignment %d reopened\n", p.ID)
		}
	}
	return nil
}

type UnassignCmd struct {
	Assignment int64 `arg:"" help:"Assignment id to delete from the timeline."`
}

func (cmd *UnassignCmd) Run(ctx *cli.Context) error {
	if err := ctx.Timeline.Remove(cmd.Assignment); err != nil {
		return err
	}
	fmt.Printf("Assignment %d removed\n", cmd.Assignment)
	return nil
}

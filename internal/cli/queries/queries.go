package queries

import (
	"fmt"
	"sort"
	"time"

	"github.com/rotaworks/rota/internal/cli"
	"github.com/rotaworks/rota/internal/constants"
	"github.com/rotaworks/rota/internal/engine"
	"github.com/rotaworks/rota/internal/models"
	"github.com/rotaworks/rota/internal/validation"
)

type RosterCmd struct {
	Date string `arg:"" optional:"" help:"Date to roster (YYYY-MM-DD, 'today', 'tomorrow'). Defaults to the operational today."`
}

func (cmd *RosterCmd) Run(ctx *cli.Context) error {
	now := time.Now()
	date := engine.OperationalDate(now)
	if cmd.Date != "" {
		var err error
		date, err = validation.ParseDate(cmd.Date, now)
		if err != nil {
			return err
		}
	}
	roster, err := ctx.Evaluator.RosterForDate(date)
	if err != nil {
		return err
	}
	printRoster(date, roster)
	return nil
}

func printRoster(date time.Time, roster map[string][]models.RosterEntry) {
	fmt.Printf("Roster for %s (%s)\n", date.Format(constants.DateFormat), date.Weekday())
	if len(roster) == 0 {
		fmt.Println("Nobody rostered.")
		return
	}

	labels := make([]string, 0, len(roster))
	for label := range roster {
		labels = append(labels, label)
	}
	// Buckets print in order of their earliest start, morning first.
	sort.Slice(labels, func(i, j int) bool {
		a, b := roster[labels[i]], roster[labels[j]]
		if a[0].Start != b[0].Start {
			return a[0].Start < b[0].Start
		}
		return labels[i] < labels[j]
	})

	for _, label := range labels {
		fmt.Printf("\n%s\n", cli.TitleCase(label))
		for _, entry := range roster[label] {
			printEntry(entry)
		}
	}
}

func printEntry(entry models.RosterEntry) {
	line := fmt.Sprintf("  %-10s %-20s %s", entry.Driver.Number, entry.Driver.Name, cli.FormatWindow(entry.Start, entry.End))
	if entry.Custom {
		line += "  *custom"
		if entry.Note != "" {
			line += ": " + entry.Note
		}
	}
	fmt.Println(line)
}

type OccupancyCmd struct {
	Date string `arg:"" help:"Date to query (YYYY-MM-DD, 'today', 'tomorrow')."`
	Time string `arg:"" help:"Clock time to query (HH:MM)."`
}

func (cmd *OccupancyCmd) Run(ctx *cli.Context) error {
	now := time.Now()
	date, err := validation.ParseDate(cmd.Date, now)
	if err != nil {
		return err
	}
	clock, err := validation.ParseClock(cmd.Time)
	if err != nil {
		return err
	}

	count, entries, err := ctx.Evaluator.OccupancyAt(date, clock)
	if err != nil {
		return err
	}
	fmt.Printf("%d on duty at %s %s\n", count, date.Format(constants.DateFormat), clock)
	for _, entry := range entries {
		fmt.Printf("  %-10s %-20s %-12s %s\n", entry.Driver.Number, entry.Driver.Name, entry.ShiftType, cli.FormatWindow(entry.Start, entry.End))
	}
	return nil
}

type NowCmd struct{}

func (cmd *NowCmd) Run(ctx *cli.Context) error {
	now := time.Now()
	date := engine.OperationalDate(now)
	clock := now.Format(constants.TimeFormat)

	count, entries, err := ctx.Evaluator.OccupancyAt(date, clock)
	if err != nil {
		return err
	}
	fmt.Printf("Operational date %s, time %s: %d on duty\n", date.Format(constants.DateFormat), clock, count)
	for _, entry := range entries {
		fmt.Printf("  %-10s %-20s %-12s %s\n", entry.Driver.Number, entry.Driver.Name, entry.ShiftType, cli.FormatWindow(entry.Start, entry.End))
	}
	return nil
}

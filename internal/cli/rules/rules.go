package rules

import (
	"fmt"
	"strings"

	"github.com/rotaworks/rota/internal/cli"
	"github.com/rotaworks/rota/internal/models"
	"github.com/rotaworks/rota/internal/validation"
)

type RuleAddCmd struct {
	Driver string `arg:"" help:"Driver id or number the rule belongs to."`
	Start  string `arg:"" help:"Override start time (HH:MM)."`
	End    string `arg:"" help:"Override end time (HH:MM)."`

	Assignment int64  `help:"Scope the rule to one assignment id (0 = driver-wide)."`
	ShiftType  string `help:"Only apply when the resolved shift type matches this label."`
	CycleDay   int    `help:"Only apply on this cycle day (0-based)." default:"-1"`
	Weekday    string `help:"Only apply on this weekday (name or 0-6, Monday = 0)."`
	Priority   int    `help:"Lower priority is evaluated first within the same scope." default:"0"`
	Note       string `help:"Free-text note shown on the roster."`
}

func (cmd *RuleAddCmd) Run(ctx *cli.Context) error {
	d, err := ctx.ResolveDriver(cmd.Driver)
	if err != nil {
		return err
	}
	start, err := validation.ParseClock(cmd.Start)
	if err != nil {
		return err
	}
	end, err := validation.ParseClock(cmd.End)
	if err != nil {
		return err
	}
	if err := validation.ValidateWindow(start, end); err != nil {
		return err
	}

	r := models.TimingRule{
		DriverID: d.ID,
		Start:    start,
		End:      end,
		Priority: cmd.Priority,
		Note:     strings.TrimSpace(cmd.Note),
	}
	if cmd.Assignment != 0 {
		a, err := ctx.Store.GetAssignment(cmd.Assignment)
		if err != nil {
			return err
		}
		if a.DriverID != d.ID {
			return models.Invalid("assignment %d belongs to another driver", a.ID)
		}
		r.AssignmentID = &a.ID
	}
	if cmd.ShiftType != "" {
		label := strings.TrimSpace(strings.ToLower(cmd.ShiftType))
		if _, err := ctx.Store.GetShiftType(label); err != nil {
			return err
		}
		r.ShiftType = &label
	}
	if cmd.CycleDay >= 0 {
		cd := cmd.CycleDay
		r.CycleDay = &cd
	}
	if cmd.Weekday != "" {
		wd, err := cli.ParseWeekday(cmd.Weekday)
		if err != nil {
			return err
		}
		r.Weekday = &wd
	}

	id, err := ctx.Store.AddRule(r)
	if err != nil {
		return err
	}
	fmt.Printf("Added timing rule %d for driver %s: %s\n", id, d.Number, cli.FormatWindow(start, end))
	return nil
}

type RuleListCmd struct {
	Driver string `arg:"" optional:"" help:"Driver id or number. Omit to list every rule."`
}

func (cmd *RuleListCmd) Run(ctx *cli.Context) error {
	var (
		rules   []models.TimingRule
		err     error
		numbers = make(map[int64]string)
	)
	if cmd.Driver != "" {
		d, rerr := ctx.ResolveDriver(cmd.Driver)
		if rerr != nil {
			return rerr
		}
		numbers[d.ID] = d.Number
		rules, err = ctx.Store.GetRulesForDriver(d.ID)
	} else {
		rules, err = ctx.Store.GetAllRules()
	}
	if err != nil {
		return err
	}
	if len(rules) == 0 {
		fmt.Println("No timing rules.")
		return nil
	}
	for _, r := range rules {
		number, ok := numbers[r.DriverID]
		if !ok {
			d, err := ctx.Store.GetDriver(r.DriverID)
			if err != nil {
				return err
			}
			number = d.Number
			numbers[r.DriverID] = number
		}
		fmt.Println(formatRule(r, number))
	}
	return nil
}

// formatRule renders one rule list line, using the operator-facing driver
// number rather than the internal id.
func formatRule(r models.TimingRule, driverNumber string) string {
	return fmt.Sprintf("%4d  driver %-10s %s  p%d%s", r.ID, driverNumber, cli.FormatWindow(r.Start, r.End), r.Priority, describeFilters(r))
}

func describeFilters(r models.TimingRule) string {
	var parts []string
	if r.AssignmentID != nil {
		parts = append(parts, fmt.Sprintf("assignment %d", *r.AssignmentID))
	}
	if r.ShiftType != nil {
		parts = append(parts, *r.ShiftType)
	}
	if r.CycleDay != nil {
		parts = append(parts, fmt.Sprintf("cycle day %d", *r.CycleDay))
	}
	if r.Weekday != nil {
		parts = append(parts, strings.ToLower(cli.WeekdayName(*r.Weekday)))
	}
	if r.Note != "" {
		parts = append(parts, fmt.Sprintf("%q", r.Note))
	}
	if len(parts) == 0 {
		return "  (all shifts)"
	}
	return "  " + strings.Join(parts, ", ")
}

type RuleRemoveCmd struct {
	ID int64 `arg:"" help:"Timing rule id."`
}

func (cmd *RuleRemoveCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Store.GetRule(cmd.ID); err != nil {
		return err
	}
	if err := ctx.Store.DeleteRule(cmd.ID); err != nil {
		return err
	}
	fmt.Printf("Removed timing rule %d\n", cmd.ID)
	return nil
}

package drivers

import (
	"fmt"
	"strings"

	"github.com/rotaworks/rota/internal/cli"
	"github.com/rotaworks/rota/internal/models"
)

type DriverAddCmd struct {
	Number string `arg:"" help:"Operator-facing driver number."`
	Name   string `short:"n" help:"Driver display name."`
}

func (cmd *DriverAddCmd) Validate() error {
	if strings.TrimSpace(cmd.Number) == "" {
		return fmt.Errorf("driver number is required")
	}
	return nil
}

func (cmd *DriverAddCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Store.GetDriverByNumber(cmd.Number); err == nil {
		return fmt.Errorf("driver %s already exists", cmd.Number)
	} else if !models.IsNotFound(err) {
		return err
	}

	id, err := ctx.Store.AddDriver(models.Driver{Number: strings.TrimSpace(cmd.Number), Name: strings.TrimSpace(cmd.Name)})
	if err != nil {
		return err
	}
	fmt.Printf("Added driver %s (id %d)\n", cmd.Number, id)
	return nil
}

type DriverListCmd struct{}

func (cmd *DriverListCmd) Run(ctx *cli.Context) error {
	drivers, err := ctx.Store.GetAllDrivers()
	if err != nil {
		return err
	}
	if len(drivers) == 0 {
		fmt.Println("No drivers registered.")
		return nil
	}
	for _, d := range drivers {
		assignments, err := ctx.Store.GetAssignmentsForDriver(d.ID)
		if err != nil {
			return err
		}
		line := fmt.Sprintf("%4d  %-10s  %s", d.ID, d.Number, d.Name)
		fmt.Printf("%s  (%d assignment(s))\n", strings.TrimRight(line, " "), len(assignments))
	}
	return nil
}

type DriverRemoveCmd struct {
	Driver string `arg:"" help:"Driver id or number."`
}

func (cmd *DriverRemoveCmd) Run(ctx *cli.Context) error {
	d, err := ctx.ResolveDriver(cmd.Driver)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteDriver(d.ID); err != nil {
		return err
	}
	fmt.Printf("Removed driver %s and all of their assignments and timing rules\n", d.Number)
	return nil
}

package system

import (
	"fmt"

	"github.com/rotaworks/rota/internal/cli"
)

type InitCmd struct {
	Force bool `help:"Run initialization even if storage already exists."`
}

func (cmd *InitCmd) Run(ctx *cli.Context) error {
	if !cmd.Force {
		if err := ctx.Store.Load(); err == nil {
			return fmt.Errorf("storage already initialized at %s (use --force to rerun)", ctx.Store.GetConfigPath())
		}
	}
	if err := ctx.Store.Init(); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	fmt.Printf("Initialized rota storage at %s\n", ctx.Store.GetConfigPath())
	fmt.Println("Baseline shift types seeded: earlies 06:00-14:00, days 08:00-16:00, lates 14:00-22:00, nights 22:00-06:00")
	return nil
}

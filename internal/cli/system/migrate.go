package system

import (
	"fmt"

	"github.com/rotaworks/rota/internal/cli"
)

type MigrateCmd struct{}

func (cmd *MigrateCmd) Run(ctx *cli.Context) error {
	// Open without the schema version gate: Load refuses a behind schema,
	// which is the state this command exists to fix.
	if err := ctx.Store.LoadForMigration(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	defer ctx.Store.Close()

	applied, err := ctx.Store.Migrate(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	if applied == 0 {
		fmt.Println("Nothing to do.")
	}
	return nil
}

package system

import (
	"fmt"

	"github.com/rotaworks/rota/internal/backup"
	"github.com/rotaworks/rota/internal/cli"
	"github.com/rotaworks/rota/internal/storage"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	defer ctx.Store.Close()

	// Check 1: database reachable with a valid schema (Load validates both,
	// and its error says 'run rota migrate' when the schema is behind)
	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
	}

	// Check 2: baseline shift types present
	if !hasError {
		timings, err := ctx.Store.GetAllShiftTypes()
		switch {
		case err != nil:
			fmt.Printf("❌ Shift types readable: FAIL\n   Error: %v\n", err)
			hasError = true
		case len(timings) == 0:
			fmt.Printf("⚠ Shift types: WARNING (none registered, run 'rota init')\n")
		default:
			fmt.Printf("✓ Shift types registered: OK (%d)\n", len(timings))
		}
	} else {
		fmt.Printf("⊘ Shift types: SKIPPED (database not reachable)\n")
	}

	// Check 3: backups present (SQLite only, warning only)
	if storage.IsPostgres(ctx.Store.GetConfigPath()) {
		fmt.Printf("⊘ Backups: SKIPPED (PostgreSQL backend, use your own dump tooling)\n")
	} else {
		mgr := backup.NewManager(ctx.Store.GetConfigPath())
		backups, err := mgr.List()
		switch {
		case err != nil:
			fmt.Printf("⚠ Backups: WARNING (%v)\n", err)
		case len(backups) == 0:
			fmt.Printf("⚠ Backups: WARNING (none found, run 'rota backup create')\n")
		default:
			fmt.Printf("✓ Backups present: OK (%d, newest %s)\n", len(backups), backups[0].Timestamp.Format("2006-01-02 15:04"))
		}
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}

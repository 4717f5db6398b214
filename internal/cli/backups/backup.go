package backups

import (
	"fmt"

	"github.com/rotaworks/rota/internal/backup"
	"github.com/rotaworks/rota/internal/cli"
	"github.com/rotaworks/rota/internal/storage"
)

func manager(ctx *cli.Context) (*backup.Manager, error) {
	if storage.IsPostgres(ctx.Store.GetConfigPath()) {
		return nil, fmt.Errorf("backups are only supported for the SQLite backend")
	}
	return backup.NewManager(ctx.Store.GetConfigPath()), nil
}

type BackupCreateCmd struct{}

func (cmd *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	path, err := mgr.Create()
	if err != nil {
		return err
	}
	fmt.Printf("Backup created: %s\n", path)
	return nil
}

type BackupListCmd struct{}

func (cmd *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	backups, err := mgr.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Println("No backups found.")
		return nil
	}
	for _, b := range backups {
		fmt.Printf("%s  %s  %d bytes\n", b.Timestamp.Format("2006-01-02 15:04:05"), b.Name, b.Size)
	}
	return nil
}

type BackupRestoreCmd struct {
	Name string `arg:"" help:"Backup file name to restore (see 'rota backup list')."`
}

func (cmd *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close database before restore: %w", err)
	}
	if err := mgr.Restore(cmd.Name); err != nil {
		return err
	}
	fmt.Printf("Restored %s (previous database saved as %s.pre-restore)\n", cmd.Name, ctx.Store.GetConfigPath())
	return nil
}

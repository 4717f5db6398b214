package system

import (
	"fmt"

	"github.com/rotaworks/rota/internal/cli"
	"github.com/rotaworks/rota/internal/keyring"
	"github.com/rotaworks/rota/internal/storage"
)

type ConnectionSetCmd struct {
	ConnStr string `arg:"" help:"PostgreSQL connection string to store in the OS keyring."`
}

func (cmd *ConnectionSetCmd) Run(ctx *cli.Context) error {
	if !storage.IsPostgres(cmd.ConnStr) {
		return fmt.Errorf("only postgres:// connection strings belong in the keyring")
	}
	if storage.HasEmbeddedCredentials(cmd.ConnStr) {
		// The keyring itself is encrypted, so an embedded password is
		// tolerated here, unlike on the command line.
		fmt.Println("Note: connection string contains an embedded password; it will only live in the OS keyring.")
	}
	if err := keyring.SetConnectionString(cmd.ConnStr); err != nil {
		return err
	}
	fmt.Println("Connection string stored in OS keyring.")
	return nil
}

type ConnectionClearCmd struct{}

func (cmd *ConnectionClearCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		return err
	}
	fmt.Println("Connection string removed from OS keyring.")
	return nil
}

type ConnectionStatusCmd struct{}

func (cmd *ConnectionStatusCmd) Run(ctx *cli.Context) error {
	if _, err := keyring.GetConnectionString(); err != nil {
		fmt.Println("No connection string stored in OS keyring.")
		return nil
	}
	fmt.Println("A connection string is stored in the OS keyring.")
	return nil
}

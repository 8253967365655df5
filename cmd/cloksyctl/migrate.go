package main

import (
	"github.com/spf13/cobra"

	"github.com/cloksy/cloksy-backend/internal/timesheet/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.db.Migrate(cmd.Context(), migrations.FS); err != nil {
		return err
	}
	cmd.Println("migrations applied")
	return nil
}

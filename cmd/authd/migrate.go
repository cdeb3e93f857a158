package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/authkit/authkit-server/database"
	"github.com/authkit/authkit-server/internal/config"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.NewConfig()
		if err != nil {
			return err
		}
		if err := database.Migrate(cmd.Context(), cfg.Database.DSN); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		fmt.Println("migrations applied")
		return nil
	},
}

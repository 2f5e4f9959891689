package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/itera/internal/database"
	"github.com/at-ishikawa/itera/schemas"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			applied, err := database.Migrate(cmd.Context(), db, schemas.Migrations)
			if err != nil {
				return fmt.Errorf("database.Migrate() > %w", err)
			}
			if len(applied) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date.")
				return err
			}
			for _, version := range applied {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Applied %s\n", version); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

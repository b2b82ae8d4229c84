package cmd

import (
	"catalog/db"

	"github.com/spf13/cobra"
)

func newMigrateCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(_ *cobra.Command, _ []string) error {
			conn, err := db.Open(rt.cfg, rt.logger)
			if err != nil {
				return err
			}
			defer db.Close(conn)

			if err := db.Migrate(conn); err != nil {
				return err
			}
			rt.logger.Info("Database migrated")
			return nil
		},
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"trivia-quiz/internal/infra/postgres"
)

// newMigrateCmd applies the Postgres leaderboard migrations.
func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run Postgres leaderboard migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			applied, err := postgres.Migrate(cmd.Context(), cfg.Store.Postgres.URL)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no pending migrations")
				return nil
			}
			for _, name := range applied {
				fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", name)
			}
			return nil
		},
	}
}

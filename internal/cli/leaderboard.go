package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
)

func newLeaderboardCmd(opts *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the top scores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := setup(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer d.Close()

			records, err := d.service.Leaderboard(cmd.Context(), limit)
			if err != nil {
				return err
			}
			printLeaderboard(cmd.OutOrStdout(), records)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", app.LeaderboardSize, "number of entries")
	return cmd
}

func printLeaderboard(w io.Writer, records []domain.ScoreRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No scores yet.")
		return
	}
	for i, r := range records {
		fmt.Fprintf(w, "%d. %s - %d/%d (%s)\n", i+1, r.PlayerName, r.Score, r.Total,
			r.RecordedAt.Local().Format("2006-01-02 15:04:05"))
	}
}

package cli

import (
	"os"

	"github.com/spf13/cobra"

	"trivia-quiz/internal/ui/tui"
)

func newPlayCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play one round in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, opts)
		},
	}
}

// runPlay returns nil when the player closes the result or error screen;
// fetch failures are shown in the terminal, not reported as a failed exit.
func runPlay(cmd *cobra.Command, opts *rootOptions) error {
	ctx := cmd.Context()
	d, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	defer d.Close()

	if err := tui.Run(ctx, d.service, tui.Options{NoColor: d.cfg.UI.NoColor}, os.Stdin, os.Stdout); err != nil {
		d.log.Error().Err(err).Msg("terminal ui failed")
		return err
	}
	d.log.Info().Msg("trivia closed")
	return nil
}

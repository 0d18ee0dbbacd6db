package tui

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"trivia-quiz/internal/app"
)

// Run plays one round in the terminal and returns when the player quits.
func Run(ctx context.Context, service *app.QuizService, opts Options, in io.Reader, out io.Writer) error {
	if !isTerminal(out) {
		opts.NoColor = true
	}
	p := tea.NewProgram(
		NewModel(ctx, service, opts),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	_, err := p.Run()
	return err
}

// isTerminal reports whether a writer is a TTY.
func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

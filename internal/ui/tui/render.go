package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"trivia-quiz/internal/domain"
)

const timestampLayout = "2006-01-02 15:04:05"

// View renders the active screen.
func (m Model) View() string {
	switch m.screen {
	case screenName:
		return lipgloss.JoinVertical(lipgloss.Left,
			stylize("Trivia Quiz", m.noColor, lipgloss.Color("33")),
			"",
			"Enter your name:",
			m.name.View(),
			"",
			renderHint("enter to start, esc to quit", m.noColor),
		)
	case screenLoading:
		return m.spinner.View() + " Fetching questions..."
	case screenQuestion:
		return renderQuestion(m.prompt, m.cursor, m.session.Score(), m.noColor)
	case screenFeedback:
		return renderFeedback(m.feedback, m.noColor)
	case screenSaving:
		return m.spinner.View() + " Saving your score..."
	case screenResult:
		return renderResult(m.result, m.scores, m.noColor)
	case screenError:
		return renderError(m.err, m.noColor)
	}
	return ""
}

func renderQuestion(p domain.Prompt, cursor, score int, noColor bool) string {
	lines := []string{
		stylize(fmt.Sprintf("Question %d of %d", p.Number, p.Total), noColor, lipgloss.Color("242")) +
			"   " + stylize("Score: "+strconv.Itoa(score), noColor, lipgloss.Color("242")),
		"",
		lipgloss.NewStyle().Width(72).Render(fmt.Sprintf("Q%d: %s", p.Number, p.Text)),
		"",
	}
	for i, opt := range p.Options {
		line := fmt.Sprintf("  %d. %s", i+1, opt)
		if i == cursor {
			line = stylize(fmt.Sprintf("> %d. %s", i+1, opt), noColor, lipgloss.Color("212"))
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", renderHint("up/down and enter, or 1-"+strconv.Itoa(len(p.Options)), noColor))
	return strings.Join(lines, "\n")
}

func renderFeedback(res domain.AnswerResult, noColor bool) string {
	var line string
	if res.Correct {
		line = stylize("That's correct!", noColor, lipgloss.Color("42"))
	} else {
		line = stylize("Wrong! Correct answer: "+res.CorrectAnswer, noColor, lipgloss.Color("196"))
	}
	hint := "enter for the next question"
	if res.Complete {
		hint = "enter to see your result"
	}
	return lipgloss.JoinVertical(lipgloss.Left, line, "", renderHint(hint, noColor))
}

func renderResult(res domain.SessionResult, scores table.Model, noColor bool) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		stylize("Quiz completed!", noColor, lipgloss.Color("33")),
		fmt.Sprintf("Your score: %d/%d", res.Score, res.Total),
		"",
		"Top 5 Scores:",
		scores.View(),
		"",
		renderHint("enter to quit", noColor),
	)
}

func renderError(err error, noColor bool) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		stylize("Error", noColor, lipgloss.Color("196")),
		describe(err),
		"",
		renderHint("enter to quit", noColor),
	)
}

// describe renders errors for players.
func describe(err error) string {
	var fe *domain.FetchError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &fe):
		return "Failed to fetch questions: " + fe.Cause
	case errors.Is(err, domain.ErrEmptyQuiz):
		return "No questions are available right now. Try another category or difficulty."
	}
	return err.Error()
}

func renderHint(text string, noColor bool) string {
	return stylize(text, noColor, lipgloss.Color("244"))
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

// scoreTable lays out the leaderboard as "rank. name - score (timestamp)" columns.
func scoreTable(top []domain.ScoreRecord, noColor bool) table.Model {
	rows := make([]table.Row, 0, len(top))
	for i, r := range top {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			r.PlayerName,
			strconv.Itoa(r.Score),
			r.RecordedAt.Local().Format(timestampLayout),
		})
	}
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 3},
			{Title: "Player", Width: 20},
			{Title: "Score", Width: 6},
			{Title: "When", Width: 19},
		}),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+2), // header and its border
	)
	styles := table.DefaultStyles()
	if !noColor {
		styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	}
	// No row is selected on a read-only leaderboard.
	styles.Selected = lipgloss.NewStyle()
	t.SetStyles(styles)
	return t
}

package tui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
)

type screen int

const (
	screenName screen = iota
	screenLoading
	screenQuestion
	screenFeedback
	screenSaving
	screenResult
	screenError
)

// Model is the terminal front end of a single round.
type Model struct {
	ctx     context.Context
	service *app.QuizService
	noColor bool

	screen  screen
	name    textinput.Model
	spinner spinner.Model

	session  *app.Session
	prompt   domain.Prompt
	cursor   int
	feedback domain.AnswerResult
	result   domain.SessionResult
	scores   table.Model
	err      error
}

// Options configures the terminal UI.
type Options struct {
	NoColor bool
}

// NewModel builds the UI for one round played against service.
func NewModel(ctx context.Context, service *app.QuizService, opts Options) Model {
	name := textinput.New()
	name.Placeholder = "Enter your name"
	name.CharLimit = 40
	name.Width = 40
	name.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:     ctx,
		service: service,
		noColor: opts.NoColor,
		screen:  screenName,
		name:    name,
		spinner: sp,
	}
}

// preparedMsg carries the outcome of the background fetch.
type preparedMsg struct {
	session *app.Session
	err     error
}

// finishedMsg carries the outcome of recording the score.
type finishedMsg struct {
	result domain.SessionResult
	err    error
}

func prepare(ctx context.Context, service *app.QuizService, player string) tea.Cmd {
	return func() tea.Msg {
		res := <-service.PrepareAsync(ctx, player)
		return preparedMsg{session: res.Session, err: res.Err}
	}
}

func finish(ctx context.Context, session *app.Session) tea.Cmd {
	return func() tea.Msg {
		result, err := session.Finish(ctx)
		return finishedMsg{result: result, err: err}
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update routes keys to the active screen and consumes background results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m.handleKey(typed)
	case spinner.TickMsg:
		if m.screen != screenLoading && m.screen != screenSaving {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(typed)
		return m, cmd
	case preparedMsg:
		if typed.err != nil {
			m.err = typed.err
			m.screen = screenError
			return m, nil
		}
		m.session = typed.session
		return m.loadQuestion(), nil
	case finishedMsg:
		if typed.err != nil {
			m.err = typed.err
			m.screen = screenError
			return m, nil
		}
		m.result = typed.result
		m.scores = scoreTable(typed.result.Top, m.noColor)
		m.screen = screenResult
		return m, nil
	}

	if m.screen == screenName {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case screenName:
		if key.Type == tea.KeyEnter {
			m.screen = screenLoading
			return m, tea.Batch(m.spinner.Tick, prepare(m.ctx, m.service, m.name.Value()))
		}
		if key.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(key)
		return m, cmd

	case screenQuestion:
		switch key.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j", "tab":
			if m.cursor < len(m.prompt.Options)-1 {
				m.cursor++
			}
		case "enter", " ":
			return m.answer(m.cursor)
		case "esc":
			return m, tea.Quit
		default:
			if n, err := strconv.Atoi(key.String()); err == nil && n >= 1 && n <= len(m.prompt.Options) {
				return m.answer(n - 1)
			}
		}
		return m, nil

	case screenFeedback:
		switch key.String() {
		case "enter", " ":
			if m.session.Complete() {
				m.screen = screenSaving
				return m, tea.Batch(m.spinner.Tick, finish(m.ctx, m.session))
			}
			return m.loadQuestion(), nil
		case "esc":
			return m, tea.Quit
		}
		return m, nil

	case screenResult, screenError:
		switch key.String() {
		case "enter", "q", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) loadQuestion() Model {
	prompt, err := m.session.CurrentPrompt()
	if err != nil {
		m.err = err
		m.screen = screenError
		return m
	}
	m.prompt = prompt
	m.cursor = 0
	m.screen = screenQuestion
	return m
}

func (m Model) answer(idx int) (tea.Model, tea.Cmd) {
	res, err := m.session.SubmitAnswer(m.prompt.Options[idx])
	if err != nil {
		m.err = err
		m.screen = screenError
		return m, nil
	}
	m.feedback = res
	m.screen = screenFeedback
	return m, nil
}

// Err reports the failure that ended the round, if any.
func (m Model) Err() error {
	return m.err
}

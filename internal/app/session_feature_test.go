package app_test

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
	"trivia-quiz/internal/infra/memory"
)

// TestSessionFeatures executes the session feature scenarios via godog.
func TestSessionFeatures(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "session",
		ScenarioInitializer: initializeSessionScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{"features"},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

func initializeSessionScenario(ctx *godog.ScenarioContext) {
	state := &sessionState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.Step(`^a round for "([^"]*)" with the question "([^"]*)" answered by "([^"]*)" against "([^"]*)", "([^"]*)", "([^"]*)"$`, state.givenSingleQuestionRound)
	ctx.Step(`^a round for "([^"]*)" with no questions$`, state.givenEmptyRound)
	ctx.Step(`^a round for "([^"]*)" with (\d+) questions$`, state.givenRoundOfSize)
	ctx.Step(`^the leaderboard holds the scores ([\d, ]+)$`, state.givenLeaderboard)
	ctx.Step(`^the player answers "([^"]*)"$`, state.playerAnswers)
	ctx.Step(`^the player answers every question correctly$`, state.playerAnswersEverything)
	ctx.Step(`^the round is finished$`, state.roundFinished)
	ctx.Step(`^the answer is correct and the correct answer is "([^"]*)"$`, state.answerCorrect)
	ctx.Step(`^the answer is incorrect and the correct answer is "([^"]*)"$`, state.answerIncorrect)
	ctx.Step(`^the score is (\d+)$`, state.scoreIs)
	ctx.Step(`^the round is complete$`, state.roundComplete)
	ctx.Step(`^starting the round fails because the quiz is empty$`, state.beginFailedEmpty)
	ctx.Step(`^the top scores are ([\d, ]+)$`, state.topScoresAre)
}

// sessionState holds scenario state for the session feature tests.
type sessionState struct {
	store    *memory.ScoreStore
	session  *app.Session
	beginErr error
	answer   domain.AnswerResult
	result   domain.SessionResult
	clock    time.Time
}

func (s *sessionState) reset() {
	s.store = memory.NewScoreStore()
	s.session = nil
	s.beginErr = nil
	s.answer = domain.AnswerResult{}
	s.result = domain.SessionResult{}
	s.clock = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
}

func (s *sessionState) now() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *sessionState) begin(player string, questions []domain.Question) {
	s.session, s.beginErr = app.Begin(player, questions, s.store, app.WithClock(s.now))
}

func (s *sessionState) givenSingleQuestionRound(player, prompt, correct, d1, d2, d3 string) error {
	s.begin(player, []domain.Question{{Prompt: prompt, Correct: correct, Distractors: []string{d1, d2, d3}}})
	return s.beginErr
}

func (s *sessionState) givenEmptyRound(player string) error {
	s.begin(player, nil)
	return nil
}

func (s *sessionState) givenRoundOfSize(player string, n int) error {
	questions := make([]domain.Question, n)
	for i := range questions {
		questions[i] = domain.Question{
			Prompt:      fmt.Sprintf("question %d", i+1),
			Correct:     "right",
			Distractors: []string{"a", "b", "c"},
		}
	}
	s.begin(player, questions)
	return s.beginErr
}

func (s *sessionState) givenLeaderboard(list string) error {
	scores, err := parseScores(list)
	if err != nil {
		return err
	}
	for _, score := range scores {
		if err := s.store.Append(context.Background(), domain.ScoreRecord{PlayerName: "earlier", Score: score, RecordedAt: s.now()}); err != nil {
			return err
		}
	}
	return nil
}

func (s *sessionState) playerAnswers(choice string) error {
	var err error
	s.answer, err = s.session.SubmitAnswer(choice)
	return err
}

func (s *sessionState) playerAnswersEverything() error {
	for !s.session.Complete() {
		prompt, err := s.session.CurrentPrompt()
		if err != nil {
			return err
		}
		for _, opt := range prompt.Options {
			if opt == "right" {
				if _, err := s.session.SubmitAnswer(opt); err != nil {
					return err
				}
				break
			}
		}
	}
	return nil
}

func (s *sessionState) roundFinished() error {
	var err error
	s.result, err = s.session.Finish(context.Background())
	return err
}

func (s *sessionState) answerCorrect(want string) error {
	if !s.answer.Correct || s.answer.CorrectAnswer != want {
		return fmt.Errorf("expected correct answer %q, got %+v", want, s.answer)
	}
	return nil
}

func (s *sessionState) answerIncorrect(want string) error {
	if s.answer.Correct || s.answer.CorrectAnswer != want {
		return fmt.Errorf("expected incorrect answer with %q, got %+v", want, s.answer)
	}
	return nil
}

func (s *sessionState) scoreIs(want int) error {
	if s.session.Score() != want {
		return fmt.Errorf("expected score %d, got %d", want, s.session.Score())
	}
	return nil
}

func (s *sessionState) roundComplete() error {
	if !s.session.Complete() {
		return fmt.Errorf("expected complete round, state is %s", s.session.State())
	}
	return nil
}

func (s *sessionState) beginFailedEmpty() error {
	if !errors.Is(s.beginErr, domain.ErrEmptyQuiz) {
		return fmt.Errorf("expected ErrEmptyQuiz, got %v", s.beginErr)
	}
	if s.session != nil {
		return fmt.Errorf("expected no session")
	}
	return nil
}

func (s *sessionState) topScoresAre(list string) error {
	want, err := parseScores(list)
	if err != nil {
		return err
	}
	if len(s.result.Top) != len(want) {
		return fmt.Errorf("expected %d top records, got %d", len(want), len(s.result.Top))
	}
	for i, score := range want {
		if s.result.Top[i].Score != score {
			return fmt.Errorf("position %d: expected %d, got %d", i+1, score, s.result.Top[i].Score)
		}
	}
	return nil
}

func parseScores(list string) ([]int, error) {
	parts := strings.Split(list, ",")
	scores := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("parse score %q: %w", p, err)
		}
		scores = append(scores, n)
	}
	return scores, nil
}

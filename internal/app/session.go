package app

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"trivia-quiz/internal/domain"
	"trivia-quiz/internal/telemetry"
)

// LeaderboardSize is the number of records shown at the end of a round.
const LeaderboardSize = 5

// AnonymousPlayer replaces a blank player name.
const AnonymousPlayer = "Anonymous"

// State is the lifecycle position of a Session.
type State int

const (
	StateAwaitingQuestion State = iota
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateAwaitingQuestion:
		return "awaiting-question"
	case StateComplete:
		return "complete"
	}
	return "unknown"
}

// Session is one play-through from the first question to the result summary.
// It is driven by a single control flow and is not safe for concurrent use.
type Session struct {
	id        string
	player    string
	questions []domain.Question
	index     int
	score     int
	finished  bool

	// options caches the shuffled options of questions[index].
	options []string

	scores ScoreStore
	now    func() time.Time
	rnd    *rand.Rand
	log    zerolog.Logger
}

// SessionOption customizes a Session at Begin.
type SessionOption func(*Session)

// WithClock sets the clock used to timestamp the score record.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// WithRand sets the source used to shuffle options. A *rand.Rand must not be
// shared between sessions driven from different goroutines.
func WithRand(rnd *rand.Rand) SessionOption {
	return func(s *Session) { s.rnd = rnd }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l zerolog.Logger) SessionOption {
	return func(s *Session) { s.log = l }
}

// Begin starts a round for player over questions. Scores are written to
// scores once the round is finished.
func Begin(player string, questions []domain.Question, scores ScoreStore, opts ...SessionOption) (*Session, error) {
	if len(questions) == 0 {
		return nil, domain.ErrEmptyQuiz
	}
	player = strings.TrimSpace(player)
	if player == "" {
		player = AnonymousPlayer
	}

	s := &Session{
		id:        uuid.NewString(),
		player:    player,
		questions: append([]domain.Question(nil), questions...),
		scores:    scores,
		now:       time.Now,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rnd == nil {
		s.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s.log = s.log.With().Str("session", s.id).Str("player", s.player).Logger()
	s.log.Info().Int("questions", len(s.questions)).Msg("round started")
	return s, nil
}

func (s *Session) ID() string { return s.id }

func (s *Session) Player() string { return s.player }

func (s *Session) Score() int { return s.score }

// Answered is the number of questions submitted so far.
func (s *Session) Answered() int { return s.index }

func (s *Session) Total() int { return len(s.questions) }

func (s *Session) State() State {
	if s.index == len(s.questions) {
		return StateComplete
	}
	return StateAwaitingQuestion
}

func (s *Session) Complete() bool { return s.State() == StateComplete }

// CurrentPrompt returns the active question with its options in random order.
// The order is drawn once per question and repeated on later calls.
func (s *Session) CurrentPrompt() (domain.Prompt, error) {
	if s.Complete() {
		return domain.Prompt{}, fmt.Errorf("current prompt: %w: round is complete", domain.ErrPrecondition)
	}
	q := s.questions[s.index]
	if s.options == nil {
		s.options = q.Options()
		s.rnd.Shuffle(len(s.options), func(i, j int) {
			s.options[i], s.options[j] = s.options[j], s.options[i]
		})
	}
	return domain.Prompt{
		Number:  s.index + 1,
		Total:   len(s.questions),
		Text:    q.Prompt,
		Options: append([]string(nil), s.options...),
	}, nil
}

// SubmitAnswer scores selected against the active question by exact text
// equality and advances to the next question whether or not it was correct.
func (s *Session) SubmitAnswer(selected string) (domain.AnswerResult, error) {
	if s.Complete() {
		return domain.AnswerResult{}, fmt.Errorf("submit answer: %w: round is complete", domain.ErrPrecondition)
	}
	q := s.questions[s.index]
	correct := selected == q.Correct
	if correct {
		s.score++
	}
	s.index++
	s.options = nil
	telemetry.Answers.WithLabelValues(strconv.FormatBool(correct)).Inc()

	return domain.AnswerResult{
		Correct:       correct,
		CorrectAnswer: q.Correct,
		Score:         s.score,
		Answered:      s.index,
		Complete:      s.Complete(),
	}, nil
}

// Finish records the final score and returns it with the current top scores.
// It may succeed only once per session.
func (s *Session) Finish(ctx context.Context) (domain.SessionResult, error) {
	if !s.Complete() {
		return domain.SessionResult{}, fmt.Errorf("finish: %w: %d of %d questions answered", domain.ErrPrecondition, s.index, len(s.questions))
	}
	if s.finished {
		return domain.SessionResult{}, fmt.Errorf("finish: %w: score already recorded", domain.ErrPrecondition)
	}

	record := domain.ScoreRecord{
		PlayerName: s.player,
		Score:      s.score,
		Total:      len(s.questions),
		RecordedAt: s.now(),
	}
	if err := s.scores.Append(ctx, record); err != nil {
		s.log.Error().Err(err).Msg("save score failed")
		return domain.SessionResult{}, fmt.Errorf("save score: %w", err)
	}
	s.finished = true
	telemetry.RoundsCompleted.Inc()

	top, err := s.scores.Top(ctx, LeaderboardSize)
	if err != nil {
		s.log.Error().Err(err).Msg("load top scores failed")
		return domain.SessionResult{}, fmt.Errorf("load top scores: %w", err)
	}
	s.log.Info().Int("score", s.score).Int("total", len(s.questions)).Msg("round finished")

	return domain.SessionResult{
		PlayerName: s.player,
		Score:      s.score,
		Total:      len(s.questions),
		Top:        top,
	}, nil
}

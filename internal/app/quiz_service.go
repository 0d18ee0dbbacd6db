package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"trivia-quiz/internal/domain"
)

// QuestionSource supplies the questions of a round (remote provider, fixtures, etc).
type QuestionSource interface {
	Fetch(ctx context.Context, req domain.QuestionRequest) ([]domain.Question, error)
}

// ScoreStore abstracts how leaderboard records are persisted (DuckDB, Postgres, Redis, in-memory).
// Top returns records by score descending, earlier RecordedAt first on ties, then insertion order.
type ScoreStore interface {
	Append(ctx context.Context, record domain.ScoreRecord) error
	Top(ctx context.Context, n int) ([]domain.ScoreRecord, error)
}

// QuizService contains the quiz use cases shared by every surface.
type QuizService struct {
	source  QuestionSource
	scores  ScoreStore
	request domain.QuestionRequest
	log     zerolog.Logger
	opts    []SessionOption
}

// NewQuizService builds a service that starts rounds with request. opts are
// applied to every session it begins.
func NewQuizService(source QuestionSource, scores ScoreStore, request domain.QuestionRequest, log zerolog.Logger, opts ...SessionOption) *QuizService {
	return &QuizService{
		source:  source,
		scores:  scores,
		request: request,
		log:     log,
		opts:    opts,
	}
}

func (s *QuizService) Request() domain.QuestionRequest {
	return s.request
}

// Prepare fetches the questions and begins a round for player. Failures are
// returned to the caller: *domain.FetchError or domain.ErrEmptyQuiz.
func (s *QuizService) Prepare(ctx context.Context, player string) (*Session, error) {
	questions, err := s.source.Fetch(ctx, s.request)
	if err != nil {
		return nil, err
	}

	opts := append([]SessionOption{WithLogger(s.log)}, s.opts...)
	session, err := Begin(player, questions, s.scores, opts...)
	if errors.Is(err, domain.ErrEmptyQuiz) {
		s.log.Error().Int("category", s.request.Category).Msg("provider returned no questions")
	}
	return session, err
}

// PrepareResult is delivered by PrepareAsync.
type PrepareResult struct {
	Session *Session
	Err     error
}

// PrepareAsync runs Prepare in the background. The channel receives exactly
// one result and is then closed.
func (s *QuizService) PrepareAsync(ctx context.Context, player string) <-chan PrepareResult {
	ch := make(chan PrepareResult, 1)
	go func() {
		defer close(ch)
		session, err := s.Prepare(ctx, player)
		ch <- PrepareResult{Session: session, Err: err}
	}()
	return ch
}

// Leaderboard returns the n best records without playing a round.
func (s *QuizService) Leaderboard(ctx context.Context, n int) ([]domain.ScoreRecord, error) {
	if n <= 0 {
		n = LeaderboardSize
	}
	return s.scores.Top(ctx, n)
}

package app_test

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"testing"
	"time"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
	"trivia-quiz/internal/infra/memory"
)

func singleQuestion() []domain.Question {
	return []domain.Question{
		{Prompt: "2+2?", Correct: "4", Distractors: []string{"3", "5", "6"}},
	}
}

func TestSubmitCorrectAnswerCompletesRound(t *testing.T) {
	session, err := app.Begin("Alice", singleQuestion(), memory.NewScoreStore())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	res, err := session.SubmitAnswer("4")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !res.Correct || res.CorrectAnswer != "4" {
		t.Fatalf("expected correct answer 4, got %+v", res)
	}
	if session.Score() != 1 || !session.Complete() || !res.Complete {
		t.Fatalf("expected score 1 and complete, got score=%d state=%s", session.Score(), session.State())
	}
}

func TestSubmitWrongAnswerCompletesRound(t *testing.T) {
	session, _ := app.Begin("Alice", singleQuestion(), memory.NewScoreStore())

	res, err := session.SubmitAnswer("5")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Correct || res.CorrectAnswer != "4" {
		t.Fatalf("expected incorrect with answer 4, got %+v", res)
	}
	if session.Score() != 0 || !session.Complete() {
		t.Fatalf("expected score 0 and complete, got score=%d state=%s", session.Score(), session.State())
	}
}

func TestBeginWithoutQuestions(t *testing.T) {
	session, err := app.Begin("Alice", nil, memory.NewScoreStore())
	if !errors.Is(err, domain.ErrEmptyQuiz) {
		t.Fatalf("expected ErrEmptyQuiz, got %v", err)
	}
	if session != nil {
		t.Fatalf("expected no session")
	}
}

func TestBeginBlankNameIsAnonymous(t *testing.T) {
	session, _ := app.Begin("   ", singleQuestion(), memory.NewScoreStore())
	if session.Player() != app.AnonymousPlayer {
		t.Fatalf("expected anonymous player, got %q", session.Player())
	}
}

func TestScoreNeverExceedsAnswered(t *testing.T) {
	questions := memory.SampleQuestions()
	rnd := rand.New(rand.NewSource(7))
	session, _ := app.Begin("Alice", questions, memory.NewScoreStore(), app.WithRand(rnd))

	for i := 0; i < len(questions); i++ {
		if session.Complete() {
			t.Fatalf("completed early after %d answers", i)
		}
		prompt, err := session.CurrentPrompt()
		if err != nil {
			t.Fatalf("prompt: %v", err)
		}
		if _, err := session.SubmitAnswer(prompt.Options[rnd.Intn(len(prompt.Options))]); err != nil {
			t.Fatalf("submit: %v", err)
		}
		if session.Score() > session.Answered() || session.Answered() > session.Total() {
			t.Fatalf("invariant broken: score=%d answered=%d total=%d", session.Score(), session.Answered(), session.Total())
		}
	}
	if !session.Complete() {
		t.Fatalf("expected complete after %d answers", len(questions))
	}
}

func TestCurrentPromptPresentsEveryOptionOnce(t *testing.T) {
	q := singleQuestion()[0]
	for seed := int64(0); seed < 20; seed++ {
		session, _ := app.Begin("Alice", singleQuestion(), memory.NewScoreStore(), app.WithRand(rand.New(rand.NewSource(seed))))
		prompt, err := session.CurrentPrompt()
		if err != nil {
			t.Fatalf("prompt: %v", err)
		}
		got := append([]string(nil), prompt.Options...)
		want := q.Options()
		sort.Strings(got)
		sort.Strings(want)
		if len(got) != 4 {
			t.Fatalf("expected 4 options, got %v", got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("options %v are not a permutation of %v", prompt.Options, q.Options())
			}
		}
		if prompt.Number != 1 || prompt.Total != 1 || prompt.Text != "2+2?" {
			t.Fatalf("unexpected prompt %+v", prompt)
		}
	}
}

func TestCurrentPromptOrderIsStableForAQuestion(t *testing.T) {
	session, _ := app.Begin("Alice", memory.SampleQuestions(), memory.NewScoreStore())
	first, _ := session.CurrentPrompt()
	for i := 0; i < 10; i++ {
		again, _ := session.CurrentPrompt()
		for j := range first.Options {
			if first.Options[j] != again.Options[j] {
				t.Fatalf("option order changed between calls: %v vs %v", first.Options, again.Options)
			}
		}
	}
}

func TestOperationsOutsideTheirState(t *testing.T) {
	ctx := context.Background()
	session, _ := app.Begin("Alice", singleQuestion(), memory.NewScoreStore())

	if _, err := session.Finish(ctx); !errors.Is(err, domain.ErrPrecondition) {
		t.Fatalf("finish before complete: expected precondition error, got %v", err)
	}

	_, _ = session.SubmitAnswer("4")

	if _, err := session.CurrentPrompt(); !errors.Is(err, domain.ErrPrecondition) {
		t.Fatalf("prompt after complete: expected precondition error, got %v", err)
	}
	if _, err := session.SubmitAnswer("4"); !errors.Is(err, domain.ErrPrecondition) {
		t.Fatalf("submit after complete: expected precondition error, got %v", err)
	}
	if session.Score() != 1 || session.Answered() != 1 {
		t.Fatalf("rejected submit must not change state, got score=%d answered=%d", session.Score(), session.Answered())
	}

	if _, err := session.Finish(ctx); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if _, err := session.Finish(ctx); !errors.Is(err, domain.ErrPrecondition) {
		t.Fatalf("second finish: expected precondition error, got %v", err)
	}
}

func TestFinishRecordsScoreAndReturnsTop(t *testing.T) {
	ctx := context.Background()
	store := memory.NewScoreStore()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, score := range []int{10, 8, 5} {
		_ = store.Append(ctx, domain.ScoreRecord{PlayerName: "old", Score: score, Total: 15, RecordedAt: base.Add(time.Duration(i) * time.Second)})
	}

	now := base.Add(time.Hour)
	questions := make([]domain.Question, 9)
	for i := range questions {
		questions[i] = domain.Question{Prompt: "q", Correct: "yes", Distractors: []string{"a", "b", "c"}}
	}
	session, _ := app.Begin("Alice", questions, store, app.WithClock(func() time.Time { return now }))
	for !session.Complete() {
		_, _ = session.SubmitAnswer("yes")
	}

	result, err := session.Finish(ctx)
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if result.Score != 9 || result.Total != 9 || result.PlayerName != "Alice" {
		t.Fatalf("unexpected result %+v", result)
	}
	want := []int{10, 9, 8, 5}
	if len(result.Top) != len(want) {
		t.Fatalf("expected %d top records, got %+v", len(want), result.Top)
	}
	for i, score := range want {
		if result.Top[i].Score != score {
			t.Fatalf("position %d: expected %d, got %d", i, score, result.Top[i].Score)
		}
	}
	if result.Top[1].PlayerName != "Alice" || !result.Top[1].RecordedAt.Equal(now) {
		t.Fatalf("expected Alice's record second, got %+v", result.Top[1])
	}
}

type failingStore struct {
	memory.ScoreStore
	err error
}

func (s *failingStore) Append(context.Context, domain.ScoreRecord) error { return s.err }

func TestFinishSurfacesStoreErrors(t *testing.T) {
	boom := errors.New("disk full")
	session, _ := app.Begin("Alice", singleQuestion(), &failingStore{err: boom})
	_, _ = session.SubmitAnswer("4")

	if _, err := session.Finish(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}

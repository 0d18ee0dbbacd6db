package memory

import (
	"context"

	"trivia-quiz/internal/domain"
)

// StaticQuestionSource serves a fixed question bank (useful for tests/demos).
type StaticQuestionSource struct {
	questions []domain.Question
	err       error
}

func NewStaticQuestionSource(questions []domain.Question) *StaticQuestionSource {
	return &StaticQuestionSource{questions: questions}
}

// NewFailingQuestionSource returns a source whose every fetch fails with err.
func NewFailingQuestionSource(err error) *StaticQuestionSource {
	return &StaticQuestionSource{err: err}
}

// Fetch returns up to req.Amount questions from the bank, in bank order.
func (l *StaticQuestionSource) Fetch(_ context.Context, req domain.QuestionRequest) ([]domain.Question, error) {
	if l.err != nil {
		return nil, l.err
	}
	n := len(l.questions)
	if req.Amount > 0 && req.Amount < n {
		n = req.Amount
	}
	out := make([]domain.Question, n)
	copy(out, l.questions[:n])
	return out, nil
}

// SampleQuestions provides a small offline question bank.
func SampleQuestions() []domain.Question {
	return []domain.Question{
		{
			Prompt:      "What is 2 + 2?",
			Correct:     "4",
			Distractors: []string{"3", "5", "6"},
			Category:    "Mathematics",
			Difficulty:  domain.DifficultyEasy,
		},
		{
			Prompt:      "Who wrote \"Pride and Prejudice\"?",
			Correct:     "Jane Austen",
			Distractors: []string{"Charlotte Brontë", "Mary Shelley", "George Eliot"},
			Category:    "Entertainment: Books",
			Difficulty:  domain.DifficultyEasy,
		},
		{
			Prompt:      "Which planet is known as the Red Planet?",
			Correct:     "Mars",
			Distractors: []string{"Venus", "Jupiter", "Mercury"},
			Category:    "Science & Nature",
			Difficulty:  domain.DifficultyEasy,
		},
		{
			Prompt:      "In which novel does the character Ishmael narrate the story?",
			Correct:     "Moby-Dick",
			Distractors: []string{"Treasure Island", "The Old Man and the Sea", "Robinson Crusoe"},
			Category:    "Entertainment: Books",
			Difficulty:  domain.DifficultyMedium,
		},
		{
			Prompt:      "What is the chemical symbol for gold?",
			Correct:     "Au",
			Distractors: []string{"Ag", "Gd", "Go"},
			Category:    "Science & Nature",
			Difficulty:  domain.DifficultyMedium,
		},
	}
}

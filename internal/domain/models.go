package domain

import "time"

// Difficulty is a question difficulty understood by the question provider.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the provider difficulties.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// QuestionType is the answer format of a question.
type QuestionType string

const (
	TypeMultiple QuestionType = "multiple"
	TypeBoolean  QuestionType = "boolean"
)

// Valid reports whether t is one of the provider question types.
func (t QuestionType) Valid() bool {
	return t == TypeMultiple || t == TypeBoolean
}

// Distractors is the number of incorrect answers a question of this type carries.
func (t QuestionType) Distractors() int {
	if t == TypeBoolean {
		return 1
	}
	return 3
}

// QuestionRequest describes the batch of questions to fetch for a round.
type QuestionRequest struct {
	Amount     int          `yaml:"amount"`
	Category   int          `yaml:"category"` // 0 means any category
	Difficulty Difficulty   `yaml:"difficulty"`
	Type       QuestionType `yaml:"type"`
}

// DefaultQuestionRequest is fifteen hard multiple-choice questions from the Books category.
func DefaultQuestionRequest() QuestionRequest {
	return QuestionRequest{
		Amount:     15,
		Category:   10,
		Difficulty: DifficultyHard,
		Type:       TypeMultiple,
	}
}

// Question models a trivia question with exactly one correct answer.
// Text fields hold display text; transport escaping is already resolved.
type Question struct {
	Prompt      string     `json:"prompt"`
	Correct     string     `json:"correctAnswer"`
	Distractors []string   `json:"distractors"`
	Category    string     `json:"category,omitempty"`
	Difficulty  Difficulty `json:"difficulty,omitempty"`
}

// Options returns the correct answer followed by the distractors, unshuffled.
func (q Question) Options() []string {
	opts := make([]string, 0, len(q.Distractors)+1)
	opts = append(opts, q.Correct)
	opts = append(opts, q.Distractors...)
	return opts
}

// Prompt is what a surface renders for the active question.
type Prompt struct {
	Number  int      `json:"number"` // 1-based
	Total   int      `json:"total"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// AnswerResult summarizes the outcome of a single submission.
type AnswerResult struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
	Score         int    `json:"score"`
	Answered      int    `json:"answered"`
	Complete      bool   `json:"complete"`
}

// ScoreRecord is a durable leaderboard entry.
type ScoreRecord struct {
	PlayerName string    `json:"playerName"`
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	RecordedAt time.Time `json:"recordedAt"`
}

// SessionResult is the summary shown once a round is over.
type SessionResult struct {
	PlayerName string        `json:"playerName"`
	Score      int           `json:"score"`
	Total      int           `json:"total"`
	Top        []ScoreRecord `json:"top"`
}

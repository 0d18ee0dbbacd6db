package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// QuestionFetches counts provider fetches by outcome ("ok" or "error").
	QuestionFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trivia_question_fetches_total",
		Help: "Question batches requested from the provider.",
	}, []string{"outcome"})

	// Answers counts submitted answers by correctness.
	Answers = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trivia_answers_total",
		Help: "Answers submitted by players.",
	}, []string{"correct"})

	// RoundsCompleted counts rounds whose score was recorded.
	RoundsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trivia_rounds_completed_total",
		Help: "Rounds finished and written to the leaderboard.",
	})
)

package memory

import (
	"context"
	"sort"
	"sync"

	"trivia-quiz/internal/domain"
)

// ScoreStore is an in-memory implementation of app.ScoreStore.
type ScoreStore struct {
	mu      sync.RWMutex
	records []domain.ScoreRecord
}

func NewScoreStore() *ScoreStore {
	return &ScoreStore{}
}

func (s *ScoreStore) Append(_ context.Context, record domain.ScoreRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

func (s *ScoreStore) Top(_ context.Context, n int) ([]domain.ScoreRecord, error) {
	s.mu.RLock()
	entries := make([]domain.ScoreRecord, len(s.records))
	copy(entries, s.records)
	s.mu.RUnlock()

	// Stable sort keeps insertion order for identical score and timestamp.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].RecordedAt.Before(entries[j].RecordedAt)
	})

	if n >= 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries, nil
}

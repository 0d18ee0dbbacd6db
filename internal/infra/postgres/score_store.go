package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"trivia-quiz/internal/domain"
)

// ScoreStore keeps the leaderboard in Postgres. The schema is owned by the
// migrations package.
type ScoreStore struct {
	pool *pgxpool.Pool
}

func NewScoreStore(pool *pgxpool.Pool) *ScoreStore {
	return &ScoreStore{pool: pool}
}

func (s *ScoreStore) Append(ctx context.Context, record domain.ScoreRecord) error {
	const stmt = `INSERT INTO leaderboard (player_name, score, total, recorded_at) VALUES ($1, $2, $3, $4)`
	if _, err := s.pool.Exec(ctx, stmt, record.PlayerName, record.Score, record.Total, record.RecordedAt); err != nil {
		return fmt.Errorf("insert score: %w", err)
	}
	return nil
}

func (s *ScoreStore) Top(ctx context.Context, n int) ([]domain.ScoreRecord, error) {
	const stmt = `
SELECT player_name, score, total, recorded_at
FROM leaderboard
ORDER BY score DESC, recorded_at ASC, id ASC
LIMIT $1`

	rows, err := s.pool.Query(ctx, stmt, n)
	if err != nil {
		return nil, fmt.Errorf("query top scores: %w", err)
	}
	defer rows.Close()

	records := make([]domain.ScoreRecord, 0, n)
	for rows.Next() {
		var r domain.ScoreRecord
		if err := rows.Scan(&r.PlayerName, &r.Score, &r.Total, &r.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

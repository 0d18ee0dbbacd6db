package duckdb

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/duckdb/duckdb-go/v2"

	"trivia-quiz/internal/domain"
)

var schema = []string{
	`CREATE SEQUENCE IF NOT EXISTS leaderboard_id_seq`,
	`CREATE TABLE IF NOT EXISTS leaderboard (
	id          BIGINT PRIMARY KEY DEFAULT nextval('leaderboard_id_seq'),
	player_name TEXT NOT NULL,
	score       INTEGER NOT NULL,
	total       INTEGER NOT NULL,
	recorded_at TIMESTAMP NOT NULL
)`,
}

// ScoreStore keeps the leaderboard in a local DuckDB file.
type ScoreStore struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the leaderboard
// table exists. An empty path opens an in-memory database.
func Open(ctx context.Context, path string) (*ScoreStore, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb %s: %w", path, err)
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("create leaderboard table: %w", err)
		}
	}
	return &ScoreStore{db: db}, nil
}

func (s *ScoreStore) Close() error {
	return s.db.Close()
}

func (s *ScoreStore) Append(ctx context.Context, record domain.ScoreRecord) error {
	const stmt = `INSERT INTO leaderboard (player_name, score, total, recorded_at) VALUES (?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, stmt, record.PlayerName, record.Score, record.Total, record.RecordedAt.UTC()); err != nil {
		return fmt.Errorf("insert score: %w", err)
	}
	return nil
}

func (s *ScoreStore) Top(ctx context.Context, n int) ([]domain.ScoreRecord, error) {
	const stmt = `
SELECT player_name, score, total, recorded_at
FROM leaderboard
ORDER BY score DESC, recorded_at ASC, id ASC
LIMIT ?`

	rows, err := s.db.QueryContext(ctx, stmt, n)
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

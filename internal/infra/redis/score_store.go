package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/redis/go-redis/v9"

	"trivia-quiz/internal/domain"
)

// ScoreStore keeps the leaderboard in a Redis sorted set.
// Records are stored as: ZADD {prefix}:leaderboard {score} {rank key}:{json record}
//
// Redis orders equal scores by member, so the rank key encodes the inverted
// timestamp and an inverted INCR sequence: ZREVRANGE then yields earlier
// records first among equal scores.
type ScoreStore struct {
	client redis.UniversalClient
	prefix string
}

func NewScoreStore(client redis.UniversalClient, prefix string) *ScoreStore {
	if prefix == "" {
		prefix = "trivia"
	}
	return &ScoreStore{client: client, prefix: prefix}
}

func (s *ScoreStore) Append(ctx context.Context, record domain.ScoreRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal score: %w", err)
	}

	seq, err := s.client.Incr(ctx, s.seqKey()).Result()
	if err != nil {
		return fmt.Errorf("next score sequence: %w", err)
	}

	ts := record.RecordedAt.UnixNano()
	if ts < 0 {
		ts = 0
	}
	member := fmt.Sprintf("%019d:%019d:%s", math.MaxInt64-ts, math.MaxInt64-seq, payload)

	if err := s.client.ZAdd(ctx, s.leaderboardKey(), redis.Z{
		Score:  float64(record.Score),
		Member: member,
	}).Err(); err != nil {
		return fmt.Errorf("insert score: %w", err)
	}
	return nil
}

func (s *ScoreStore) Top(ctx context.Context, n int) ([]domain.ScoreRecord, error) {
	if n <= 0 {
		return []domain.ScoreRecord{}, nil
	}
	res, err := s.client.ZRevRangeWithScores(ctx, s.leaderboardKey(), 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("query top scores: %w", err)
	}

	records := make([]domain.ScoreRecord, 0, len(res))
	for _, z := range res {
		member, _ := z.Member.(string)
		record, err := decodeMember(member)
		if err != nil {
			return nil, err
		}
		record.Score = int(z.Score)
		records = append(records, record)
	}
	return records, nil
}

func decodeMember(member string) (domain.ScoreRecord, error) {
	parts := strings.SplitN(member, ":", 3)
	if len(parts) != 3 {
		return domain.ScoreRecord{}, fmt.Errorf("malformed leaderboard member %q", member)
	}
	var record domain.ScoreRecord
	if err := json.Unmarshal([]byte(parts[2]), &record); err != nil {
		return domain.ScoreRecord{}, fmt.Errorf("unmarshal score: %w", err)
	}
	return record, nil
}

func (s *ScoreStore) leaderboardKey() string {
	return s.prefix + ":leaderboard"
}

func (s *ScoreStore) seqKey() string {
	return s.prefix + ":leaderboard:seq"
}

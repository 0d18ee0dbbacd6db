package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/config"
	"trivia-quiz/internal/infra/duckdb"
	"trivia-quiz/internal/infra/memory"
	"trivia-quiz/internal/infra/opentdb"
	"trivia-quiz/internal/infra/postgres"
	redisstore "trivia-quiz/internal/infra/redis"
	"trivia-quiz/internal/logging"
	"trivia-quiz/internal/telemetry"
)

// deps holds everything a command needs; Close releases it in reverse order.
type deps struct {
	cfg     config.Config
	log     zerolog.Logger
	scores  app.ScoreStore
	service *app.QuizService
	closers []func() error
}

func loadConfig(opts *rootOptions) (config.Config, error) {
	cfg, err := config.LoadOptional(opts.configPath)
	if err != nil {
		return cfg, err
	}
	if opts.store != "" {
		cfg.Store.Driver = opts.store
	}
	if opts.logFile != "" {
		cfg.Log.File = opts.logFile
	}
	if opts.noColor {
		cfg.UI.NoColor = true
	}
	return cfg, cfg.Validate()
}

func setup(ctx context.Context, opts *rootOptions) (*deps, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	log, logCloser, err := logging.New(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	d := &deps{cfg: cfg, log: log, closers: []func() error{logCloser.Close}}

	d.scores, err = d.openStore(ctx)
	if err != nil {
		log.Error().Err(err).Str("driver", cfg.Store.Driver).Msg("open score store failed")
		d.Close()
		return nil, err
	}

	var source app.QuestionSource
	switch cfg.Provider.Source {
	case config.SourceSample:
		source = memory.NewStaticQuestionSource(memory.SampleQuestions())
	default:
		source = opentdb.New(cfg.Provider.BaseURL, config.Duration(cfg.Provider.Timeout, 15*time.Second), log)
	}

	d.service = app.NewQuizService(source, d.scores, cfg.Quiz, log)
	log.Info().Str("store", cfg.Store.Driver).Str("source", cfg.Provider.Source).Msg("trivia started")
	return d, nil
}

func (d *deps) openStore(ctx context.Context) (app.ScoreStore, error) {
	c := d.cfg.Store
	switch c.Driver {
	case config.StoreMemory:
		return memory.NewScoreStore(), nil

	case config.StorePostgres:
		if _, err := postgres.Migrate(ctx, c.Postgres.URL); err != nil {
			return nil, err
		}
		pool, err := pgxpool.Connect(ctx, c.Postgres.URL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		d.closers = append(d.closers, func() error { pool.Close(); return nil })
		return postgres.NewScoreStore(pool), nil

	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
		})
		telemetry.MonitorRedis(client, d.log)
		d.closers = append(d.closers, client.Close)

		pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return redisstore.NewScoreStore(client, c.Redis.Prefix), nil

	default:
		store, err := duckdb.Open(ctx, c.DuckDB.Path)
		if err != nil {
			return nil, err
		}
		d.closers = append(d.closers, store.Close)
		return store, nil
	}
}

// Close releases stores first and the log file last.
func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil && i > 0 {
			d.log.Error().Err(err).Msg("close failed")
		}
	}
}

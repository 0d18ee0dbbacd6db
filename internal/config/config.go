package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"trivia-quiz/internal/domain"
)

// Store drivers.
const (
	StoreDuckDB   = "duckdb"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
	StoreMemory   = "memory"
)

// Question sources.
const (
	SourceOpenTDB = "opentdb"
	SourceSample  = "sample"
)

type Config struct {
	Quiz     domain.QuestionRequest `yaml:"quiz"`
	Provider struct {
		Source  string `yaml:"source"`
		BaseURL string `yaml:"base_url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"provider"`
	Store struct {
		Driver string `yaml:"driver"`
		DuckDB struct {
			Path string `yaml:"path"`
		} `yaml:"duckdb"`
		Postgres struct {
			URL string `yaml:"url"`
		} `yaml:"postgres"`
		Redis struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"store"`
	Log struct {
		File  string `yaml:"file"`
		Level string `yaml:"level"`
	} `yaml:"log"`
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	UI struct {
		NoColor bool `yaml:"no_color"`
	} `yaml:"ui"`
}

// Default returns the configuration used when no file is present: fifteen
// hard Books questions from Open Trivia DB and a local DuckDB leaderboard.
func Default() Config {
	cfg := Config{Quiz: domain.DefaultQuestionRequest()}
	cfg.Provider.Source = SourceOpenTDB
	cfg.Provider.Timeout = "15s"
	cfg.Store.Driver = StoreDuckDB
	cfg.Store.DuckDB.Path = "leaderboard.db"
	cfg.Store.Redis.Prefix = "trivia"
	cfg.Log.File = "quiz_app.log"
	cfg.Log.Level = "info"
	cfg.Server.Port = "8080"
	return cfg
}

// Load reads YAML config from path over the defaults. A missing file is
// reported with an error wrapping fs.ErrNotExist.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// LoadOptional is Load that falls back to the defaults when path does not exist.
func LoadOptional(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Validate checks the values that cannot be defaulted.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case StoreDuckDB, StorePostgres, StoreRedis, StoreMemory:
	default:
		return fmt.Errorf("unknown store driver %q (expected duckdb|postgres|redis|memory)", c.Store.Driver)
	}
	switch c.Provider.Source {
	case SourceOpenTDB, SourceSample:
	default:
		return fmt.Errorf("unknown question source %q (expected opentdb|sample)", c.Provider.Source)
	}
	if c.Quiz.Amount <= 0 {
		return fmt.Errorf("quiz amount must be positive, got %d", c.Quiz.Amount)
	}
	if !c.Quiz.Difficulty.Valid() {
		return fmt.Errorf("unknown difficulty %q", c.Quiz.Difficulty)
	}
	if !c.Quiz.Type.Valid() {
		return fmt.Errorf("unknown question type %q", c.Quiz.Type)
	}
	return nil
}

// Duration parses a duration string or returns the fallback if empty or invalid.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

// Package config resolves wordbox settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/abhisek/wordbox/internal/srs"
)

// Config holds settings shared by every command.
type Config struct {
	DBPath        string `env:"WORDBOX_DB"`
	DecksDir      string `env:"WORDBOX_DECKS"`
	Namespace     string `env:"WORDBOX_NAMESPACE" envDefault:"vocabSrs"`
	DailyCount    int    `env:"WORDBOX_DAILY_COUNT" envDefault:"20"`
	MasteredLevel int    `env:"WORDBOX_MASTERED_LEVEL" envDefault:"4"`
}

// Load reads the optional dotenv files and then parses the environment.
// Variables already set in the environment win over dotenv values.
func Load(dotenvFiles ...string) (Config, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return Parse()
}

// Parse builds a Config from the current environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Namespace == "" {
		return errors.New("WORDBOX_NAMESPACE must not be empty")
	}
	if c.DailyCount <= 0 {
		return fmt.Errorf("WORDBOX_DAILY_COUNT must be positive, got %d", c.DailyCount)
	}
	if c.MasteredLevel < 1 || c.MasteredLevel > srs.MaxLevel {
		return fmt.Errorf("WORDBOX_MASTERED_LEVEL must be in [1, %d], got %d", srs.MaxLevel, c.MasteredLevel)
	}
	return nil
}

// Policy returns the scheduling policy for this configuration.
func (c Config) Policy() srs.Policy {
	p := srs.DefaultPolicy()
	p.MasteredLevel = c.MasteredLevel
	return p
}

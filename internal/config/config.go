package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// Backend
	APIURL string `env:"EVALIO_API_URL" envDefault:"http://localhost:8000"`

	// Local state (sqlite kv store + diagnostics log)
	DataDir string `env:"EVALIO_DATA_DIR"`

	// Logging
	LogLevel string `env:"EVALIO_LOG_LEVEL" envDefault:"info"`
}

func Load() (*Config, error) {
	// .env is optional; real env vars win.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".evalio")
	}

	return cfg, nil
}

// StorePath returns the path of the sqlite-backed session store.
func (c *Config) StorePath() string {
	return filepath.Join(c.DataDir, "state.db")
}

// LogPath returns the path of the diagnostics log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "evalio.log")
}

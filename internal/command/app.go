package command

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	evalioroot "github.com/evalio-app/evalio-cli"
	"github.com/evalio-app/evalio-cli/internal/api"
	"github.com/evalio-app/evalio-cli/internal/auth"
	"github.com/evalio-app/evalio-cli/internal/config"
	"github.com/evalio-app/evalio-cli/internal/store"
)

// App wires the shared dependencies behind every command: configuration, the
// local state store, the API client, and the auth flows.
type App struct {
	Config *config.Config
	Store  *store.SQLiteStore
	API    *api.Client
	Auth   *auth.Service

	logFile *os.File
}

// newApp loads configuration, points the default logger at the diagnostics
// file (stdout belongs to the terminal UI), runs migrations, and opens the
// store.
func newApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	logFile, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	migrationsFS, err := fs.Sub(evalioroot.MigrationsFS, "migrations")
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("load embedded migrations: %w", err)
	}
	if err := store.RunMigrations(cfg.StorePath(), migrationsFS); err != nil {
		logFile.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	st, err := store.NewSQLite(cfg.StorePath())
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("open state store: %w", err)
	}

	client := api.New(cfg.APIURL, st)

	return &App{
		Config:  cfg,
		Store:   st,
		API:     client,
		Auth:    auth.New(client, st),
		logFile: logFile,
	}, nil
}

func (a *App) Close() {
	if err := a.Store.Close(); err != nil {
		slog.Error("close state store", "error", err)
	}
	a.logFile.Close()
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"

	"github.com/evalio-app/evalio-cli/internal/domain"
)

// SQLiteStore implements Store on a local sqlite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) the sqlite store at dbPath.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	dsn := dbPath + "?_journal=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Single local client; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// RunMigrations applies the embedded schema migrations to the store at dbPath.
func RunMigrations(dbPath string, migrationsFS fs.FS) error {
	d, err := iofs.New(migrationsFS, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", d, "sqlite://"+dbPath)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("run migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	slog.Debug("migrations applied", "version", version, "dirty", dirty)
	return nil
}

func (s *SQLiteStore) get(key string) (string, bool) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false
	}
	if err != nil {
		slog.Error("read store key", "key", key, "error", err)
		return "", false
	}
	return value, true
}

func (s *SQLiteStore) set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("write store key %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) delete(keys ...string) error {
	for _, key := range keys {
		if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
			return fmt.Errorf("delete store key %s: %w", key, err)
		}
	}
	return nil
}

func (s *SQLiteStore) Token() (string, bool) {
	return s.get(keyToken)
}

func (s *SQLiteStore) SetToken(token string) error {
	return s.set(keyToken, token)
}

func (s *SQLiteStore) User() (*domain.User, bool) {
	raw, ok := s.get(keyUser)
	if !ok {
		return nil, false
	}
	var u domain.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		slog.Error("decode cached user", "error", err)
		return nil, false
	}
	return &u, true
}

func (s *SQLiteStore) SetUser(u *domain.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	return s.set(keyUser, string(raw))
}

func (s *SQLiteStore) ActiveChatID() (int64, bool) {
	raw, ok := s.get(keyActiveChat)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		slog.Error("decode active chat id", "value", raw, "error", err)
		return 0, false
	}
	return id, true
}

func (s *SQLiteStore) SetActiveChatID(id int64) error {
	return s.set(keyActiveChat, strconv.FormatInt(id, 10))
}

func (s *SQLiteStore) ClearActiveChat() error {
	return s.delete(keyActiveChat)
}

func (s *SQLiteStore) ClearSession() error {
	return s.delete(keyToken, keyUser, keyActiveChat)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

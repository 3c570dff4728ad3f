package store

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	evalioroot "github.com/evalio-app/evalio-cli"
	"github.com/evalio-app/evalio-cli/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "state.db")

	migrations, err := fs.Sub(evalioroot.MigrationsFS, "migrations")
	require.NoError(t, err)
	require.NoError(t, RunMigrations(dbPath, migrations))

	s, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func TestSQLiteStoreTokenRoundTrip(t *testing.T) {
	s := newTestStore(t)

	_, ok := s.Token()
	assert.False(t, ok)

	require.NoError(t, s.SetToken("tok-123"))
	token, ok := s.Token()
	require.True(t, ok)
	assert.Equal(t, "tok-123", token)

	// Overwrite keeps the latest value.
	require.NoError(t, s.SetToken("tok-456"))
	token, _ = s.Token()
	assert.Equal(t, "tok-456", token)
}

func TestSQLiteStoreUserRoundTrip(t *testing.T) {
	s := newTestStore(t)

	_, ok := s.User()
	assert.False(t, ok)

	require.NoError(t, s.SetUser(&domain.User{IDUsuario: 7, Email: "ana@example.com", Nombre: "ana garcía"}))

	u, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, int64(7), u.IDUsuario)
	assert.Equal(t, "Ana", u.FirstName())
}

func TestSQLiteStoreActiveChatPointer(t *testing.T) {
	s := newTestStore(t)

	_, ok := s.ActiveChatID()
	assert.False(t, ok)

	require.NoError(t, s.SetActiveChatID(42))
	id, ok := s.ActiveChatID()
	require.True(t, ok)
	assert.Equal(t, int64(42), id)

	require.NoError(t, s.ClearActiveChat())
	_, ok = s.ActiveChatID()
	assert.False(t, ok)
}

func TestSQLiteStoreClearSession(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SetToken("tok"))
	require.NoError(t, s.SetUser(&domain.User{IDUsuario: 1, Nombre: "Eva"}))
	require.NoError(t, s.SetActiveChatID(9))

	require.NoError(t, s.ClearSession())

	_, ok := s.Token()
	assert.False(t, ok)
	_, ok = s.User()
	assert.False(t, ok)
	_, ok = s.ActiveChatID()
	assert.False(t, ok)
}

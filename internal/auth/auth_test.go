package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evalio-app/evalio-cli/internal/domain"
	"github.com/evalio-app/evalio-cli/internal/store"
)

type fakeBackend struct {
	loginErr    error
	registerErr error
	meErr       error
	meCalls     int
	lastEmail   string
	lastNombre  string
}

func (f *fakeBackend) Login(ctx context.Context, email, password string) (string, error) {
	if f.loginErr != nil {
		return "", f.loginErr
	}
	f.lastEmail = email
	return "token-123", nil
}

func (f *fakeBackend) Register(ctx context.Context, nombre, email, password string) (string, error) {
	if f.registerErr != nil {
		return "", f.registerErr
	}
	f.lastNombre = nombre
	f.lastEmail = email
	return "token-456", nil
}

func (f *fakeBackend) Me(ctx context.Context) (*domain.User, error) {
	f.meCalls++
	if f.meErr != nil {
		return nil, f.meErr
	}
	return &domain.User{IDUsuario: 1, Nombre: "Eva Gómez", Email: "eva@example.com"}, nil
}

func TestLoginPersistsSession(t *testing.T) {
	backend := &fakeBackend{}
	st := store.NewMemory()
	s := New(backend, st)

	user, err := s.Login(context.Background(), " eva@example.com ", "abcd1234")
	require.NoError(t, err)
	assert.Equal(t, "Eva Gómez", user.Nombre)
	assert.Equal(t, "eva@example.com", backend.lastEmail, "email trimmed before the call")

	token, ok := st.Token()
	require.True(t, ok)
	assert.Equal(t, "token-123", token)

	cached, ok := st.User()
	require.True(t, ok)
	assert.Equal(t, int64(1), cached.IDUsuario)
}

func TestLoginEmptyCredentials(t *testing.T) {
	s := New(&fakeBackend{}, store.NewMemory())

	_, err := s.Login(context.Background(), "", "pw")
	assert.ErrorIs(t, err, domain.ErrEmptyCredentials)

	_, err = s.Login(context.Background(), "eva@example.com", "")
	assert.ErrorIs(t, err, domain.ErrEmptyCredentials)
}

func TestRegisterValidatesBeforeNetwork(t *testing.T) {
	backend := &fakeBackend{registerErr: fmt.Errorf("must not be reached")}
	s := New(backend, store.NewMemory())

	_, err := s.Register(context.Background(), "Eva123", "eva@example.com", "abcd1234")
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = s.Register(context.Background(), "Eva Gómez", "eva@example.com", "corta1")
	assert.ErrorIs(t, err, domain.ErrWeakPassword)

	_, err = s.Register(context.Background(), "Eva Gómez", "eva@example.com", "soloconletras")
	assert.ErrorIs(t, err, domain.ErrWeakPassword)
}

func TestRegisterPersistsSession(t *testing.T) {
	backend := &fakeBackend{}
	st := store.NewMemory()
	s := New(backend, st)

	user, err := s.Register(context.Background(), "Eva Gómez", "eva@example.com", "abcd1234")
	require.NoError(t, err)
	assert.NotNil(t, user)

	token, ok := st.Token()
	require.True(t, ok)
	assert.Equal(t, "token-456", token)
}

func TestRequireUserUsesCache(t *testing.T) {
	backend := &fakeBackend{}
	st := store.NewMemory()
	s := New(backend, st)

	_, err := s.RequireUser(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	require.NoError(t, st.SetToken("token-123"))
	user, err := s.RequireUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, backend.meCalls, "profile fetched once")

	again, err := s.RequireUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, user.IDUsuario, again.IDUsuario)
	assert.Equal(t, 1, backend.meCalls, "second call served from cache")
}

func TestLogoutClearsEverything(t *testing.T) {
	st := store.NewMemory()
	require.NoError(t, st.SetToken("token-123"))
	require.NoError(t, st.SetActiveChatID(9))
	s := New(&fakeBackend{}, st)

	require.NoError(t, s.Logout())

	_, ok := st.Token()
	assert.False(t, ok)
	_, ok = st.ActiveChatID()
	assert.False(t, ok)
}

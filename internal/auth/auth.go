// Package auth implements the client-side sign-in flows: credential
// validation, token exchange, and persisting the session in the local store.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/evalio-app/evalio-cli/internal/domain"
	"github.com/evalio-app/evalio-cli/internal/store"
	"github.com/evalio-app/evalio-cli/internal/validate"
)

// Backend is the slice of the API client the auth flows depend on.
type Backend interface {
	Register(ctx context.Context, nombre, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context) (*domain.User, error)
}

type Service struct {
	backend Backend
	store   store.Store
}

func New(backend Backend, st store.Store) *Service {
	return &Service{backend: backend, store: st}
}

// Login exchanges credentials for a token, persists it, then fetches and
// caches the profile. A failed profile fetch leaves the token in place; the
// profile is re-fetched lazily by RequireUser.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.ErrEmptyCredentials
	}

	token, err := s.backend.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetToken(token); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	return s.cacheProfile(ctx)
}

// Register validates the fields locally before touching the network, then
// runs the same token-and-profile sequence as Login.
func (s *Service) Register(ctx context.Context, nombre, email, password string) (*domain.User, error) {
	nombre = strings.TrimSpace(nombre)
	email = strings.TrimSpace(email)

	if !validate.IsValidName(nombre) {
		return nil, domain.ErrInvalidName
	}
	if email == "" || password == "" {
		return nil, domain.ErrEmptyCredentials
	}
	if !validate.IsValidPassword(password) {
		return nil, domain.ErrWeakPassword
	}

	token, err := s.backend.Register(ctx, nombre, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetToken(token); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	return s.cacheProfile(ctx)
}

func (s *Service) cacheProfile(ctx context.Context) (*domain.User, error) {
	user, err := s.backend.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	if err := s.store.SetUser(user); err != nil {
		slog.Error("cache user profile", "error", err)
	}
	return user, nil
}

// SignedIn reports whether a session token is stored locally. It says
// nothing about whether the backend still accepts it.
func (s *Service) SignedIn() bool {
	_, ok := s.store.Token()
	return ok
}

// RequireUser returns the signed-in user, fetching the profile when the
// local cache is empty. It fails with ErrUnauthorized when no session exists.
func (s *Service) RequireUser(ctx context.Context) (*domain.User, error) {
	if !s.SignedIn() {
		return nil, domain.ErrUnauthorized
	}
	if user, ok := s.store.User(); ok {
		return user, nil
	}
	return s.cacheProfile(ctx)
}

// Logout drops the token, the cached profile, and the active chat pointer.
func (s *Service) Logout() error {
	return s.store.ClearSession()
}

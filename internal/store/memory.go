package store

import (
	"sync"

	"github.com/evalio-app/evalio-cli/internal/domain"
)

// MemoryStore is an in-memory Store, used in tests and as a fallback when
// no durable state is wanted.
type MemoryStore struct {
	mu     sync.Mutex
	token  string
	user   *domain.User
	chatID int64
}

func NewMemory() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

func (s *MemoryStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) User() (*domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil, false
	}
	u := *s.user
	return &u, true
}

func (s *MemoryStore) SetUser(u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *u
	s.user = &copied
	return nil
}

func (s *MemoryStore) ActiveChatID() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chatID, s.chatID > 0
}

func (s *MemoryStore) SetActiveChatID(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chatID = id
	return nil
}

func (s *MemoryStore) ClearActiveChat() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chatID = 0
	return nil
}

func (s *MemoryStore) ClearSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
	s.chatID = 0
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// Package store persists the client session state: the auth token, the
// cached user profile and the active-chat pointer.
package store

import "github.com/evalio-app/evalio-cli/internal/domain"

// Storage keys, kept identical to the web client's.
const (
	keyToken      = "user-token"
	keyUser       = "user-data"
	keyActiveChat = "activeChatId"
)

// Store is durable key/value persistence for client session state.
// Reads report absence rather than failing: a value that cannot be read
// is treated as not set.
type Store interface {
	// Token returns the bearer token, if one is stored.
	Token() (string, bool)
	SetToken(token string) error

	// User returns the cached profile of the signed-in user.
	User() (*domain.User, bool)
	SetUser(u *domain.User) error

	// ActiveChatID is the chat this client considers currently open.
	ActiveChatID() (int64, bool)
	SetActiveChatID(id int64) error
	ClearActiveChat() error

	// ClearSession removes token, profile and active-chat pointer together.
	ClearSession() error

	Close() error
}

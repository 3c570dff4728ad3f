package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignalConsumeOnce(t *testing.T) {
	s := NewSignal()

	s.RequestNew()
	assert.True(t, s.consumeForceNew())
	assert.False(t, s.consumeForceNew(), "directive does not replay")

	s.RequestLoad(42)
	id, ok := s.consumeLoadChat()
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
	_, ok = s.consumeLoadChat()
	assert.False(t, ok)
}

func TestSignalRequestNewClearsPendingLoad(t *testing.T) {
	s := NewSignal()

	s.RequestLoad(7)
	s.RequestNew()

	_, ok := s.consumeLoadChat()
	assert.False(t, ok, "force-new supersedes an earlier load request")
	assert.True(t, s.consumeForceNew())
}

func TestSignalLastWriteWins(t *testing.T) {
	s := NewSignal()

	s.RequestLoad(1)
	s.RequestLoad(2)

	id, ok := s.consumeLoadChat()
	assert.True(t, ok)
	assert.Equal(t, int64(2), id)
}

func TestSignalChangesPingIsNonBlocking(t *testing.T) {
	s := NewSignal()

	// Nobody draining the channel; repeated requests must not block.
	for i := 0; i < 3; i++ {
		s.RequestNew()
	}

	select {
	case <-s.Changes():
	default:
		t.Fatal("expected a pending change notification")
	}
}

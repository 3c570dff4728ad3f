package chat

import "sync"

// Signal carries the two transient directives UI surfaces pass to the
// lifecycle controller: "force a brand-new chat" and "load this chat next".
// Each field is write-once/consume-once: the controller resets whatever it
// reads so a later activation never replays a stale directive.
type Signal struct {
	mu         sync.Mutex
	forceNew   bool
	loadChatID int64

	changes chan struct{}
}

func NewSignal() *Signal {
	return &Signal{changes: make(chan struct{}, 1)}
}

// RequestNew asks the controller for a fresh chat. It also clears any
// pending load directive, matching the sidebar's "new chat" action.
func (s *Signal) RequestNew() {
	s.mu.Lock()
	s.forceNew = true
	s.loadChatID = 0
	s.mu.Unlock()

	select {
	case s.changes <- struct{}{}:
	default:
	}
}

// RequestLoad asks the controller to open a specific chat on its next
// activation.
func (s *Signal) RequestLoad(chatID int64) {
	s.mu.Lock()
	s.loadChatID = chatID
	s.mu.Unlock()
}

// Changes signals that RequestNew was called. A running controller watches
// this to start a new chat even after startup has completed.
func (s *Signal) Changes() <-chan struct{} {
	return s.changes
}

func (s *Signal) consumeForceNew() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.forceNew
	s.forceNew = false
	return v
}

func (s *Signal) consumeLoadChat() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.loadChatID
	s.loadChatID = 0
	return id, id > 0
}

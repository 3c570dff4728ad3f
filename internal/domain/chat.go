package domain

import "time"

type ChatStatus string

const (
	ChatActive    ChatStatus = "active"
	ChatCompleted ChatStatus = "completed"
)

type Chat struct {
	ID            int64
	Title         string
	Status        ChatStatus
	CreatedAt     time.Time
	LastMessageAt *time.Time
	CompletedAt   *time.Time
}

type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// MessagePart is one display segment of a message. Emphasis marks the
// segment for highlighted rendering.
type MessagePart struct {
	Text     string
	Emphasis bool
}

type Message struct {
	ID     int64
	Sender Sender
	Parts  []MessagePart
	SentAt time.Time
}

// Text joins all parts back into the raw message content.
func (m Message) Text() string {
	var out string
	for _, p := range m.Parts {
		out += p.Text
	}
	return out
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// Message roles. The transcript only ever contains these two; tool results
// travel inside the resumed API request, never as visible messages.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a chat message in the conversation.
// Content is mutable while the assistant reply is still streaming in.
type Message struct {
	ID        string
	Role      string
	Content   string
	Timestamp time.Time
}

// NewMessage creates a message with a fresh identity and timestamp.
func NewMessage(role, content string) Message {
	return Message{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"trainai/model"
)

// DefaultTitle is the placeholder title a conversation carries until the
// first user message supplies a real one.
const DefaultTitle = "New Chat"

// titleMaxLen caps auto-generated titles.
const titleMaxLen = 50

// Conversation is a persisted chat thread. Messages are stored separately
// and replaced wholesale on every save.
type Conversation struct {
	ID        string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateConversation inserts a new conversation with the placeholder title.
func (s *Store) CreateConversation() (*Conversation, error) {
	now := time.Now()
	conv := &Conversation{
		ID:        uuid.New().String(),
		Title:     DefaultTitle,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.Exec(
		`INSERT INTO conversations (id, title, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		conv.ID, conv.Title, conv.CreatedAt, conv.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	return conv, nil
}

// ListConversations returns all conversations, most recently updated first.
func (s *Store) ListConversations() ([]Conversation, error) {
	rows, err := s.db.Query(
		`SELECT id, title, created_at, updated_at FROM conversations ORDER BY updated_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	var conversations []Conversation
	for rows.Next() {
		var c Conversation
		if err := rows.Scan(&c.ID, &c.Title, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		conversations = append(conversations, c)
	}

	return conversations, rows.Err()
}

// DeleteConversation removes a conversation and, via cascade, its messages.
func (s *Store) DeleteConversation(id string) error {
	if _, err := s.db.Exec(`DELETE FROM conversations WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	return nil
}

// ReplaceMessages saves a conversation snapshot: derive the title from the
// first user message while it is still the placeholder, bump updated_at, and
// swap the entire persisted message collection for the in-memory list.
// Delete-then-reinsert keeps the save simple and correct at this scale, at
// the cost of persisted message identity.
func (s *Store) ReplaceMessages(conv *Conversation, messages []model.Message) error {
	if conv.Title == DefaultTitle {
		for _, msg := range messages {
			if msg.Role == model.RoleUser {
				conv.Title = deriveTitle(msg.Content)
				break
			}
		}
	}
	conv.UpdatedAt = time.Now()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`UPDATE conversations SET title = ?, updated_at = ? WHERE id = ?`,
		conv.Title, conv.UpdatedAt, conv.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update conversation: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM messages WHERE conversation_id = ?`, conv.ID); err != nil {
		return fmt.Errorf("failed to clear messages: %w", err)
	}

	for _, msg := range messages {
		_, err := tx.Exec(
			`INSERT INTO messages (id, conversation_id, role, content, timestamp) VALUES (?, ?, ?, ?, ?)`,
			msg.ID, conv.ID, msg.Role, msg.Content, msg.Timestamp,
		)
		if err != nil {
			return fmt.Errorf("failed to insert message: %w", err)
		}
	}

	return tx.Commit()
}

// ConversationMessages loads a conversation's messages ordered by timestamp
// ascending (transcript order).
func (s *Store) ConversationMessages(conversationID string) ([]model.Message, error) {
	rows, err := s.db.Query(
		`SELECT id, role, content, timestamp FROM messages WHERE conversation_id = ? ORDER BY timestamp ASC`,
		conversationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.Role, &m.Content, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}

// deriveTitle takes the leading characters of the first user message,
// flattening any line breaks.
func deriveTitle(content string) string {
	title := strings.ReplaceAll(content, "\n", " ")
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.TrimSpace(title)
	if runes := []rune(title); len(runes) > titleMaxLen {
		title = string(runes[:titleMaxLen])
	}
	if title == "" {
		return DefaultTitle
	}
	return title
}

package model

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// ConversationRepository stores the per-conversation message history the
// booking engine re-reads every turn. Implementations must return history in
// insertion order; the intent extraction depends on it.
type ConversationRepository interface {
	// AddMessage appends one patient or assistant message to the conversation.
	AddMessage(ctx context.Context, conversationID string, message *schema.Message) error

	// LoadHistory retrieves the full message history for a conversation.
	// An unknown conversation yields an empty history, not an error.
	LoadHistory(ctx context.Context, conversationID string) (*ConversationHistory, error)

	// ClearHistory removes all history for a conversation.
	ClearHistory(ctx context.Context, conversationID string) error

	// GetMessageCount returns the number of stored messages.
	GetMessageCount(ctx context.Context, conversationID string) (int, error)
}

// ConversationHistory is a loaded conversation, oldest message first.
type ConversationHistory struct {
	ConversationID string
	Messages       []*schema.Message
}

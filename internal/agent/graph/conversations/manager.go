package conversations

import (
	"context"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/model"
)

// MessagesManager owns the per-conversation message flow: persisting patient
// and assistant turns and flattening the patient side of the history into the
// text the intent extractor runs over.
type MessagesManager struct {
	conversationRepo model.ConversationRepository
}

func NewMessagesManager(conversationRepo model.ConversationRepository) *MessagesManager {
	return &MessagesManager{conversationRepo: conversationRepo}
}

// AppendUserMessage records one patient message.
func (cm *MessagesManager) AppendUserMessage(ctx context.Context, conversationID string, query string) error {
	return cm.conversationRepo.AddMessage(ctx, conversationID, schema.UserMessage(query))
}

// PatientText returns the accumulated patient-side text of the conversation,
// oldest first. Assistant turns are excluded on purpose: the extraction rules
// are first-person patterns, and an assistant phrase like "I'm sorry" must
// not be mistaken for a self-identification.
func (cm *MessagesManager) PatientText(ctx context.Context, conversationID string) (string, error) {
	history, err := cm.conversationRepo.LoadHistory(ctx, conversationID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, msg := range history.Messages {
		if msg == nil || msg.Role != schema.User || msg.Content == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(msg.Content)
	}
	return b.String(), nil
}

// BuildModelMessages assembles the message list for the response model: the
// per-turn system instruction followed by the full stored history.
func (cm *MessagesManager) BuildModelMessages(ctx context.Context, conversationID string, systemPrompt string) ([]*schema.Message, error) {
	history, err := cm.conversationRepo.LoadHistory(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	messages := []*schema.Message{
		schema.SystemMessage(systemPrompt),
	}
	messages = append(messages, history.Messages...)

	return messages, nil
}

// SaveResponse records the assistant's final reply for the turn.
func (cm *MessagesManager) SaveResponse(ctx context.Context, conversationID string, content string) error {
	return cm.conversationRepo.AddMessage(ctx, conversationID, schema.AssistantMessage(content, nil))
}

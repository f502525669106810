package conversations

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/repo"
)

func TestPatientTextJoinsUserTurnsOnly(t *testing.T) {
	ctx := context.Background()
	cm := NewMessagesManager(repo.NewMemoryConversationRepository())

	require.NoError(t, cm.AppendUserMessage(ctx, "c1", "Hi, I'd like to see a doctor"))
	require.NoError(t, cm.SaveResponse(ctx, "c1", "Of course! I'm happy to help. What's your name?"))
	require.NoError(t, cm.AppendUserMessage(ctx, "c1", "I'm Bob. I need a checkup at 9am"))

	text, err := cm.PatientText(ctx, "c1")
	require.NoError(t, err)

	assert.Equal(t, "Hi, I'd like to see a doctor\nI'm Bob. I need a checkup at 9am", text)
	// The assistant's "I'm happy to help" must never reach the name extractor.
	assert.NotContains(t, text, "happy to help")
}

func TestPatientTextEmptyConversation(t *testing.T) {
	cm := NewMessagesManager(repo.NewMemoryConversationRepository())

	text, err := cm.PatientText(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestBuildModelMessagesPrependsSystemPrompt(t *testing.T) {
	ctx := context.Background()
	cm := NewMessagesManager(repo.NewMemoryConversationRepository())

	require.NoError(t, cm.AppendUserMessage(ctx, "c1", "I'm Bob"))
	require.NoError(t, cm.SaveResponse(ctx, "c1", "Hello Bob!"))

	messages, err := cm.BuildModelMessages(ctx, "c1", "system instruction")
	require.NoError(t, err)

	require.Len(t, messages, 3)
	assert.Equal(t, schema.System, messages[0].Role)
	assert.Equal(t, "system instruction", messages[0].Content)
	assert.Equal(t, schema.User, messages[1].Role)
	assert.Equal(t, schema.Assistant, messages[2].Role)
}

func TestConversationsAreIsolated(t *testing.T) {
	ctx := context.Background()
	cm := NewMessagesManager(repo.NewMemoryConversationRepository())

	require.NoError(t, cm.AppendUserMessage(ctx, "c1", "I'm Bob"))
	require.NoError(t, cm.AppendUserMessage(ctx, "c2", "I'm Alice"))

	text1, err := cm.PatientText(ctx, "c1")
	require.NoError(t, err)
	text2, err := cm.PatientText(ctx, "c2")
	require.NoError(t, err)

	assert.Equal(t, "I'm Bob", text1)
	assert.Equal(t, "I'm Alice", text2)
}

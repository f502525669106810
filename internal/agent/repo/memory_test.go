package repo

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryAddAndLoad(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryConversationRepository()

	require.NoError(t, r.AddMessage(ctx, "c1", schema.UserMessage("I'm Bob")))
	require.NoError(t, r.AddMessage(ctx, "c1", schema.AssistantMessage("Hello Bob!", nil)))

	history, err := r.LoadHistory(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, history.Messages, 2)
	assert.Equal(t, "I'm Bob", history.Messages[0].Content)
}

func TestMemoryLoadHistoryReturnsCopy(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryConversationRepository()

	require.NoError(t, r.AddMessage(ctx, "c1", schema.UserMessage("original")))

	history, err := r.LoadHistory(ctx, "c1")
	require.NoError(t, err)
	history.Messages[0] = schema.UserMessage("mutated")

	again, err := r.LoadHistory(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "original", again.Messages[0].Content)
}

func TestMemoryClearAndCount(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryConversationRepository()

	require.NoError(t, r.AddMessage(ctx, "c1", schema.UserMessage("hello")))

	n, err := r.GetMessageCount(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, r.ClearHistory(ctx, "c1"))

	n, err = r.GetMessageCount(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

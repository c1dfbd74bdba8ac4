package mapper

import (
	"testing"
	"time"

	"ai-brain-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionToResponseKeepsMessageOrderAndSource(t *testing.T) {
	session := &entity.ChatSession{
		Id:        "s1",
		Title:     "Note #1",
		PersonaId: "default",
		Messages: []entity.ChatMessage{
			{Role: entity.RoleAssistant, Content: "ready", PersonaName: "My AI Brain"},
			{Role: entity.RoleUser, Content: "hi"},
			{Role: entity.RoleAssistant, Content: "blocked", PersonaName: "System Protocol"},
		},
	}

	res := NewChatMapper().SessionToResponse(session, "My AI Brain", true, false)
	require.Len(t, res.Messages, 3)
	assert.Equal(t, "user", res.Messages[1].Role)
	assert.Empty(t, res.Messages[1].BrainName)
	assert.Equal(t, "System Protocol", res.Messages[2].BrainName)
	assert.True(t, res.Current)

	summary := NewChatMapper().SessionToSummary(session, "My AI Brain", false)
	assert.Equal(t, 3, summary.MessageCount)

	assert.Nil(t, NewChatMapper().SessionToResponse(nil, "", false, false))
}

func TestNoteToResponsesIndexesDisplayOrder(t *testing.T) {
	now := time.Now()
	res := NewNoteMapper().ToResponses([]entity.Note{{Text: "newest", CreatedAt: now}, {Text: "older", CreatedAt: now.Add(-time.Hour)}})
	require.Len(t, res, 2)
	assert.Equal(t, 0, res[0].Index)
	assert.Equal(t, "older", res[1].Text)
	assert.Equal(t, 1, res[1].Index)
}

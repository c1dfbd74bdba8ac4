package prompt

import (
	"fmt"
	"testing"

	"ai-brain-be/internal/constant"
	"ai-brain-be/internal/entity"
	"ai-brain-be/pkg/llm"
	"ai-brain-be/pkg/persona"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionWith(personaId string, n int) *entity.ChatSession {
	s := &entity.ChatSession{Id: "s", PersonaId: personaId}
	for i := 0; i < n; i++ {
		role := entity.RoleUser
		if i%2 == 0 {
			role = entity.RoleAssistant
		}
		s.Messages = append(s.Messages, entity.ChatMessage{Role: role, Content: fmt.Sprintf("m%d", i)})
	}
	return s
}

func TestForSessionTruncatesToWindow(t *testing.T) {
	a := NewAssembler(persona.NewDefaultRegistry(), 10)

	payload := a.ForSession(sessionWith("therapist", 15), "latest")

	require.Len(t, payload.Messages, 11)
	assert.Equal(t, "system", payload.Messages[0].Role)
	assert.Equal(t, constant.PersonaPromptTherapist, payload.Messages[0].Content)

	window := payload.Messages[1:]
	assert.Len(t, window, 10)
	// 9 most recent prior messages (m6..m14) plus the new user message.
	assert.Equal(t, "m6", window[0].Content)
	assert.Equal(t, "m14", window[8].Content)
	assert.Equal(t, llm.Message{Role: "user", Content: "latest"}, window[9])

	assert.Equal(t, "Therapist Brain", payload.Persona.DisplayName)
}

func TestForSessionWithNoHistory(t *testing.T) {
	a := NewAssembler(persona.NewDefaultRegistry(), 10)

	payload := a.ForSession(&entity.ChatSession{PersonaId: "business"}, "hello")

	require.Len(t, payload.Messages, 2)
	assert.Equal(t, constant.PersonaPromptBusiness, payload.Messages[0].Content)
	assert.Equal(t, llm.Message{Role: "user", Content: "hello"}, payload.Messages[1])
}

func TestForSessionUnknownPersonaUsesDefaultPrompt(t *testing.T) {
	a := NewAssembler(persona.NewDefaultRegistry(), 10)

	payload := a.ForSession(&entity.ChatSession{PersonaId: "ghost"}, "hi")
	assert.Equal(t, constant.PersonaPromptDefault, payload.Messages[0].Content)
}

func TestForSessionSkipsStoredSystemMessages(t *testing.T) {
	a := NewAssembler(persona.NewDefaultRegistry(), 3)
	s := &entity.ChatSession{PersonaId: "business", Messages: []entity.ChatMessage{
		{Role: entity.RoleAssistant, Content: "a"},
		{Role: entity.RoleSystem, Content: "sys"},
		{Role: entity.RoleUser, Content: "b"},
	}}

	payload := a.ForSession(s, "c")
	require.Len(t, payload.Messages, 4)
	for _, m := range payload.Messages[1:] {
		assert.NotEqual(t, "system", m.Role)
	}
}

func TestForNotesInterpolatesContext(t *testing.T) {
	a := NewAssembler(persona.NewDefaultRegistry(), 10)
	s := sessionWith(constant.DefaultPersonaId, 1)

	payload := a.ForNotes(s, "buy milk\ncall mom", "what do I need?")
	system := payload.Messages[0].Content
	assert.Contains(t, system, constant.PersonaPromptDefault)
	assert.Contains(t, system, "<notes>\nbuy milk\ncall mom\n</notes>")
	assert.NotContains(t, system, constant.NotesContextPlaceholder)
	assert.Len(t, payload.Messages, 3)
}

func TestForNotesEmptyContextUsesPlaceholder(t *testing.T) {
	a := NewAssembler(persona.NewDefaultRegistry(), 10)

	for _, ctxText := range []string{"", "  \n "} {
		payload := a.ForNotes(&entity.ChatSession{}, ctxText, "anything?")
		assert.Contains(t, payload.Messages[0].Content, "<notes>\n"+constant.NoNotesProvided+"\n</notes>")
	}
}

func TestForMessagesWindowsClientHistory(t *testing.T) {
	a := NewAssembler(persona.NewDefaultRegistry(), 10)
	msgs := make([]llm.Message, 12)
	for i := range msgs {
		msgs[i] = llm.Message{Role: "user", Content: fmt.Sprintf("c%d", i)}
	}

	payload := a.ForMessages("relationship", msgs)
	require.Len(t, payload.Messages, 11)
	assert.Equal(t, constant.PersonaPromptRelationship, payload.Messages[0].Content)
	assert.Equal(t, "c2", payload.Messages[1].Content)
	assert.Equal(t, "Relationship Brain", payload.Persona.DisplayName)
}

func TestForNoteAnalysis(t *testing.T) {
	a := NewAssembler(persona.NewDefaultRegistry(), 0)
	assert.Equal(t, constant.DefaultContextWindowSize, a.WindowSize())

	payload := a.ForNoteAnalysis("Context: x\nQuestion: y")
	require.Len(t, payload.Messages, 2)
	assert.Equal(t, constant.NoteAnalystPrompt, payload.Messages[0].Content)
	assert.Equal(t, "Context: x\nQuestion: y", payload.Messages[1].Content)
}

package prompt

import (
	"strings"

	"ai-brain-be/internal/constant"
	"ai-brain-be/internal/entity"
	"ai-brain-be/pkg/llm"
	"ai-brain-be/pkg/persona"
	"ai-brain-be/pkg/rag/history"
)

// Payload is what gets handed to the completion gateway: the resolved persona
// and the exact message sequence, system message first.
type Payload struct {
	Persona  entity.Persona
	Messages []llm.Message
}

// Assembler turns session history (or notes) plus the user's input into an
// outbound message sequence. The system message is never counted against the
// window.
type Assembler struct {
	personas   *persona.Registry
	windowSize int
}

func NewAssembler(personas *persona.Registry, windowSize int) *Assembler {
	if windowSize <= 0 {
		windowSize = constant.DefaultContextWindowSize
	}
	return &Assembler{personas: personas, windowSize: windowSize}
}

func (a *Assembler) WindowSize() int {
	return a.windowSize
}

// ForSession builds a chat payload from the session's history plus userInput.
func (a *Assembler) ForSession(session *entity.ChatSession, userInput string) Payload {
	p := a.personas.Lookup(session.PersonaId)
	return a.build(p, p.SystemPrompt, session.Messages, userInput)
}

// ForNotes builds a note-QA payload: the persona prompt is extended with the
// notes context, and an empty context is replaced with an explicit placeholder.
func (a *Assembler) ForNotes(session *entity.ChatSession, notesContext, userInput string) Payload {
	p := a.personas.Lookup(session.PersonaId)
	return a.build(p, NotesSystemPrompt(p, notesContext), session.Messages, userInput)
}

// ForMessages windows a client-held conversation that already ends with the
// newest user message.
func (a *Assembler) ForMessages(personaId string, messages []llm.Message) Payload {
	p := a.personas.Lookup(personaId)
	out := []llm.Message{{Role: string(entity.RoleSystem), Content: p.SystemPrompt}}
	out = append(out, history.Window(messages, a.windowSize)...)
	return Payload{Persona: p, Messages: out}
}

// ForNoteAnalysis wraps a free-form prompt (notes and question already
// composed by the caller) with the analyst system prompt.
func (a *Assembler) ForNoteAnalysis(prompt string) Payload {
	return Payload{
		Persona: a.personas.Default(),
		Messages: []llm.Message{
			{Role: string(entity.RoleSystem), Content: constant.NoteAnalystPrompt},
			{Role: string(entity.RoleUser), Content: prompt},
		},
	}
}

func (a *Assembler) build(p entity.Persona, systemPrompt string, past []entity.ChatMessage, userInput string) Payload {
	conversation := history.FromSession(past)
	conversation = append(conversation, llm.Message{Role: string(entity.RoleUser), Content: userInput})

	out := make([]llm.Message, 0, a.windowSize+1)
	out = append(out, llm.Message{Role: string(entity.RoleSystem), Content: systemPrompt})
	out = append(out, history.Window(conversation, a.windowSize)...)
	return Payload{Persona: p, Messages: out}
}

// NotesSystemPrompt interpolates the notes context into the persona prompt.
func NotesSystemPrompt(p entity.Persona, notesContext string) string {
	if strings.TrimSpace(notesContext) == "" {
		notesContext = constant.NoNotesProvided
	}
	notesSection := strings.Replace(constant.NotesContextTemplate, constant.NotesContextPlaceholder, notesContext, 1)
	return p.SystemPrompt + "\n\n" + notesSection
}

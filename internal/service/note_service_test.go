package service

import (
	"context"
	"testing"

	"ai-brain-be/internal/constant"
	"ai-brain-be/internal/dto"
	"ai-brain-be/internal/entity"
	"ai-brain-be/pkg/events"
	"ai-brain-be/pkg/llm/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.note.Create(ctx, &dto.CreateNoteRequest{Text: "first"})
	require.NoError(t, err)
	created, err := f.note.Create(ctx, &dto.CreateNoteRequest{Text: "second"})
	require.NoError(t, err)
	assert.Equal(t, 0, created.Index)

	list, err := f.note.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Text)
	assert.Equal(t, 1, list[1].Index)

	removed, err := f.note.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "first", removed.Text)

	_, err = f.note.Delete(ctx, 5)
	assert.ErrorIs(t, err, entity.ErrNotFound)

	assert.ErrorIs(t, f.note.Clear(ctx, false), entity.ErrConfirmationRequired)
	assert.Equal(t, 1, f.notes.Len())
	require.NoError(t, f.note.Clear(ctx, true))
	assert.Equal(t, 0, f.notes.Len())

	assert.Equal(t, []string{
		events.NoteCreated, events.NoteCreated, events.NoteDeleted, events.NotesCleared,
	}, f.events.Types())
}

func TestNoteServiceRejectsBlankNote(t *testing.T) {
	f := newFixture(t)

	_, err := f.note.Create(context.Background(), &dto.CreateNoteRequest{Text: " \n\t"})
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
	assert.Equal(t, 0, f.notes.Len())
	assert.Empty(t, f.events.Types())
}

func TestNoteServiceAskUsesNotesWithoutTouchingSessions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, mock.Response{Text: "You have a dentist appointment."})

	_, err := f.note.Create(ctx, &dto.CreateNoteRequest{Text: "Dentist on Friday"})
	require.NoError(t, err)
	before, err := f.chatbot.GetCurrentSession(ctx)
	require.NoError(t, err)

	res, err := f.note.Ask(ctx, &dto.AskNotesRequest{Question: "What is on Friday?"})
	require.NoError(t, err)
	assert.Equal(t, "You have a dentist appointment.", res.Answer)
	assert.Equal(t, "My AI Brain", res.BrainName)

	calls := f.provider.Calls()
	require.Len(t, calls, 1)
	require.Len(t, calls[0], 2)
	assert.Contains(t, calls[0][0].Content, constant.PersonaPromptDefault)
	assert.Contains(t, calls[0][0].Content, "Dentist on Friday")

	after, err := f.chatbot.GetSession(ctx, before.Id)
	require.NoError(t, err)
	assert.Len(t, after.Messages, len(before.Messages))
}

func TestNoteServiceAskWithoutNotesUsesPlaceholder(t *testing.T) {
	f := newFixture(t)

	_, err := f.note.Ask(context.Background(), &dto.AskNotesRequest{Question: "anything?"})
	require.NoError(t, err)

	calls := f.provider.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0][0].Content, constant.NoNotesProvided)
}

package service

import (
	"context"
	"fmt"
	"strings"

	"ai-brain-be/internal/dto"
	"ai-brain-be/internal/entity"
	"ai-brain-be/internal/mapper"
	"ai-brain-be/internal/pkg/logger"
	"ai-brain-be/internal/repository/memory"
	"ai-brain-be/pkg/ai/gateway"
	"ai-brain-be/pkg/events"
	"ai-brain-be/pkg/persona"
	"ai-brain-be/pkg/rag/prompt"
)

type INoteService interface {
	Create(ctx context.Context, request *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	List(ctx context.Context) ([]*dto.NoteResponse, error)
	Delete(ctx context.Context, displayIndex int) (*dto.NoteResponse, error)
	Clear(ctx context.Context, confirmed bool) error
	Ask(ctx context.Context, request *dto.AskNotesRequest) (*dto.AskNotesResponse, error)
}

type noteService struct {
	noteRepo   *memory.NoteRepository
	personas   *persona.Registry
	assembler  *prompt.Assembler
	gateway    *gateway.Gateway
	events     events.Publisher
	noteMapper *mapper.NoteMapper
	logger     logger.ILogger
}

func NewNoteService(
	noteRepo *memory.NoteRepository,
	personas *persona.Registry,
	assembler *prompt.Assembler,
	gw *gateway.Gateway,
	eventPublisher events.Publisher,
	log logger.ILogger,
) INoteService {
	return &noteService{
		noteRepo:   noteRepo,
		personas:   personas,
		assembler:  assembler,
		gateway:    gw,
		events:     eventPublisher,
		noteMapper: mapper.NewNoteMapper(),
		logger:     log,
	}
}

func (c *noteService) Create(ctx context.Context, request *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	note, added, err := c.noteRepo.Add(ctx, request.Text)
	if !added {
		return nil, fmt.Errorf("%w: note text is empty", entity.ErrInvalidInput)
	}
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, c.events, c.logger, events.NoteCreated, map[string]interface{}{
		"created_at": note.CreatedAt,
		"length":     len(note.Text),
	})

	// A new note always lands at the top of the display order.
	return c.noteMapper.ToResponse(0, note), nil
}

func (c *noteService) List(ctx context.Context) ([]*dto.NoteResponse, error) {
	return c.noteMapper.ToResponses(c.noteRepo.List()), nil
}

func (c *noteService) Delete(ctx context.Context, displayIndex int) (*dto.NoteResponse, error) {
	removed, err := c.noteRepo.Remove(ctx, displayIndex)
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, c.events, c.logger, events.NoteDeleted, map[string]interface{}{
		"index":      displayIndex,
		"created_at": removed.CreatedAt,
	})
	return c.noteMapper.ToResponse(displayIndex, removed), nil
}

func (c *noteService) Clear(ctx context.Context, confirmed bool) error {
	if err := c.noteRepo.Clear(ctx, confirmed); err != nil {
		return err
	}
	publishEvent(ctx, c.events, c.logger, events.NotesCleared, nil)
	return nil
}

// Ask answers a one-off question against every stored note using the
// default persona. Nothing is written to any session.
func (c *noteService) Ask(ctx context.Context, request *dto.AskNotesRequest) (*dto.AskNotesResponse, error) {
	question := strings.TrimSpace(request.Question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is empty", entity.ErrInvalidInput)
	}

	p := c.personas.Default()
	scratch := &entity.ChatSession{PersonaId: p.Id}
	payload := c.assembler.ForNotes(scratch, c.noteRepo.ContextText(), question)

	completion, err := c.gateway.Complete(ctx, gateway.Request{
		Messages:    payload.Messages,
		PersonaName: p.DisplayName,
	})
	if err != nil {
		return nil, err
	}
	return &dto.AskNotesResponse{Answer: completion.Text, BrainName: completion.SourcePersonaName}, nil
}

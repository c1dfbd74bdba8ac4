package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"ai-brain-be/internal/constant"
	"ai-brain-be/internal/dto"
	"ai-brain-be/internal/entity"
	"ai-brain-be/internal/mapper"
	"ai-brain-be/internal/pkg/logger"
	"ai-brain-be/internal/repository/memory"
	"ai-brain-be/pkg/ai/gateway"
	"ai-brain-be/pkg/events"
	"ai-brain-be/pkg/persona"
	"ai-brain-be/pkg/rag/prompt"
	"ai-brain-be/pkg/usage"
)

const chatbotModule = "CHATBOT"

// IChatbotService defines the chatbot service interface
type IChatbotService interface {
	CreateSession(ctx context.Context, request *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	ListSessions(ctx context.Context) ([]*dto.SessionSummaryResponse, error)
	GetCurrentSession(ctx context.Context) (*dto.SessionResponse, error)
	SetCurrentSession(ctx context.Context, sessionId string) (*dto.SessionResponse, error)
	GetSession(ctx context.Context, sessionId string) (*dto.SessionResponse, error)
	DeleteSession(ctx context.Context, sessionId string) error
	DeleteAllSessions(ctx context.Context) (*dto.SessionResponse, error)
	SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	IsLoading(sessionId string) bool
	GetUsage(ctx context.Context) ([]*dto.PersonaUsageResponse, error)
}

type chatbotService struct {
	sessionRepo *memory.SessionRepository
	noteRepo    *memory.NoteRepository
	personas    *persona.Registry
	assembler   *prompt.Assembler
	gateway     *gateway.Gateway
	events      events.Publisher
	exchanges   IPublisherService
	tracker     *usage.Tracker
	chatMapper  *mapper.ChatMapper
	logger      logger.ILogger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewChatbotService(
	sessionRepo *memory.SessionRepository,
	noteRepo *memory.NoteRepository,
	personas *persona.Registry,
	assembler *prompt.Assembler,
	gw *gateway.Gateway,
	eventPublisher events.Publisher,
	exchanges IPublisherService,
	tracker *usage.Tracker,
	log logger.ILogger,
) IChatbotService {
	return &chatbotService{
		sessionRepo: sessionRepo,
		noteRepo:    noteRepo,
		personas:    personas,
		assembler:   assembler,
		gateway:     gw,
		events:      eventPublisher,
		exchanges:   exchanges,
		tracker:     tracker,
		chatMapper:  mapper.NewChatMapper(),
		logger:      log,
		inFlight:    make(map[string]struct{}),
	}
}

func (c *chatbotService) CreateSession(ctx context.Context, request *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	session, err := c.sessionRepo.Create(ctx, request.PersonaId)
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, c.events, c.logger, events.SessionCreated, map[string]interface{}{
		"session_id": session.Id,
		"persona_id": session.PersonaId,
	})
	return c.toSessionResponse(session, true), nil
}

func (c *chatbotService) ListSessions(ctx context.Context) ([]*dto.SessionSummaryResponse, error) {
	currentId := ""
	if current, err := c.sessionRepo.Current(); err == nil {
		currentId = current.Id
	}

	sessions := c.sessionRepo.List()
	res := make([]*dto.SessionSummaryResponse, 0, len(sessions))
	for _, s := range sessions {
		res = append(res, c.chatMapper.SessionToSummary(s, c.personas.Lookup(s.PersonaId).DisplayName, s.Id == currentId))
	}
	return res, nil
}

func (c *chatbotService) GetCurrentSession(ctx context.Context) (*dto.SessionResponse, error) {
	session, err := c.currentOrNew(ctx)
	if err != nil {
		return nil, err
	}
	return c.toSessionResponse(session, true), nil
}

func (c *chatbotService) SetCurrentSession(ctx context.Context, sessionId string) (*dto.SessionResponse, error) {
	if err := c.sessionRepo.SetCurrent(ctx, sessionId); err != nil {
		return nil, err
	}
	session, err := c.sessionRepo.Get(sessionId)
	if err != nil {
		return nil, err
	}
	return c.toSessionResponse(session, true), nil
}

func (c *chatbotService) GetSession(ctx context.Context, sessionId string) (*dto.SessionResponse, error) {
	session, err := c.sessionRepo.Get(sessionId)
	if err != nil {
		return nil, err
	}

	isCurrent := false
	if current, err := c.sessionRepo.Current(); err == nil {
		isCurrent = current.Id == session.Id
	}
	return c.toSessionResponse(session, isCurrent), nil
}

// DeleteSession removes one session. Removing the last one starts a fresh
// default session so there is always something to talk to.
func (c *chatbotService) DeleteSession(ctx context.Context, sessionId string) error {
	if err := c.sessionRepo.Delete(ctx, sessionId); err != nil {
		return err
	}

	publishEvent(ctx, c.events, c.logger, events.SessionDeleted, map[string]interface{}{
		"session_id": sessionId,
	})

	_, err := c.currentOrNew(ctx)
	return err
}

func (c *chatbotService) DeleteAllSessions(ctx context.Context) (*dto.SessionResponse, error) {
	if err := c.sessionRepo.DeleteAll(ctx); err != nil {
		return nil, err
	}
	publishEvent(ctx, c.events, c.logger, events.SessionsCleared, nil)

	return c.CreateSession(ctx, &dto.CreateSessionRequest{PersonaId: c.personas.Default().Id})
}

// SendChat appends the user's message, asks the gateway for a reply and
// appends it. Provider failures are reported in the response's Error field;
// the user message stays in the session.
func (c *chatbotService) SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	text := strings.TrimSpace(request.Chat)
	if text == "" {
		return nil, fmt.Errorf("%w: chat message is empty", entity.ErrInvalidInput)
	}

	resolved, err := c.resolveSession(ctx, request.ChatSessionId)
	if err != nil {
		return nil, err
	}

	if !c.acquire(resolved.Id) {
		return nil, entity.ErrRequestInFlight
	}
	defer c.release(resolved.Id)

	// Re-read under the guard so the history includes any reply that landed
	// since resolving.
	session, err := c.sessionRepo.Get(resolved.Id)
	if err != nil {
		return nil, err
	}

	p := c.personas.Lookup(session.PersonaId)
	useNotes := session.PersonaId == c.personas.Default().Id
	if request.UseNotes != nil {
		useNotes = *request.UseNotes
	}

	// The payload is built from the history before the new message is stored;
	// the assembler appends the input itself.
	var payload prompt.Payload
	if useNotes {
		payload = c.assembler.ForNotes(session, c.noteRepo.ContextText(), text)
	} else {
		payload = c.assembler.ForSession(session, text)
	}

	sent := entity.ChatMessage{Role: entity.RoleUser, Content: text}
	if err := c.sessionRepo.AppendMessage(ctx, session.Id, sent); err != nil {
		return nil, err
	}

	res := &dto.SendChatResponse{
		ChatSessionId: session.Id,
		Sent:          c.chatMapper.MessageToDTO(sent),
	}

	completion, err := c.gateway.Complete(ctx, gateway.Request{
		Messages:    payload.Messages,
		PersonaName: p.DisplayName,
	})
	if err != nil {
		publishExchange(ctx, c.exchanges, c.logger, newExchangeMessage(session.Id, p, completion, err))
		res.Error = displayError(err)
		return res, nil
	}

	reply := entity.ChatMessage{
		Role:        entity.RoleAssistant,
		Content:     completion.Text,
		PersonaName: completion.SourcePersonaName,
	}
	if err := c.sessionRepo.AppendMessage(ctx, session.Id, reply); err != nil {
		return nil, err
	}
	replyDTO := c.chatMapper.MessageToDTO(reply)
	res.Reply = &replyDTO

	publishExchange(ctx, c.exchanges, c.logger, newExchangeMessage(session.Id, p, completion, nil))
	publishEvent(ctx, c.events, c.logger, events.ChatReplied, map[string]interface{}{
		"session_id":  session.Id,
		"persona_id":  p.Id,
		"intercepted": completion.Intercepted,
	})

	return res, nil
}

func (c *chatbotService) IsLoading(sessionId string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.inFlight[sessionId]
	return ok
}

func (c *chatbotService) GetUsage(ctx context.Context) ([]*dto.PersonaUsageResponse, error) {
	return c.tracker.Snapshot(), nil
}

func (c *chatbotService) acquire(sessionId string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inFlight[sessionId]; busy {
		return false
	}
	c.inFlight[sessionId] = struct{}{}
	return true
}

func (c *chatbotService) release(sessionId string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, sessionId)
}

func (c *chatbotService) resolveSession(ctx context.Context, sessionId string) (*entity.ChatSession, error) {
	if sessionId == "" {
		return c.currentOrNew(ctx)
	}
	return c.sessionRepo.Get(sessionId)
}

// currentOrNew returns the current session, creating a default one when the
// store is empty.
func (c *chatbotService) currentOrNew(ctx context.Context) (*entity.ChatSession, error) {
	session, err := c.sessionRepo.Current()
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, entity.ErrNoCurrentSession) {
		return nil, err
	}

	created, err := c.CreateSession(ctx, &dto.CreateSessionRequest{PersonaId: c.personas.Default().Id})
	if err != nil {
		return nil, err
	}
	return c.sessionRepo.Get(created.Id)
}

func (c *chatbotService) toSessionResponse(session *entity.ChatSession, isCurrent bool) *dto.SessionResponse {
	personaName := c.personas.Lookup(session.PersonaId).DisplayName
	return c.chatMapper.SessionToResponse(session, personaName, isCurrent, c.IsLoading(session.Id))
}

// displayError returns text that is safe to put in front of the user.
func displayError(err error) string {
	var gatewayErr *gateway.Error
	if errors.As(err, &gatewayErr) {
		return gatewayErr.Message
	}
	return constant.ErrMessageInternal
}

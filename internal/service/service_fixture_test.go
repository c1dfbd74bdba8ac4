package service

import (
	"context"
	"sync"
	"testing"

	"ai-brain-be/internal/dto"
	"ai-brain-be/internal/pkg/logger"
	"ai-brain-be/internal/repository/memory"
	"ai-brain-be/pkg/ai/gateway"
	"ai-brain-be/pkg/events"
	"ai-brain-be/pkg/kvstore"
	"ai-brain-be/pkg/llm/mock"
	"ai-brain-be/pkg/persona"
	"ai-brain-be/pkg/rag/prompt"
	"ai-brain-be/pkg/usage"

	"github.com/stretchr/testify/require"
)

type exchangeRecorder struct {
	mu       sync.Mutex
	messages []dto.ChatExchangeMessage
}

func (r *exchangeRecorder) PublishChatExchange(ctx context.Context, msg dto.ChatExchangeMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
	return nil
}

func (r *exchangeRecorder) All() []dto.ChatExchangeMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]dto.ChatExchangeMessage, len(r.messages))
	copy(out, r.messages)
	return out
}

type fixture struct {
	provider   *mock.Provider
	sessions   *memory.SessionRepository
	notes      *memory.NoteRepository
	events     *events.Recorder
	exchanges  *exchangeRecorder
	chatbot    IChatbotService
	note       INoteService
	completion ICompletionService
}

func newFixture(t *testing.T, script ...mock.Response) *fixture {
	t.Helper()

	log := logger.NewNopLogger()
	storage := kvstore.NewMemoryStorage()
	personas := persona.NewDefaultRegistry()
	provider := mock.NewProvider(script...)
	gw := gateway.New(provider, "", log)
	assembler := prompt.NewAssembler(personas, 0)
	recorder := &events.Recorder{}
	exchanges := &exchangeRecorder{}

	sessions := memory.NewSessionRepository(storage, personas, log)
	require.NoError(t, sessions.Load(context.Background()))
	notes := memory.NewNoteRepository(storage, log)
	notes.Load(context.Background())

	return &fixture{
		provider:   provider,
		sessions:   sessions,
		notes:      notes,
		events:     recorder,
		exchanges:  exchanges,
		chatbot:    NewChatbotService(sessions, notes, personas, assembler, gw, recorder, exchanges, usage.NewTracker(), log),
		note:       NewNoteService(notes, personas, assembler, gw, recorder, log),
		completion: NewCompletionService(assembler, gw, exchanges, log),
	}
}

func boolPtr(b bool) *bool {
	return &b
}

package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"

	"ai-brain-be/internal/config"
	"ai-brain-be/internal/controller"
	"ai-brain-be/internal/pkg/logger"
	"ai-brain-be/internal/repository/memory"
	"ai-brain-be/internal/service"
	"ai-brain-be/pkg/ai/gateway"
	"ai-brain-be/pkg/events"
	"ai-brain-be/pkg/kvstore"
	"ai-brain-be/pkg/llm/factory"
	pktNats "ai-brain-be/pkg/nats"
	"ai-brain-be/pkg/persona"
	"ai-brain-be/pkg/rag/prompt"
	"ai-brain-be/pkg/usage"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Core holds everything shared by the REST server and the CLI.
type Core struct {
	Logger   logger.ILogger
	Personas *persona.Registry
	Sessions *memory.SessionRepository
	Notes    *memory.NoteRepository

	ChatbotService    service.IChatbotService
	NoteService       service.INoteService
	CompletionService service.ICompletionService
	ConsumerService   service.IConsumerService

	closers []io.Closer
}

type Container struct {
	*Core

	// Controllers
	CompletionController controller.ICompletionController
	PersonaController    controller.IPersonaController
	NoteController       controller.INoteController
	ChatbotController    controller.IChatbotController
}

// NewCore wires storage, stores, the gateway and services. Persisted notes and
// sessions are loaded before it returns.
func NewCore(ctx context.Context, cfg *config.Config, sysLogger logger.ILogger) (*Core, error) {
	// 1. Personas
	personas := persona.NewDefaultRegistry()
	if cfg.App.PersonaFile != "" {
		loaded, err := persona.LoadFile(cfg.App.PersonaFile)
		if err != nil {
			return nil, fmt.Errorf("load personas: %w", err)
		}
		personas = loaded
	}

	// 2. Storage
	storage, storageCloser, err := kvstore.Open(ctx, kvstore.Options{
		Driver:      cfg.Storage.Driver,
		Dir:         cfg.Storage.FileDir,
		BoltPath:    cfg.Storage.BoltPath,
		RedisURL:    cfg.Storage.RedisURL,
		RedisPrefix: cfg.Storage.RedisPrefix,
		DSN:         cfg.Storage.Connection,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Driver, err)
	}
	core := &Core{Logger: sysLogger, Personas: personas, closers: []io.Closer{storageCloser}}

	// 3. Completion gateway
	provider, err := factory.NewLLMProvider(cfg.Ai.LLMProvider, cfg.Ai.LLMModel, cfg.Ai.BaseURL(), cfg.Ai.GroqAPIKey)
	if err != nil {
		core.Close()
		return nil, err
	}
	gw := gateway.New(provider, cfg.Ai.LLMModel, sysLogger)
	assembler := prompt.NewAssembler(personas, cfg.Ai.ContextWindowSize)

	// 4. Event buses
	var eventPublisher events.Publisher
	if cfg.Events.NatsEnabled {
		natsPublisher, err := pktNats.NewPublisher(cfg.Events.NatsURL)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "NATS unavailable, domain events disabled", map[string]interface{}{"error": err.Error()})
		} else {
			eventPublisher = natsPublisher
			core.closers = append(core.closers, natsPublisher)
		}
	}

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	core.closers = append(core.closers, pubSub)
	exchanges := service.NewPublisherService(pubSub, cfg.Events.ExchangeTopicName)
	tracker := usage.NewTracker()

	// 5. Stores
	core.Notes = memory.NewNoteRepository(storage, sysLogger)
	core.Notes.Load(ctx)
	core.Sessions = memory.NewSessionRepository(storage, personas, sysLogger)
	if err := core.Sessions.Load(ctx); err != nil {
		core.Close()
		return nil, fmt.Errorf("load sessions: %w", err)
	}

	// 6. Services
	core.ChatbotService = service.NewChatbotService(core.Sessions, core.Notes, personas, assembler, gw, eventPublisher, exchanges, tracker, sysLogger)
	core.NoteService = service.NewNoteService(core.Notes, personas, assembler, gw, eventPublisher, sysLogger)
	core.CompletionService = service.NewCompletionService(assembler, gw, exchanges, sysLogger)
	core.ConsumerService = service.NewConsumerService(pubSub, cfg.Events.ExchangeTopicName, tracker, sysLogger)

	return core, nil
}

// Close releases storage and bus connections.
func (c *Core) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.IsProduction())

	core, err := NewCore(ctx, cfg, sysLogger)
	if err != nil {
		return nil, err
	}

	return &Container{
		Core:                 core,
		CompletionController: controller.NewCompletionController(core.CompletionService),
		PersonaController:    controller.NewPersonaController(core.Personas),
		NoteController:       controller.NewNoteController(core.NoteService),
		ChatbotController:    controller.NewChatbotController(core.ChatbotService),
	}, nil
}

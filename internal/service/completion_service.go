package service

import (
	"context"
	"strings"

	"ai-brain-be/internal/constant"
	"ai-brain-be/internal/dto"
	"ai-brain-be/internal/pkg/logger"
	"ai-brain-be/pkg/ai/gateway"
	"ai-brain-be/pkg/rag/prompt"
)

// ICompletionService serves the stateless endpoints where the client owns the
// conversation.
type ICompletionService interface {
	Chat(ctx context.Context, request *dto.ChatCompletionRequest) (*dto.ChatCompletionResponse, error)
	AnalyzeNotes(ctx context.Context, request *dto.NoteAnalysisRequest) (*dto.NoteAnalysisResponse, error)
}

type completionService struct {
	assembler *prompt.Assembler
	gateway   *gateway.Gateway
	exchanges IPublisherService
	logger    logger.ILogger
}

func NewCompletionService(assembler *prompt.Assembler, gw *gateway.Gateway, exchanges IPublisherService, log logger.ILogger) ICompletionService {
	return &completionService{
		assembler: assembler,
		gateway:   gw,
		exchanges: exchanges,
		logger:    log,
	}
}

func (c *completionService) Chat(ctx context.Context, request *dto.ChatCompletionRequest) (*dto.ChatCompletionResponse, error) {
	if err := gateway.Validate(request.Messages); err != nil {
		return nil, err
	}

	payload := c.assembler.ForMessages(request.BrainId, request.Messages)
	completion, err := c.gateway.Complete(ctx, gateway.Request{
		Messages:    payload.Messages,
		PersonaName: payload.Persona.DisplayName,
	})

	publishExchange(ctx, c.exchanges, c.logger, newExchangeMessage("", payload.Persona, completion, err))

	if err != nil {
		return nil, err
	}
	return &dto.ChatCompletionResponse{Reply: completion.Text, BrainName: completion.SourcePersonaName}, nil
}

func (c *completionService) AnalyzeNotes(ctx context.Context, request *dto.NoteAnalysisRequest) (*dto.NoteAnalysisResponse, error) {
	if strings.TrimSpace(request.Prompt) == "" {
		return nil, gateway.NewValidationError(constant.ErrMessagePromptMissing)
	}

	payload := c.assembler.ForNoteAnalysis(request.Prompt)
	completion, err := c.gateway.Complete(ctx, gateway.Request{
		Messages:    payload.Messages,
		PersonaName: payload.Persona.DisplayName,
	})
	if err != nil {
		return nil, err
	}
	return &dto.NoteAnalysisResponse{Result: completion.Text}, nil
}

// Package gateway is the single network hop to the completion provider. It
// validates input, issues exactly one request, and normalizes every outcome
// into either a Completion or a *gateway.Error with a user-safe message.
package gateway

import (
	"context"
	"fmt"

	"ai-brain-be/internal/constant"
	"ai-brain-be/internal/entity"
	"ai-brain-be/internal/pkg/logger"
	"ai-brain-be/pkg/llm"
)

const module = "completion_gateway"

type Request struct {
	Messages []llm.Message
	// PersonaName is reported back as the reply's source.
	PersonaName string
}

type Completion struct {
	Text              string
	SourcePersonaName string
	// Intercepted is set when a content-policy rejection was replaced by the
	// safety notice.
	Intercepted bool
}

type Gateway struct {
	provider llm.LLMProvider
	model    string
	logger   logger.ILogger
}

func New(provider llm.LLMProvider, model string, log logger.ILogger) *Gateway {
	if model == "" {
		model = constant.DefaultCompletionModel
	}
	return &Gateway{provider: provider, model: model, logger: log}
}

func (g *Gateway) Model() string {
	return g.model
}

// Validate rejects input that must never reach the provider.
func Validate(messages []llm.Message) error {
	if len(messages) == 0 {
		return NewValidationError(constant.ErrMessageMessagesMissing)
	}
	for i, m := range messages {
		if !entity.Role(m.Role).Valid() {
			return NewValidationError(fmt.Sprintf("Message %d has an invalid role %q.", i, m.Role))
		}
	}
	return nil
}

func (g *Gateway) Complete(ctx context.Context, req Request) (Completion, error) {
	if err := Validate(req.Messages); err != nil {
		return Completion{}, err
	}

	reply, err := g.provider.Chat(ctx, req.Messages, llm.WithModel(g.model))
	if err != nil {
		kind := Classify(err)
		if kind == KindContentPolicy {
			g.logger.Warn(module, "Provider rejected content, returning safety notice", map[string]interface{}{
				"persona": req.PersonaName,
				"error":   err.Error(),
			})
			return Completion{
				Text:              constant.SafetyNotice,
				SourcePersonaName: constant.SafetyPersonaName,
				Intercepted:       true,
			}, nil
		}

		g.logger.Error(module, "Completion request failed", map[string]interface{}{
			"persona": req.PersonaName,
			"kind":    kind.String(),
			"error":   err,
		})
		return Completion{}, &Error{Kind: kind, Message: userMessage(kind), Err: err}
	}

	if reply == "" {
		reply = constant.NoResponseFallback
	}
	return Completion{Text: reply, SourcePersonaName: req.PersonaName}, nil
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"ai-brain-be/internal/dto"
	"ai-brain-be/internal/entity"
	"ai-brain-be/internal/pkg/logger"
	"ai-brain-be/pkg/ai/gateway"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPublisherService interface {
	PublishChatExchange(ctx context.Context, msg dto.ChatExchangeMessage) error
}

type publisherService struct {
	pubSub    *gochannel.GoChannel
	topicName string
}

func NewPublisherService(pubSub *gochannel.GoChannel, topicName string) IPublisherService {
	return &publisherService{
		pubSub:    pubSub,
		topicName: topicName,
	}
}

func (ps *publisherService) PublishChatExchange(ctx context.Context, msg dto.ChatExchangeMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	m := message.NewMessage(watermill.NewUUID(), payload)
	m.SetContext(ctx)
	return ps.pubSub.Publish(ps.topicName, m)
}

func newExchangeMessage(sessionId string, p entity.Persona, completion gateway.Completion, cause error) dto.ChatExchangeMessage {
	msg := dto.ChatExchangeMessage{
		SessionId:   sessionId,
		PersonaId:   p.Id,
		PersonaName: p.DisplayName,
		Outcome:     dto.ExchangeOutcomeReply,
		OccurredAt:  time.Now().UTC(),
	}

	var gatewayErr *gateway.Error
	switch {
	case errors.As(cause, &gatewayErr):
		msg.Outcome = dto.ExchangeOutcomeError
		msg.ErrorKind = gatewayErr.Kind.String()
	case cause != nil:
		msg.Outcome = dto.ExchangeOutcomeError
		msg.ErrorKind = gateway.KindUnknown.String()
	case completion.Intercepted:
		msg.Outcome = dto.ExchangeOutcomeIntercepted
	}
	return msg
}

// publishExchange feeds usage accounting; failures are logged and dropped.
func publishExchange(ctx context.Context, publisher IPublisherService, log logger.ILogger, msg dto.ChatExchangeMessage) {
	if publisher == nil {
		return
	}
	if err := publisher.PublishChatExchange(ctx, msg); err != nil {
		log.Warn("PUBLISHER", "Failed to publish chat exchange", map[string]interface{}{
			"persona_id": msg.PersonaId,
			"error":      err.Error(),
		})
	}
}

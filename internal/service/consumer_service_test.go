package service

import (
	"context"
	"testing"
	"time"

	"ai-brain-be/internal/dto"
	"ai-brain-be/internal/pkg/logger"
	"ai-brain-be/pkg/usage"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExchangeFlowsFromPublisherToTracker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	tracker := usage.NewTracker()
	consumer := NewConsumerService(pubSub, "chat_exchange", tracker, logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService(pubSub, "chat_exchange")
	require.NoError(t, publisher.PublishChatExchange(ctx, dto.ChatExchangeMessage{
		PersonaId:   "therapist",
		PersonaName: "Therapist Brain",
		Outcome:     dto.ExchangeOutcomeReply,
		OccurredAt:  time.Now().UTC(),
	}))
	// Malformed payloads are acked and skipped.
	require.NoError(t, pubSub.Publish("chat_exchange", message.NewMessage(watermill.NewUUID(), []byte("not json"))))
	require.NoError(t, publisher.PublishChatExchange(ctx, dto.ChatExchangeMessage{
		PersonaId: "therapist",
		Outcome:   dto.ExchangeOutcomeError,
	}))

	require.Eventually(t, func() bool {
		snapshot := tracker.Snapshot()
		return len(snapshot) == 1 && snapshot[0].Exchanges == 2
	}, time.Second, 5*time.Millisecond)

	snapshot := tracker.Snapshot()
	assert.Equal(t, "Therapist Brain", snapshot[0].PersonaName)
	assert.Equal(t, 1, snapshot[0].Errors)
}

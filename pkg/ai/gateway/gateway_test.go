package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"ai-brain-be/internal/constant"
	"ai-brain-be/internal/pkg/logger"
	"ai-brain-be/pkg/llm"
	"ai-brain-be/pkg/llm/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(script ...mock.Response) (*Gateway, *mock.Provider) {
	p := mock.NewProvider(script...)
	return New(p, "", logger.NewNopLogger()), p
}

var hello = []llm.Message{
	{Role: "system", Content: "be brief"},
	{Role: "user", Content: "hello"},
}

func TestCompleteSuccess(t *testing.T) {
	g, p := newTestGateway(mock.Response{Text: "hi!"})

	got, err := g.Complete(context.Background(), Request{Messages: hello, PersonaName: "Business Brain"})
	require.NoError(t, err)
	assert.Equal(t, Completion{Text: "hi!", SourcePersonaName: "Business Brain"}, got)

	require.Len(t, p.Calls(), 1)
	assert.Equal(t, hello, p.Calls()[0])
	assert.Equal(t, constant.DefaultCompletionModel, p.LastOptions().Model)
}

func TestCompleteEmptyReplyUsesFallback(t *testing.T) {
	g, _ := newTestGateway(mock.Response{Text: ""})

	got, err := g.Complete(context.Background(), Request{Messages: hello, PersonaName: "My AI Brain"})
	require.NoError(t, err)
	assert.Equal(t, constant.NoResponseFallback, got.Text)
}

func TestCompleteValidationNeverCallsProvider(t *testing.T) {
	tests := []struct {
		name     string
		messages []llm.Message
	}{
		{name: "nil", messages: nil},
		{name: "empty", messages: []llm.Message{}},
		{name: "bad role", messages: []llm.Message{{Role: "model", Content: "x"}}},
		{name: "missing role", messages: []llm.Message{{Role: "user", Content: "a"}, {Content: "b"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, p := newTestGateway()
			_, err := g.Complete(context.Background(), Request{Messages: tt.messages})
			assert.ErrorIs(t, err, ErrValidation)
			assert.Empty(t, p.Calls())
		})
	}
}

func TestCompleteNormalizesFailures(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    error
		message string
	}{
		{
			name:    "rate limited",
			err:     &llm.ProviderError{StatusCode: http.StatusTooManyRequests, Message: "raw provider text"},
			want:    ErrRateLimited,
			message: constant.ErrMessageRateLimited,
		},
		{
			name:    "payload too large",
			err:     &llm.ProviderError{StatusCode: http.StatusRequestEntityTooLarge},
			want:    ErrPayloadTooLarge,
			message: constant.ErrMessagePayloadTooLarge,
		},
		{
			name:    "context length code",
			err:     &llm.ProviderError{StatusCode: http.StatusBadRequest, Type: "invalid_request_error", Code: "context_length_exceeded"},
			want:    ErrPayloadTooLarge,
			message: constant.ErrMessagePayloadTooLarge,
		},
		{
			name:    "server error",
			err:     &llm.ProviderError{StatusCode: http.StatusInternalServerError, Message: "stack trace here"},
			want:    ErrUnknown,
			message: constant.ErrMessageInternal,
		},
		{
			name:    "network failure",
			err:     fmt.Errorf("request failed: %w", errors.New("connection refused")),
			want:    ErrUnknown,
			message: constant.ErrMessageInternal,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newTestGateway(mock.Response{Err: tt.err})

			_, err := g.Complete(context.Background(), Request{Messages: hello})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.message, err.Error())
			assert.NotContains(t, err.Error(), "stack trace")
			assert.ErrorIs(t, err, tt.err, "cause stays reachable for logging")
		})
	}
}

func TestCompleteContentPolicyBecomesSafetyReply(t *testing.T) {
	g, _ := newTestGateway(mock.Response{Err: &llm.ProviderError{
		StatusCode: http.StatusBadRequest,
		Type:       "invalid_request_error",
		Message:    "content flagged",
	}})

	got, err := g.Complete(context.Background(), Request{Messages: hello, PersonaName: "Therapist Brain"})
	require.NoError(t, err)
	assert.Equal(t, constant.SafetyPersonaName, got.SourcePersonaName)
	assert.Equal(t, constant.SafetyNotice, got.Text)
	assert.NotEmpty(t, got.Text)
	assert.True(t, got.Intercepted)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, KindContentPolicy, Classify(&llm.ProviderError{StatusCode: 400, Code: "content_filter"}))
	assert.Equal(t, KindUnknown, Classify(&llm.ProviderError{StatusCode: 400, Type: "other"}))
	assert.Equal(t, KindRateLimited, Classify(&llm.ProviderError{StatusCode: 400, Code: "rate_limit_exceeded"}))
	assert.Equal(t, KindUnknown, Classify(context.DeadlineExceeded))
}

func TestErrorSentinelsDoNotCrossMatch(t *testing.T) {
	err := &Error{Kind: KindRateLimited, Message: "x"}
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.NotErrorIs(t, err, ErrUnknown)
	assert.NotErrorIs(t, err, ErrValidation)
}

package gateway

import (
	"errors"
	"net/http"
	"strings"

	"ai-brain-be/internal/constant"
	"ai-brain-be/pkg/llm"
)

type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindRateLimited
	KindPayloadTooLarge
	// KindContentPolicy never reaches callers; Complete turns it into a
	// safety reply.
	KindContentPolicy
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindRateLimited:
		return "rate_limited"
	case KindPayloadTooLarge:
		return "payload_too_large"
	case KindContentPolicy:
		return "content_policy"
	default:
		return "unknown"
	}
}

// Error is the only error type Complete returns. Error() is safe to show to
// the user; the provider's own error is kept for logging via Unwrap.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind-only sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

var (
	ErrValidation      = &Error{Kind: KindValidation}
	ErrRateLimited     = &Error{Kind: KindRateLimited}
	ErrPayloadTooLarge = &Error{Kind: KindPayloadTooLarge}
	ErrUnknown         = &Error{Kind: KindUnknown}
)

func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Classify maps a provider failure onto the closed taxonomy.
func Classify(err error) ErrorKind {
	var perr *llm.ProviderError
	if !errors.As(err, &perr) {
		return KindUnknown
	}

	code := strings.ToLower(perr.Code)
	switch {
	case perr.StatusCode == http.StatusTooManyRequests || code == "rate_limit_exceeded":
		return KindRateLimited
	case perr.StatusCode == http.StatusRequestEntityTooLarge || code == "context_length_exceeded":
		return KindPayloadTooLarge
	case perr.StatusCode == http.StatusBadRequest &&
		(perr.Type == "invalid_request_error" || strings.Contains(code, "content_policy") || strings.Contains(code, "content_filter")):
		return KindContentPolicy
	default:
		return KindUnknown
	}
}

func userMessage(kind ErrorKind) string {
	switch kind {
	case KindRateLimited:
		return constant.ErrMessageRateLimited
	case KindPayloadTooLarge:
		return constant.ErrMessagePayloadTooLarge
	default:
		return constant.ErrMessageInternal
	}
}

package dto

import "time"

const (
	ExchangeOutcomeReply       = "reply"
	ExchangeOutcomeError       = "error"
	ExchangeOutcomeIntercepted = "intercepted"
)

// ChatExchangeMessage is published on the in-process bus after every chat
// attempt that reached the completion gateway.
type ChatExchangeMessage struct {
	SessionId   string    `json:"session_id,omitempty"`
	PersonaId   string    `json:"persona_id"`
	PersonaName string    `json:"persona_name"`
	Outcome     string    `json:"outcome"`
	ErrorKind   string    `json:"error_kind,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type PersonaUsageResponse struct {
	PersonaId     string     `json:"persona_id"`
	PersonaName   string     `json:"persona_name"`
	Exchanges     int        `json:"exchanges"`
	Errors        int        `json:"errors"`
	Interceptions int        `json:"interceptions"`
	LastExchange  *time.Time `json:"last_exchange,omitempty"`
}

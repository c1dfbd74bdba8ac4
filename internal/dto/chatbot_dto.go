package dto

type CreateSessionRequest struct {
	PersonaId string `json:"persona_id"`
}

type MessageDTO struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	BrainName string `json:"brain_name,omitempty"`
}

type SessionSummaryResponse struct {
	Id           string `json:"id"`
	Title        string `json:"title"`
	PersonaId    string `json:"persona_id"`
	PersonaName  string `json:"persona_name"`
	MessageCount int    `json:"message_count"`
	Current      bool   `json:"current"`
}

type SessionResponse struct {
	Id          string       `json:"id"`
	Title       string       `json:"title"`
	PersonaId   string       `json:"persona_id"`
	PersonaName string       `json:"persona_name"`
	Current     bool         `json:"current"`
	Loading     bool         `json:"loading"`
	Messages    []MessageDTO `json:"messages"`
}

type SendChatRequest struct {
	// Empty means the current session.
	ChatSessionId string `json:"chat_session_id"`
	Chat          string `json:"chat" validate:"required"`
	// Nil falls back to note mode for sessions of the default persona.
	UseNotes *bool `json:"use_notes,omitempty"`
}

type SendChatResponse struct {
	ChatSessionId string      `json:"chat_session_id"`
	Sent          MessageDTO  `json:"sent"`
	Reply         *MessageDTO `json:"reply,omitempty"`
	// Error is display-ready and set when no reply was produced.
	Error string `json:"error,omitempty"`
}

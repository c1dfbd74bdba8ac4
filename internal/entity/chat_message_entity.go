package entity

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Valid reports whether r is one of the roles the completion API accepts.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// ChatMessage is immutable once appended to a session.
// PersonaName is set on assistant messages only and records which persona
// produced the reply, independent of the session's persona.
type ChatMessage struct {
	Role        Role   `json:"role"`
	Content     string `json:"content"`
	PersonaName string `json:"brainName,omitempty"`
}

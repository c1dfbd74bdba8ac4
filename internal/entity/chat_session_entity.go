package entity

// ChatSession is one persona-bound conversation thread. PersonaId is fixed at
// creation; switching persona means starting a new session.
type ChatSession struct {
	Id        string        `json:"id"`
	Title     string        `json:"title"`
	PersonaId string        `json:"personaId"`
	Messages  []ChatMessage `json:"messages"`
}

// Clone returns a copy whose message slice does not alias the original.
func (s *ChatSession) Clone() *ChatSession {
	if s == nil {
		return nil
	}
	out := *s
	out.Messages = make([]ChatMessage, len(s.Messages))
	copy(out.Messages, s.Messages)
	return &out
}

package history

import (
	"ai-brain-be/internal/constant"
	"ai-brain-be/internal/entity"
	"ai-brain-be/pkg/llm"
)

// Window keeps the most recent size messages, dropping the oldest whole
// messages first. size <= 0 selects the default window.
func Window(messages []llm.Message, size int) []llm.Message {
	if size <= 0 {
		size = constant.DefaultContextWindowSize
	}
	if len(messages) > size {
		messages = messages[len(messages)-size:]
	}
	out := make([]llm.Message, len(messages))
	copy(out, messages)
	return out
}

// FromSession converts stored session history into provider messages. Stored
// system messages are skipped; the persona prompt is the only system message
// sent upstream.
func FromSession(messages []entity.ChatMessage) []llm.Message {
	out := make([]llm.Message, 0, len(messages))
	for _, m := range messages {
		if m.Role == entity.RoleSystem {
			continue
		}
		out = append(out, llm.Message{Role: string(m.Role), Content: m.Content})
	}
	return out
}

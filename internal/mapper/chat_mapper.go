package mapper

import (
	"ai-brain-be/internal/dto"
	"ai-brain-be/internal/entity"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) MessageToDTO(msg entity.ChatMessage) dto.MessageDTO {
	return dto.MessageDTO{
		Role:      string(msg.Role),
		Content:   msg.Content,
		BrainName: msg.PersonaName,
	}
}

func (m *ChatMapper) SessionToResponse(s *entity.ChatSession, personaName string, isCurrent, isLoading bool) *dto.SessionResponse {
	if s == nil {
		return nil
	}

	messages := make([]dto.MessageDTO, 0, len(s.Messages))
	for _, msg := range s.Messages {
		messages = append(messages, m.MessageToDTO(msg))
	}

	return &dto.SessionResponse{
		Id:          s.Id,
		Title:       s.Title,
		PersonaId:   s.PersonaId,
		PersonaName: personaName,
		Current:     isCurrent,
		Loading:     isLoading,
		Messages:    messages,
	}
}

func (m *ChatMapper) SessionToSummary(s *entity.ChatSession, personaName string, isCurrent bool) *dto.SessionSummaryResponse {
	if s == nil {
		return nil
	}

	return &dto.SessionSummaryResponse{
		Id:           s.Id,
		Title:        s.Title,
		PersonaId:    s.PersonaId,
		PersonaName:  personaName,
		MessageCount: len(s.Messages),
		Current:      isCurrent,
	}
}

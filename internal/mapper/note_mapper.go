package mapper

import (
	"ai-brain-be/internal/dto"
	"ai-brain-be/internal/entity"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

// ToResponse pairs a note with its display index (0 is the newest).
func (m *NoteMapper) ToResponse(displayIndex int, n entity.Note) *dto.NoteResponse {
	return &dto.NoteResponse{
		Index:     displayIndex,
		Text:      n.Text,
		CreatedAt: n.CreatedAt,
	}
}

func (m *NoteMapper) ToResponses(notes []entity.Note) []*dto.NoteResponse {
	res := make([]*dto.NoteResponse, 0, len(notes))
	for i, n := range notes {
		res = append(res, m.ToResponse(i, n))
	}
	return res
}

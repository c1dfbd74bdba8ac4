package dto

import "time"

type CreateNoteRequest struct {
	Text string `json:"text" validate:"required"`
}

type NoteResponse struct {
	Index     int       `json:"index"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type AskNotesRequest struct {
	Question string `json:"question" validate:"required"`
}

type AskNotesResponse struct {
	Answer    string `json:"answer"`
	BrainName string `json:"brain_name"`
}

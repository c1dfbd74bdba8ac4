package dto

import "ai-brain-be/pkg/llm"

// ChatCompletionRequest carries a client-held conversation.
type ChatCompletionRequest struct {
	Messages []llm.Message `json:"messages"`
	BrainId  string        `json:"brainId"`
}

type ChatCompletionResponse struct {
	Reply     string `json:"reply"`
	BrainName string `json:"brainName"`
}

type NoteAnalysisRequest struct {
	Prompt string `json:"prompt"`
}

type NoteAnalysisResponse struct {
	Result string `json:"result"`
}

type ErrorBody struct {
	Error string `json:"error"`
}

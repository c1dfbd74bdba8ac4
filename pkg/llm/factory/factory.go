package factory

import (
	"fmt"

	"ai-brain-be/pkg/llm"
	"ai-brain-be/pkg/llm/groq"
	"ai-brain-be/pkg/llm/mock"
	"ai-brain-be/pkg/llm/ollama"
)

func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "groq", "openai":
		if apiKey == "" {
			return nil, fmt.Errorf("%s provider requires an API key", providerType)
		}
		return groq.NewGroqProvider(apiKey, baseURL, modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "mock":
		return mock.NewProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}

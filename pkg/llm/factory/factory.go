package factory

import (
	"fmt"

	"ai-billing-be/pkg/llm"
	"ai-billing-be/pkg/llm/gemini"
	"ai-billing-be/pkg/llm/ollama"
	"ai-billing-be/pkg/llm/stub"
)

// NewLLMProvider selects the configured language-understanding backend.
func NewLLMProvider(providerName, modelName, ollamaBaseURL, geminiApiKey string) (llm.Provider, error) {
	switch providerName {
	case "gemini":
		if geminiApiKey == "" {
			return nil, fmt.Errorf("gemini provider selected but no API key configured")
		}
		return gemini.NewGeminiProvider(geminiApiKey, modelName), nil
	case "ollama":
		return ollama.NewOllamaProvider(ollamaBaseURL, modelName), nil
	case "stub", "":
		return stub.NewStubProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerName)
	}
}

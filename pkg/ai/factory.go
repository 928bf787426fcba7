package ai

import "fmt"

// Config holds AI provider configuration
type Config struct {
	Provider ProviderType // "gemini" or "ollama"

	// Gemini config
	GeminiAPIKey string
	GeminiModel  string // e.g., "gemini-2.5-flash"

	// Ollama config
	OllamaBaseURL string // e.g., "http://localhost:11434"
	OllamaModel   string // e.g., "llama3", "mistral"
}

// NewChatService creates a ChatService based on the config
// This is the factory function - switch AI provider by changing config.Provider
func NewChatService(cfg Config) (ChatService, error) {
	switch cfg.Provider {
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for Gemini provider")
		}
		return NewGeminiChatService(cfg.GeminiAPIKey, cfg.GeminiModel), nil

	case ProviderOllama:
		return NewOllamaChatService(cfg.OllamaBaseURL, cfg.OllamaModel), nil

	default:
		// Default to Gemini if API key is available, otherwise Ollama
		if cfg.GeminiAPIKey != "" {
			return NewGeminiChatService(cfg.GeminiAPIKey, cfg.GeminiModel), nil
		}
		return NewOllamaChatService(cfg.OllamaBaseURL, cfg.OllamaModel), nil
	}
}

package ai

import "context"

// Message is one turn of a chat conversation.
type Message struct {
	Role    string `json:"role"` // "user", "assistant" or "system"
	Content string `json:"content"`
}

// Tool is a function the model may call during generation. Parameters is
// a JSON-schema object describing the arguments. Handlers always return a
// plain string: the model consumes tool results as text, so failures are
// reported in-band, never raised.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
	Handler     func(ctx context.Context, args map[string]interface{}) string
}

// ChatService is the interface for streaming chat completion with
// tool-calling. Implement this interface to add new AI providers
// (Gemini, Ollama, OpenAI, etc.)
type ChatService interface {
	// StreamChat runs the conversation, invoking tool handlers as the
	// model requests them, and delivers generated text through onToken as
	// it arrives. Returning an error from onToken stops the stream.
	StreamChat(ctx context.Context, messages []Message, tools []Tool, onToken func(token string) error) error
}

// ProviderType represents the AI provider type
type ProviderType string

const (
	ProviderGemini ProviderType = "gemini"
	ProviderOllama ProviderType = "ollama"
	ProviderAuto   ProviderType = "auto"
)

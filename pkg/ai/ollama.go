package ai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// OllamaChatService implements ChatService using an Ollama local LLM
type OllamaChatService struct {
	baseURL string
	model   string
}

// NewOllamaChatService creates a new Ollama chat service
func NewOllamaChatService(baseURL, model string) *OllamaChatService {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3"
	}
	return &OllamaChatService{baseURL: baseURL, model: model}
}

// ollamaMessage is one turn in the Ollama chat wire format.
type ollamaMessage struct {
	Role      string           `json:"role"`
	Content   string           `json:"content"`
	ToolCalls []ollamaToolCall `json:"tool_calls,omitempty"`
}

type ollamaToolCall struct {
	Function struct {
		Name      string                 `json:"name"`
		Arguments map[string]interface{} `json:"arguments"`
	} `json:"function"`
}

// StreamChat implements ChatService
func (o *OllamaChatService) StreamChat(ctx context.Context, messages []Message, tools []Tool, onToken func(string) error) error {
	wire := make([]ollamaMessage, 0, len(messages))
	for _, m := range messages {
		wire = append(wire, ollamaMessage{Role: m.Role, Content: m.Content})
	}

	toolHandlers := make(map[string]Tool, len(tools))
	var declarations []map[string]interface{}
	for _, t := range tools {
		toolHandlers[t.Name] = t
		declarations = append(declarations, map[string]interface{}{
			"type": "function",
			"function": map[string]interface{}{
				"name":        t.Name,
				"description": t.Description,
				"parameters":  t.Parameters,
			},
		})
	}

	for round := 0; round <= maxToolRounds; round++ {
		calls, err := o.streamOnce(ctx, wire, declarations, onToken)
		if err != nil {
			return err
		}
		if len(calls) == 0 {
			return nil
		}

		wire = append(wire, ollamaMessage{Role: "assistant", ToolCalls: calls})
		for _, call := range calls {
			tool, ok := toolHandlers[call.Function.Name]
			result := fmt.Sprintf("unknown tool: %s", call.Function.Name)
			if ok {
				result = tool.Handler(ctx, call.Function.Arguments)
			}
			wire = append(wire, ollamaMessage{Role: "tool", Content: result})
		}
	}

	return fmt.Errorf("tool-call limit of %d rounds exceeded", maxToolRounds)
}

func (o *OllamaChatService) streamOnce(ctx context.Context, messages []ollamaMessage, declarations []map[string]interface{}, onToken func(string) error) ([]ollamaToolCall, error) {
	url := o.baseURL + "/api/chat"

	payload := map[string]interface{}{
		"model":    o.model,
		"messages": messages,
		"stream":   true,
	}
	if len(declarations) > 0 {
		payload["tools"] = declarations
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ollama API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var calls []ollamaToolCall

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var chunk struct {
			Message ollamaMessage `json:"message"`
			Done    bool          `json:"done"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &chunk); err != nil {
			continue
		}
		if len(chunk.Message.ToolCalls) > 0 {
			calls = append(calls, chunk.Message.ToolCalls...)
		}
		if chunk.Message.Content != "" {
			if err := onToken(chunk.Message.Content); err != nil {
				return nil, err
			}
		}
		if chunk.Done {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stream: %w", err)
	}

	return calls, nil
}

package ai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxToolRounds bounds the tool-call loop so a misbehaving model cannot
// keep requesting calls forever.
const maxToolRounds = 4

// GeminiChatService implements ChatService using the Gemini streaming API
type GeminiChatService struct {
	apiKey string
	model  string
}

// NewGeminiChatService creates a new Gemini chat service
func NewGeminiChatService(apiKey, model string) *GeminiChatService {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiChatService{apiKey: apiKey, model: model}
}

// geminiPart is one content part in a Gemini request or response.
type geminiPart struct {
	Text             string                 `json:"text,omitempty"`
	FunctionCall     *geminiFunctionCall    `json:"functionCall,omitempty"`
	FunctionResponse map[string]interface{} `json:"functionResponse,omitempty"`
}

type geminiFunctionCall struct {
	Name string                 `json:"name"`
	Args map[string]interface{} `json:"args"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

// StreamChat implements ChatService
func (g *GeminiChatService) StreamChat(ctx context.Context, messages []Message, tools []Tool, onToken func(string) error) error {
	contents, system := toGeminiContents(messages)

	toolHandlers := make(map[string]Tool, len(tools))
	var declarations []map[string]interface{}
	for _, t := range tools {
		toolHandlers[t.Name] = t
		declarations = append(declarations, map[string]interface{}{
			"name":        t.Name,
			"description": t.Description,
			"parameters":  t.Parameters,
		})
	}

	for round := 0; round <= maxToolRounds; round++ {
		calls, err := g.streamOnce(ctx, contents, system, declarations, onToken)
		if err != nil {
			return err
		}
		if len(calls) == 0 {
			return nil
		}

		// Feed each tool result back and let the model continue.
		var responseParts []geminiPart
		for _, call := range calls {
			tool, ok := toolHandlers[call.Name]
			result := fmt.Sprintf("unknown tool: %s", call.Name)
			if ok {
				result = tool.Handler(ctx, call.Args)
			}
			responseParts = append(responseParts, geminiPart{
				FunctionResponse: map[string]interface{}{
					"name":     call.Name,
					"response": map[string]interface{}{"result": result},
				},
			})
		}

		var callParts []geminiPart
		for i := range calls {
			callParts = append(callParts, geminiPart{FunctionCall: &calls[i]})
		}
		contents = append(contents,
			geminiContent{Role: "model", Parts: callParts},
			geminiContent{Role: "user", Parts: responseParts},
		)
	}

	return fmt.Errorf("tool-call limit of %d rounds exceeded", maxToolRounds)
}

// streamOnce performs one streaming generate call, forwarding text tokens
// and collecting any function calls the model requests.
func (g *GeminiChatService) streamOnce(ctx context.Context, contents []geminiContent, system string, declarations []map[string]interface{}, onToken func(string) error) ([]geminiFunctionCall, error) {
	url := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:streamGenerateContent?alt=sse&key=%s", g.model, g.apiKey)

	payload := map[string]interface{}{
		"contents": contents,
	}
	if system != "" {
		payload["systemInstruction"] = map[string]interface{}{
			"parts": []map[string]string{{"text": system}},
		}
	}
	if len(declarations) > 0 {
		payload["tools"] = []map[string]interface{}{
			{"functionDeclarations": declarations},
		}
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
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("gemini API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var calls []geminiFunctionCall

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" || data == "[DONE]" {
			continue
		}

		var chunk struct {
			Candidates []struct {
				Content struct {
					Parts []geminiPart `json:"parts"`
				} `json:"content"`
			} `json:"candidates"`
		}
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			continue
		}
		for _, cand := range chunk.Candidates {
			for _, part := range cand.Content.Parts {
				if part.FunctionCall != nil {
					calls = append(calls, *part.FunctionCall)
				}
				if part.Text != "" {
					if err := onToken(part.Text); err != nil {
						return nil, err
					}
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stream: %w", err)
	}

	return calls, nil
}

// toGeminiContents maps chat messages to Gemini roles, pulling system
// messages out into the systemInstruction field.
func toGeminiContents(messages []Message) ([]geminiContent, string) {
	var contents []geminiContent
	var system []string
	for _, m := range messages {
		switch m.Role {
		case "system":
			system = append(system, m.Content)
		case "assistant":
			contents = append(contents, geminiContent{Role: "model", Parts: []geminiPart{{Text: m.Content}}})
		default:
			contents = append(contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: m.Content}}})
		}
	}
	return contents, strings.Join(system, "\n")
}

package usecase

import (
	"context"

	"lifeos-backend/pkg/ai"
)

// ChatUsecase is the proxy between the client and the LLM provider. It
// injects the assistant persona and the calendar tools, then relays the
// provider's token stream.
type ChatUsecase interface {
	StreamChat(ctx context.Context, userID string, messages []ai.Message, onToken func(token string) error) error
}

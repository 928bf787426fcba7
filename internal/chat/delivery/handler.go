package delivery

import (
	"log"
	"net/http"

	"lifeos-backend/internal/chat/usecase"
	"lifeos-backend/pkg/ai"

	"github.com/gin-gonic/gin"
)

// ChatHandler handles streaming chat HTTP requests
type ChatHandler struct {
	chatUsecase usecase.ChatUsecase
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chatUsecase usecase.ChatUsecase) *ChatHandler {
	return &ChatHandler{
		chatUsecase: chatUsecase,
	}
}

// ChatRequest represents the request body for a chat turn
type ChatRequest struct {
	Messages []ai.Message `json:"messages" binding:"required"`
}

// Chat streams the assistant's reply as plain text. Upstream failures are
// delivered in-band as text so the client rendering path stays uniform.
// POST /api/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	userID := c.GetString("userID")

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Header("Cache-Control", "no-cache")
	c.Writer.WriteHeader(http.StatusOK)

	flusher, _ := c.Writer.(http.Flusher)
	wrote := false

	err := h.chatUsecase.StreamChat(c.Request.Context(), userID, req.Messages, func(token string) error {
		if _, err := c.Writer.WriteString(token); err != nil {
			return err
		}
		wrote = true
		if flusher != nil {
			flusher.Flush()
		}
		return nil
	})
	if err != nil {
		log.Printf("[ChatHandler] Stream error for user %s: %v", userID, err)
		if !wrote {
			c.Writer.WriteString("Sorry, the assistant is unavailable right now. Please try again in a moment.")
		}
	}
}

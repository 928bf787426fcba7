package delivery

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lifeos-backend/pkg/ai"

	"github.com/gin-gonic/gin"
)

type stubChatUsecase struct {
	tokens []string
	err    error
}

func (s *stubChatUsecase) StreamChat(ctx context.Context, userID string, messages []ai.Message, onToken func(string) error) error {
	for _, tok := range s.tokens {
		if err := onToken(tok); err != nil {
			return err
		}
	}
	return s.err
}

func doChat(t *testing.T, uc *stubChatUsecase, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewChatHandler(uc)
	router.POST("/api/chat", func(c *gin.Context) {
		c.Set("userID", "user-1")
		handler.Chat(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestChat_StreamsTokens(t *testing.T) {
	uc := &stubChatUsecase{tokens: []string{"Hel", "lo ", "there"}}
	w := doChat(t, uc, `{"messages":[{"role":"user","content":"hi"}]}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Body.String(); got != "Hello there" {
		t.Errorf("expected concatenated stream, got %q", got)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("expected text/plain stream, got %q", ct)
	}
}

// An upstream failure before the first token still answers 200 with a
// plain-text message, so the client rendering path stays uniform.
func TestChat_UpstreamFailureIsInBand(t *testing.T) {
	uc := &stubChatUsecase{err: errors.New("gemini API error (503): overloaded")}
	w := doChat(t, uc, `{"messages":[{"role":"user","content":"hi"}]}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 even on upstream failure, got %d", w.Code)
	}
	body := w.Body.String()
	if body == "" || strings.Contains(body, "503") {
		t.Errorf("expected a friendly in-band message, got %q", body)
	}
}

// A failure after streaming has started leaves the partial output alone.
func TestChat_MidStreamFailureKeepsPartialOutput(t *testing.T) {
	uc := &stubChatUsecase{tokens: []string{"partial answer"}, err: errors.New("connection reset")}
	w := doChat(t, uc, `{"messages":[{"role":"user","content":"hi"}]}`)

	if got := w.Body.String(); got != "partial answer" {
		t.Errorf("expected only the streamed tokens, got %q", got)
	}
}

func TestChat_RejectsMalformedBody(t *testing.T) {
	w := doChat(t, &stubChatUsecase{}, `{"messages": "nope"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed body, got %d", w.Code)
	}
}

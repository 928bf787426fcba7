package usecase

import (
	"context"
	"strings"
	"testing"

	authdomain "lifeos-backend/internal/auth/domain"
	eventrepo "lifeos-backend/internal/event/repository"
	eventusecase "lifeos-backend/internal/event/usecase"
	"lifeos-backend/pkg/ai"
)

const testUserID = "user-1"

// scriptedChatService calls a tool by name and emits the result as the
// response, standing in for a real model.
type scriptedChatService struct {
	callTool string
	callArgs map[string]interface{}

	gotMessages []ai.Message
	toolNames   []string
}

func (s *scriptedChatService) StreamChat(ctx context.Context, messages []ai.Message, tools []ai.Tool, onToken func(string) error) error {
	s.gotMessages = messages
	for _, t := range tools {
		s.toolNames = append(s.toolNames, t.Name)
	}
	if s.callTool == "" {
		return onToken("hello")
	}
	for _, t := range tools {
		if t.Name == s.callTool {
			return onToken(t.Handler(ctx, s.callArgs))
		}
	}
	return onToken("tool not offered")
}

type nilUserRepo struct{}

func (nilUserRepo) Create(*authdomain.User) error                          { return nil }
func (nilUserRepo) FindByEmail(string) (*authdomain.User, error)           { return nil, nil }
func (nilUserRepo) FindByID(string) (*authdomain.User, error)              { return nil, nil }
func (nilUserRepo) Update(*authdomain.User) error                          { return nil }
func (nilUserRepo) SaveRefreshToken(*authdomain.RefreshToken) error        { return nil }
func (nilUserRepo) FindRefreshToken(string) (*authdomain.RefreshToken, error) { return nil, nil }
func (nilUserRepo) DeleteRefreshToken(string) error                        { return nil }
func (nilUserRepo) DeleteRefreshTokensByUser(string) error                 { return nil }

func newFixture(svc *scriptedChatService) (ChatUsecase, eventusecase.EventUsecase) {
	events := eventusecase.NewEventUsecase(eventrepo.NewMemoryEventStore(), nilUserRepo{}, nil)
	return NewChatUsecase(svc, events), events
}

func collect(t *testing.T, uc ChatUsecase, userID string, msg string) string {
	t.Helper()
	var out strings.Builder
	err := uc.StreamChat(context.Background(), userID, []ai.Message{{Role: "user", Content: msg}}, func(token string) error {
		out.WriteString(token)
		return nil
	})
	if err != nil {
		t.Fatalf("StreamChat: %v", err)
	}
	return out.String()
}

func TestStreamChat_InjectsSystemPromptAndTools(t *testing.T) {
	svc := &scriptedChatService{}
	uc, _ := newFixture(svc)

	collect(t, uc, testUserID, "hi")

	if len(svc.gotMessages) == 0 || svc.gotMessages[0].Role != "system" {
		t.Fatal("system prompt must be the first message")
	}
	want := map[string]bool{"get_calendar_events": true, "create_calendar_event": true}
	for _, name := range svc.toolNames {
		delete(want, name)
	}
	if len(want) != 0 {
		t.Errorf("missing tools: %v", want)
	}
}

func TestGetCalendarEvents_Sentinels(t *testing.T) {
	svc := &scriptedChatService{callTool: "get_calendar_events", callArgs: map[string]interface{}{}}
	uc, _ := newFixture(svc)

	// No events yet: human-readable sentinel, not an empty result.
	if got := collect(t, uc, testUserID, "what's on?"); got != noEventsFound {
		t.Errorf("expected %q, got %q", noEventsFound, got)
	}

	// No user context: explicit authentication sentinel, still a string.
	if got := collect(t, uc, "", "what's on?"); got != notSignedIn {
		t.Errorf("expected %q, got %q", notSignedIn, got)
	}

	// Bad date: reported in-band.
	svc.callArgs = map[string]interface{}{"date": "next tuesday"}
	if got := collect(t, uc, testUserID, "what's on?"); !strings.Contains(got, "Invalid date") {
		t.Errorf("expected in-band date complaint, got %q", got)
	}
}

func TestGetCalendarEvents_ListsDay(t *testing.T) {
	svc := &scriptedChatService{callTool: "get_calendar_events", callArgs: map[string]interface{}{"date": "2026-09-01"}}
	uc, events := newFixture(svc)

	if _, err := events.CreateEvent(context.Background(), testUserID, eventusecase.CreateEventInput{
		Title: "Standup",
		Start: "2026-09-01T09:00:00+00:00",
		End:   "2026-09-01T09:15:00+00:00",
	}); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	got := collect(t, uc, testUserID, "what's on?")
	if !strings.Contains(got, "Standup") {
		t.Errorf("expected the day's events in the tool result, got %q", got)
	}
}

func TestCreateCalendarEvent_Tool(t *testing.T) {
	svc := &scriptedChatService{callTool: "create_calendar_event", callArgs: map[string]interface{}{
		"title": "Gym",
		"start": "2026-09-02T18:00:00Z",
		"end":   "2026-09-02T19:00:00Z",
	}}
	uc, events := newFixture(svc)

	got := collect(t, uc, testUserID, "book gym")
	if !strings.Contains(got, "Created event") || !strings.Contains(got, "Gym") {
		t.Errorf("expected confirmation string, got %q", got)
	}

	listed, err := events.ListEvents(testUserID)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(listed) != 1 || listed[0].Title != "Gym" {
		t.Fatalf("event not created through the usecase: %+v", listed)
	}
}

func TestCreateCalendarEvent_ErrorsStayInBand(t *testing.T) {
	svc := &scriptedChatService{callTool: "create_calendar_event", callArgs: map[string]interface{}{
		"title": "Gym",
		"start": "sometime",
		"end":   "later",
	}}
	uc, events := newFixture(svc)

	got := collect(t, uc, testUserID, "book gym")
	if !strings.Contains(got, "Could not create") {
		t.Errorf("tool failures must be returned as text, got %q", got)
	}

	listed, _ := events.ListEvents(testUserID)
	if len(listed) != 0 {
		t.Errorf("no event should exist after a failed tool call, got %d", len(listed))
	}
}

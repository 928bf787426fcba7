package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	eventdomain "lifeos-backend/internal/event/domain"
	eventusecase "lifeos-backend/internal/event/usecase"
	"lifeos-backend/pkg/ai"
)

const systemPrompt = `You are the LifeOS assistant, a friendly productivity coach. You help the user manage tasks, calendar events, habits and goals. Keep answers short and practical. Use the available tools to look up or create calendar events instead of guessing.`

// Sentinel strings returned to the model. Tool results are plain text by
// contract, so failures travel in-band instead of as errors.
const (
	noEventsFound   = "No events found."
	notSignedIn     = "The user is not signed in, so calendar data is unavailable."
	upcomingLimit   = 10
	toolDateLayout  = "2006-01-02"
	eventTimeLayout = "Mon Jan 2 15:04"
)

// chatUsecase implements ChatUsecase
type chatUsecase struct {
	chat   ai.ChatService
	events eventusecase.EventUsecase
}

// NewChatUsecase creates a new instance of chatUsecase
func NewChatUsecase(chat ai.ChatService, events eventusecase.EventUsecase) ChatUsecase {
	return &chatUsecase{chat: chat, events: events}
}

func (u *chatUsecase) StreamChat(ctx context.Context, userID string, messages []ai.Message, onToken func(string) error) error {
	withSystem := append([]ai.Message{{Role: "system", Content: systemPrompt}}, messages...)
	return u.chat.StreamChat(ctx, withSystem, u.tools(userID), onToken)
}

// tools builds the calendar tools bound to the requesting user.
func (u *chatUsecase) tools(userID string) []ai.Tool {
	return []ai.Tool{
		{
			Name:        "get_calendar_events",
			Description: "Look up the user's calendar events. Pass a date (YYYY-MM-DD) to get that day's events, or omit it for the next upcoming events.",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"date": map[string]interface{}{
						"type":        "string",
						"description": "Calendar day to list, formatted YYYY-MM-DD. Optional.",
					},
				},
			},
			Handler: func(ctx context.Context, args map[string]interface{}) string {
				return u.getCalendarEvents(userID, args)
			},
		},
		{
			Name:        "create_calendar_event",
			Description: "Create a calendar event for the user. Times are RFC3339 timestamps, e.g. 2026-09-01T10:00:00Z.",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"title":       map[string]interface{}{"type": "string"},
					"start":       map[string]interface{}{"type": "string", "description": "Start time, RFC3339"},
					"end":         map[string]interface{}{"type": "string", "description": "End time, RFC3339"},
					"description": map[string]interface{}{"type": "string"},
				},
				"required": []string{"title", "start", "end"},
			},
			Handler: func(ctx context.Context, args map[string]interface{}) string {
				return u.createCalendarEvent(ctx, userID, args)
			},
		},
	}
}

func (u *chatUsecase) getCalendarEvents(userID string, args map[string]interface{}) string {
	if userID == "" {
		return notSignedIn
	}

	var events []*eventdomain.CalendarEvent
	var err error

	if dateStr, _ := args["date"].(string); dateStr != "" {
		day, parseErr := time.ParseInLocation(toolDateLayout, dateStr, time.Local)
		if parseErr != nil {
			return fmt.Sprintf("Invalid date %q, expected YYYY-MM-DD.", dateStr)
		}
		events, err = u.events.EventsOnDay(userID, day)
	} else {
		events, err = u.events.UpcomingEvents(userID, time.Now(), upcomingLimit)
	}
	if err != nil {
		return fmt.Sprintf("Could not load calendar events: %v", err)
	}
	if len(events) == 0 {
		return noEventsFound
	}

	var b strings.Builder
	for _, e := range events {
		fmt.Fprintf(&b, "- %s: %s to %s", e.Title, e.StartTime.Format(eventTimeLayout), e.EndTime.Format(eventTimeLayout))
		if e.Description != "" {
			fmt.Fprintf(&b, " (%s)", e.Description)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (u *chatUsecase) createCalendarEvent(ctx context.Context, userID string, args map[string]interface{}) string {
	if userID == "" {
		return notSignedIn
	}

	title, _ := args["title"].(string)
	start, _ := args["start"].(string)
	end, _ := args["end"].(string)
	description, _ := args["description"].(string)

	event, err := u.events.CreateEvent(ctx, userID, eventusecase.CreateEventInput{
		Title:       title,
		Description: description,
		Start:       start,
		End:         end,
	})
	if err != nil {
		return fmt.Sprintf("Could not create the event: %v", err)
	}

	return fmt.Sprintf("Created event %q from %s to %s.", event.Title, event.StartTime.Format(eventTimeLayout), event.EndTime.Format(eventTimeLayout))
}

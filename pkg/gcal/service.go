package gcal

import (
	"context"
	"fmt"
	"time"

	eventdomain "lifeos-backend/internal/event/domain"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// TokenUpdateFunc is a callback function that handles token updates
type TokenUpdateFunc = eventdomain.TokenUpdateFunc

type Service struct {
	clientID     string
	clientSecret string
}

type notifyTokenSource struct {
	src      oauth2.TokenSource
	current  *oauth2.Token
	callback TokenUpdateFunc
}

func (s *notifyTokenSource) Token() (*oauth2.Token, error) {
	t, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	if s.callback != nil && s.current.AccessToken != t.AccessToken {
		s.current = t
		if err := s.callback(t); err != nil {
			fmt.Printf("Failed to update token: %v\n", err)
		}
	}
	return t, nil
}

func NewService(clientID, clientSecret string) *Service {
	return &Service{
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// getCalendarService creates a Calendar service with the user's access token
func (s *Service) getCalendarService(ctx context.Context, accessToken, refreshToken string, onTokenRefresh TokenUpdateFunc) (*calendar.Service, error) {
	token := &oauth2.Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
	}

	// Only force refresh if we have a refresh token
	if refreshToken != "" {
		token.Expiry = time.Now()
	}

	config := &oauth2.Config{
		ClientID:     s.clientID,
		ClientSecret: s.clientSecret,
		Endpoint:     google.Endpoint,
	}

	tokenSource := config.TokenSource(ctx, token)

	// Wrap token source to detect refreshes
	wrappedSource := &notifyTokenSource{
		src:      tokenSource,
		current:  token,
		callback: onTokenRefresh,
	}

	client := oauth2.NewClient(ctx, wrappedSource)

	srv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Calendar service: %v", err)
	}

	return srv, nil
}

// InsertEvent creates the event in the user's primary Google calendar and
// returns the external event id.
func (s *Service) InsertEvent(ctx context.Context, accessToken, refreshToken string, event *eventdomain.CalendarEvent, onTokenRefresh TokenUpdateFunc) (string, error) {
	srv, err := s.getCalendarService(ctx, accessToken, refreshToken, onTokenRefresh)
	if err != nil {
		return "", err
	}

	created, err := srv.Events.Insert("primary", toGoogleEvent(event)).Do()
	if err != nil {
		return "", fmt.Errorf("unable to insert event: %v", err)
	}

	return created.Id, nil
}

// UpdateEvent pushes the current event fields to the mirrored Google
// Calendar record. The event must already carry a GoogleEventID.
func (s *Service) UpdateEvent(ctx context.Context, accessToken, refreshToken string, event *eventdomain.CalendarEvent, onTokenRefresh TokenUpdateFunc) error {
	srv, err := s.getCalendarService(ctx, accessToken, refreshToken, onTokenRefresh)
	if err != nil {
		return err
	}

	_, err = srv.Events.Update("primary", event.GoogleEventID, toGoogleEvent(event)).Do()
	if err != nil {
		return fmt.Errorf("unable to update event: %v", err)
	}

	return nil
}

// DeleteEvent removes the mirrored record from Google Calendar.
func (s *Service) DeleteEvent(ctx context.Context, accessToken, refreshToken, googleEventID string, onTokenRefresh TokenUpdateFunc) error {
	srv, err := s.getCalendarService(ctx, accessToken, refreshToken, onTokenRefresh)
	if err != nil {
		return err
	}

	if err := srv.Events.Delete("primary", googleEventID).Do(); err != nil {
		return fmt.Errorf("unable to delete event: %v", err)
	}

	return nil
}

func toGoogleEvent(event *eventdomain.CalendarEvent) *calendar.Event {
	ge := &calendar.Event{
		Summary:     event.Title,
		Description: event.Description,
	}

	if event.AllDay {
		// All-day events use date-only boundaries; the end date is exclusive.
		ge.Start = &calendar.EventDateTime{Date: event.StartTime.Format("2006-01-02")}
		ge.End = &calendar.EventDateTime{Date: event.EndTime.AddDate(0, 0, 1).Format("2006-01-02")}
	} else {
		ge.Start = &calendar.EventDateTime{DateTime: event.StartTime.Format(time.RFC3339)}
		ge.End = &calendar.EventDateTime{DateTime: event.EndTime.Format(time.RFC3339)}
	}

	return ge
}

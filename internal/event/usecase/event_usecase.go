package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	authdomain "lifeos-backend/internal/auth/domain"
	authrepo "lifeos-backend/internal/auth/repository"
	"lifeos-backend/internal/event/domain"
	"lifeos-backend/internal/event/repository"
	"lifeos-backend/pkg/apperr"

	"golang.org/x/oauth2"
)

// eventUsecase implements EventUsecase
type eventUsecase struct {
	store    repository.EventStore
	userRepo authrepo.UserRepository
	provider domain.CalendarProvider // nil when mirroring is disabled
}

// NewEventUsecase creates a new instance of eventUsecase. provider may be
// nil, in which case no mirroring is ever attempted.
func NewEventUsecase(store repository.EventStore, userRepo authrepo.UserRepository, provider domain.CalendarProvider) EventUsecase {
	return &eventUsecase{
		store:    store,
		userRepo: userRepo,
		provider: provider,
	}
}

func (u *eventUsecase) CreateEvent(ctx context.Context, userID string, input CreateEventInput) (*domain.CalendarEvent, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthenticated
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperr.Validation("title is required")
	}

	start, err := time.Parse(time.RFC3339, input.Start)
	if err != nil {
		return nil, apperr.Validation("start_time must be RFC3339, got %q", input.Start)
	}
	end, err := time.Parse(time.RFC3339, input.End)
	if err != nil {
		return nil, apperr.Validation("end_time must be RFC3339, got %q", input.End)
	}
	if end.Before(start) {
		return nil, apperr.Validation("end_time must not precede start_time")
	}

	event := &domain.CalendarEvent{
		UserID:      userID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		StartTime:   start,
		EndTime:     end,
		AllDay:      input.AllDay,
		Status:      "confirmed",
		Color:       input.Color,
	}

	// Primary store first. Mirroring only ever starts after this ack.
	if err := u.store.Create(event); err != nil {
		return nil, apperr.Persistence("create event", err)
	}

	u.mirrorCreate(ctx, event)

	return event, nil
}

func (u *eventUsecase) GetEvent(userID, eventID string) (*domain.CalendarEvent, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthenticated
	}
	event, err := u.store.FindByID(userID, eventID)
	if err != nil {
		return nil, apperr.Persistence("find event", err)
	}
	if event == nil {
		return nil, apperr.ErrNotFound
	}
	return event, nil
}

func (u *eventUsecase) ListEvents(userID string) ([]*domain.CalendarEvent, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthenticated
	}
	events, err := u.store.FindByUserID(userID)
	if err != nil {
		return nil, apperr.Persistence("list events", err)
	}
	return events, nil
}

func (u *eventUsecase) EventsOnDay(userID string, day time.Time) ([]*domain.CalendarEvent, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthenticated
	}
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	events, err := u.store.FindByRange(userID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, apperr.Persistence("list events", err)
	}
	return events, nil
}

func (u *eventUsecase) UpcomingEvents(userID string, now time.Time, limit int) ([]*domain.CalendarEvent, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthenticated
	}
	if limit <= 0 {
		limit = 10
	}
	events, err := u.store.FindUpcoming(userID, now, limit)
	if err != nil {
		return nil, apperr.Persistence("list events", err)
	}
	return events, nil
}

func (u *eventUsecase) UpdateEvent(ctx context.Context, userID, eventID string, update EventUpdate) (*domain.CalendarEvent, error) {
	event, err := u.GetEvent(userID, eventID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		if strings.TrimSpace(*update.Title) == "" {
			return nil, apperr.Validation("title cannot be empty")
		}
		event.Title = strings.TrimSpace(*update.Title)
	}
	if update.Description != nil {
		event.Description = *update.Description
	}
	if update.Start != nil {
		start, err := time.Parse(time.RFC3339, *update.Start)
		if err != nil {
			return nil, apperr.Validation("start_time must be RFC3339, got %q", *update.Start)
		}
		event.StartTime = start
	}
	if update.End != nil {
		end, err := time.Parse(time.RFC3339, *update.End)
		if err != nil {
			return nil, apperr.Validation("end_time must be RFC3339, got %q", *update.End)
		}
		event.EndTime = end
	}
	if event.EndTime.Before(event.StartTime) {
		return nil, apperr.Validation("end_time must not precede start_time")
	}
	if update.AllDay != nil {
		event.AllDay = *update.AllDay
	}
	if update.Status != nil {
		event.Status = *update.Status
	}
	if update.Color != nil {
		event.Color = *update.Color
	}

	if err := u.store.Update(event); err != nil {
		return nil, apperr.Persistence("update event", err)
	}

	if event.Mirrored() {
		u.mirrorUpdate(ctx, event)
	} else {
		// Never mirrored, possibly because the calendar was not connected
		// at create time. Try to establish the mirror now.
		u.mirrorCreate(ctx, event)
	}

	return event, nil
}

func (u *eventUsecase) DeleteEvent(ctx context.Context, userID, eventID string) error {
	if userID == "" {
		return apperr.ErrUnauthenticated
	}

	event, err := u.store.FindByID(userID, eventID)
	if err != nil {
		return apperr.Persistence("find event", err)
	}
	if event == nil {
		// Idempotent: deleting an already-absent id is a no-op success.
		return nil
	}

	if err := u.store.Delete(userID, eventID); err != nil {
		return apperr.Persistence("delete event", err)
	}

	if event.Mirrored() {
		u.mirrorDelete(ctx, event)
	}

	return nil
}

// mirrorCreate attempts the best-effort external insert and, on success,
// persists the returned external id back onto the primary record. Every
// failure path only logs; the primary write already succeeded.
func (u *eventUsecase) mirrorCreate(ctx context.Context, event *domain.CalendarEvent) {
	user, ok := u.mirrorTarget(event.UserID)
	if !ok {
		return
	}

	googleID, err := u.provider.InsertEvent(ctx, user.GoogleAccessToken, user.GoogleRefreshToken, event, u.makeTokenUpdateCallback(user.ID))
	if err != nil {
		u.logMirror("insert", event.ID, err)
		return
	}

	event.GoogleEventID = googleID
	if err := u.store.Update(event); err != nil {
		// The mirror record exists but we lost its id. The next update will
		// create a duplicate; accepted as a best-effort limitation.
		u.logMirror("persist external id", event.ID, err)
	}
}

func (u *eventUsecase) mirrorUpdate(ctx context.Context, event *domain.CalendarEvent) {
	user, ok := u.mirrorTarget(event.UserID)
	if !ok {
		return
	}
	if err := u.provider.UpdateEvent(ctx, user.GoogleAccessToken, user.GoogleRefreshToken, event, u.makeTokenUpdateCallback(user.ID)); err != nil {
		u.logMirror("update", event.ID, err)
	}
}

func (u *eventUsecase) mirrorDelete(ctx context.Context, event *domain.CalendarEvent) {
	user, ok := u.mirrorTarget(event.UserID)
	if !ok {
		return
	}
	if err := u.provider.DeleteEvent(ctx, user.GoogleAccessToken, user.GoogleRefreshToken, event.GoogleEventID, u.makeTokenUpdateCallback(user.ID)); err != nil {
		u.logMirror("delete", event.ID, err)
	}
}

// mirrorTarget reports whether mirroring should be attempted for the user
// and, if so, returns the user record carrying the calendar tokens. "Not
// connected" is a normal state, never an error.
func (u *eventUsecase) mirrorTarget(userID string) (*authdomain.User, bool) {
	if u.provider == nil {
		return nil, false
	}
	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		log.Printf("[EventUsecase] Failed to load user %s for mirroring: %v", userID, err)
		return nil, false
	}
	if user == nil || !user.CalendarConnected() {
		return nil, false
	}
	return user, true
}

func (u *eventUsecase) makeTokenUpdateCallback(userID string) domain.TokenUpdateFunc {
	return func(token *oauth2.Token) error {
		user, err := u.userRepo.FindByID(userID)
		if err != nil {
			return err
		}
		if user == nil {
			return nil
		}

		user.GoogleAccessToken = token.AccessToken
		if token.RefreshToken != "" {
			user.GoogleRefreshToken = token.RefreshToken
		}

		return u.userRepo.Update(user)
	}
}

func (u *eventUsecase) logMirror(op, eventID string, err error) {
	log.Printf("[EventUsecase] %v (event %s)", &apperr.MirrorError{Op: op, Err: err}, eventID)
}

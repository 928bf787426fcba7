package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	authdomain "lifeos-backend/internal/auth/domain"
	"lifeos-backend/internal/event/domain"
	"lifeos-backend/internal/event/repository"
	"lifeos-backend/pkg/apperr"
)

const testUserID = "user-1"

// stubUserRepo serves a single user record.
type stubUserRepo struct {
	user *authdomain.User
}

func (r *stubUserRepo) Create(user *authdomain.User) error { return nil }
func (r *stubUserRepo) FindByEmail(email string) (*authdomain.User, error) {
	return nil, nil
}
func (r *stubUserRepo) FindByID(id string) (*authdomain.User, error) {
	if r.user != nil && r.user.ID == id {
		u := *r.user
		return &u, nil
	}
	return nil, nil
}
func (r *stubUserRepo) Update(user *authdomain.User) error {
	r.user = user
	return nil
}
func (r *stubUserRepo) SaveRefreshToken(token *authdomain.RefreshToken) error { return nil }
func (r *stubUserRepo) FindRefreshToken(token string) (*authdomain.RefreshToken, error) {
	return nil, nil
}
func (r *stubUserRepo) DeleteRefreshToken(token string) error         { return nil }
func (r *stubUserRepo) DeleteRefreshTokensByUser(userID string) error { return nil }

// fakeProvider records mirror calls and can be armed to fail.
type fakeProvider struct {
	inserts int
	updates int
	deletes int
	fail    error
	lastID  string
}

func (p *fakeProvider) InsertEvent(ctx context.Context, accessToken, refreshToken string, event *domain.CalendarEvent, onTokenRefresh domain.TokenUpdateFunc) (string, error) {
	p.inserts++
	if p.fail != nil {
		return "", p.fail
	}
	return "gcal-ext-1", nil
}

func (p *fakeProvider) UpdateEvent(ctx context.Context, accessToken, refreshToken string, event *domain.CalendarEvent, onTokenRefresh domain.TokenUpdateFunc) error {
	p.updates++
	return p.fail
}

func (p *fakeProvider) DeleteEvent(ctx context.Context, accessToken, refreshToken, googleEventID string, onTokenRefresh domain.TokenUpdateFunc) error {
	p.deletes++
	p.lastID = googleEventID
	return p.fail
}

func connectedUser() *authdomain.User {
	return &authdomain.User{
		ID:                testUserID,
		Email:             "test@example.com",
		GoogleAccessToken: "access-token",
	}
}

func disconnectedUser() *authdomain.User {
	return &authdomain.User{ID: testUserID, Email: "test@example.com"}
}

func validInput() CreateEventInput {
	return CreateEventInput{
		Title: "Dentist",
		Start: "2026-09-01T10:00:00Z",
		End:   "2026-09-01T11:00:00Z",
	}
}

func TestCreateEvent_NoCalendarConnection(t *testing.T) {
	store := repository.NewMemoryEventStore()
	provider := &fakeProvider{}
	uc := NewEventUsecase(store, &stubUserRepo{user: disconnectedUser()}, provider)

	event, err := uc.CreateEvent(context.Background(), testUserID, validInput())
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if event.GoogleEventID != "" {
		t.Errorf("expected no external id, got %q", event.GoogleEventID)
	}
	if provider.inserts != 0 {
		t.Errorf("expected no mirror attempt for disconnected user, got %d", provider.inserts)
	}

	stored, err := store.FindByID(testUserID, event.ID)
	if err != nil || stored == nil {
		t.Fatalf("event not persisted: %v", err)
	}
	if stored.Mirrored() {
		t.Error("stored event should not be marked mirrored")
	}
}

func TestCreateEvent_MirrorSuccessPersistsExternalID(t *testing.T) {
	store := repository.NewMemoryEventStore()
	provider := &fakeProvider{}
	uc := NewEventUsecase(store, &stubUserRepo{user: connectedUser()}, provider)

	event, err := uc.CreateEvent(context.Background(), testUserID, validInput())
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if event.GoogleEventID != "gcal-ext-1" {
		t.Errorf("expected external id on returned event, got %q", event.GoogleEventID)
	}

	stored, _ := store.FindByID(testUserID, event.ID)
	if stored.GoogleEventID != "gcal-ext-1" {
		t.Errorf("external id not persisted, got %q", stored.GoogleEventID)
	}
}

func TestCreateEvent_MirrorFailureIsNonFatal(t *testing.T) {
	store := repository.NewMemoryEventStore()
	provider := &fakeProvider{fail: errors.New("calendar unavailable")}
	uc := NewEventUsecase(store, &stubUserRepo{user: connectedUser()}, provider)

	event, err := uc.CreateEvent(context.Background(), testUserID, validInput())
	if err != nil {
		t.Fatalf("mirror failure must not fail the create: %v", err)
	}
	if provider.inserts != 1 {
		t.Errorf("expected one mirror attempt, got %d", provider.inserts)
	}
	if event.GoogleEventID != "" {
		t.Errorf("failed mirror must leave external id absent, got %q", event.GoogleEventID)
	}
}

func TestCreateEvent_PrimaryFailureSkipsMirror(t *testing.T) {
	store := repository.NewMemoryEventStore().(interface {
		repository.EventStore
		FailNextWrite(error)
	})
	store.FailNextWrite(errors.New("connection reset"))
	provider := &fakeProvider{}
	uc := NewEventUsecase(store, &stubUserRepo{user: connectedUser()}, provider)

	_, err := uc.CreateEvent(context.Background(), testUserID, validInput())
	var pe *apperr.PersistenceError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	if provider.inserts != 0 {
		t.Errorf("mirror must not run after a primary-store failure, got %d attempts", provider.inserts)
	}
}

func TestCreateEvent_Validation(t *testing.T) {
	uc := NewEventUsecase(repository.NewMemoryEventStore(), &stubUserRepo{}, nil)

	cases := []struct {
		name  string
		input CreateEventInput
	}{
		{"empty title", CreateEventInput{Title: "  ", Start: "2026-09-01T10:00:00Z", End: "2026-09-01T11:00:00Z"}},
		{"bad start", CreateEventInput{Title: "x", Start: "tomorrow", End: "2026-09-01T11:00:00Z"}},
		{"bad end", CreateEventInput{Title: "x", Start: "2026-09-01T10:00:00Z", End: "noon"}},
		{"end before start", CreateEventInput{Title: "x", Start: "2026-09-01T11:00:00Z", End: "2026-09-01T10:00:00Z"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateEvent(context.Background(), testUserID, tc.input)
			if !errors.Is(err, apperr.ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}

	if _, err := uc.CreateEvent(context.Background(), "", validInput()); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Errorf("expected unauthenticated error, got %v", err)
	}
}

// Create while disconnected, then connect the calendar and update: the
// update establishes the mirror. If the mirror fails instead, the update
// still succeeds and the external id stays absent.
func TestUpdateEvent_ConnectAfterCreate(t *testing.T) {
	store := repository.NewMemoryEventStore()
	userRepo := &stubUserRepo{user: disconnectedUser()}
	provider := &fakeProvider{}
	uc := NewEventUsecase(store, userRepo, provider)

	event, err := uc.CreateEvent(context.Background(), testUserID, validInput())
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if event.Mirrored() {
		t.Fatal("event must not be mirrored before the calendar is connected")
	}

	userRepo.user = connectedUser()

	// First update: mirror fails, operation still succeeds.
	provider.fail = errors.New("calendar unavailable")
	title := "Dentist (moved)"
	updated, err := uc.UpdateEvent(context.Background(), testUserID, event.ID, EventUpdate{Title: &title})
	if err != nil {
		t.Fatalf("UpdateEvent with failing mirror: %v", err)
	}
	if updated.Title != title {
		t.Errorf("primary update lost: got title %q", updated.Title)
	}
	if updated.GoogleEventID != "" {
		t.Errorf("failed mirror must leave external id unchanged, got %q", updated.GoogleEventID)
	}

	// Second update: mirror succeeds and the external id is recorded.
	provider.fail = nil
	updated, err = uc.UpdateEvent(context.Background(), testUserID, event.ID, EventUpdate{Title: &title})
	if err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}
	if updated.GoogleEventID != "gcal-ext-1" {
		t.Errorf("expected external id after successful mirror, got %q", updated.GoogleEventID)
	}

	stored, _ := store.FindByID(testUserID, event.ID)
	if stored.GoogleEventID != "gcal-ext-1" {
		t.Errorf("external id not persisted, got %q", stored.GoogleEventID)
	}
}

func TestUpdateEvent_MirroredUsesUpdatePath(t *testing.T) {
	store := repository.NewMemoryEventStore()
	provider := &fakeProvider{}
	uc := NewEventUsecase(store, &stubUserRepo{user: connectedUser()}, provider)

	event, err := uc.CreateEvent(context.Background(), testUserID, validInput())
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	desc := "bring insurance card"
	if _, err := uc.UpdateEvent(context.Background(), testUserID, event.ID, EventUpdate{Description: &desc}); err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}
	if provider.updates != 1 {
		t.Errorf("expected one mirror update, got %d", provider.updates)
	}
	if provider.inserts != 1 {
		t.Errorf("expected no second mirror insert, got %d", provider.inserts)
	}
}

func TestDeleteEvent_MirroredAndIdempotent(t *testing.T) {
	store := repository.NewMemoryEventStore()
	provider := &fakeProvider{}
	uc := NewEventUsecase(store, &stubUserRepo{user: connectedUser()}, provider)

	event, err := uc.CreateEvent(context.Background(), testUserID, validInput())
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	if err := uc.DeleteEvent(context.Background(), testUserID, event.ID); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}
	if provider.deletes != 1 || provider.lastID != "gcal-ext-1" {
		t.Errorf("expected mirror delete targeting gcal-ext-1, got %d calls (last id %q)", provider.deletes, provider.lastID)
	}

	// Second delete of the same id is a no-op success with no mirror call.
	if err := uc.DeleteEvent(context.Background(), testUserID, event.ID); err != nil {
		t.Fatalf("repeat DeleteEvent: %v", err)
	}
	if provider.deletes != 1 {
		t.Errorf("repeat delete must not mirror again, got %d calls", provider.deletes)
	}
}

func TestEventQueries(t *testing.T) {
	store := repository.NewMemoryEventStore()
	uc := NewEventUsecase(store, &stubUserRepo{user: disconnectedUser()}, nil)

	mk := func(title, start, end string) {
		t.Helper()
		if _, err := uc.CreateEvent(context.Background(), testUserID, CreateEventInput{Title: title, Start: start, End: end}); err != nil {
			t.Fatalf("CreateEvent %s: %v", title, err)
		}
	}
	mk("morning", "2026-09-01T09:00:00Z", "2026-09-01T10:00:00Z")
	mk("evening", "2026-09-01T19:00:00Z", "2026-09-01T20:00:00Z")
	mk("next day", "2026-09-02T09:00:00Z", "2026-09-02T10:00:00Z")

	day := time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)
	onDay, err := uc.EventsOnDay(testUserID, day)
	if err != nil {
		t.Fatalf("EventsOnDay: %v", err)
	}
	if len(onDay) != 2 {
		t.Fatalf("expected 2 events on day, got %d", len(onDay))
	}
	if onDay[0].Title != "morning" || onDay[1].Title != "evening" {
		t.Errorf("events not ordered by start: %s, %s", onDay[0].Title, onDay[1].Title)
	}

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	upcoming, err := uc.UpcomingEvents(testUserID, now, 10)
	if err != nil {
		t.Fatalf("UpcomingEvents: %v", err)
	}
	if len(upcoming) != 2 {
		t.Fatalf("expected 2 upcoming events, got %d", len(upcoming))
	}
	if upcoming[0].Title != "evening" {
		t.Errorf("soonest upcoming should be first, got %s", upcoming[0].Title)
	}

	upcoming, err = uc.UpcomingEvents(testUserID, now, 1)
	if err != nil {
		t.Fatalf("UpcomingEvents with limit: %v", err)
	}
	if len(upcoming) != 1 {
		t.Errorf("limit not applied, got %d events", len(upcoming))
	}
}

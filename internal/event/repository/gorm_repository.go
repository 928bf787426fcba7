package repository

import (
	"errors"
	"time"

	"lifeos-backend/internal/event/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormEventStore implements EventStore using GORM
type gormEventStore struct {
	db *gorm.DB
}

// NewGormEventStore creates a new GORM-based EventStore
func NewGormEventStore(db *gorm.DB) EventStore {
	return &gormEventStore{db: db}
}

func (r *gormEventStore) Create(event *domain.CalendarEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()
	return r.db.Create(event).Error
}

func (r *gormEventStore) FindByID(userID, id string) (*domain.CalendarEvent, error) {
	var event domain.CalendarEvent
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

func (r *gormEventStore) FindByUserID(userID string) ([]*domain.CalendarEvent, error) {
	var events []*domain.CalendarEvent
	err := r.db.Where("user_id = ?", userID).Order("start_time ASC").Find(&events).Error
	return events, err
}

func (r *gormEventStore) FindByRange(userID string, from, to time.Time) ([]*domain.CalendarEvent, error) {
	var events []*domain.CalendarEvent
	err := r.db.Where("user_id = ? AND start_time >= ? AND start_time < ?", userID, from, to).
		Order("start_time ASC").Find(&events).Error
	return events, err
}

func (r *gormEventStore) FindUpcoming(userID string, from time.Time, limit int) ([]*domain.CalendarEvent, error) {
	var events []*domain.CalendarEvent
	err := r.db.Where("user_id = ? AND start_time >= ?", userID, from).
		Order("start_time ASC").Limit(limit).Find(&events).Error
	return events, err
}

func (r *gormEventStore) Update(event *domain.CalendarEvent) error {
	event.UpdatedAt = time.Now()
	return r.db.Save(event).Error
}

func (r *gormEventStore) Delete(userID, id string) error {
	return r.db.Where("user_id = ?", userID).Delete(&domain.CalendarEvent{}, "id = ?", id).Error
}

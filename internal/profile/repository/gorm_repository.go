package repository

import (
	"time"

	"lifeos-backend/internal/profile/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormProfileStore implements ProfileStore using GORM
type gormProfileStore struct {
	db *gorm.DB
}

// NewGormProfileStore creates a new GORM-based ProfileStore
func NewGormProfileStore(db *gorm.DB) ProfileStore {
	return &gormProfileStore{db: db}
}

func (r *gormProfileStore) GetOrCreate(userID string) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	err := r.db.Where(domain.UserProfile{UserID: userID}).
		Attrs(domain.UserProfile{
			UserID:    userID,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}).
		FirstOrCreate(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *gormProfileStore) Update(profile *domain.UserProfile) error {
	profile.UpdatedAt = time.Now()
	return r.db.Save(profile).Error
}

func (r *gormProfileStore) UnlockedByUserID(userID string) ([]domain.UnlockedAchievement, error) {
	var unlocked []domain.UnlockedAchievement
	err := r.db.Where("user_id = ?", userID).Find(&unlocked).Error
	return unlocked, err
}

func (r *gormProfileStore) Unlock(userID, achievementID string) error {
	row := domain.UnlockedAchievement{
		UserID:        userID,
		AchievementID: achievementID,
		UnlockedAt:    time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
}

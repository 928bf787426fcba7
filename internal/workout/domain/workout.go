package domain

import "time"

// Exercise is one entry in a workout log.
type Exercise struct {
	Name   string  `json:"name"`
	Sets   int     `json:"sets"`
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight,omitempty"`
}

// Workout is a logged training session.
type Workout struct {
	ID              string     `json:"id" gorm:"primaryKey"`
	UserID          string     `json:"user_id" gorm:"index"`
	Title           string     `json:"title"`
	Date            time.Time  `json:"date"`
	DurationMinutes int        `json:"duration_minutes"`
	Notes           string     `json:"notes"`
	Exercises       []Exercise `json:"exercises" gorm:"serializer:json"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

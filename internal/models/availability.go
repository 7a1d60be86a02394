package models

import (
	"time"
)

// Availability is a time range a user marks with a status. Records are stored
// as given; overlapping ranges are allowed.
type Availability struct {
	UserID      string    `json:"-" gorm:"type:uuid;primaryKey"`
	ID          string    `json:"id" gorm:"primaryKey;size:128"`
	Description string    `json:"description" gorm:"not null"`
	StartDate   time.Time `json:"start_date" gorm:"not null"`
	EndDate     time.Time `json:"end_date" gorm:"not null"`
	Status      string    `json:"status" gorm:"not null"`
	Preference  *int      `json:"preference,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type AvailabilityRequest struct {
	Description string    `json:"description" validate:"required"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required"`
	Status      string    `json:"status" validate:"required"`
	Preference  *int      `json:"preference"`
}

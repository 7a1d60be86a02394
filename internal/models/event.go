package models

import (
	"time"
)

type Event struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date" gorm:"not null"`
	EndDate     time.Time `json:"end_date" gorm:"not null"`
	EventCode   string    `json:"event_code" gorm:"uniqueIndex;size:32;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Hydrated from the membership tables by the repository.
	ParticipantIDs []string `json:"participants" gorm:"-"`
	AdminIDs       []string `json:"admins" gorm:"-"`
}

func (e *Event) HasParticipant(userID string) bool {
	return contains(e.ParticipantIDs, userID)
}

func (e *Event) HasAdmin(userID string) bool {
	return contains(e.AdminIDs, userID)
}

type EventParticipant struct {
	EventID  string    `gorm:"type:uuid;primaryKey"`
	UserID   string    `gorm:"type:uuid;primaryKey;index"`
	JoinedAt time.Time `gorm:"not null"`
}

type EventAdmin struct {
	EventID string `gorm:"type:uuid;primaryKey"`
	UserID  string `gorm:"type:uuid;primaryKey;index"`
}

type EventRequest struct {
	Name        string    `json:"name" validate:"required,notblank"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required"`
	Restricted  bool      `json:"restricted"`
}

type UpdateEventRequest struct {
	Name        *string    `json:"name" validate:"omitempty,notblank"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

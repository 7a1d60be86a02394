package models

import (
	"time"
)

type User struct {
	ID               string     `json:"id" gorm:"type:uuid;primaryKey"`
	Username         string     `json:"username" gorm:"not null"`
	Email            string     `json:"email" gorm:"uniqueIndex;not null"`
	Password         string     `json:"-" gorm:"not null"`
	UserCode         string     `json:"user_code" gorm:"uniqueIndex;size:32;not null"`
	Confirmed        bool       `json:"confirmed" gorm:"not null;default:false"`
	RegistrationDate time.Time  `json:"registration_date" gorm:"not null"`
	ExpirationDate   *time.Time `json:"expiration_date,omitempty" gorm:"index"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// Hydrated from the join tables by the repository.
	EventIDs        []string `json:"events" gorm:"-"`
	AvailabilityIDs []string `json:"availabilities" gorm:"-"`
	FollowingIDs    []string `json:"following" gorm:"-"`
	FollowerIDs     []string `json:"followers" gorm:"-"`
}

// Expired reports whether an unconfirmed account is past its expiration date.
func (u *User) Expired(now time.Time) bool {
	return !u.Confirmed && u.ExpirationDate != nil && !now.Before(*u.ExpirationDate)
}

// PublicUser is what other users see when they look up a user code.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	UserCode string `json:"user_code"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, UserCode: u.UserCode}
}

// UserFollowing is one entry of a user's following list.
type UserFollowing struct {
	UserID      string    `gorm:"type:uuid;primaryKey"`
	FollowingID string    `gorm:"type:uuid;primaryKey;index"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (UserFollowing) TableName() string { return "user_following" }

// UserFollower is one entry of a user's followers list.
type UserFollower struct {
	UserID     string    `gorm:"type:uuid;primaryKey"`
	FollowerID string    `gorm:"type:uuid;primaryKey;index"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (UserFollower) TableName() string { return "user_followers" }

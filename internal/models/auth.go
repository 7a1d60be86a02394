package models

import (
	"time"
)

type RegisterRequest struct {
	Username        string `json:"username" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type LoginRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required"`
	StayLoggedIn bool   `json:"stayLoggedIn"`
}

type ResendConfirmationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// UpdateProfileRequest changes the username, the password, or both. A new
// password is only accepted together with the current one.
type UpdateProfileRequest struct {
	Username    *string `json:"username" validate:"omitempty,notblank"`
	OldPassword string  `json:"oldPassword"`
	NewPassword string  `json:"newPassword"`
}

type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

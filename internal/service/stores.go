package service

import (
	"context"
	"time"

	"github.com/sefazor/groupslot-backend/internal/models"
)

// UserStore persists users and their follow edges.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUserCode(ctx context.Context, code string) (*models.User, error)
	UserCodeExists(ctx context.Context, code string) (bool, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	FindExpiredUnconfirmed(ctx context.Context, now time.Time, limit int) ([]string, error)

	AddFollowing(ctx context.Context, userID, followingID string) error
	RemoveFollowing(ctx context.Context, userID, followingID string) error
	AddFollower(ctx context.Context, userID, followerID string) error
	RemoveFollower(ctx context.Context, userID, followerID string) error
	RemoveFollowEdges(ctx context.Context, userID string) error
}

// EventStore persists events and their membership.
type EventStore interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id string) (*models.Event, error)
	GetByCode(ctx context.Context, code string) (*models.Event, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	ListByParticipant(ctx context.Context, userID string) ([]models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id string) error

	AddParticipant(ctx context.Context, eventID, userID string) error
	RemoveParticipant(ctx context.Context, eventID, userID string) error
	AddAdmin(ctx context.Context, eventID, userID string) error
	RemoveAdmin(ctx context.Context, eventID, userID string) error
	CountParticipants(ctx context.Context, eventID string) (int64, error)
}

// AvailabilityStore persists availability records keyed by (user, client id).
type AvailabilityStore interface {
	Get(ctx context.Context, userID, id string) (*models.Availability, error)
	Upsert(ctx context.Context, availability *models.Availability) error
	ListByUser(ctx context.Context, userID string) ([]models.Availability, error)
	Delete(ctx context.Context, userID, id string) error
	DeleteByUser(ctx context.Context, userID string) error
}

type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type PasswordHasher interface {
	HashPassword(password string) (string, error)
	ComparePassword(hashedPassword, password string) bool
}

type TokenIssuer interface {
	GenerateToken(userID string, persistent bool) (string, time.Time, error)
}

type ConfirmationSender interface {
	SendConfirmationEmail(to, link string) error
}

type QRRenderer interface {
	GenerateQRCode(code string) ([]byte, error)
}

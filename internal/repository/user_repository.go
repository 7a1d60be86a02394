package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sefazor/groupslot-backend/internal/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return translate(conn(ctx, r.db).Create(user).Error)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *UserRepository) GetByUserCode(ctx context.Context, code string) (*models.User, error) {
	return r.first(ctx, "user_code = ?", code)
}

func (r *UserRepository) first(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var user models.User
	if err := conn(ctx, r.db).Where(query, arg).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	if err := r.hydrate(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// hydrate fills the id lists kept in join tables.
func (r *UserRepository) hydrate(ctx context.Context, user *models.User) error {
	db := conn(ctx, r.db)
	user.EventIDs = []string{}
	user.AvailabilityIDs = []string{}
	user.FollowingIDs = []string{}
	user.FollowerIDs = []string{}

	if err := db.Model(&models.EventParticipant{}).Where("user_id = ?", user.ID).
		Order("joined_at").Pluck("event_id", &user.EventIDs).Error; err != nil {
		return err
	}
	if err := db.Model(&models.Availability{}).Where("user_id = ?", user.ID).
		Order("start_date").Pluck("id", &user.AvailabilityIDs).Error; err != nil {
		return err
	}
	if err := db.Model(&models.UserFollowing{}).Where("user_id = ?", user.ID).
		Order("created_at").Pluck("following_id", &user.FollowingIDs).Error; err != nil {
		return err
	}
	return db.Model(&models.UserFollower{}).Where("user_id = ?", user.ID).
		Order("created_at").Pluck("follower_id", &user.FollowerIDs).Error
}

func (r *UserRepository) UserCodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.User{}).Where("user_code = ?", code).Count(&count).Error
	return count > 0, err
}

// Update writes the scalar columns of user.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	result := conn(ctx, r.db).Model(&models.User{ID: user.ID}).Select(
		"username", "password", "user_code", "confirmed", "expiration_date", "updated_at",
	).Updates(&models.User{
		Username:       user.Username,
		Password:       user.Password,
		UserCode:       user.UserCode,
		Confirmed:      user.Confirmed,
		ExpirationDate: user.ExpirationDate,
		UpdatedAt:      time.Now(),
	})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	result := conn(ctx, r.db).Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindExpiredUnconfirmed returns ids of unconfirmed users whose expiration date passed.
func (r *UserRepository) FindExpiredUnconfirmed(ctx context.Context, now time.Time, limit int) ([]string, error) {
	var ids []string
	err := conn(ctx, r.db).Model(&models.User{}).
		Where("confirmed = ? AND expiration_date IS NOT NULL AND expiration_date <= ?", false, now).
		Order("expiration_date").Limit(limit).Pluck("id", &ids).Error
	return ids, err
}

func (r *UserRepository) AddFollowing(ctx context.Context, userID, followingID string) error {
	return conn(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.UserFollowing{UserID: userID, FollowingID: followingID, CreatedAt: time.Now()}).Error
}

func (r *UserRepository) RemoveFollowing(ctx context.Context, userID, followingID string) error {
	return conn(ctx, r.db).Where("user_id = ? AND following_id = ?", userID, followingID).
		Delete(&models.UserFollowing{}).Error
}

func (r *UserRepository) AddFollower(ctx context.Context, userID, followerID string) error {
	return conn(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.UserFollower{UserID: userID, FollowerID: followerID, CreatedAt: time.Now()}).Error
}

func (r *UserRepository) RemoveFollower(ctx context.Context, userID, followerID string) error {
	return conn(ctx, r.db).Where("user_id = ? AND follower_id = ?", userID, followerID).
		Delete(&models.UserFollower{}).Error
}

// RemoveFollowEdges drops every follow row owned by or pointing at userID.
func (r *UserRepository) RemoveFollowEdges(ctx context.Context, userID string) error {
	db := conn(ctx, r.db)
	if err := db.Where("user_id = ? OR following_id = ?", userID, userID).
		Delete(&models.UserFollowing{}).Error; err != nil {
		return err
	}
	return db.Where("user_id = ? OR follower_id = ?", userID, userID).
		Delete(&models.UserFollower{}).Error
}

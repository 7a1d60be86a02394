package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sefazor/groupslot-backend/internal/models"
)

type AvailabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

func (r *AvailabilityRepository) Get(ctx context.Context, userID, id string) (*models.Availability, error) {
	var availability models.Availability
	err := conn(ctx, r.db).Where("user_id = ? AND id = ?", userID, id).First(&availability).Error
	if err != nil {
		return nil, translate(err)
	}
	return &availability, nil
}

// Upsert inserts the record or overwrites the existing one with the same (user_id, id).
func (r *AvailabilityRepository) Upsert(ctx context.Context, availability *models.Availability) error {
	return conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"description", "start_date", "end_date", "status", "preference", "updated_at",
		}),
	}).Create(availability).Error
}

func (r *AvailabilityRepository) ListByUser(ctx context.Context, userID string) ([]models.Availability, error) {
	var availabilities []models.Availability
	err := conn(ctx, r.db).Where("user_id = ?", userID).Order("start_date").Find(&availabilities).Error
	return availabilities, err
}

func (r *AvailabilityRepository) Delete(ctx context.Context, userID, id string) error {
	result := conn(ctx, r.db).Where("user_id = ? AND id = ?", userID, id).Delete(&models.Availability{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AvailabilityRepository) DeleteByUser(ctx context.Context, userID string) error {
	return conn(ctx, r.db).Where("user_id = ?", userID).Delete(&models.Availability{}).Error
}

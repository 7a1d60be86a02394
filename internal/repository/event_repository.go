package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sefazor/groupslot-backend/internal/models"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	return translate(conn(ctx, r.db).Create(event).Error)
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *EventRepository) GetByCode(ctx context.Context, code string) (*models.Event, error) {
	return r.first(ctx, "event_code = ?", code)
}

func (r *EventRepository) first(ctx context.Context, query string, arg interface{}) (*models.Event, error) {
	var event models.Event
	if err := conn(ctx, r.db).Where(query, arg).First(&event).Error; err != nil {
		return nil, translate(err)
	}
	if err := r.hydrate(ctx, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) hydrate(ctx context.Context, event *models.Event) error {
	db := conn(ctx, r.db)
	event.ParticipantIDs = []string{}
	event.AdminIDs = []string{}

	if err := db.Model(&models.EventParticipant{}).Where("event_id = ?", event.ID).
		Order("joined_at").Pluck("user_id", &event.ParticipantIDs).Error; err != nil {
		return err
	}
	return db.Model(&models.EventAdmin{}).Where("event_id = ?", event.ID).
		Order("user_id").Pluck("user_id", &event.AdminIDs).Error
}

func (r *EventRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.Event{}).Where("event_code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *EventRepository) ListByParticipant(ctx context.Context, userID string) ([]models.Event, error) {
	var events []models.Event
	err := conn(ctx, r.db).
		Joins("JOIN event_participants ep ON ep.event_id = events.id").
		Where("ep.user_id = ?", userID).
		Order("events.start_date").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	for i := range events {
		if err := r.hydrate(ctx, &events[i]); err != nil {
			return nil, err
		}
	}
	return events, nil
}

func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	result := conn(ctx, r.db).Model(&models.Event{ID: event.ID}).Select(
		"name", "description", "start_date", "end_date", "event_code", "updated_at",
	).Updates(&models.Event{
		Name:        event.Name,
		Description: event.Description,
		StartDate:   event.StartDate,
		EndDate:     event.EndDate,
		EventCode:   event.EventCode,
		UpdatedAt:   time.Now(),
	})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the event with its membership rows.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	db := conn(ctx, r.db)
	if err := db.Where("event_id = ?", id).Delete(&models.EventAdmin{}).Error; err != nil {
		return err
	}
	if err := db.Where("event_id = ?", id).Delete(&models.EventParticipant{}).Error; err != nil {
		return err
	}
	result := db.Delete(&models.Event{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EventRepository) AddParticipant(ctx context.Context, eventID, userID string) error {
	return conn(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.EventParticipant{EventID: eventID, UserID: userID, JoinedAt: time.Now()}).Error
}

// RemoveParticipant also drops the admin row, admins being a subset of participants.
func (r *EventRepository) RemoveParticipant(ctx context.Context, eventID, userID string) error {
	db := conn(ctx, r.db)
	if err := db.Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&models.EventAdmin{}).Error; err != nil {
		return err
	}
	return db.Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&models.EventParticipant{}).Error
}

func (r *EventRepository) AddAdmin(ctx context.Context, eventID, userID string) error {
	return conn(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.EventAdmin{EventID: eventID, UserID: userID}).Error
}

func (r *EventRepository) RemoveAdmin(ctx context.Context, eventID, userID string) error {
	return conn(ctx, r.db).Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&models.EventAdmin{}).Error
}

func (r *EventRepository) CountParticipants(ctx context.Context, eventID string) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.EventParticipant{}).Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}

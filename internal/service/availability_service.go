package service

import (
	"context"
	"errors"
	"time"

	"github.com/sefazor/groupslot-backend/internal/apperror"
	"github.com/sefazor/groupslot-backend/internal/models"
	"github.com/sefazor/groupslot-backend/internal/repository"
)

type AvailabilityService struct {
	tx     Transactor
	avails AvailabilityStore
	now    func() time.Time
}

func NewAvailabilityService(tx Transactor, avails AvailabilityStore) *AvailabilityService {
	return &AvailabilityService{
		tx:     tx,
		avails: avails,
		now:    time.Now,
	}
}

// Upsert stores the record under the client-chosen id. An update keeps the
// stored preference when the request leaves it out. The bool reports whether
// the record was created.
func (s *AvailabilityService) Upsert(ctx context.Context, userID, id string, req models.AvailabilityRequest) (*models.Availability, bool, error) {
	var (
		availability *models.Availability
		created      bool
	)

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		now := s.now()
		availability = &models.Availability{
			UserID:      userID,
			ID:          id,
			Description: req.Description,
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
			Status:      req.Status,
			Preference:  req.Preference,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		existing, err := s.avails.Get(ctx, userID, id)
		switch {
		case err == nil:
			availability.CreatedAt = existing.CreatedAt
			if availability.Preference == nil {
				availability.Preference = existing.Preference
			}
		case errors.Is(err, repository.ErrNotFound):
			created = true
		default:
			return err
		}

		return s.avails.Upsert(ctx, availability)
	})
	if err != nil {
		return nil, false, apperror.NewDatabaseError("failed to save availability", err)
	}
	return availability, created, nil
}

func (s *AvailabilityService) Get(ctx context.Context, userID, id string) (*models.Availability, error) {
	availability, err := s.avails.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NewAvailabilityNotFound(err)
		}
		return nil, apperror.NewDatabaseError("failed to load availability", err)
	}
	return availability, nil
}

func (s *AvailabilityService) List(ctx context.Context, userID string) ([]models.Availability, error) {
	availabilities, err := s.avails.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list availabilities", err)
	}
	if availabilities == nil {
		availabilities = []models.Availability{}
	}
	return availabilities, nil
}

func (s *AvailabilityService) Delete(ctx context.Context, userID, id string) error {
	if err := s.avails.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NewAvailabilityNotFound(err)
		}
		return apperror.NewDatabaseError("failed to delete availability", err)
	}
	return nil
}

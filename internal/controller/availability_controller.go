package controller

import (
	"context"

	"github.com/sefazor/groupslot-backend/internal/models"
	"github.com/sefazor/groupslot-backend/internal/service"
	"github.com/sefazor/groupslot-backend/pkg/utils"
)

// availabilityKey matches the size of the availabilities.id column.
type availabilityKey struct {
	ID string `json:"id" validate:"required,notblank,max=128"`
}

type AvailabilityController struct {
	availabilityService *service.AvailabilityService
	validator           *utils.Validator
}

func NewAvailabilityController(availabilityService *service.AvailabilityService, validator *utils.Validator) *AvailabilityController {
	return &AvailabilityController{
		availabilityService: availabilityService,
		validator:           validator,
	}
}

// Upsert does not compare start and end; records are kept as sent.
func (c *AvailabilityController) Upsert(ctx context.Context, userID, id string, req models.AvailabilityRequest) (*models.Availability, bool, error) {
	if err := validate(c.validator, availabilityKey{ID: id}); err != nil {
		return nil, false, err
	}
	if err := validate(c.validator, req); err != nil {
		return nil, false, err
	}
	return c.availabilityService.Upsert(ctx, userID, id, req)
}

func (c *AvailabilityController) Get(ctx context.Context, userID, id string) (*models.Availability, error) {
	return c.availabilityService.Get(ctx, userID, id)
}

func (c *AvailabilityController) List(ctx context.Context, userID string) ([]models.Availability, error) {
	return c.availabilityService.List(ctx, userID)
}

func (c *AvailabilityController) Delete(ctx context.Context, userID, id string) error {
	return c.availabilityService.Delete(ctx, userID, id)
}

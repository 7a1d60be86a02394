package controller

import (
	"context"

	"github.com/sefazor/groupslot-backend/internal/apperror"
	"github.com/sefazor/groupslot-backend/internal/models"
	"github.com/sefazor/groupslot-backend/internal/service"
	"github.com/sefazor/groupslot-backend/pkg/utils"
)

type EventController struct {
	eventService *service.EventService
	validator    *utils.Validator
}

func NewEventController(eventService *service.EventService, validator *utils.Validator) *EventController {
	return &EventController{
		eventService: eventService,
		validator:    validator,
	}
}

func (c *EventController) CreateEvent(ctx context.Context, userID string, req models.EventRequest) (*models.Event, error) {
	if err := validate(c.validator, req); err != nil {
		return nil, err
	}
	if !req.StartDate.Before(req.EndDate) {
		return nil, apperror.NewValidation("invalid date range")
	}
	return c.eventService.CreateEvent(ctx, userID, req)
}

func (c *EventController) GetEvent(ctx context.Context, userID, eventID string) (*models.Event, error) {
	if err := checkID(eventID, apperror.NewEventNotFound); err != nil {
		return nil, err
	}
	return c.eventService.GetEvent(ctx, userID, eventID)
}

func (c *EventController) ListEvents(ctx context.Context, userID string) ([]models.Event, error) {
	return c.eventService.ListEvents(ctx, userID)
}

func (c *EventController) UpdateEvent(ctx context.Context, userID, eventID string, req models.UpdateEventRequest) (*models.Event, error) {
	if err := checkID(eventID, apperror.NewEventNotFound); err != nil {
		return nil, err
	}
	if err := validate(c.validator, req); err != nil {
		return nil, err
	}
	return c.eventService.UpdateEvent(ctx, userID, eventID, req)
}

func (c *EventController) JoinByCode(ctx context.Context, userID, code string) (*models.Event, error) {
	if code == "" {
		return nil, apperror.NewMissingFields("missing event code")
	}
	return c.eventService.JoinByCode(ctx, userID, code)
}

func (c *EventController) Leave(ctx context.Context, userID, eventID string) (bool, error) {
	if err := checkID(eventID, apperror.NewEventNotFound); err != nil {
		return false, err
	}
	return c.eventService.Leave(ctx, userID, eventID)
}

func (c *EventController) RemoveParticipant(ctx context.Context, userID, eventID, targetID string) (bool, error) {
	if err := checkID(eventID, apperror.NewEventNotFound); err != nil {
		return false, err
	}
	if err := checkID(targetID, apperror.NewUserNotFound); err != nil {
		return false, err
	}
	return c.eventService.RemoveParticipant(ctx, userID, eventID, targetID)
}

func (c *EventController) AddAdmin(ctx context.Context, userID, eventID, targetID string) (*models.Event, error) {
	if err := checkID(eventID, apperror.NewEventNotFound); err != nil {
		return nil, err
	}
	if err := checkID(targetID, apperror.NewUserNotFound); err != nil {
		return nil, err
	}
	return c.eventService.AddAdmin(ctx, userID, eventID, targetID)
}

func (c *EventController) RemoveAdmin(ctx context.Context, userID, eventID, targetID string) (*models.Event, error) {
	if err := checkID(eventID, apperror.NewEventNotFound); err != nil {
		return nil, err
	}
	if err := checkID(targetID, apperror.NewUserNotFound); err != nil {
		return nil, err
	}
	return c.eventService.RemoveAdmin(ctx, userID, eventID, targetID)
}

func (c *EventController) DeleteEvent(ctx context.Context, userID, eventID string) error {
	if err := checkID(eventID, apperror.NewEventNotFound); err != nil {
		return err
	}
	return c.eventService.DeleteEvent(ctx, userID, eventID)
}

func (c *EventController) QRCode(ctx context.Context, userID, eventID string) ([]byte, error) {
	if err := checkID(eventID, apperror.NewEventNotFound); err != nil {
		return nil, err
	}
	return c.eventService.QRCode(ctx, userID, eventID)
}

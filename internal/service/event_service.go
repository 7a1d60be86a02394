package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sefazor/groupslot-backend/internal/apperror"
	"github.com/sefazor/groupslot-backend/internal/models"
	"github.com/sefazor/groupslot-backend/internal/repository"
)

type EventService struct {
	tx         Transactor
	events     EventStore
	cascade    *CascadeService
	eventCodes *CodeGenerator
	qr         QRRenderer
	logger     *zap.Logger
}

func NewEventService(
	tx Transactor,
	events EventStore,
	cascade *CascadeService,
	eventCodes *CodeGenerator,
	qr QRRenderer,
	logger *zap.Logger,
) *EventService {
	return &EventService{
		tx:         tx,
		events:     events,
		cascade:    cascade,
		eventCodes: eventCodes,
		qr:         qr,
		logger:     logger.Named("event"),
	}
}

// CreateEvent stores a new event with the creator as its first participant.
// A restricted event also gets the creator as its only admin.
func (s *EventService) CreateEvent(ctx context.Context, userID string, req models.EventRequest) (*models.Event, error) {
	if !req.StartDate.Before(req.EndDate) {
		return nil, apperror.NewValidation("invalid date range")
	}

	event := &models.Event{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		_, err := s.eventCodes.Claim(ctx, s.events.CodeExists, func(ctx context.Context, code string) error {
			event.EventCode = code
			return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
				return s.events.Create(ctx, event)
			})
		})
		if err != nil {
			return err
		}

		if err := s.events.AddParticipant(ctx, event.ID, userID); err != nil {
			return err
		}
		if req.Restricted {
			return s.events.AddAdmin(ctx, event.ID, userID)
		}
		return nil
	})
	if err != nil {
		return nil, asDatabaseError("failed to create event", err)
	}

	s.logger.Info("event created",
		zap.String("event_id", event.ID),
		zap.String("user_id", userID),
		zap.Bool("restricted", req.Restricted),
	)
	return s.load(ctx, event.ID)
}

// GetEvent returns the event when userID participates in it. Non-participants
// get EventNotFound so event ids are not revealed.
func (s *EventService) GetEvent(ctx context.Context, userID, eventID string) (*models.Event, error) {
	event, err := s.load(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.HasParticipant(userID) {
		return nil, apperror.NewEventNotFound(nil)
	}
	return event, nil
}

func (s *EventService) ListEvents(ctx context.Context, userID string) ([]models.Event, error) {
	events, err := s.events.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list events", err)
	}
	if events == nil {
		events = []models.Event{}
	}
	return events, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, userID, eventID string, req models.UpdateEventRequest) (*models.Event, error) {
	event, err := s.editable(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		event.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.StartDate != nil {
		event.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		event.EndDate = *req.EndDate
	}
	if !event.StartDate.Before(event.EndDate) {
		return nil, apperror.NewValidation("invalid date range")
	}

	if err := s.events.Update(ctx, event); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NewEventNotFound(err)
		}
		return nil, apperror.NewDatabaseError("failed to update event", err)
	}
	return s.load(ctx, event.ID)
}

// JoinByCode adds userID to the event owning code. Joining twice is a no-op.
func (s *EventService) JoinByCode(ctx context.Context, userID, code string) (*models.Event, error) {
	event, err := s.events.GetByCode(ctx, strings.ToUpper(code))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NewEventNotFound(err)
		}
		return nil, apperror.NewDatabaseError("failed to look up event", err)
	}

	if !event.HasParticipant(userID) {
		if err := s.events.AddParticipant(ctx, event.ID, userID); err != nil {
			return nil, apperror.NewDatabaseError("failed to join event", err)
		}
		s.logger.Info("event joined", zap.String("event_id", event.ID), zap.String("user_id", userID))
	}
	return s.load(ctx, event.ID)
}

// Leave removes the caller from the event. The event is deleted when nobody
// is left; the returned bool reports that.
func (s *EventService) Leave(ctx context.Context, userID, eventID string) (bool, error) {
	if _, err := s.GetEvent(ctx, userID, eventID); err != nil {
		return false, err
	}
	return s.removeParticipant(ctx, eventID, userID)
}

// RemoveParticipant lets an editor drop another participant.
func (s *EventService) RemoveParticipant(ctx context.Context, userID, eventID, targetID string) (bool, error) {
	event, err := s.editable(ctx, userID, eventID)
	if err != nil {
		return false, err
	}
	if !event.HasParticipant(targetID) {
		return false, apperror.NewUserNotFound(nil)
	}
	return s.removeParticipant(ctx, eventID, targetID)
}

func (s *EventService) removeParticipant(ctx context.Context, eventID, userID string) (bool, error) {
	if err := s.events.RemoveParticipant(ctx, eventID, userID); err != nil {
		return false, apperror.NewDatabaseError("failed to remove participant", err)
	}
	return s.cascade.ReconcileEmpty(ctx, eventID)
}

func (s *EventService) AddAdmin(ctx context.Context, userID, eventID, targetID string) (*models.Event, error) {
	event, err := s.editable(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}
	if !event.HasParticipant(targetID) {
		return nil, apperror.NewValidation("admin must be a participant")
	}
	if err := s.events.AddAdmin(ctx, eventID, targetID); err != nil {
		return nil, apperror.NewDatabaseError("failed to add admin", err)
	}
	return s.load(ctx, eventID)
}

func (s *EventService) RemoveAdmin(ctx context.Context, userID, eventID, targetID string) (*models.Event, error) {
	if _, err := s.editable(ctx, userID, eventID); err != nil {
		return nil, err
	}
	if err := s.events.RemoveAdmin(ctx, eventID, targetID); err != nil {
		return nil, apperror.NewDatabaseError("failed to remove admin", err)
	}
	return s.load(ctx, eventID)
}

func (s *EventService) DeleteEvent(ctx context.Context, userID, eventID string) error {
	if _, err := s.editable(ctx, userID, eventID); err != nil {
		return err
	}
	return s.cascade.DeleteEvent(ctx, eventID)
}

// QRCode renders the join link of the event as a PNG.
func (s *EventService) QRCode(ctx context.Context, userID, eventID string) ([]byte, error) {
	event, err := s.GetEvent(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}
	png, err := s.qr.GenerateQRCode(event.EventCode)
	if err != nil {
		return nil, apperror.NewInternal("failed to render qr code", err)
	}
	return png, nil
}

// editable loads the event and checks CanEditEvent. Non-participants see
// EventNotFound, participants without rights Forbidden.
func (s *EventService) editable(ctx context.Context, userID, eventID string) (*models.Event, error) {
	event, err := s.GetEvent(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}
	if !CanEditEvent(event, userID) {
		return nil, apperror.NewForbidden("only event admins can do this")
	}
	return event, nil
}

func (s *EventService) load(ctx context.Context, eventID string) (*models.Event, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NewEventNotFound(err)
		}
		return nil, apperror.NewDatabaseError("failed to load event", err)
	}
	return event, nil
}

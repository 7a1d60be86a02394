package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/sefazor/groupslot-backend/internal/apperror"
	"github.com/sefazor/groupslot-backend/internal/repository"
)

// CascadeService keeps references consistent when users or events go away.
// Every step runs in the caller's transaction, or in a new one.
type CascadeService struct {
	tx             Transactor
	users          UserStore
	events         EventStore
	availabilities AvailabilityStore
	logger         *zap.Logger
}

func NewCascadeService(tx Transactor, users UserStore, events EventStore, availabilities AvailabilityStore, logger *zap.Logger) *CascadeService {
	return &CascadeService{
		tx:             tx,
		users:          users,
		events:         events,
		availabilities: availabilities,
		logger:         logger.Named("cascade"),
	}
}

// DeleteUser removes a user and every reference to it:
//  1. the user is pulled from each follower's following list
//  2. remaining follow edges owned by or pointing at the user are dropped
//  3. the user leaves every event; events left without participants are deleted
//  4. the user's availabilities and the user itself are deleted
func (c *CascadeService) DeleteUser(ctx context.Context, userID string) error {
	var emptied []string

	err := c.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := c.users.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperror.NewUserNotFound(err)
			}
			return err
		}

		for _, followerID := range user.FollowerIDs {
			if err := c.users.RemoveFollowing(ctx, followerID, user.ID); err != nil {
				return err
			}
		}
		if err := c.users.RemoveFollowEdges(ctx, user.ID); err != nil {
			return err
		}

		for _, eventID := range user.EventIDs {
			if err := c.events.RemoveParticipant(ctx, eventID, user.ID); err != nil {
				return err
			}
			deleted, err := c.ReconcileEmpty(ctx, eventID)
			if err != nil {
				return err
			}
			if deleted {
				emptied = append(emptied, eventID)
			}
		}

		if err := c.availabilities.DeleteByUser(ctx, user.ID); err != nil {
			return err
		}
		return c.users.Delete(ctx, user.ID)
	})
	if err != nil {
		return asDatabaseError("failed to delete user", err)
	}

	c.logger.Info("user deleted",
		zap.String("user_id", userID),
		zap.Strings("emptied_events", emptied),
	)
	return nil
}

// ReconcileEmpty deletes the event when it has no participants left and
// reports whether it did. It is the explicit step that follows any write
// removing participants.
func (c *CascadeService) ReconcileEmpty(ctx context.Context, eventID string) (bool, error) {
	deleted := false
	err := c.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		count, err := c.events.CountParticipants(ctx, eventID)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		if err := c.events.Delete(ctx, eventID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		deleted = true
		return nil
	})
	if err != nil {
		return false, asDatabaseError("failed to reconcile event", err)
	}
	if deleted {
		c.logger.Info("event deleted, no participants left", zap.String("event_id", eventID))
	}
	return deleted, nil
}

// DeleteEvent removes the event and its membership, which drops it from
// every former participant's event list.
func (c *CascadeService) DeleteEvent(ctx context.Context, eventID string) error {
	err := c.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return c.events.Delete(ctx, eventID)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NewEventNotFound(err)
	}
	if err != nil {
		return asDatabaseError("failed to delete event", err)
	}
	c.logger.Info("event deleted", zap.String("event_id", eventID))
	return nil
}

// asDatabaseError keeps domain errors as they are and wraps anything else.
func asDatabaseError(message string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperror.FromError(err); ok {
		return err
	}
	return apperror.NewDatabaseError(message, err)
}

package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/sefazor/groupslot-backend/internal/apperror"
	"github.com/sefazor/groupslot-backend/internal/config"
	"github.com/sefazor/groupslot-backend/internal/models"
	"github.com/sefazor/groupslot-backend/internal/repository"
)

type UserService struct {
	tx         Transactor
	users      UserStore
	events     EventStore
	avails     AvailabilityStore
	cascade    *CascadeService
	hasher     PasswordHasher
	userCodes  *CodeGenerator
	qr         QRRenderer
	followMode string
	logger     *zap.Logger
}

func NewUserService(
	tx Transactor,
	users UserStore,
	events EventStore,
	avails AvailabilityStore,
	cascade *CascadeService,
	hasher PasswordHasher,
	userCodes *CodeGenerator,
	qr QRRenderer,
	followMode string,
	logger *zap.Logger,
) *UserService {
	if followMode != config.FollowModeDirected {
		followMode = config.FollowModeMirror
	}
	return &UserService{
		tx:         tx,
		users:      users,
		events:     events,
		avails:     avails,
		cascade:    cascade,
		hasher:     hasher,
		userCodes:  userCodes,
		qr:         qr,
		followMode: followMode,
		logger:     logger.Named("user"),
	}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NewUserNotFound(err)
		}
		return nil, apperror.NewDatabaseError("failed to load user", err)
	}
	return user, nil
}

// UpdateProfile applies a username change unconditionally. A password change
// needs the current password to match.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		user.Username = strings.TrimSpace(*req.Username)
	}

	if req.NewPassword != "" {
		if !s.hasher.ComparePassword(user.Password, req.OldPassword) {
			return nil, apperror.NewInvalidCredentials()
		}
		hashedPassword, err := s.hasher.HashPassword(req.NewPassword)
		if err != nil {
			return nil, apperror.NewHashingError(err)
		}
		user.Password = hashedPassword
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NewUserNotFound(err)
		}
		return nil, apperror.NewDatabaseError("failed to update user", err)
	}
	return user, nil
}

// RegenerateUserCode replaces the caller's user code. The old code stops
// resolving immediately.
func (s *UserService) RegenerateUserCode(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	previous := user.UserCode
	_, err = s.userCodes.Claim(ctx, s.users.UserCodeExists, func(ctx context.Context, code string) error {
		user.UserCode = code
		return s.users.Update(ctx, user)
	})
	if err != nil {
		return nil, asDatabaseError("failed to update user code", err)
	}

	s.logger.Info("user code regenerated",
		zap.String("user_id", user.ID),
		zap.String("previous", previous),
	)
	return user, nil
}

// GetByUserCode resolves a friend code to the public view of a confirmed user.
func (s *UserService) GetByUserCode(ctx context.Context, code string) (*models.PublicUser, error) {
	user, err := s.users.GetByUserCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NewUserNotFound(err)
		}
		return nil, apperror.NewDatabaseError("failed to look up user", err)
	}
	if !user.Confirmed {
		return nil, apperror.NewUserNotFound(nil)
	}
	public := user.Public()
	return &public, nil
}

func (s *UserService) Follow(ctx context.Context, userID, targetID string) (*models.User, error) {
	return s.changeFollow(ctx, userID, targetID, true)
}

func (s *UserService) Unfollow(ctx context.Context, userID, targetID string) (*models.User, error) {
	return s.changeFollow(ctx, userID, targetID, false)
}

// changeFollow writes both sides of a follow edge in one transaction.
//
// In mirror mode each user lands in the other's following list and the
// followers lists are left alone. In directed mode the follower's following
// list gets the target and the target's followers list gets the follower.
func (s *UserService) changeFollow(ctx context.Context, userID, targetID string, follow bool) (*models.User, error) {
	if userID == targetID {
		return nil, apperror.NewValidation("cannot follow yourself")
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.users.GetByID(ctx, userID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperror.NewUnauthorized("account no longer exists")
			}
			return err
		}
		if _, err := s.users.GetByID(ctx, targetID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperror.NewUserNotFound(err)
			}
			return err
		}

		if follow {
			if err := s.users.AddFollowing(ctx, userID, targetID); err != nil {
				return err
			}
			if s.followMode == config.FollowModeDirected {
				return s.users.AddFollower(ctx, targetID, userID)
			}
			return s.users.AddFollowing(ctx, targetID, userID)
		}

		if err := s.users.RemoveFollowing(ctx, userID, targetID); err != nil {
			return err
		}
		if s.followMode == config.FollowModeDirected {
			return s.users.RemoveFollower(ctx, targetID, userID)
		}
		return s.users.RemoveFollowing(ctx, targetID, userID)
	})
	if err != nil {
		return nil, asDatabaseError("failed to update follow", err)
	}

	return s.GetProfile(ctx, userID)
}

func (s *UserService) ListEvents(ctx context.Context, userID string) ([]models.Event, error) {
	events, err := s.events.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list events", err)
	}
	if events == nil {
		events = []models.Event{}
	}
	return events, nil
}

func (s *UserService) ListAvailabilities(ctx context.Context, userID string) ([]models.Availability, error) {
	availabilities, err := s.avails.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list availabilities", err)
	}
	if availabilities == nil {
		availabilities = []models.Availability{}
	}
	return availabilities, nil
}

func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	return s.cascade.DeleteUser(ctx, userID)
}

// FriendQRCode renders the caller's friend link as a PNG.
func (s *UserService) FriendQRCode(ctx context.Context, userID string) ([]byte, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	png, err := s.qr.GenerateQRCode(user.UserCode)
	if err != nil {
		return nil, apperror.NewInternal("failed to render qr code", err)
	}
	return png, nil
}

package controller

import (
	"context"

	"github.com/sefazor/groupslot-backend/internal/apperror"
	"github.com/sefazor/groupslot-backend/internal/models"
	"github.com/sefazor/groupslot-backend/internal/service"
	"github.com/sefazor/groupslot-backend/pkg/utils"
)

type UserController struct {
	userService       *service.UserService
	validator         *utils.Validator
	minPasswordLength int
}

func NewUserController(userService *service.UserService, validator *utils.Validator, minPasswordLength int) *UserController {
	return &UserController{
		userService:       userService,
		validator:         validator,
		minPasswordLength: minPasswordLength,
	}
}

func (c *UserController) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return c.userService.GetProfile(ctx, userID)
}

func (c *UserController) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.User, error) {
	if err := validate(c.validator, req); err != nil {
		return nil, err
	}
	if req.NewPassword != "" {
		if err := checkPassword(req.NewPassword, c.minPasswordLength); err != nil {
			return nil, err
		}
	}
	return c.userService.UpdateProfile(ctx, userID, req)
}

func (c *UserController) DeleteAccount(ctx context.Context, userID string) error {
	return c.userService.DeleteAccount(ctx, userID)
}

func (c *UserController) RegenerateUserCode(ctx context.Context, userID string) (*models.User, error) {
	return c.userService.RegenerateUserCode(ctx, userID)
}

func (c *UserController) GetByUserCode(ctx context.Context, code string) (*models.PublicUser, error) {
	return c.userService.GetByUserCode(ctx, code)
}

func (c *UserController) Follow(ctx context.Context, userID, targetID string) (*models.User, error) {
	if err := checkID(targetID, apperror.NewUserNotFound); err != nil {
		return nil, err
	}
	return c.userService.Follow(ctx, userID, targetID)
}

func (c *UserController) Unfollow(ctx context.Context, userID, targetID string) (*models.User, error) {
	if err := checkID(targetID, apperror.NewUserNotFound); err != nil {
		return nil, err
	}
	return c.userService.Unfollow(ctx, userID, targetID)
}

func (c *UserController) ListEvents(ctx context.Context, userID string) ([]models.Event, error) {
	return c.userService.ListEvents(ctx, userID)
}

func (c *UserController) ListAvailabilities(ctx context.Context, userID string) ([]models.Availability, error) {
	return c.userService.ListAvailabilities(ctx, userID)
}

func (c *UserController) FriendQRCode(ctx context.Context, userID string) ([]byte, error) {
	return c.userService.FriendQRCode(ctx, userID)
}

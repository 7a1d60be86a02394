package controller

import (
	"context"

	"github.com/sefazor/groupslot-backend/internal/apperror"
	"github.com/sefazor/groupslot-backend/internal/models"
	"github.com/sefazor/groupslot-backend/internal/service"
	"github.com/sefazor/groupslot-backend/pkg/utils"
)

type AuthController struct {
	authService       *service.AuthService
	validator         *utils.Validator
	minPasswordLength int
}

func NewAuthController(authService *service.AuthService, validator *utils.Validator, minPasswordLength int) *AuthController {
	return &AuthController{
		authService:       authService,
		validator:         validator,
		minPasswordLength: minPasswordLength,
	}
}

func (c *AuthController) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if err := validate(c.validator, req); err != nil {
		return nil, err
	}
	if req.Password != req.ConfirmPassword {
		return nil, apperror.NewValidation("passwords do not match")
	}
	if err := checkPassword(req.Password, c.minPasswordLength); err != nil {
		return nil, err
	}
	return c.authService.Register(ctx, req)
}

func (c *AuthController) Confirm(ctx context.Context, code string) (*models.User, error) {
	if code == "" {
		return nil, apperror.NewMissingFields("missing confirmation code")
	}
	return c.authService.Confirm(ctx, code)
}

func (c *AuthController) ResendConfirmation(ctx context.Context, req models.ResendConfirmationRequest) error {
	if err := validate(c.validator, req); err != nil {
		return err
	}
	return c.authService.ResendConfirmation(ctx, req.Email)
}

func (c *AuthController) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	if err := validate(c.validator, req); err != nil {
		return nil, err
	}
	return c.authService.Login(ctx, req)
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sefazor/groupslot-backend/internal/apperror"
	"github.com/sefazor/groupslot-backend/internal/models"
	"github.com/sefazor/groupslot-backend/internal/repository"
)

type AuthSettings struct {
	UnconfirmedUserTTL  time.Duration
	ConfirmationBaseURL string
}

type AuthService struct {
	users     UserStore
	cascade   *CascadeService
	hasher    PasswordHasher
	tokens    TokenIssuer
	mailer    ConfirmationSender
	userCodes *CodeGenerator
	settings  AuthSettings
	logger    *zap.Logger
	now       func() time.Time
}

func NewAuthService(
	users UserStore,
	cascade *CascadeService,
	hasher PasswordHasher,
	tokens TokenIssuer,
	mailer ConfirmationSender,
	userCodes *CodeGenerator,
	settings AuthSettings,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		cascade:   cascade,
		hasher:    hasher,
		tokens:    tokens,
		mailer:    mailer,
		userCodes: userCodes,
		settings:  settings,
		logger:    logger.Named("auth"),
		now:       time.Now,
	}
}

// Register creates an unconfirmed account and mails its confirmation link.
// The request is expected to be validated already.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)

	existing, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Confirmed {
			return nil, apperror.NewEmailAlreadyExists()
		}
		if !existing.Expired(s.now()) {
			s.sendConfirmation(existing)
			return nil, apperror.NewUserNotConfirmed("user not confirmed, confirmation email sent again")
		}
		// Expired but not purged yet: clear it and register from scratch.
		if err := s.cascade.DeleteUser(ctx, existing.ID); err != nil && !apperror.Is(err, apperror.UserNotFound) {
			return nil, err
		}
	case errors.Is(err, repository.ErrNotFound):
	default:
		return nil, apperror.NewDatabaseError("failed to look up user", err)
	}

	hashedPassword, err := s.hasher.HashPassword(req.Password)
	if err != nil {
		return nil, apperror.NewHashingError(err)
	}

	now := s.now()
	expiresAt := now.Add(s.settings.UnconfirmedUserTTL)
	user := &models.User{
		ID:               uuid.New().String(),
		Username:         strings.TrimSpace(req.Username),
		Email:            email,
		Password:         hashedPassword,
		Confirmed:        false,
		RegistrationDate: now,
		ExpirationDate:   &expiresAt,
	}

	_, err = s.userCodes.Claim(ctx, s.users.UserCodeExists, func(ctx context.Context, code string) error {
		user.UserCode = code
		err := s.users.Create(ctx, user)
		if errors.Is(err, repository.ErrDuplicateKey) {
			// The unique index on email fired, not the one on user_code.
			if existing, lookupErr := s.users.GetByEmail(ctx, email); lookupErr == nil {
				if !existing.Confirmed {
					return apperror.NewUserNotConfirmed("user not confirmed")
				}
				return apperror.NewEmailAlreadyExists()
			}
		}
		return err
	})
	if err != nil {
		return nil, asDatabaseError("failed to create user", err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))
	s.sendConfirmation(user)

	created, err := s.users.GetByID(ctx, user.ID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to load user", err)
	}
	return created, nil
}

// Confirm moves the account owning code to the confirmed state and disarms its expiry.
func (s *AuthService) Confirm(ctx context.Context, code string) (*models.User, error) {
	user, err := s.users.GetByUserCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NewInvalidConfirmationCode()
		}
		return nil, apperror.NewDatabaseError("failed to look up user", err)
	}
	if user.Confirmed {
		return nil, apperror.NewUserAlreadyConfirmed()
	}
	if user.Expired(s.now()) {
		return nil, apperror.NewInvalidConfirmationCode()
	}

	user.Confirmed = true
	user.ExpirationDate = nil
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperror.NewDatabaseError("failed to confirm user", err)
	}

	s.logger.Info("user confirmed", zap.String("user_id", user.ID))
	return user, nil
}

func (s *AuthService) ResendConfirmation(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NewUserNotFound(err)
		}
		return apperror.NewDatabaseError("failed to look up user", err)
	}
	if user.Confirmed {
		return apperror.NewUserAlreadyConfirmed()
	}
	if user.Expired(s.now()) {
		return apperror.NewUserNotFound(nil)
	}

	if err := s.mailer.SendConfirmationEmail(user.Email, s.confirmationLink(user)); err != nil {
		return apperror.NewInternal("failed to send confirmation email", err)
	}
	return nil
}

// Login verifies the credentials and issues a token whose lifetime depends on
// StayLoggedIn.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NewInvalidCredentials()
		}
		return nil, apperror.NewDatabaseError("failed to look up user", err)
	}

	if !s.hasher.ComparePassword(user.Password, req.Password) {
		return nil, apperror.NewInvalidCredentials()
	}
	if !user.Confirmed {
		return nil, apperror.NewUserNotConfirmed("user not confirmed")
	}

	token, expiresAt, err := s.tokens.GenerateToken(user.ID, req.StayLoggedIn)
	if err != nil {
		return nil, apperror.NewInternal("token generation failed", err)
	}

	return &models.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      *user,
	}, nil
}

// sendConfirmation logs delivery failures; the account stays valid and the
// link can be requested again.
func (s *AuthService) sendConfirmation(user *models.User) {
	if err := s.mailer.SendConfirmationEmail(user.Email, s.confirmationLink(user)); err != nil {
		s.logger.Warn("confirmation email not sent", zap.String("user_id", user.ID), zap.Error(err))
	}
}

func (s *AuthService) confirmationLink(user *models.User) string {
	return s.settings.ConfirmationBaseURL + "/users/confirm/" + user.UserCode
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

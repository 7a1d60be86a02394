package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/sefazor/groupslot-backend/internal/apperror"
	"github.com/sefazor/groupslot-backend/internal/models"
	"github.com/sefazor/groupslot-backend/internal/repository"
	jwtPkg "github.com/sefazor/groupslot-backend/pkg/jwt"
)

// SessionUserKey must match the key the login handler writes.
const SessionUserKey = "user_id"

// UserFinder resolves the authenticated user id to a stored account.
type UserFinder interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// AuthMiddleware accepts a session cookie or an "Authorization: Bearer" token
// and stores the user id in Locals("userID"). Credentials of a deleted account
// are rejected.
func AuthMiddleware(sessions *session.Store, tokens *jwtPkg.Issuer, users UserFinder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := authenticate(c, sessions, tokens)
		if err != nil {
			return err
		}

		if _, err := users.GetByID(c.UserContext(), userID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperror.NewUnauthorized("account no longer exists")
			}
			return apperror.NewDatabaseError("failed to load user", err)
		}

		c.Locals("userID", userID)
		return c.Next()
	}
}

func authenticate(c *fiber.Ctx, sessions *session.Store, tokens *jwtPkg.Issuer) (string, error) {
	if sess, err := sessions.Get(c); err == nil {
		if userID, ok := sess.Get(SessionUserKey).(string); ok && userID != "" {
			return userID, nil
		}
	}

	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", apperror.NewUnauthorized("authentication required")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", apperror.NewUnauthorized("invalid authorization header format")
	}

	claims, err := tokens.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return "", apperror.New(apperror.Unauthorized, "invalid token", err)
	}
	return claims.UserID, nil
}

package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sefazor/groupslot-backend/internal/apperror"
	"github.com/sefazor/groupslot-backend/internal/models"
)

// ErrorHandler turns errors returned by handlers into the response envelope.
// Domain errors carry their own status; everything else is a 500 whose
// details stay in the log.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if appErr, ok := apperror.FromError(err); ok {
			status := appErr.StatusCode()
			if status >= fiber.StatusInternalServerError {
				logger.Error("request failed",
					zap.String("method", c.Method()),
					zap.String("path", c.Path()),
					zap.String("kind", appErr.Kind.String()),
					zap.Error(err),
				)
			}
			return c.Status(status).JSON(models.CodedErrorResponse(appErr.Message, appErr.Kind.String()))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(models.ErrorResponse(fiberErr.Message))
		}

		logger.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(
			models.CodedErrorResponse("internal server error", apperror.Internal.String()),
		)
	}
}

// currentUserID returns the id the auth middleware stored for the request.
func currentUserID(c *fiber.Ctx) (string, error) {
	userID, ok := c.Locals("userID").(string)
	if !ok || userID == "" {
		return "", apperror.NewUnauthorized("user not authenticated")
	}
	return userID, nil
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return apperror.NewValidation("invalid request body")
	}
	return nil
}

package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/sefazor/groupslot-backend/internal/apperror"
	"github.com/sefazor/groupslot-backend/internal/controller"
	"github.com/sefazor/groupslot-backend/internal/middleware"
	"github.com/sefazor/groupslot-backend/internal/models"
)

// SessionUserKey is the session field holding the logged-in user id.
const SessionUserKey = middleware.SessionUserKey

type AuthHandler struct {
	authController *controller.AuthController
	sessions       *session.Store
}

func NewAuthHandler(authController *controller.AuthController, sessions *session.Store) *AuthHandler {
	return &AuthHandler{
		authController: authController,
		sessions:       sessions,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.authController.Register(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(user, "User registered, confirmation email sent"))
}

func (h *AuthHandler) Confirm(c *fiber.Ctx) error {
	user, err := h.authController.Confirm(c.UserContext(), c.Params("userCode"))
	if err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(user, "User confirmed"))
}

func (h *AuthHandler) ResendConfirmation(c *fiber.Ctx) error {
	var req models.ResendConfirmationRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.authController.ResendConfirmation(c.UserContext(), req); err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(nil, "Confirmation email sent"))
}

// Login starts a server-side session and also returns the signed token. The
// session cookie lives exactly as long as the token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	resp, err := h.authController.Login(c.UserContext(), req)
	if err != nil {
		return err
	}

	sess, err := h.sessions.Get(c)
	if err != nil {
		return apperror.NewInternal("failed to open session", err)
	}
	if err := sess.Regenerate(); err != nil {
		return apperror.NewInternal("failed to open session", err)
	}
	sess.Set(SessionUserKey, resp.User.ID)
	sess.SetExpiry(time.Until(resp.ExpiresAt))
	if err := sess.Save(); err != nil {
		return apperror.NewInternal("failed to save session", err)
	}

	return c.JSON(models.SuccessResponse(resp, "Login successful"))
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, err := h.sessions.Get(c)
	if err != nil {
		return apperror.NewInternal("failed to open session", err)
	}
	if err := sess.Destroy(); err != nil {
		return apperror.NewInternal("failed to destroy session", err)
	}
	return c.JSON(models.SuccessResponse(nil, "Logged out"))
}

package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/sefazor/groupslot-backend/internal/apperror"
	"github.com/sefazor/groupslot-backend/internal/controller"
	"github.com/sefazor/groupslot-backend/internal/models"
)

type UserHandler struct {
	userController *controller.UserController
	sessions       *session.Store
}

func NewUserHandler(userController *controller.UserController, sessions *session.Store) *UserHandler {
	return &UserHandler{
		userController: userController,
		sessions:       sessions,
	}
}

func (h *UserHandler) GetMyProfile(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	user, err := h.userController.GetProfile(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(user, ""))
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req models.UpdateProfileRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.userController.UpdateProfile(c.UserContext(), userID, req)
	if err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(user, "Profile updated"))
}

func (h *UserHandler) DeleteAccount(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	if err := h.userController.DeleteAccount(c.UserContext(), userID); err != nil {
		return err
	}

	sess, err := h.sessions.Get(c)
	if err != nil {
		return apperror.NewInternal("failed to open session", err)
	}
	if err := sess.Destroy(); err != nil {
		return apperror.NewInternal("failed to destroy session", err)
	}
	return c.JSON(models.SuccessResponse(nil, "Account deleted"))
}

func (h *UserHandler) RegenerateUserCode(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	user, err := h.userController.RegenerateUserCode(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(fiber.Map{"user_code": user.UserCode}, "User code regenerated"))
}

func (h *UserHandler) GetByUserCode(c *fiber.Ctx) error {
	user, err := h.userController.GetByUserCode(c.UserContext(), c.Params("userCode"))
	if err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(user, ""))
}

func (h *UserHandler) Follow(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	user, err := h.userController.Follow(c.UserContext(), userID, c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(user, "Following user"))
}

func (h *UserHandler) Unfollow(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	user, err := h.userController.Unfollow(c.UserContext(), userID, c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(user, "Unfollowed user"))
}

func (h *UserHandler) GetMyEvents(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	events, err := h.userController.ListEvents(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(events, ""))
}

func (h *UserHandler) GetMyAvailabilities(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	availabilities, err := h.userController.ListAvailabilities(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(availabilities, ""))
}

func (h *UserHandler) GetMyQRCode(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	png, err := h.userController.FriendQRCode(c.UserContext(), userID)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

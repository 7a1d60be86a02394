package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sefazor/groupslot-backend/internal/controller"
	"github.com/sefazor/groupslot-backend/internal/models"
)

type AvailabilityHandler struct {
	availabilityController *controller.AvailabilityController
}

func NewAvailabilityHandler(availabilityController *controller.AvailabilityController) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityController: availabilityController,
	}
}

// PutAvailability answers 201 when the id was new and 200 when it replaced a record.
func (h *AvailabilityHandler) PutAvailability(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req models.AvailabilityRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	availability, created, err := h.availabilityController.Upsert(c.UserContext(), userID, c.Params("id"), req)
	if err != nil {
		return err
	}
	if created {
		return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(availability, "Availability created"))
	}
	return c.JSON(models.SuccessResponse(availability, "Availability updated"))
}

func (h *AvailabilityHandler) GetAvailability(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	availability, err := h.availabilityController.Get(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(availability, ""))
}

func (h *AvailabilityHandler) ListAvailabilities(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	availabilities, err := h.availabilityController.List(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(availabilities, ""))
}

func (h *AvailabilityHandler) DeleteAvailability(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	if err := h.availabilityController.Delete(c.UserContext(), userID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(nil, "Availability deleted"))
}

package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sefazor/groupslot-backend/internal/controller"
	"github.com/sefazor/groupslot-backend/internal/models"
)

type EventHandler struct {
	eventController *controller.EventController
}

func NewEventHandler(eventController *controller.EventController) *EventHandler {
	return &EventHandler{
		eventController: eventController,
	}
}

func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req models.EventRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	event, err := h.eventController.CreateEvent(c.UserContext(), userID, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(event, "Event created successfully"))
}

func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	event, err := h.eventController.GetEvent(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(event, ""))
}

func (h *EventHandler) GetUserEvents(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	events, err := h.eventController.ListEvents(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(events, ""))
}

func (h *EventHandler) UpdateEvent(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req models.UpdateEventRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	event, err := h.eventController.UpdateEvent(c.UserContext(), userID, c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(event, "Event updated successfully"))
}

func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	if err := h.eventController.DeleteEvent(c.UserContext(), userID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(nil, "Event deleted successfully"))
}

func (h *EventHandler) JoinEvent(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	event, err := h.eventController.JoinByCode(c.UserContext(), userID, c.Params("eventCode"))
	if err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(event, "Joined event"))
}

func (h *EventHandler) LeaveEvent(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	deleted, err := h.eventController.Leave(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(fiber.Map{"event_deleted": deleted}, "Left event"))
}

func (h *EventHandler) RemoveParticipant(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	deleted, err := h.eventController.RemoveParticipant(c.UserContext(), userID, c.Params("id"), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(fiber.Map{"event_deleted": deleted}, "Participant removed"))
}

func (h *EventHandler) AddAdmin(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	event, err := h.eventController.AddAdmin(c.UserContext(), userID, c.Params("id"), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(event, "Admin added"))
}

func (h *EventHandler) RemoveAdmin(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	event, err := h.eventController.RemoveAdmin(c.UserContext(), userID, c.Params("id"), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(event, "Admin removed"))
}

func (h *EventHandler) GetEventQRCode(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	png, err := h.eventController.QRCode(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

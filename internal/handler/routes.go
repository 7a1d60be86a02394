package handler

import (
	"github.com/gofiber/fiber/v2"
)

type Router struct {
	Auth         *AuthHandler
	User         *UserHandler
	Event        *EventHandler
	Availability *AvailabilityHandler
}

func NewRouter(auth *AuthHandler, user *UserHandler, event *EventHandler, availability *AvailabilityHandler) *Router {
	return &Router{
		Auth:         auth,
		User:         user,
		Event:        event,
		Availability: availability,
	}
}

// Register mounts every route on r. protect guards the routes that need a
// logged-in user, human guards account creation.
func (rt *Router) Register(r fiber.Router, protect, human fiber.Handler) {
	// Public routes
	users := r.Group("/users")
	users.Post("/", human, rt.Auth.Register)
	users.Get("/confirm/:userCode", rt.Auth.Confirm)
	users.Post("/confirm/resend", rt.Auth.ResendConfirmation)
	users.Post("/session", rt.Auth.Login)
	users.Delete("/session", rt.Auth.Logout)

	// Protected routes
	users.Get("/me", protect, rt.User.GetMyProfile)
	users.Patch("/me", protect, rt.User.UpdateProfile)
	users.Delete("/me", protect, rt.User.DeleteAccount)
	users.Get("/me/qrcode", protect, rt.User.GetMyQRCode)
	users.Post("/code", protect, rt.User.RegenerateUserCode)
	users.Get("/code/:userCode", protect, rt.User.GetByUserCode)
	users.Post("/follow/:userId", protect, rt.User.Follow)
	users.Delete("/follow/:userId", protect, rt.User.Unfollow)
	users.Get("/events", protect, rt.User.GetMyEvents)
	users.Get("/availabilities", protect, rt.User.GetMyAvailabilities)

	events := r.Group("/events", protect)
	events.Post("/", rt.Event.CreateEvent)
	events.Get("/", rt.Event.GetUserEvents)
	events.Post("/join/:eventCode", rt.Event.JoinEvent)
	events.Get("/:id", rt.Event.GetEvent)
	events.Patch("/:id", rt.Event.UpdateEvent)
	events.Delete("/:id", rt.Event.DeleteEvent)
	events.Get("/:id/qrcode", rt.Event.GetEventQRCode)
	events.Delete("/:id/participants/me", rt.Event.LeaveEvent)
	events.Delete("/:id/participants/:userId", rt.Event.RemoveParticipant)
	events.Post("/:id/admins/:userId", rt.Event.AddAdmin)
	events.Delete("/:id/admins/:userId", rt.Event.RemoveAdmin)

	availabilities := r.Group("/availabilities", protect)
	availabilities.Get("/", rt.Availability.ListAvailabilities)
	availabilities.Put("/:id", rt.Availability.PutAvailability)
	availabilities.Get("/:id", rt.Availability.GetAvailability)
	availabilities.Delete("/:id", rt.Availability.DeleteAvailability)
}

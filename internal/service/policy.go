package service

import "github.com/sefazor/groupslot-backend/internal/models"

// CanEditEvent reports whether userID may change event. With no admins every
// participant may edit; otherwise only the listed admins.
func CanEditEvent(event *models.Event, userID string) bool {
	if event == nil || !event.HasParticipant(userID) {
		return false
	}
	if len(event.AdminIDs) == 0 {
		return true
	}
	return event.HasAdmin(userID)
}

package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{MissingFields, http.StatusBadRequest},
		{InvalidEmail, http.StatusBadRequest},
		{Validation, http.StatusBadRequest},
		{InvalidConfirmationCode, http.StatusBadRequest},
		{InvalidCredentials, http.StatusUnauthorized},
		{Unauthorized, http.StatusUnauthorized},
		{UserNotConfirmed, http.StatusForbidden},
		{Forbidden, http.StatusForbidden},
		{UserNotFound, http.StatusNotFound},
		{EventNotFound, http.StatusNotFound},
		{AvailabilityNotFound, http.StatusNotFound},
		{EmailAlreadyExists, http.StatusConflict},
		{UserAlreadyConfirmed, http.StatusConflict},
		{HashingError, http.StatusInternalServerError},
		{DatabaseError, http.StatusInternalServerError},
		{CodeSpaceExhausted, http.StatusInternalServerError},
		{Internal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := New(tt.kind, "x", nil).StatusCode(); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestIsFollowsWrapping(t *testing.T) {
	base := NewUserAlreadyConfirmed()
	wrapped := fmt.Errorf("confirm: %w", base)

	if !Is(wrapped, UserAlreadyConfirmed) {
		t.Fatal("expected wrapped error to match kind")
	}
	if Is(wrapped, UserNotConfirmed) {
		t.Fatal("unexpected kind match")
	}
	if Is(errors.New("plain"), Internal) {
		t.Fatal("plain errors carry no kind")
	}
}

func TestErrorMessageIncludesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewDatabaseError("failed to load user", cause)

	if err.Error() != "failed to load user: connection reset" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("expected Unwrap to expose the cause")
	}
}

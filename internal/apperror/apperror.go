// Package apperror defines the domain error taxonomy shared by services and handlers.
// Each error carries a Kind that the HTTP layer maps to a status code.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies a category of domain error.
type Kind int

const (
	Internal Kind = iota
	MissingFields
	InvalidEmail
	Validation
	InvalidCredentials
	Unauthorized
	Forbidden
	UserNotFound
	EventNotFound
	AvailabilityNotFound
	EmailAlreadyExists
	InvalidConfirmationCode
	UserAlreadyConfirmed
	UserNotConfirmed
	HashingError
	DatabaseError
	CodeSpaceExhausted
)

var kindNames = map[Kind]string{
	Internal:                "INTERNAL",
	MissingFields:           "MISSING_FIELDS",
	InvalidEmail:            "INVALID_EMAIL",
	Validation:              "VALIDATION",
	InvalidCredentials:      "INVALID_CREDENTIALS",
	Unauthorized:            "UNAUTHORIZED",
	Forbidden:               "FORBIDDEN",
	UserNotFound:            "USER_NOT_FOUND",
	EventNotFound:           "EVENT_NOT_FOUND",
	AvailabilityNotFound:    "AVAILABILITY_NOT_FOUND",
	EmailAlreadyExists:      "EMAIL_ALREADY_EXISTS",
	InvalidConfirmationCode: "INVALID_CONFIRMATION_CODE",
	UserAlreadyConfirmed:    "USER_ALREADY_CONFIRMED",
	UserNotConfirmed:        "USER_NOT_CONFIRMED",
	HashingError:            "HASHING_ERROR",
	DatabaseError:           "DATABASE_ERROR",
	CodeSpaceExhausted:      "CODE_SPACE_EXHAUSTED",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[Internal]
}

// AppError is the error type returned by the service layer.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error kind to an HTTP status.
func (e *AppError) StatusCode() int {
	switch e.Kind {
	case MissingFields, InvalidEmail, Validation, InvalidConfirmationCode:
		return http.StatusBadRequest
	case InvalidCredentials, Unauthorized:
		return http.StatusUnauthorized
	case UserNotConfirmed, Forbidden:
		return http.StatusForbidden
	case UserNotFound, EventNotFound, AvailabilityNotFound:
		return http.StatusNotFound
	case EmailAlreadyExists, UserAlreadyConfirmed:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// New creates an AppError of the given kind.
func New(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func NewMissingFields(message string) *AppError {
	return New(MissingFields, message, nil)
}

func NewInvalidEmail(message string) *AppError {
	return New(InvalidEmail, message, nil)
}

func NewValidation(message string) *AppError {
	return New(Validation, message, nil)
}

func NewInvalidCredentials() *AppError {
	return New(InvalidCredentials, "invalid email or password", nil)
}

func NewUnauthorized(message string) *AppError {
	return New(Unauthorized, message, nil)
}

func NewForbidden(message string) *AppError {
	return New(Forbidden, message, nil)
}

func NewUserNotFound(err error) *AppError {
	return New(UserNotFound, "user not found", err)
}

func NewEventNotFound(err error) *AppError {
	return New(EventNotFound, "event not found", err)
}

func NewAvailabilityNotFound(err error) *AppError {
	return New(AvailabilityNotFound, "availability not found", err)
}

func NewEmailAlreadyExists() *AppError {
	return New(EmailAlreadyExists, "email already exists", nil)
}

func NewInvalidConfirmationCode() *AppError {
	return New(InvalidConfirmationCode, "invalid or expired confirmation code", nil)
}

func NewUserAlreadyConfirmed() *AppError {
	return New(UserAlreadyConfirmed, "user already confirmed", nil)
}

func NewUserNotConfirmed(message string) *AppError {
	return New(UserNotConfirmed, message, nil)
}

func NewHashingError(err error) *AppError {
	return New(HashingError, "failed to hash password", err)
}

func NewDatabaseError(message string, err error) *AppError {
	return New(DatabaseError, message, err)
}

func NewCodeSpaceExhausted(err error) *AppError {
	return New(CodeSpaceExhausted, "could not allocate a unique code", err)
}

func NewInternal(message string, err error) *AppError {
	return New(Internal, message, err)
}

// FromError extracts the first AppError in err's chain.
func FromError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is reports whether err's chain contains an AppError of the given kind.
func Is(err error, kind Kind) bool {
	appErr, ok := FromError(err)
	return ok && appErr.Kind == kind
}

package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/sefazor/groupslot-backend/internal/apperror"
	"github.com/sefazor/groupslot-backend/pkg/utils"
)

// validate runs the struct tags and maps the first failure onto the error
// taxonomy: missing values become MissingFields, a bad email InvalidEmail.
func validate(v *utils.Validator, req interface{}) error {
	err := v.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperror.NewValidation(err.Error())
	}

	var missing []string
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		}
	}
	if len(missing) > 0 {
		return apperror.NewMissingFields("missing required fields: " + strings.Join(missing, ", "))
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "email":
		return apperror.NewInvalidEmail("invalid email address")
	case "notblank":
		return apperror.NewValidation(fmt.Sprintf("%s must not be blank", fe.Field()))
	case "code":
		return apperror.NewValidation(fmt.Sprintf("%s is not a valid code", fe.Field()))
	default:
		return apperror.NewValidation(fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
}

func checkPassword(password string, minLength int) error {
	if len(password) < minLength {
		return apperror.NewValidation(fmt.Sprintf("password must be at least %d characters", minLength))
	}
	return nil
}

// checkID rejects ids that cannot name a stored row. Callers pass the
// not-found constructor of the entity the id refers to.
func checkID(id string, notFound func(error) *apperror.AppError) error {
	if _, err := uuid.Parse(id); err != nil {
		return notFound(err)
	}
	return nil
}

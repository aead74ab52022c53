package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/SAP-F-2025/accounts-service/internal/models"
)

// Validator wraps the struct validator with the accounts-domain rules
// registered.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	validate := validator.New()

	// username: unicode letters, digits and @/./+/-/_ only
	_ = validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return models.ValidUsername(fl.Field().String())
	})

	// usertype: one of the recognized role codes
	_ = validate.RegisterValidation("usertype", func(fl validator.FieldLevel) bool {
		return models.UserType(fl.Field().String()).Valid()
	})

	return &Validator{validate: validate}
}

// Struct validates any tagged struct and returns ValidationErrors on failure.
func (v *Validator) Struct(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidationError describes a single failed field rule.
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ValidationErrors aggregates field failures into one error value.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// ToValidationErrors converts validator library errors into the domain type.
func ToValidationErrors(err error) ValidationErrors {
	var out ValidationErrors
	if fieldErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrors {
			out = append(out, ValidationError{
				Field:   fe.Field(),
				Tag:     fe.Tag(),
				Message: messageFor(fe),
			})
		}
		return out
	}
	return ValidationErrors{{Message: err.Error()}}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "username":
		return fmt.Sprintf("%s may contain only letters, digits and @/./+/-/_", fe.Field())
	case "usertype":
		return fmt.Sprintf("%s is not a recognized user type", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "max":
		return fmt.Sprintf("%s may be at most %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

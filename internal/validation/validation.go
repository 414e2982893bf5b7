package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	// Report failures under the JSON field name, not the Go struct field.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// FieldError is one entry of the structured detail embedded in a 400 response.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// CreateUserPayload defines the body schema for user registration.
type CreateUserPayload struct {
	Name     string `json:"name" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// UpdateUserPayload defines the partial-update schema; every field is
// independently optional, absent fields are left untouched.
type UpdateUserPayload struct {
	Name     *string `json:"name" validate:"omitempty,min=3"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

// CreateMealPayload defines the body schema for meal creation. Description
// and OnDiet are pointers so that a present-but-empty description and an
// explicit false are both accepted while absent fields still fail.
type CreateMealPayload struct {
	Name        string  `json:"name" validate:"required,min=3"`
	Description *string `json:"description" validate:"required"`
	OnDiet      *bool   `json:"on_diet" validate:"required"`
	UserID      string  `json:"user_id" validate:"required,uuid4"`
}

// Check validates a payload struct and returns the structured failure detail,
// or nil when the payload is valid.
func Check(payload any) []FieldError {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Rule: "invalid", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: messageFor(fe),
		})
	}
	return out
}

// CheckID validates a UUID-formatted path parameter. Failure is a 400, never
// a 404; a malformed id never reaches persistence.
func CheckID(id string) []FieldError {
	if _, err := uuid.Parse(id); err != nil {
		return []FieldError{{Field: "id", Rule: "uuid", Message: "id must be a valid UUID"}}
	}
	return nil
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "uuid4":
		return fmt.Sprintf("%s must be a valid UUID", fe.Field())
	default:
		return fmt.Sprintf("%s failed on the '%s' rule", fe.Field(), fe.Tag())
	}
}

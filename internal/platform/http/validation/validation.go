// Package validation turns request binding errors into client-facing messages.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	// TagBcryptMax rejects strings longer than bcrypt accepts.
	TagBcryptMax = "bcryptmax"
	// MaxPasswordBytes is bcrypt's input limit.
	MaxPasswordBytes = 72
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := Register(v); err != nil {
			panic(err)
		}
	}
}

// Register adds the custom rules to v. gin's validator gets them at package init.
func Register(v *validator.Validate) error {
	return v.RegisterValidation(TagBcryptMax, bcryptMax)
}

// bcryptMax counts bytes, not runes: a multi-byte password can pass max=72 and still be refused by bcrypt.
func bcryptMax(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= MaxPasswordBytes
}

// Message renders err returned by gin's ShouldBind* into a readable message.
// Field errors are listed in declaration order; anything else (malformed JSON,
// wrong types, empty body) collapses to a generic message.
func Message(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return "invalid request body"
	}

	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("the %s field is required", field)
	case "email":
		return fmt.Sprintf("the %s field must be a valid email address", field)
	case "min":
		return fmt.Sprintf("the %s field must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("the %s field must not be greater than %s characters", field, fe.Param())
	case TagBcryptMax:
		return fmt.Sprintf("the %s field must not be greater than %d bytes", field, MaxPasswordBytes)
	default:
		return fmt.Sprintf("the %s field is invalid", field)
	}
}

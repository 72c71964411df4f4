package util

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct validates a struct using validator tags
func ValidateStruct(s any) error {
	return validate.Struct(s)
}

// GetValidationErrors formats validation errors into readable messages
func GetValidationErrors(err error) []string {
	var messages []string
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return messages
	}
	for _, fieldError := range validationErrors {
		field := fieldError.Field()
		switch fieldError.Tag() {
		case "required":
			messages = append(messages, field+" is required")
		case "email":
			messages = append(messages, field+" must be a valid email")
		case "min":
			messages = append(messages, field+" must be at least "+fieldError.Param()+" characters")
		case "max":
			messages = append(messages, field+" must be at most "+fieldError.Param()+" characters")
		case "oneof":
			messages = append(messages, field+" must be one of: "+fieldError.Param())
		default:
			messages = append(messages, field+" is invalid")
		}
	}
	return messages
}

// FirstValidationError is the message controllers return to the client.
func FirstValidationError(err error) string {
	if messages := GetValidationErrors(err); len(messages) > 0 {
		return messages[0]
	}
	return "Invalid request"
}

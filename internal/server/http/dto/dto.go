package dto

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Validate checks a bound request payload against its struct tags.
func Validate(payload any) error {
	return validate.Struct(payload)
}

// ErrorResponse is the envelope rendered for every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// MessageResponse is the envelope for successes that only carry a note.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

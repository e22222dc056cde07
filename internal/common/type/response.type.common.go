package types

import (
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Response is what services hand back to handlers.
type Response struct {
	Code    int
	Message string
	Data    any
	Error   error
}

// ResponseAPI is the JSON envelope written to clients.
type ResponseAPI struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func ValidateStringToBool(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := strconv.ParseBool(value)
	return err == nil
}

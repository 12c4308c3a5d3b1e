package service

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/waxads/easy-grown/internal"
)

var validate = validator.New()

// Validate checks the `validate` tags on a request struct. Failures wrap
// internal.ErrInvalidInput.
func Validate(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", internal.ErrInvalidInput, err)
	}
	return nil
}

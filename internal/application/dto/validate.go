package dto

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/karigarverse/karigarverse-api/internal/domain"
)

var validate = validator.New()

// Validate checks struct tags and maps failures to domain.ErrInvalidInput so
// handlers can translate uniformly.
func Validate(s any) error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

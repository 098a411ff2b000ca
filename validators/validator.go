package validators

import (
	"github.com/go-playground/validator/v10"

	"github.com/sociallink-app/backend/internal/apperr"
)

// CustomValidator wraps go-playground/validator for echo's Validator hook.
type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate checks a bound request struct against its validate tags.
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return apperr.Wrap(apperr.BadRequest, err.Error(), err)
	}
	return nil
}

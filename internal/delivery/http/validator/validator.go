// Package validator adapts go-playground/validator to echo.Validator.
package validator

import (
	"campusnav/internal/domain/entity"
	"campusnav/internal/errors"

	"github.com/go-playground/validator/v10"
)

// Validator implements echo.Validator
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the campus-specific rules registered
func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterStructValidation(validateCoordinate, entity.Coordinate{})

	return &Validator{validate: validate}
}

// Validate returns validator.ValidationErrors with a stack when i fails its tags
func (v *Validator) Validate(i any) error {
	return errors.WithStack(v.validate.Struct(i))
}

func validateCoordinate(sl validator.StructLevel) {
	coordinate, ok := sl.Current().Interface().(entity.Coordinate)
	if !ok {
		return
	}
	if !coordinate.IsValid() {
		sl.ReportError(coordinate.Lat, "lat", "Lat", "coordinate", "")
	}
}

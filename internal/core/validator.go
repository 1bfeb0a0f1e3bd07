package core

import (
	"strconv"

	"github.com/go-playground/validator/v10"

	"agrismart/internal/types"
)

// Validator wraps go-playground/validator for request parameter checks.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator.
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// ParseLatitude parses and range-checks a latitude query parameter.
func (v *Validator) ParseLatitude(raw string) (float64, error) {
	lat, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, types.NewAppError(
			types.ErrCodeValidationInvalidLat,
			"lat must be a valid number",
			err,
		)
	}
	if err := v.validate.Var(lat, "min=-90,max=90"); err != nil {
		return 0, types.NewAppError(
			types.ErrCodeValidationInvalidLat,
			"lat must be within [-90, 90]",
			err,
		)
	}
	return lat, nil
}

// ParseLongitude parses and range-checks a longitude query parameter.
func (v *Validator) ParseLongitude(raw string) (float64, error) {
	lon, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, types.NewAppError(
			types.ErrCodeValidationInvalidLon,
			"lon must be a valid number",
			err,
		)
	}
	if err := v.validate.Var(lon, "min=-180,max=180"); err != nil {
		return 0, types.NewAppError(
			types.ErrCodeValidationInvalidLon,
			"lon must be within [-180, 180]",
			err,
		)
	}
	return lon, nil
}

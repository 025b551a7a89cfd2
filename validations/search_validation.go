package validations

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	pkgError "github.com/nextplot/nextplot-gw/pkg/error"
)

// ValidateSearchQuery bounds the free-form question. Empty is fine (the
// translator falls back to the latest listing).
func ValidateSearchQuery(q string) error {
	err := validation.Validate(q, validation.Length(0, 500))
	if err != nil {
		return pkgError.ValidationError("q: " + err.Error())
	}
	return nil
}

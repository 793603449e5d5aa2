package address

import (
	"strings"

	"bookstore-be/internal/apperror"
	"bookstore-be/internal/utils"
)

const (
	minRecipientLen = 2
	minStreetLen    = 3
	minCityLen      = 2
)

// Validate trims and normalizes in and reports every invalid field at once.
// The postal code is rewritten to XX-XXX and an empty country becomes
// DefaultCountry. Phone is optional.
func Validate(in *Input) error {
	var errs []*apperror.Error
	var ok bool

	if in.RecipientName, ok = utils.MinLen(in.RecipientName, minRecipientLen); !ok {
		errs = append(errs, ErrRecipientTooShort.With(minRecipientLen))
	}
	if in.Street, ok = utils.MinLen(in.Street, minStreetLen); !ok {
		errs = append(errs, ErrStreetTooShort.With(minStreetLen))
	}
	if in.City, ok = utils.MinLen(in.City, minCityLen); !ok {
		errs = append(errs, ErrCityTooShort.With(minCityLen))
	}

	if code, ok := utils.NormalizePostalCode(in.PostalCode); ok {
		in.PostalCode = code
	} else {
		errs = append(errs, ErrInvalidPostalCode)
	}

	in.Phone = strings.TrimSpace(in.Phone)
	if in.Phone != "" && !utils.ValidPhone(in.Phone) {
		errs = append(errs, ErrInvalidPhone)
	}

	in.Country = strings.TrimSpace(in.Country)
	if in.Country == "" {
		in.Country = DefaultCountry
	}

	return apperror.Join(errs...)
}

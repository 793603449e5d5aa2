package address

import "bookstore-be/internal/apperror"

var (
	ErrAddressNotFound = apperror.NotFound("address not found or does not belong to you")

	ErrRecipientTooShort = apperror.FieldError("recipient_name", "recipient name must be at least %d characters")
	ErrStreetTooShort    = apperror.FieldError("street", "street must be at least %d characters")
	ErrCityTooShort      = apperror.FieldError("city", "city must be at least %d characters")
	ErrInvalidPostalCode = apperror.FieldError("postal_code", "postal code must be in XX-XXX format")
	ErrInvalidPhone      = apperror.FieldError("phone", "phone number must contain 9 to 15 digits and only digits, spaces, dashes or +")
)

const (
	MsgAddressDeleted    = "address deleted"
	MsgAddressSetDefault = "address set as default"
)

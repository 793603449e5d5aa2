package order

import "bookstore-be/internal/apperror"

var (
	ErrOrderNotFound     = apperror.NotFound("order not found")
	ErrCartEmpty         = apperror.Validation("cart is empty")
	ErrGuestCartNotFound = apperror.Validation("cart not found, add products to the cart before checkout")
	ErrInsufficientStock = apperror.Validation("not enough stock for \"%s\", available: %d")

	ErrFirstNameTooShort = apperror.FieldError("first_name", "first name must be at least %d characters")
	ErrLastNameTooShort  = apperror.FieldError("last_name", "last name must be at least %d characters")
	ErrInvalidEmail      = apperror.FieldError("email", "enter a valid email address")
	ErrPhoneRequired     = apperror.FieldError("phone", "this field is required")
	ErrInvalidPhone      = apperror.FieldError("phone", "phone number must contain 9 to 15 digits and only digits, spaces, dashes or +")
)

const MsgOrderPlaced = "order placed successfully"

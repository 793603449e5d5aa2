package cart

import "bookstore-be/internal/apperror"

var (
	ErrCartNotFound      = apperror.NotFound("guest cart not found")
	ErrItemNotFound      = apperror.NotFound("item not found in cart")
	ErrProductRequired   = apperror.FieldError("product_id", "this field is required")
	ErrQuantityRequired  = apperror.FieldError("quantity", "this field is required")
	ErrInvalidQuantity   = apperror.FieldError("quantity", "quantity must be at least 1")
	ErrInsufficientStock = apperror.FieldError("quantity", "only %d available")
	ErrCannotAddMore     = apperror.FieldError("quantity", "cannot add %d more, only %d available")
)

const (
	MsgItemRemoved      = "item removed from cart"
	MsgCartCleared      = "cart cleared"
	MsgCartAlreadyEmpty = "cart is already empty"
)

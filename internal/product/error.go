package product

import "bookstore-be/internal/apperror"

var (
	ErrProductNotFound   = apperror.NotFound("product not found")
	ErrFormatRequired    = apperror.FieldError("selected_format", "you must choose a format (paperback or ebook) for this product")
	ErrFormatUnavailable = apperror.FieldError("selected_format", "this product is not available as %s")
)

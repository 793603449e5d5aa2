package vendorpanel

import "bookstore-be/internal/apperror"

var (
	ErrNoCompany          = apperror.Validation("user is not assigned to any vendor company")
	ErrFieldsNotAllowed   = apperror.Forbidden("you cannot edit the following fields: %s")
	ErrInvalidPageCount   = apperror.FieldError("page_count", "page count must be a positive number")
	ErrInvalidPublication = apperror.FieldError("publication_year", "publication year must be between %s and %s")
)

const MsgNoProducts = "no products for this vendor company"

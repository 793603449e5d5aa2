package payment

import "bookstore-be/internal/apperror"

var (
	ErrPaymentNotFound  = apperror.NotFound("payment not found")
	ErrMissingSignature = apperror.Validation("missing Stripe-Signature header")
	ErrInvalidPayload   = apperror.Validation("invalid payload")
	ErrInvalidSignature = apperror.Validation("invalid signature")
)

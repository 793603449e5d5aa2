package user

import "bookstore-be/internal/apperror"

var (
	ErrUserNotFound        = apperror.NotFound("user not found")
	ErrEmailExists         = apperror.FieldError("email", "a user with this email already exists")
	ErrInvalidEmail        = apperror.FieldError("email", "enter a valid email address")
	ErrCredentialsRequired = apperror.Validation("please provide both email and password")
	ErrInvalidCredentials  = apperror.Unauthorized("invalid credentials")
	ErrInvalidRefreshToken = apperror.Unauthorized("token is invalid or expired")

	ErrPasswordTooShort = apperror.FieldError("password", "password must be at least %d characters")
	ErrPasswordMismatch = apperror.FieldError("password", "passwords do not match")
	ErrInvalidPhone     = apperror.FieldError("phone", "phone number must contain 9 to 15 digits and only digits, spaces, dashes or +")

	ErrCompanyUnavailable = apperror.FieldError("company_id", "the selected company does not exist or is inactive")
	ErrInvalidAccessCode  = apperror.FieldError("company_access_code", "invalid access code for this company")

	ErrInvalidResetToken = apperror.FieldError("token", "invalid password reset token")
	ErrResetTokenUsed    = apperror.FieldError("token", "this token has already been used")
	ErrResetTokenExpired = apperror.FieldError("token", "token has expired, request a new password reset link")
)

// Messages returned on success.
const (
	MsgPasswordResetSent = "if an account with this email exists, we have sent a password reset link"
	MsgPasswordChanged   = "password changed successfully, you can now log in"
	MsgVendorRegistered  = "vendor account created successfully"
)

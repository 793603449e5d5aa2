package user

import (
	"crypto/subtle"
	"time"

	"github.com/google/uuid"
)

const (
	RoleCustomer = "customer"
	RoleVendor   = "vendor"
	RoleAdmin    = "admin"
)

const (
	MinPasswordLength = 8
	ResetTokenTTL     = time.Hour
)

type User struct {
	ID                uint
	Email             string
	PasswordHash      string
	FirstName         string
	LastName          string
	Phone             string
	Role              string
	VendorCompanyID   *uint
	VendorCompanyName *string
	IsActive          bool
	DateJoined        time.Time
}

type VendorCompany struct {
	ID          uint
	Name        string
	AccessCode  string
	Description *string
	IsActive    bool
	CreatedAt   time.Time
}

func (c *VendorCompany) VerifyAccessCode(code string) bool {
	return subtle.ConstantTimeCompare([]byte(c.AccessCode), []byte(code)) == 1
}

type PasswordResetToken struct {
	ID        uint
	UserID    uint
	Token     uuid.UUID
	CreatedAt time.Time
	ExpiresAt time.Time
	IsUsed    bool
	UsedAt    *time.Time
}

func (t *PasswordResetToken) IsValid(now time.Time) bool {
	return !t.IsUsed && now.Before(t.ExpiresAt)
}

type RegisterInput struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

type VendorRegisterInput struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	PasswordConfirm   string `json:"password_confirm"`
	CompanyID         uint   `json:"company_id"`
	CompanyAccessCode string `json:"company_access_code"`
}

type ResetPasswordInput struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

type UpdateProfileParams struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
}

type AuthResult struct {
	User   *User
	Access string
	// Refresh is empty for a token refresh.
	Refresh string
}

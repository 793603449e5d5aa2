package user

import "time"

type Response struct {
	ID                uint    `json:"id"`
	Email             string  `json:"email"`
	FirstName         string  `json:"first_name"`
	LastName          string  `json:"last_name"`
	Phone             string  `json:"phone"`
	Role              string  `json:"role"`
	VendorCompany     *uint   `json:"vendor_company"`
	VendorCompanyName *string `json:"vendor_company_name"`
	IsActive          bool    `json:"is_active"`
	DateJoined        string  `json:"date_joined"`
}

type CompanyResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type AuthResponse struct {
	User    Response `json:"user"`
	Access  string   `json:"access"`
	Refresh string   `json:"refresh,omitempty"`
	Message string   `json:"message,omitempty"`
}

func ToResponse(u *User) Response {
	return Response{
		ID:                u.ID,
		Email:             u.Email,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		Phone:             u.Phone,
		Role:              u.Role,
		VendorCompany:     u.VendorCompanyID,
		VendorCompanyName: u.VendorCompanyName,
		IsActive:          u.IsActive,
		DateJoined:        u.DateJoined.Format(time.RFC3339),
	}
}

func ToAuthResponse(res *AuthResult) AuthResponse {
	return AuthResponse{User: ToResponse(res.User), Access: res.Access, Refresh: res.Refresh}
}

func ToCompanyResponses(companies []*VendorCompany) []CompanyResponse {
	out := make([]CompanyResponse, 0, len(companies))
	for _, c := range companies {
		out = append(out, CompanyResponse{ID: c.ID, Name: c.Name, Description: c.Description})
	}
	return out
}

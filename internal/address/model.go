package address

import "time"

const DefaultCountry = "Polska"

type Address struct {
	ID            uint
	UserID        uint
	RecipientName string
	Street        string
	PostalCode    string
	City          string
	Country       string
	Phone         string
	IsDefault     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Input is a full address as submitted by a client. Guest checkout reuses it
// for the shipping address.
type Input struct {
	RecipientName string `json:"recipient_name"`
	Street        string `json:"street"`
	PostalCode    string `json:"postal_code"`
	City          string `json:"city"`
	Country       string `json:"country"`
	Phone         string `json:"phone"`
	IsDefault     bool   `json:"is_default"`
}

type PatchInput struct {
	RecipientName *string `json:"recipient_name"`
	Street        *string `json:"street"`
	PostalCode    *string `json:"postal_code"`
	City          *string `json:"city"`
	Country       *string `json:"country"`
	Phone         *string `json:"phone"`
	IsDefault     *bool   `json:"is_default"`
}

// Apply copies the set fields of p onto a.
func (p PatchInput) Apply(a *Address) Input {
	in := Input{
		RecipientName: a.RecipientName,
		Street:        a.Street,
		PostalCode:    a.PostalCode,
		City:          a.City,
		Country:       a.Country,
		Phone:         a.Phone,
		IsDefault:     a.IsDefault,
	}
	if p.RecipientName != nil {
		in.RecipientName = *p.RecipientName
	}
	if p.Street != nil {
		in.Street = *p.Street
	}
	if p.PostalCode != nil {
		in.PostalCode = *p.PostalCode
	}
	if p.City != nil {
		in.City = *p.City
	}
	if p.Country != nil {
		in.Country = *p.Country
	}
	if p.Phone != nil {
		in.Phone = *p.Phone
	}
	if p.IsDefault != nil {
		in.IsDefault = *p.IsDefault
	}
	return in
}

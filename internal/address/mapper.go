package address

import "time"

type Response struct {
	ID            uint   `json:"id"`
	RecipientName string `json:"recipient_name"`
	Street        string `json:"street"`
	PostalCode    string `json:"postal_code"`
	City          string `json:"city"`
	Country       string `json:"country"`
	Phone         string `json:"phone"`
	IsDefault     bool   `json:"is_default"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

func ToResponse(a *Address) Response {
	return Response{
		ID:            a.ID,
		RecipientName: a.RecipientName,
		Street:        a.Street,
		PostalCode:    a.PostalCode,
		City:          a.City,
		Country:       a.Country,
		Phone:         a.Phone,
		IsDefault:     a.IsDefault,
		CreatedAt:     a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     a.UpdatedAt.Format(time.RFC3339),
	}
}

func ToResponses(list []*Address) []Response {
	out := make([]Response, 0, len(list))
	for _, a := range list {
		out = append(out, ToResponse(a))
	}
	return out
}

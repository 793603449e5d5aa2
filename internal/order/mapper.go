package order

import (
	"strings"
	"time"

	"bookstore-be/internal/mailer"
)

type ItemResponse struct {
	ID                    uint   `json:"id"`
	Product               uint   `json:"product"`
	Title                 string `json:"title"`
	Author                string `json:"author"`
	Quantity              int    `json:"quantity"`
	Price                 string `json:"price"`
	SelectedFormat        string `json:"selected_format"`
	SelectedFormatDisplay string `json:"selected_format_display"`
	Subtotal              string `json:"subtotal"`
}

type GuestAddressResponse struct {
	RecipientName string `json:"recipient_name"`
	Street        string `json:"street"`
	PostalCode    string `json:"postal_code"`
	City          string `json:"city"`
	Country       string `json:"country"`
	Phone         string `json:"phone"`
}

type Response struct {
	ID                   uint                  `json:"id"`
	OrderType            string                `json:"order_type"`
	User                 *uint                 `json:"user,omitempty"`
	UserEmail            *string               `json:"user_email,omitempty"`
	UserAddress          *uint                 `json:"user_address,omitempty"`
	GuestEmail           string                `json:"guest_email,omitempty"`
	GuestFirstName       string                `json:"guest_first_name,omitempty"`
	GuestLastName        string                `json:"guest_last_name,omitempty"`
	GuestPhone           string                `json:"guest_phone,omitempty"`
	GuestAddress         *GuestAddressResponse `json:"guest_address,omitempty"`
	TotalAmount          string                `json:"total_amount"`
	PaymentStatus        string                `json:"payment_status"`
	PaymentStatusDisplay string                `json:"payment_status_display"`
	IsPaid               bool                  `json:"is_paid"`
	Items                []ItemResponse        `json:"items"`
	CreatedAt            string                `json:"created_at"`
	UpdatedAt            string                `json:"updated_at"`
}

type GuestCheckoutResponse struct {
	Message         string   `json:"message"`
	Order           Response `json:"order"`
	PaymentRequired bool     `json:"payment_required"`
	OrderID         uint     `json:"order_id"`
}

func ToResponse(o *Order) Response {
	items := make([]ItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, ItemResponse{
			ID:                    it.ID,
			Product:               it.ProductID,
			Title:                 it.Title,
			Author:                it.Author,
			Quantity:              it.Quantity,
			Price:                 it.Price.StringFixed(2),
			SelectedFormat:        string(it.SelectedFormat),
			SelectedFormatDisplay: it.SelectedFormat.Label(),
			Subtotal:              it.Subtotal().StringFixed(2),
		})
	}

	res := Response{
		ID:                   o.ID,
		OrderType:            string(o.OrderType),
		User:                 o.UserID,
		UserEmail:            o.UserEmail,
		UserAddress:          o.UserAddressID,
		GuestEmail:           o.GuestEmail,
		GuestFirstName:       o.GuestFirstName,
		GuestLastName:        o.GuestLastName,
		GuestPhone:           o.GuestPhone,
		TotalAmount:          o.TotalAmount.StringFixed(2),
		PaymentStatus:        string(o.PaymentStatus),
		PaymentStatusDisplay: o.PaymentStatus.Label(),
		IsPaid:               o.IsPaid(),
		Items:                items,
		CreatedAt:            o.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            o.UpdatedAt.Format(time.RFC3339),
	}
	if a := o.GuestAddress; a != nil {
		res.GuestAddress = &GuestAddressResponse{
			RecipientName: a.RecipientName,
			Street:        a.Street,
			PostalCode:    a.PostalCode,
			City:          a.City,
			Country:       a.Country,
			Phone:         a.Phone,
		}
	}
	return res
}

func ToResponses(orders []*Order) []Response {
	out := make([]Response, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToResponse(o))
	}
	return out
}

// ToOrderEmail builds the data of an order confirmation email.
func ToOrderEmail(o *Order) mailer.OrderEmail {
	e := mailer.OrderEmail{
		OrderID:       o.ID,
		CreatedAt:     o.CreatedAt,
		Email:         o.ContactEmail(),
		Total:         o.TotalAmount,
		PaymentStatus: o.PaymentStatus.Label(),
	}
	if o.OrderType == TypeGuest {
		e.FullName = strings.TrimSpace(o.GuestFirstName + " " + o.GuestLastName)
		e.Phone = o.GuestPhone
	}
	if a := o.GuestAddress; a != nil {
		e.Address = &mailer.AddressLines{
			RecipientName: a.RecipientName,
			Street:        a.Street,
			PostalCode:    a.PostalCode,
			City:          a.City,
			Country:       a.Country,
			Phone:         a.Phone,
		}
	}
	for _, it := range o.Items {
		e.Items = append(e.Items, mailer.OrderItemLine{
			Title:    it.Title,
			Format:   it.SelectedFormat.Label(),
			Quantity: it.Quantity,
			Subtotal: it.Subtotal(),
		})
	}
	return e
}

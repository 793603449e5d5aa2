package order

import (
	"time"

	"bookstore-be/internal/address"
	"bookstore-be/internal/product"

	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeUser  Type = "user"
	TypeGuest Type = "guest"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Label() string {
	switch s {
	case PaymentPending:
		return "Oczekuje na płatność"
	case PaymentPaid:
		return "Opłacone"
	case PaymentFailed:
		return "Płatność nieudana"
	case PaymentRefunded:
		return "Zwrócone"
	}
	return string(s)
}

type Order struct {
	ID            uint
	OrderType     Type
	UserID        *uint
	UserEmail     *string
	UserAddressID *uint

	GuestEmail     string
	GuestFirstName string
	GuestLastName  string
	GuestPhone     string
	GuestAddress   *GuestAddress

	TotalAmount   decimal.Decimal
	PaymentStatus PaymentStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Items []*Item
}

func (o *Order) IsPaid() bool {
	return o.PaymentStatus == PaymentPaid
}

// ContactEmail is where order emails go: the account email for user orders,
// the checkout email for guest orders.
func (o *Order) ContactEmail() string {
	if o.OrderType == TypeGuest {
		return o.GuestEmail
	}
	if o.UserEmail != nil {
		return *o.UserEmail
	}
	return ""
}

type Item struct {
	ID             uint
	OrderID        uint
	ProductID      uint
	Quantity       int
	Price          decimal.Decimal
	SelectedFormat product.Format

	Title  string
	Author string
}

func (i *Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type GuestAddress struct {
	RecipientName string
	Street        string
	PostalCode    string
	City          string
	Country       string
	Phone         string
}

type GuestCheckoutInput struct {
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone"`
	Address   address.Input `json:"address"`
}

// PlaceRequest describes an order to be built from a cart.
type PlaceRequest struct {
	CartID    uint
	Order     *Order
	ClearCart bool
}

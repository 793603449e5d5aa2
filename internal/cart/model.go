package cart

import (
	"time"

	"bookstore-be/internal/product"

	"github.com/shopspring/decimal"
)

// Owner identifies a cart: a signed-in user or a guest session key.
type Owner struct {
	UserID     uint
	SessionKey string
}

func (o Owner) IsGuest() bool {
	return o.UserID == 0
}

type Cart struct {
	ID         uint
	UserID     *uint
	SessionKey *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Items      []*Item
}

func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

func (c *Cart) TotalItems() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

type Item struct {
	ID             uint
	CartID         uint
	ProductID      uint
	Quantity       int
	SelectedFormat product.Format
	AddedAt        time.Time

	// Product holds the catalog fields needed to price and display the line.
	Product *product.Product
}

func (i *Item) Subtotal() decimal.Decimal {
	if i.Product == nil {
		return decimal.Zero
	}
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type AddInput struct {
	ProductID      uint           `json:"product_id"`
	Quantity       *int           `json:"quantity"`
	SelectedFormat product.Format `json:"selected_format"`
}

type UpdateInput struct {
	Quantity int `json:"quantity"`
}

package cart

import (
	"time"

	"bookstore-be/internal/product"
)

type ProductSummary struct {
	ID            uint    `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Format        string  `json:"format"`
	FormatDisplay string  `json:"format_display"`
	Price         string  `json:"price"`
	Stock         int     `json:"stock"`
	ImageURL      *string `json:"image_url"`
	IsInStock     bool    `json:"is_in_stock"`
}

type ItemResponse struct {
	ID                    uint           `json:"id"`
	Product               ProductSummary `json:"product"`
	Quantity              int            `json:"quantity"`
	SelectedFormat        string         `json:"selected_format"`
	SelectedFormatDisplay string         `json:"selected_format_display"`
	Subtotal              string         `json:"subtotal"`
	AddedAt               string         `json:"added_at"`
}

type Response struct {
	ID         uint           `json:"id"`
	Items      []ItemResponse `json:"items"`
	TotalPrice string         `json:"total_price"`
	TotalItems int            `json:"total_items"`
	CreatedAt  string         `json:"created_at"`
	UpdatedAt  string         `json:"updated_at"`
}

func toProductSummary(p *product.Product) ProductSummary {
	return ProductSummary{
		ID:            p.ID,
		Title:         p.Title,
		Author:        p.Author,
		Format:        string(p.Format),
		FormatDisplay: p.Format.Label(),
		Price:         p.Price.StringFixed(2),
		Stock:         p.Stock,
		ImageURL:      p.ImageURL,
		IsInStock:     p.IsInStock(),
	}
}

func ToItemResponse(it *Item) ItemResponse {
	res := ItemResponse{
		ID:                    it.ID,
		Quantity:              it.Quantity,
		SelectedFormat:        string(it.SelectedFormat),
		SelectedFormatDisplay: it.SelectedFormat.Label(),
		Subtotal:              it.Subtotal().StringFixed(2),
		AddedAt:               it.AddedAt.Format(time.RFC3339),
	}
	if it.Product != nil {
		res.Product = toProductSummary(it.Product)
	}
	return res
}

func ToResponse(c *Cart) Response {
	items := make([]ItemResponse, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, ToItemResponse(it))
	}
	return Response{
		ID:         c.ID,
		Items:      items,
		TotalPrice: c.TotalPrice().StringFixed(2),
		TotalItems: c.TotalItems(),
		CreatedAt:  c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  c.UpdatedAt.Format(time.RFC3339),
	}
}

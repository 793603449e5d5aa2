package product

import "time"

type Response struct {
	ID                uint    `json:"id"`
	VendorCompany     *uint   `json:"vendor_company"`
	VendorCompanyName *string `json:"vendor_company_name"`
	Title             string  `json:"title"`
	Author            string  `json:"author"`
	Genre             Genre   `json:"genre"`
	GenreLabel        string  `json:"genre_display"`
	Format            Format  `json:"format"`
	FormatLabel       string  `json:"format_display"`
	Description       string  `json:"description"`
	Price             string  `json:"price"`
	Stock             int     `json:"stock"`
	ImageURL          *string `json:"image_url"`
	PublicationYear   *int    `json:"publication_year"`
	Publisher         *string `json:"publisher"`
	ISBN              *string `json:"isbn"`
	PageCount         *int    `json:"page_count"`
	CreatedAt         string  `json:"created_at"`
	IsInStock         bool    `json:"is_in_stock"`
}

func ToResponse(p *Product) Response {
	return Response{
		ID:                p.ID,
		VendorCompany:     p.VendorCompanyID,
		VendorCompanyName: p.VendorCompanyName,
		Title:             p.Title,
		Author:            p.Author,
		Genre:             p.Genre,
		GenreLabel:        p.Genre.Label(),
		Format:            p.Format,
		FormatLabel:       p.Format.Label(),
		Description:       p.Description,
		Price:             p.Price.StringFixed(2),
		Stock:             p.Stock,
		ImageURL:          p.ImageURL,
		PublicationYear:   p.PublicationYear,
		Publisher:         p.Publisher,
		ISBN:              p.ISBN,
		PageCount:         p.PageCount,
		CreatedAt:         p.CreatedAt.Format(time.RFC3339),
		IsInStock:         p.IsInStock(),
	}
}

func ToResponses(products []*Product) []Response {
	out := make([]Response, 0, len(products))
	for _, p := range products {
		out = append(out, ToResponse(p))
	}
	return out
}

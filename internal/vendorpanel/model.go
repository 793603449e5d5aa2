package vendorpanel

import "github.com/shopspring/decimal"

const (
	Currency      = "PLN"
	topProducts   = 10
	monthsBack    = 12
	dashboardDays = 30

	minPublicationYear = 1450
)

// AllowedFields are the product fields a vendor may change.
var AllowedFields = []string{"description", "image_url", "page_count", "publication_year"}

// Vendor is the signed-in vendor user and the company it belongs to.
type Vendor struct {
	UserID      uint
	Email       string
	CompanyID   *uint
	CompanyName *string
}

type ProductSales struct {
	ProductID    uint            `json:"product_id"`
	Title        string          `json:"title"`
	Author       string          `json:"author"`
	QuantitySold int             `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

type MonthlySales struct {
	Month    string          `json:"month"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

type SalesTotals struct {
	Quantity    int
	Revenue     decimal.Decimal
	OrdersCount int
}

type ProductCounts struct {
	Total   int
	InStock int
}

type Analytics struct {
	Message       string         `json:"message,omitempty"`
	VendorCompany string         `json:"vendor_company,omitempty"`
	TotalProducts int            `json:"total_products"`
	TotalSales    int            `json:"total_sales"`
	TotalRevenue  string         `json:"total_revenue"`
	ProductsSold  []ProductSales `json:"products_sold"`
	MonthlySales  []MonthlySales `json:"monthly_sales"`
	Currency      string         `json:"currency"`
}

type RecentSales struct {
	Sales       int    `json:"sales"`
	Revenue     string `json:"revenue"`
	OrdersCount int    `json:"orders_count"`
}

type Dashboard struct {
	VendorCompany      string      `json:"vendor_company"`
	VendorEmail        string      `json:"vendor_email"`
	TotalProducts      int         `json:"total_products"`
	InStockProducts    int         `json:"in_stock_products"`
	OutOfStockProducts int         `json:"out_of_stock_products"`
	Last30Days         RecentSales `json:"last_30_days"`
	Currency           string      `json:"currency"`
}

// productPatch is the decoded body of a vendor product update.
type productPatch struct {
	Description     *string `json:"description"`
	ImageURL        *string `json:"image_url"`
	PageCount       *int    `json:"page_count"`
	PublicationYear *int    `json:"publication_year"`
}

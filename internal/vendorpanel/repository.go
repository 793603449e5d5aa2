package vendorpanel

import (
	"context"
	"database/sql"
	"time"

	"bookstore-be/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Repository aggregates sales of a company's products over paid orders.
type Repository interface {
	CountProducts(ctx context.Context, companyID uint) (ProductCounts, error)
	Totals(ctx context.Context, companyID uint, since time.Time) (SalesTotals, error)
	TopProducts(ctx context.Context, companyID uint, limit int) ([]ProductSales, error)
	Monthly(ctx context.Context, companyID uint, since time.Time) ([]MonthlySales, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const paidCompanyItems = `
	FROM order_items oi
	JOIN orders o ON o.id = oi.order_id
	JOIN products p ON p.id = oi.product_id
	WHERE p.vendor_company_id = $1 AND o.payment_status = 'paid'
`

func (r *repository) logFailure(ctx context.Context, method string, err error) {
	logger.FromCtx(ctx).Error("query failed",
		zap.String("layer", "repository"),
		zap.String("method", method),
		zap.Error(err),
	)
}

func (r *repository) CountProducts(ctx context.Context, companyID uint) (ProductCounts, error) {
	var c ProductCounts
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE stock > 0)
		FROM products
		WHERE vendor_company_id = $1
	`, companyID).Scan(&c.Total, &c.InStock)
	if err != nil {
		r.logFailure(ctx, "CountProducts", err)
	}
	return c, err
}

// Totals sums sales since the given time. A zero time covers all sales.
func (r *repository) Totals(ctx context.Context, companyID uint, since time.Time) (SalesTotals, error) {
	var t SalesTotals
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(oi.quantity), 0),
			COALESCE(SUM(oi.quantity * oi.price), 0),
			COUNT(DISTINCT o.id)
	`+paidCompanyItems+` AND o.created_at >= $2`, companyID, since).
		Scan(&t.Quantity, &t.Revenue, &t.OrdersCount)
	if err != nil {
		r.logFailure(ctx, "Totals", err)
	}
	return t, err
}

func (r *repository) TopProducts(ctx context.Context, companyID uint, limit int) ([]ProductSales, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.title, p.author, SUM(oi.quantity) AS quantity_sold, SUM(oi.quantity * oi.price)
	`+paidCompanyItems+`
		GROUP BY p.id, p.title, p.author
		ORDER BY quantity_sold DESC, p.id
		LIMIT $2
	`, companyID, limit)
	if err != nil {
		r.logFailure(ctx, "TopProducts", err)
		return nil, err
	}
	defer rows.Close()

	out := make([]ProductSales, 0)
	for rows.Next() {
		var s ProductSales
		if err := rows.Scan(&s.ProductID, &s.Title, &s.Author, &s.QuantitySold, &s.Revenue); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *repository) Monthly(ctx context.Context, companyID uint, since time.Time) ([]MonthlySales, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT to_char(date_trunc('month', o.created_at), 'YYYY-MM') AS month,
			SUM(oi.quantity), SUM(oi.quantity * oi.price)
	`+paidCompanyItems+` AND o.created_at >= $2
		GROUP BY month
		ORDER BY month
	`, companyID, since)
	if err != nil {
		r.logFailure(ctx, "Monthly", err)
		return nil, err
	}
	defer rows.Close()

	out := make([]MonthlySales, 0)
	for rows.Next() {
		var m MonthlySales
		var revenue decimal.Decimal
		if err := rows.Scan(&m.Month, &m.Quantity, &revenue); err != nil {
			return nil, err
		}
		m.Revenue = revenue
		out = append(out, m)
	}
	return out, rows.Err()
}

package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"bookstore-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]*Product, error)
	GetByID(ctx context.Context, id uint) (*Product, error)

	ListByVendorCompany(ctx context.Context, companyID uint) ([]*Product, error)
	GetByVendorCompany(ctx context.Context, id, companyID uint) (*Product, error)
	UpdateVendorFields(ctx context.Context, id uint, upd VendorUpdate) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const selectProduct = `
	SELECT
		p.id, p.vendor_company_id, vc.name,
		p.title, p.author, p.genre, p.format, p.description,
		p.price, p.stock, p.image_url, p.publication_year,
		p.publisher, p.isbn, p.page_count, p.created_at
	FROM products p
	LEFT JOIN vendor_companies vc ON vc.id = p.vendor_company_id
`

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (*Product, error) {
	var p Product
	err := s.Scan(
		&p.ID, &p.VendorCompanyID, &p.VendorCompanyName,
		&p.Title, &p.Author, &p.Genre, &p.Format, &p.Description,
		&p.Price, &p.Stock, &p.ImageURL, &p.PublicationYear,
		&p.Publisher, &p.ISBN, &p.PageCount, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) query(ctx context.Context, log *zap.Logger, q string, args ...any) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	products := make([]*Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ProductList"),
		zap.String("genre", string(filter.Genre)),
	)

	var (
		where []string
		args  []any
	)

	if filter.Genre != "" {
		args = append(args, filter.Genre)
		where = append(where, fmt.Sprintf("p.genre = $%d", len(args)))
	}
	if len(filter.Formats) > 0 {
		formats := make([]string, len(filter.Formats))
		for i, f := range filter.Formats {
			formats[i] = string(f)
		}
		args = append(args, pq.Array(formats))
		where = append(where, fmt.Sprintf("p.format = ANY($%d)", len(args)))
	}

	q := selectProduct
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY p.created_at DESC, p.id DESC"

	return r.query(ctx, log, q, args...)
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ProductGetByID"),
		zap.Uint("product_id", id),
	)

	p, err := scanProduct(r.db.QueryRowContext(ctx, selectProduct+" WHERE p.id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *repository) ListByVendorCompany(ctx context.Context, companyID uint) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListByVendorCompany"),
		zap.Uint("company_id", companyID),
	)

	q := selectProduct + " WHERE p.vendor_company_id = $1 ORDER BY p.created_at DESC, p.id DESC"
	return r.query(ctx, log, q, companyID)
}

func (r *repository) GetByVendorCompany(ctx context.Context, id, companyID uint) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetByVendorCompany"),
		zap.Uint("product_id", id),
		zap.Uint("company_id", companyID),
	)

	q := selectProduct + " WHERE p.id = $1 AND p.vendor_company_id = $2"
	p, err := scanProduct(r.db.QueryRowContext(ctx, q, id, companyID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	return p, nil
}

// UpdateVendorFields writes only the fields set in upd.
func (r *repository) UpdateVendorFields(ctx context.Context, id uint, upd VendorUpdate) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateVendorFields"),
		zap.Uint("product_id", id),
	)

	const q = `
		UPDATE products
		SET description      = COALESCE($1, description),
		    image_url        = COALESCE($2, image_url),
		    page_count       = COALESCE($3, page_count),
		    publication_year = COALESCE($4, publication_year)
		WHERE id = $5
	`

	res, err := r.db.ExecContext(ctx, q,
		upd.Description, upd.ImageURL, upd.PageCount, upd.PublicationYear, id,
	)
	if err != nil {
		log.Error("update failed", zap.Error(err))
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}

package user

import (
	"context"
	"database/sql"
	"errors"

	"bookstore-be/internal/logger"

	"go.uber.org/zap"
)

func (r *repository) ListActiveCompanies(ctx context.Context) ([]*VendorCompany, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListActiveCompanies"),
	)

	const q = `
		SELECT id, name, access_code, description, is_active, created_at
		FROM vendor_companies
		WHERE is_active = true
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	companies := make([]*VendorCompany, 0)
	for rows.Next() {
		var c VendorCompany
		if err := rows.Scan(&c.ID, &c.Name, &c.AccessCode, &c.Description, &c.IsActive, &c.CreatedAt); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		companies = append(companies, &c)
	}

	return companies, rows.Err()
}

func (r *repository) GetActiveCompany(ctx context.Context, id uint) (*VendorCompany, error) {
	const q = `
		SELECT id, name, access_code, description, is_active, created_at
		FROM vendor_companies
		WHERE id = $1 AND is_active = true
	`

	var c VendorCompany
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&c.ID, &c.Name, &c.AccessCode, &c.Description, &c.IsActive, &c.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCompanyUnavailable
	}
	if err != nil {
		logger.FromCtx(ctx).Error("query failed",
			zap.String("layer", "repository"),
			zap.String("method", "GetActiveCompany"),
			zap.Uint("company_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	return &c, nil
}

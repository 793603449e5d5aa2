package address

import (
	"context"
	"database/sql"
	"errors"

	"bookstore-be/internal/db"
	"bookstore-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetByUserID(ctx context.Context, userID uint) ([]*Address, error)
	GetByID(ctx context.Context, id, userID uint) (*Address, error)

	Create(ctx context.Context, addr *Address) error
	Update(ctx context.Context, addr *Address) error
	Delete(ctx context.Context, id, userID uint) error

	SetDefault(ctx context.Context, id, userID uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const selectAddress = `
	SELECT
		id, user_id,
		recipient_name, street, postal_code, city, country, phone,
		is_default, created_at, updated_at
	FROM addresses
`

type scanner interface {
	Scan(dest ...any) error
}

func scanAddress(row scanner) (*Address, error) {
	var a Address
	err := row.Scan(
		&a.ID, &a.UserID,
		&a.RecipientName, &a.Street, &a.PostalCode, &a.City, &a.Country, &a.Phone,
		&a.IsDefault, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) GetByUserID(ctx context.Context, userID uint) ([]*Address, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetByUserID"),
		zap.Uint("user_id", userID),
	)

	rows, err := r.db.QueryContext(ctx,
		selectAddress+" WHERE user_id = $1 ORDER BY is_default DESC, created_at DESC", userID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	res := make([]*Address, 0)
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res = append(res, a)
	}

	return res, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id, userID uint) (*Address, error) {
	a, err := scanAddress(r.db.QueryRowContext(ctx,
		selectAddress+" WHERE id = $1 AND user_id = $2", id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAddressNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("query failed",
			zap.String("layer", "repository"),
			zap.String("method", "GetByID"),
			zap.Uint("address_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	return a, nil
}

// clearDefault unsets is_default on every address of the user except keepID.
func clearDefault(ctx context.Context, tx *sql.Tx, userID, keepID uint) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE addresses
		SET is_default = false, updated_at = NOW()
		WHERE user_id = $1 AND id <> $2 AND is_default = true
	`, userID, keepID)
	return err
}

func (r *repository) Create(ctx context.Context, addr *Address) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.Uint("user_id", addr.UserID),
	)

	const q = `
		INSERT INTO addresses (
			user_id,
			recipient_name, street, postal_code, city, country, phone,
			is_default
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, q,
			addr.UserID,
			addr.RecipientName, addr.Street, addr.PostalCode, addr.City, addr.Country, addr.Phone,
			addr.IsDefault,
		).Scan(&addr.ID, &addr.CreatedAt, &addr.UpdatedAt); err != nil {
			return err
		}

		if addr.IsDefault {
			return clearDefault(ctx, tx, addr.UserID, addr.ID)
		}
		return nil
	})
	if err != nil {
		log.Error("insert failed", zap.Error(err))
		return err
	}

	return nil
}

func (r *repository) Update(ctx context.Context, addr *Address) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Update"),
		zap.Uint("address_id", addr.ID),
	)

	const q = `
		UPDATE addresses
		SET recipient_name = $3, street = $4, postal_code = $5,
			city = $6, country = $7, phone = $8,
			is_default = $9, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at
	`

	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, q,
			addr.ID, addr.UserID,
			addr.RecipientName, addr.Street, addr.PostalCode,
			addr.City, addr.Country, addr.Phone,
			addr.IsDefault,
		).Scan(&addr.UpdatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAddressNotFound
		}
		if err != nil {
			return err
		}

		if addr.IsDefault {
			return clearDefault(ctx, tx, addr.UserID, addr.ID)
		}
		return nil
	})
	if err != nil && !errors.Is(err, ErrAddressNotFound) {
		log.Error("update failed", zap.Error(err))
	}
	return err
}

func (r *repository) Delete(ctx context.Context, id, userID uint) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM addresses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		logger.FromCtx(ctx).Error("delete failed",
			zap.String("layer", "repository"),
			zap.String("method", "Delete"),
			zap.Uint("address_id", id),
			zap.Error(err),
		)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAddressNotFound
	}
	return nil
}

func (r *repository) SetDefault(ctx context.Context, id, userID uint) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "SetDefault"),
		zap.Uint("address_id", id),
	)

	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE addresses
			SET is_default = true, updated_at = NOW()
			WHERE id = $1 AND user_id = $2
		`, id, userID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrAddressNotFound
		}

		return clearDefault(ctx, tx, userID, id)
	})
	if err != nil && !errors.Is(err, ErrAddressNotFound) {
		log.Error("set default failed", zap.Error(err))
	}
	return err
}

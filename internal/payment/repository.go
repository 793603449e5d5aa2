package payment

import (
	"context"
	"database/sql"
	"errors"

	"bookstore-be/internal/db"
	"bookstore-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetBySessionID(ctx context.Context, sessionID string) (*Payment, error)
	// MarkCompleted flips the payment to completed and its order to paid.
	// It reports false when the payment was already completed.
	MarkCompleted(ctx context.Context, p *Payment) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Payment) error {
	const q = `
		INSERT INTO payments (order_id, stripe_session_id, amount, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, q, p.OrderID, p.StripeSessionID, p.Amount, p.Status).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		logger.FromCtx(ctx).Error("insert failed",
			zap.String("layer", "repository"),
			zap.String("method", "CreatePayment"),
			zap.Uint("order_id", p.OrderID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (r *repository) GetBySessionID(ctx context.Context, sessionID string) (*Payment, error) {
	const q = `
		SELECT id, order_id, stripe_session_id, amount, status, created_at, updated_at
		FROM payments
		WHERE stripe_session_id = $1
	`

	var p Payment
	err := r.db.QueryRowContext(ctx, q, sessionID).Scan(
		&p.ID, &p.OrderID, &p.StripeSessionID, &p.Amount, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("query failed",
			zap.String("layer", "repository"),
			zap.String("method", "GetPaymentBySessionID"),
			zap.Error(err),
		)
		return nil, err
	}
	return &p, nil
}

func (r *repository) MarkCompleted(ctx context.Context, p *Payment) (bool, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "MarkCompleted"),
		zap.Uint("payment_id", p.ID),
		zap.Uint("order_id", p.OrderID),
	)

	changed := false
	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE payments
			SET status = $1, updated_at = NOW()
			WHERE id = $2 AND status <> $1
		`, StatusCompleted, p.ID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return nil
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE orders
			SET payment_status = 'paid', updated_at = NOW()
			WHERE id = $1
		`, p.OrderID); err != nil {
			return err
		}
		changed = true
		return nil
	})
	if err != nil {
		log.Error("failed to complete payment", zap.Error(err))
		return false, err
	}

	if changed {
		p.Status = StatusCompleted
	}
	return changed, nil
}

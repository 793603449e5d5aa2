package cart

import (
	"context"
	"database/sql"

	"bookstore-be/internal/db"
	"bookstore-be/internal/logger"

	"go.uber.org/zap"
)

// MergeInto moves every line of fromCartID into toCartID. Lines for the same
// product and format are summed, and each resulting quantity is capped at the
// product's current stock. Out-of-stock lines are dropped. The source cart is
// left empty.
func (r *repository) MergeInto(ctx context.Context, fromCartID, toCartID uint) (int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "MergeInto"),
		zap.Uint("from_cart_id", fromCartID),
		zap.Uint("to_cart_id", toCartID),
	)

	const upsert = `
		INSERT INTO cart_items (cart_id, product_id, quantity, selected_format)
		SELECT $1, ci.product_id, LEAST(ci.quantity, p.stock), ci.selected_format
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $2 AND p.stock > 0
		ON CONFLICT (cart_id, product_id, selected_format) DO UPDATE
		SET quantity = LEAST(
			cart_items.quantity + EXCLUDED.quantity,
			(SELECT stock FROM products WHERE id = EXCLUDED.product_id)
		)
	`

	var merged int64
	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, upsert, toCartID, fromCartID)
		if err != nil {
			return err
		}
		merged, _ = res.RowsAffected()

		_, err = tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, fromCartID)
		return err
	})
	if err != nil {
		log.Error("merge failed", zap.Error(err))
		return 0, err
	}

	return int(merged), nil
}

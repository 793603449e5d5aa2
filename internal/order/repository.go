package order

import (
	"context"
	"database/sql"
	"errors"

	"bookstore-be/internal/db"
	"bookstore-be/internal/logger"
	"bookstore-be/internal/product"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	Place(ctx context.Context, req PlaceRequest) (*Order, error)
	Delete(ctx context.Context, id uint) error
	Revert(ctx context.Context, id uint) error

	GetByID(ctx context.Context, id uint) (*Order, error)
	GetForUser(ctx context.Context, id, userID uint) (*Order, error)
	ListByUser(ctx context.Context, userID uint) ([]*Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

type cartLine struct {
	productID uint
	quantity  int
	format    product.Format
	title     string
	author    string
	price     decimal.Decimal
	stock     int
}

func loadCartLines(ctx context.Context, tx *sql.Tx, cartID uint) ([]cartLine, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT ci.product_id, ci.quantity, ci.selected_format,
			p.title, p.author, p.price, p.stock
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id
	`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []cartLine
	for rows.Next() {
		var l cartLine
		if err := rows.Scan(&l.productID, &l.quantity, &l.format, &l.title, &l.author, &l.price, &l.stock); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// Place turns the cart into an order in one transaction: it checks stock,
// writes the order with price snapshots, decrements stock and optionally
// empties the cart. Any failure leaves the database untouched.
func (r *repository) Place(ctx context.Context, req PlaceRequest) (*Order, error) {
	o := req.Order
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "PlaceOrder"),
		zap.Uint("cart_id", req.CartID),
		zap.String("order_type", string(o.OrderType)),
	)

	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		lines, err := loadCartLines(ctx, tx, req.CartID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrCartEmpty
		}

		total := decimal.Zero
		o.Items = make([]*Item, 0, len(lines))
		for _, l := range lines {
			if l.quantity > l.stock {
				return ErrInsufficientStock.With(l.title, l.stock)
			}
			item := &Item{
				ProductID:      l.productID,
				Quantity:       l.quantity,
				Price:          l.price,
				SelectedFormat: l.format,
				Title:          l.title,
				Author:         l.author,
			}
			total = total.Add(item.Subtotal())
			o.Items = append(o.Items, item)
		}
		o.TotalAmount = total
		o.PaymentStatus = PaymentPending

		if o.OrderType == TypeUser && o.UserID != nil {
			var addrID uint
			err := tx.QueryRowContext(ctx,
				`SELECT id FROM addresses WHERE user_id = $1 AND is_default = true LIMIT 1`,
				*o.UserID,
			).Scan(&addrID)
			switch {
			case err == nil:
				o.UserAddressID = &addrID
			case !errors.Is(err, sql.ErrNoRows):
				return err
			}
		}

		if err := insertOrder(ctx, tx, o); err != nil {
			return err
		}

		if o.GuestAddress != nil {
			a := o.GuestAddress
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO guest_order_addresses (order_id, recipient_name, street, postal_code, city, country, phone)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			`, o.ID, a.RecipientName, a.Street, a.PostalCode, a.City, a.Country, a.Phone); err != nil {
				return err
			}
		}

		for _, it := range o.Items {
			it.OrderID = o.ID
			if err := tx.QueryRowContext(ctx, `
				INSERT INTO order_items (order_id, product_id, quantity, price, selected_format)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id
			`, o.ID, it.ProductID, it.Quantity, it.Price, it.SelectedFormat).Scan(&it.ID); err != nil {
				return err
			}

			res, err := tx.ExecContext(ctx,
				`UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1`,
				it.Quantity, it.ProductID,
			)
			if err != nil {
				return err
			}
			// another checkout took the stock after the check above
			if n, _ := res.RowsAffected(); n == 0 {
				return ErrInsufficientStock.With(it.Title, 0)
			}
		}

		if req.ClearCart {
			if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, req.CartID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCartEmpty) || errors.Is(err, ErrInsufficientStock) {
			log.Info("checkout rejected", zap.Error(err))
		} else {
			log.Error("checkout failed", zap.Error(err))
		}
		return nil, err
	}

	log.Info("order placed",
		zap.Uint("order_id", o.ID),
		zap.String("total", o.TotalAmount.StringFixed(2)),
	)
	return o, nil
}

func insertOrder(ctx context.Context, tx *sql.Tx, o *Order) error {
	const q = `
		INSERT INTO orders (
			order_type, user_id, user_address_id,
			guest_email, guest_first_name, guest_last_name, guest_phone,
			total_amount, payment_status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	return tx.QueryRowContext(ctx, q,
		o.OrderType, o.UserID, o.UserAddressID,
		o.GuestEmail, o.GuestFirstName, o.GuestLastName, o.GuestPhone,
		o.TotalAmount, o.PaymentStatus,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
}

// Delete removes an order and its lines. Stock is not restored.
func (r *repository) Delete(ctx context.Context, id uint) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
		logger.FromCtx(ctx).Error("delete failed",
			zap.String("layer", "repository"),
			zap.String("method", "DeleteOrder"),
			zap.Uint("order_id", id),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// Revert returns the order's quantities to stock and removes the order in
// one transaction.
func (r *repository) Revert(ctx context.Context, id uint) error {
	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			UPDATE products p
			SET stock = p.stock + oi.quantity
			FROM order_items oi
			WHERE oi.order_id = $1 AND p.id = oi.product_id
		`, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
		return err
	})
	if err != nil {
		logger.FromCtx(ctx).Error("revert failed",
			zap.String("layer", "repository"),
			zap.String("method", "RevertOrder"),
			zap.Uint("order_id", id),
			zap.Error(err),
		)
	}
	return err
}

package order

import (
	"context"
	"database/sql"
	"errors"

	"bookstore-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const selectOrder = `
	SELECT
		o.id, o.order_type, o.user_id, u.email, o.user_address_id,
		o.guest_email, o.guest_first_name, o.guest_last_name, o.guest_phone,
		o.total_amount, o.payment_status, o.created_at, o.updated_at,
		ga.recipient_name, ga.street, ga.postal_code, ga.city, ga.country, ga.phone
	FROM orders o
	LEFT JOIN users u ON u.id = o.user_id
	LEFT JOIN guest_order_addresses ga ON ga.order_id = o.id
`

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(s scanner) (*Order, error) {
	var (
		o                                           Order
		recipient, street, postal, city, country, p sql.NullString
	)
	err := s.Scan(
		&o.ID, &o.OrderType, &o.UserID, &o.UserEmail, &o.UserAddressID,
		&o.GuestEmail, &o.GuestFirstName, &o.GuestLastName, &o.GuestPhone,
		&o.TotalAmount, &o.PaymentStatus, &o.CreatedAt, &o.UpdatedAt,
		&recipient, &street, &postal, &city, &country, &p,
	)
	if err != nil {
		return nil, err
	}
	if recipient.Valid {
		o.GuestAddress = &GuestAddress{
			RecipientName: recipient.String,
			Street:        street.String,
			PostalCode:    postal.String,
			City:          city.String,
			Country:       country.String,
			Phone:         p.String,
		}
	}
	o.Items = make([]*Item, 0)
	return &o, nil
}

// attachItems loads the lines of every order in one query.
func (r *repository) attachItems(ctx context.Context, orders ...*Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[uint]*Order, len(orders))
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, int64(o.ID))
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price, oi.selected_format,
			p.title, p.author
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.id
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var it Item
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Price, &it.SelectedFormat,
			&it.Title, &it.Author,
		); err != nil {
			return err
		}
		if o, ok := byID[it.OrderID]; ok {
			o.Items = append(o.Items, &it)
		}
	}
	return rows.Err()
}

func (r *repository) getOne(ctx context.Context, method string, q string, args ...any) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", method),
	)

	o, err := scanOrder(r.db.QueryRowContext(ctx, q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}

	if err := r.attachItems(ctx, o); err != nil {
		log.Error("failed to load items", zap.Error(err))
		return nil, err
	}
	return o, nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Order, error) {
	return r.getOne(ctx, "GetOrderByID", selectOrder+" WHERE o.id = $1", id)
}

func (r *repository) GetForUser(ctx context.Context, id, userID uint) (*Order, error) {
	return r.getOne(ctx, "GetOrderForUser", selectOrder+" WHERE o.id = $1 AND o.user_id = $2", id, userID)
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListOrdersByUser"),
		zap.Uint("user_id", userID),
	)

	rows, err := r.db.QueryContext(ctx,
		selectOrder+" WHERE o.user_id = $1 ORDER BY o.created_at DESC, o.id DESC", userID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := make([]*Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if err := r.attachItems(ctx, orders...); err != nil {
		log.Error("failed to load items", zap.Error(err))
		return nil, err
	}
	return orders, nil
}

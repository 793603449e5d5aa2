package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bookstore-be/internal/logger"
	"bookstore-be/internal/product"

	"go.uber.org/zap"
)

type Repository interface {
	GetOrCreate(ctx context.Context, owner Owner) (*Cart, error)
	Find(ctx context.Context, owner Owner) (*Cart, error)

	ListItems(ctx context.Context, cartID uint) ([]*Item, error)
	GetItem(ctx context.Context, cartID, itemID uint) (*Item, error)
	FindLine(ctx context.Context, cartID, productID uint, format product.Format) (*Item, error)

	CreateItem(ctx context.Context, item *Item) error
	UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) error
	DeleteItem(ctx context.Context, cartID, itemID uint) error
	Clear(ctx context.Context, cartID uint) (int64, error)

	MergeInto(ctx context.Context, fromCartID, toCartID uint) (int, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func ownerColumn(o Owner) (string, any) {
	if o.IsGuest() {
		return "session_key", o.SessionKey
	}
	return "user_id", o.UserID
}

const cartColumns = "id, user_id, session_key, created_at, updated_at"

func scanCart(row *sql.Row) (*Cart, error) {
	var c Cart
	if err := row.Scan(&c.ID, &c.UserID, &c.SessionKey, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetOrCreate returns the owner's cart, creating an empty one on first use.
func (r *repository) GetOrCreate(ctx context.Context, owner Owner) (*Cart, error) {
	col, val := ownerColumn(owner)
	q := fmt.Sprintf(`
		INSERT INTO carts (%[1]s) VALUES ($1)
		ON CONFLICT (%[1]s) DO UPDATE SET updated_at = carts.updated_at
		RETURNING %[2]s
	`, col, cartColumns)

	c, err := scanCart(r.db.QueryRowContext(ctx, q, val))
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get or create cart",
			zap.String("layer", "repository"),
			zap.String("owner", col),
			zap.Error(err),
		)
		return nil, err
	}
	return c, nil
}

func (r *repository) Find(ctx context.Context, owner Owner) (*Cart, error) {
	col, val := ownerColumn(owner)
	q := fmt.Sprintf(`SELECT %s FROM carts WHERE %s = $1`, cartColumns, col)

	c, err := scanCart(r.db.QueryRowContext(ctx, q, val))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("query failed",
			zap.String("layer", "repository"),
			zap.String("method", "FindCart"),
			zap.Error(err),
		)
		return nil, err
	}
	return c, nil
}

const selectItem = `
	SELECT
		ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.selected_format, ci.added_at,
		p.title, p.author, p.format, p.price, p.stock, p.image_url
	FROM cart_items ci
	JOIN products p ON p.id = ci.product_id
`

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*Item, error) {
	var it Item
	p := &product.Product{}
	err := s.Scan(
		&it.ID, &it.CartID, &it.ProductID, &it.Quantity, &it.SelectedFormat, &it.AddedAt,
		&p.Title, &p.Author, &p.Format, &p.Price, &p.Stock, &p.ImageURL,
	)
	if err != nil {
		return nil, err
	}
	p.ID = it.ProductID
	it.Product = p
	return &it, nil
}

func (r *repository) ListItems(ctx context.Context, cartID uint) ([]*Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListItems"),
		zap.Uint("cart_id", cartID),
	)

	rows, err := r.db.QueryContext(ctx, selectItem+" WHERE ci.cart_id = $1 ORDER BY ci.added_at DESC, ci.id DESC", cartID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	items := make([]*Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repository) GetItem(ctx context.Context, cartID, itemID uint) (*Item, error) {
	it, err := scanItem(r.db.QueryRowContext(ctx,
		selectItem+" WHERE ci.id = $1 AND ci.cart_id = $2", itemID, cartID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("query failed",
			zap.String("layer", "repository"),
			zap.String("method", "GetItem"),
			zap.Uint("item_id", itemID),
			zap.Error(err),
		)
		return nil, err
	}
	return it, nil
}

// FindLine returns the cart line for a product and format, or nil when the
// cart has none.
func (r *repository) FindLine(ctx context.Context, cartID, productID uint, format product.Format) (*Item, error) {
	it, err := scanItem(r.db.QueryRowContext(ctx,
		selectItem+" WHERE ci.cart_id = $1 AND ci.product_id = $2 AND ci.selected_format = $3",
		cartID, productID, format))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.FromCtx(ctx).Error("query failed",
			zap.String("layer", "repository"),
			zap.String("method", "FindLine"),
			zap.Error(err),
		)
		return nil, err
	}
	return it, nil
}

func (r *repository) CreateItem(ctx context.Context, item *Item) error {
	const q = `
		INSERT INTO cart_items (cart_id, product_id, quantity, selected_format)
		VALUES ($1, $2, $3, $4)
		RETURNING id, added_at
	`

	err := r.db.QueryRowContext(ctx, q,
		item.CartID, item.ProductID, item.Quantity, item.SelectedFormat,
	).Scan(&item.ID, &item.AddedAt)
	if err != nil {
		logger.FromCtx(ctx).Error("insert failed",
			zap.String("layer", "repository"),
			zap.String("method", "CreateItem"),
			zap.Uint("cart_id", item.CartID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (r *repository) UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE cart_items SET quantity = $1 WHERE id = $2`, quantity, itemID)
	if err != nil {
		logger.FromCtx(ctx).Error("update failed",
			zap.String("layer", "repository"),
			zap.String("method", "UpdateItemQuantity"),
			zap.Uint("item_id", itemID),
			zap.Error(err),
		)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *repository) DeleteItem(ctx context.Context, cartID, itemID uint) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE id = $1 AND cart_id = $2`, itemID, cartID)
	if err != nil {
		logger.FromCtx(ctx).Error("delete failed",
			zap.String("layer", "repository"),
			zap.String("method", "DeleteItem"),
			zap.Uint("item_id", itemID),
			zap.Error(err),
		)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *repository) Clear(ctx context.Context, cartID uint) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	if err != nil {
		logger.FromCtx(ctx).Error("clear failed",
			zap.String("layer", "repository"),
			zap.Uint("cart_id", cartID),
			zap.Error(err),
		)
		return 0, err
	}
	return res.RowsAffected()
}

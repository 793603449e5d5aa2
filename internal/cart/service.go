package cart

import (
	"context"
	"errors"

	"bookstore-be/internal/logger"
	"bookstore-be/internal/product"

	"go.uber.org/zap"
)

// ProductGetter is the slice of the catalog the cart needs.
type ProductGetter interface {
	GetByID(ctx context.Context, id uint) (*product.Product, error)
}

type Service interface {
	View(ctx context.Context, owner Owner) (*Cart, error)
	Add(ctx context.Context, owner Owner, in AddInput) (item *Item, created bool, err error)
	UpdateItem(ctx context.Context, owner Owner, itemID uint, quantity int) (*Item, error)
	RemoveItem(ctx context.Context, owner Owner, itemID uint) error
	Clear(ctx context.Context, owner Owner) (cleared int64, err error)
	Merge(ctx context.Context, sessionKey string, userID uint) (int, error)
}

type service struct {
	repo     Repository
	products ProductGetter
}

func NewService(repo Repository, products ProductGetter) Service {
	return &service{repo: repo, products: products}
}

func (s *service) View(ctx context.Context, owner Owner) (*Cart, error) {
	c, err := s.repo.GetOrCreate(ctx, owner)
	if err != nil {
		return nil, err
	}

	c.Items, err = s.repo.ListItems(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Add puts a product into the cart or increases an existing line of the
// same format. The cart is left unchanged when the resulting quantity would
// exceed stock.
func (s *service) Add(ctx context.Context, owner Owner, in AddInput) (*Item, bool, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddToCart"),
		zap.Uint("product_id", in.ProductID),
	)

	if in.ProductID == 0 {
		return nil, false, ErrProductRequired
	}
	if in.Quantity == nil {
		return nil, false, ErrQuantityRequired
	}
	qty := *in.Quantity
	if qty < 1 {
		return nil, false, ErrInvalidQuantity
	}

	p, err := s.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, false, err
	}

	format, err := p.PurchaseFormat(in.SelectedFormat)
	if err != nil {
		return nil, false, err
	}

	if qty > p.Stock {
		return nil, false, ErrInsufficientStock.With(p.Stock)
	}

	c, err := s.repo.GetOrCreate(ctx, owner)
	if err != nil {
		return nil, false, err
	}

	line, err := s.repo.FindLine(ctx, c.ID, p.ID, format)
	if err != nil {
		return nil, false, err
	}

	if line != nil {
		total := line.Quantity + qty
		if total > p.Stock {
			log.Info("add rejected, stock exceeded",
				zap.Int("in_cart", line.Quantity),
				zap.Int("stock", p.Stock),
			)
			return nil, false, ErrCannotAddMore.With(qty, max(p.Stock-line.Quantity, 0))
		}
		if err := s.repo.UpdateItemQuantity(ctx, line.ID, total); err != nil {
			return nil, false, err
		}
		line.Quantity = total
		line.Product = p
		return line, false, nil
	}

	item := &Item{CartID: c.ID, ProductID: p.ID, Quantity: qty, SelectedFormat: format, Product: p}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, false, err
	}

	log.Info("item added", zap.Uint("cart_id", c.ID), zap.Int("quantity", qty))
	return item, true, nil
}

// cartFor resolves the owner's cart without creating one. A missing user
// cart can hold no items, so it reports ErrItemNotFound.
func (s *service) cartFor(ctx context.Context, owner Owner) (*Cart, error) {
	c, err := s.repo.Find(ctx, owner)
	if errors.Is(err, ErrCartNotFound) && !owner.IsGuest() {
		return nil, ErrItemNotFound
	}
	return c, err
}

func (s *service) UpdateItem(ctx context.Context, owner Owner, itemID uint, quantity int) (*Item, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	c, err := s.cartFor(ctx, owner)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.GetItem(ctx, c.ID, itemID)
	if err != nil {
		return nil, err
	}
	if quantity > item.Product.Stock {
		return nil, ErrInsufficientStock.With(item.Product.Stock)
	}

	if err := s.repo.UpdateItemQuantity(ctx, item.ID, quantity); err != nil {
		return nil, err
	}
	item.Quantity = quantity
	return item, nil
}

func (s *service) RemoveItem(ctx context.Context, owner Owner, itemID uint) error {
	c, err := s.cartFor(ctx, owner)
	if err != nil {
		return err
	}
	return s.repo.DeleteItem(ctx, c.ID, itemID)
}

// Clear empties the cart. A guest without a cart has nothing to clear.
func (s *service) Clear(ctx context.Context, owner Owner) (int64, error) {
	c, err := s.repo.Find(ctx, owner)
	if errors.Is(err, ErrCartNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return s.repo.Clear(ctx, c.ID)
}

// Merge moves a guest cart into the user's cart after login.
func (s *service) Merge(ctx context.Context, sessionKey string, userID uint) (int, error) {
	if sessionKey == "" {
		return 0, nil
	}

	guest, err := s.repo.Find(ctx, Owner{SessionKey: sessionKey})
	if errors.Is(err, ErrCartNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	userCart, err := s.repo.GetOrCreate(ctx, Owner{UserID: userID})
	if err != nil {
		return 0, err
	}

	merged, err := s.repo.MergeInto(ctx, guest.ID, userCart.ID)
	if err != nil {
		return 0, err
	}

	if merged > 0 {
		logger.FromCtx(ctx).Info("guest cart merged",
			zap.Uint("user_id", userID),
			zap.Int("lines", merged),
		)
	}
	return merged, nil
}

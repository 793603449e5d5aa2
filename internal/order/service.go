package order

import (
	"context"
	"errors"
	"strings"

	"bookstore-be/internal/address"
	"bookstore-be/internal/apperror"
	"bookstore-be/internal/cart"
	"bookstore-be/internal/logger"
	"bookstore-be/internal/mailer"
	"bookstore-be/internal/utils"

	"go.uber.org/zap"
)

const minNameLen = 2

// CartFinder resolves the cart an order is built from.
type CartFinder interface {
	Find(ctx context.Context, owner cart.Owner) (*cart.Cart, error)
}

type Notifier interface {
	GuestOrderPlaced(ctx context.Context, order mailer.OrderEmail)
}

type OutcomeRecorder interface {
	CheckoutOutcome(kind, outcome string)
}

type Service interface {
	Checkout(ctx context.Context, userID uint) (*Order, error)
	// CreatePending places the user's order but keeps the cart, which is
	// cleared once a payment session exists.
	CreatePending(ctx context.Context, userID uint) (*Order, error)
	GuestCheckout(ctx context.Context, sessionKey string, in GuestCheckoutInput) (*Order, error)

	List(ctx context.Context, userID uint) ([]*Order, error)
	Get(ctx context.Context, userID, id uint) (*Order, error)
	GetByID(ctx context.Context, id uint) (*Order, error)
	Delete(ctx context.Context, id uint) error
	// Revert undoes a placed order, stock included.
	Revert(ctx context.Context, id uint) error
}

type service struct {
	repo     Repository
	carts    CartFinder
	notifier Notifier
	metrics  OutcomeRecorder
}

func NewService(repo Repository, carts CartFinder, notifier Notifier, metrics OutcomeRecorder) Service {
	return &service{repo: repo, carts: carts, notifier: notifier, metrics: metrics}
}

func (s *service) record(kind string, err error) {
	if s.metrics == nil {
		return
	}
	outcome := "success"
	switch {
	case errors.Is(err, ErrCartEmpty), errors.Is(err, ErrGuestCartNotFound):
		outcome = "empty_cart"
	case errors.Is(err, ErrInsufficientStock):
		outcome = "insufficient_stock"
	case apperror.KindOf(err) == apperror.KindValidation:
		outcome = "invalid"
	case err != nil:
		outcome = "error"
	}
	s.metrics.CheckoutOutcome(kind, outcome)
}

func (s *service) placeForUser(ctx context.Context, userID uint, clearCart bool) (*Order, error) {
	c, err := s.carts.Find(ctx, cart.Owner{UserID: userID})
	if errors.Is(err, cart.ErrCartNotFound) {
		return nil, ErrCartEmpty
	}
	if err != nil {
		return nil, err
	}

	return s.repo.Place(ctx, PlaceRequest{
		CartID:    c.ID,
		Order:     &Order{OrderType: TypeUser, UserID: &userID},
		ClearCart: clearCart,
	})
}

func (s *service) Checkout(ctx context.Context, userID uint) (*Order, error) {
	o, err := s.placeForUser(ctx, userID, true)
	s.record(string(TypeUser), err)
	return o, err
}

func (s *service) CreatePending(ctx context.Context, userID uint) (*Order, error) {
	o, err := s.placeForUser(ctx, userID, false)
	s.record("payment", err)
	return o, err
}

func validateGuest(in *GuestCheckoutInput) error {
	var errs []*apperror.Error
	var ok bool

	if in.FirstName, ok = utils.MinLen(in.FirstName, minNameLen); !ok {
		errs = append(errs, ErrFirstNameTooShort.With(minNameLen))
	}
	if in.LastName, ok = utils.MinLen(in.LastName, minNameLen); !ok {
		errs = append(errs, ErrLastNameTooShort.With(minNameLen))
	}

	in.Email = utils.NormalizeEmail(in.Email)
	if !utils.ValidEmail(in.Email) {
		errs = append(errs, ErrInvalidEmail)
	}

	in.Phone = strings.TrimSpace(in.Phone)
	switch {
	case in.Phone == "":
		errs = append(errs, ErrPhoneRequired)
	case !utils.ValidPhone(in.Phone):
		errs = append(errs, ErrInvalidPhone)
	}

	if err := address.Validate(&in.Address); err != nil {
		if ae, ok := apperror.As(err); ok {
			nested := ae.Fields
			if len(nested) == 0 {
				nested = []*apperror.Error{ae}
			}
			for _, f := range nested {
				errs = append(errs, f.WithField("address."+f.Field))
			}
		}
	}

	return apperror.Join(errs...)
}

func (s *service) GuestCheckout(ctx context.Context, sessionKey string, in GuestCheckoutInput) (*Order, error) {
	o, err := s.guestCheckout(ctx, sessionKey, in)
	s.record(string(TypeGuest), err)
	return o, err
}

func (s *service) guestCheckout(ctx context.Context, sessionKey string, in GuestCheckoutInput) (*Order, error) {
	if err := validateGuest(&in); err != nil {
		return nil, err
	}

	if sessionKey == "" {
		return nil, ErrGuestCartNotFound
	}
	c, err := s.carts.Find(ctx, cart.Owner{SessionKey: sessionKey})
	if errors.Is(err, cart.ErrCartNotFound) {
		return nil, ErrGuestCartNotFound
	}
	if err != nil {
		return nil, err
	}

	a := in.Address
	o, err := s.repo.Place(ctx, PlaceRequest{
		CartID: c.ID,
		Order: &Order{
			OrderType:      TypeGuest,
			GuestEmail:     in.Email,
			GuestFirstName: in.FirstName,
			GuestLastName:  in.LastName,
			GuestPhone:     in.Phone,
			GuestAddress: &GuestAddress{
				RecipientName: a.RecipientName,
				Street:        a.Street,
				PostalCode:    a.PostalCode,
				City:          a.City,
				Country:       a.Country,
				Phone:         a.Phone,
			},
		},
		ClearCart: true,
	})
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("guest order placed", zap.Uint("order_id", o.ID))
	s.notifier.GuestOrderPlaced(ctx, ToOrderEmail(o))
	return o, nil
}

func (s *service) List(ctx context.Context, userID uint) ([]*Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Get(ctx context.Context, userID, id uint) (*Order, error) {
	return s.repo.GetForUser(ctx, id, userID)
}

func (s *service) GetByID(ctx context.Context, id uint) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) Revert(ctx context.Context, id uint) error {
	return s.repo.Revert(ctx, id)
}

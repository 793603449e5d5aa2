package rest

import (
	"context"
	"encoding/json"

	"bookstore-be/internal/cart"
	"bookstore-be/internal/order"
	"bookstore-be/internal/payment"
	"bookstore-be/internal/product"
	"bookstore-be/internal/user"
	"bookstore-be/internal/vendorpanel"

	"github.com/stretchr/testify/mock"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) authResult(args mock.Arguments) (*user.AuthResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.AuthResult), args.Error(1)
}

func (m *MockUserService) Register(ctx context.Context, in user.RegisterInput) (*user.AuthResult, error) {
	return m.authResult(m.Called(ctx, in))
}

func (m *MockUserService) RegisterVendor(ctx context.Context, in user.VendorRegisterInput) (*user.AuthResult, error) {
	return m.authResult(m.Called(ctx, in))
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (*user.AuthResult, error) {
	return m.authResult(m.Called(ctx, email, password))
}

func (m *MockUserService) Refresh(ctx context.Context, refreshToken string) (*user.AuthResult, error) {
	return m.authResult(m.Called(ctx, refreshToken))
}

func (m *MockUserService) GetByID(ctx context.Context, id uint) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, id uint, params user.UpdateProfileParams) (*user.User, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) ListVendorCompanies(ctx context.Context) ([]*user.VendorCompany, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.VendorCompany), args.Error(1)
}

func (m *MockUserService) ForgotPassword(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockUserService) ResetPassword(ctx context.Context, in user.ResetPasswordInput) error {
	return m.Called(ctx, in).Error(0)
}

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) View(ctx context.Context, owner cart.Owner) (*cart.Cart, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartService) Add(ctx context.Context, owner cart.Owner, in cart.AddInput) (*cart.Item, bool, error) {
	args := m.Called(ctx, owner, in)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*cart.Item), args.Bool(1), args.Error(2)
}

func (m *MockCartService) UpdateItem(ctx context.Context, owner cart.Owner, itemID uint, quantity int) (*cart.Item, error) {
	args := m.Called(ctx, owner, itemID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Item), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, owner cart.Owner, itemID uint) error {
	return m.Called(ctx, owner, itemID).Error(0)
}

func (m *MockCartService) Clear(ctx context.Context, owner cart.Owner) (int64, error) {
	args := m.Called(ctx, owner)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCartService) Merge(ctx context.Context, sessionKey string, userID uint) (int, error) {
	args := m.Called(ctx, sessionKey, userID)
	return args.Int(0), args.Error(1)
}

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) order(args mock.Arguments) (*order.Order, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) Checkout(ctx context.Context, userID uint) (*order.Order, error) {
	return m.order(m.Called(ctx, userID))
}

func (m *MockOrderService) CreatePending(ctx context.Context, userID uint) (*order.Order, error) {
	return m.order(m.Called(ctx, userID))
}

func (m *MockOrderService) GuestCheckout(ctx context.Context, sessionKey string, in order.GuestCheckoutInput) (*order.Order, error) {
	return m.order(m.Called(ctx, sessionKey, in))
}

func (m *MockOrderService) List(ctx context.Context, userID uint) ([]*order.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) Get(ctx context.Context, userID, id uint) (*order.Order, error) {
	return m.order(m.Called(ctx, userID, id))
}

func (m *MockOrderService) GetByID(ctx context.Context, id uint) (*order.Order, error) {
	return m.order(m.Called(ctx, id))
}

func (m *MockOrderService) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOrderService) Revert(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) products(args mock.Arguments) ([]*product.Product, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}

func (m *MockProductService) List(ctx context.Context, genre, format string) ([]*product.Product, error) {
	return m.products(m.Called(ctx, genre, format))
}

func (m *MockProductService) ListBooks(ctx context.Context, genre string) ([]*product.Product, error) {
	return m.products(m.Called(ctx, genre))
}

func (m *MockProductService) ListEbooks(ctx context.Context, genre string) ([]*product.Product, error) {
	return m.products(m.Called(ctx, genre))
}

func (m *MockProductService) GetByID(ctx context.Context, id uint) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Genres() []product.GenreInfo {
	return m.Called().Get(0).([]product.GenreInfo)
}

type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) CreateCheckoutSession(ctx context.Context, userID uint, email string) (*payment.Session, error) {
	args := m.Called(ctx, userID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Session), args.Error(1)
}

func (m *MockPaymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	return m.Called(ctx, payload, signature).Error(0)
}

type MockVendorService struct {
	mock.Mock
}

func (m *MockVendorService) ListProducts(ctx context.Context, v vendorpanel.Vendor) ([]*product.Product, error) {
	args := m.Called(ctx, v)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}

func (m *MockVendorService) GetProduct(ctx context.Context, v vendorpanel.Vendor, id uint) (*product.Product, error) {
	args := m.Called(ctx, v, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockVendorService) UpdateProduct(ctx context.Context, v vendorpanel.Vendor, id uint, body map[string]json.RawMessage) (*product.Product, error) {
	args := m.Called(ctx, v, id, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockVendorService) Analytics(ctx context.Context, v vendorpanel.Vendor) (*vendorpanel.Analytics, error) {
	args := m.Called(ctx, v)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vendorpanel.Analytics), args.Error(1)
}

func (m *MockVendorService) Dashboard(ctx context.Context, v vendorpanel.Vendor) (*vendorpanel.Dashboard, error) {
	args := m.Called(ctx, v)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vendorpanel.Dashboard), args.Error(1)
}

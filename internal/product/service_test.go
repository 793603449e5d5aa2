package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context, filter ListFilter) ([]*Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Product), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id uint) (*Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) ListByVendorCompany(ctx context.Context, companyID uint) ([]*Product, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Product), args.Error(1)
}

func (m *MockRepository) GetByVendorCompany(ctx context.Context, id, companyID uint) (*Product, error) {
	args := m.Called(ctx, id, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) UpdateVendorFields(ctx context.Context, id uint, upd VendorUpdate) error {
	args := m.Called(ctx, id, upd)
	return args.Error(0)
}

func TestService_Lists(t *testing.T) {
	ctx := context.Background()

	t.Run("List passes genre and format", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("List", ctx, ListFilter{Genre: GenreFantasy, Formats: []Format{FormatEbook}}).
			Return([]*Product{{ID: 1}}, nil).Once()

		products, err := svc.List(ctx, "fantasy", "ebook")

		assert.NoError(t, err)
		assert.Len(t, products, 1)
		repo.AssertExpectations(t)
	})

	t.Run("List without filters", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("List", ctx, ListFilter{}).Return([]*Product{}, nil).Once()

		_, err := svc.List(ctx, "", "")
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Books include both-format products", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("List", ctx, ListFilter{Formats: []Format{FormatPaperback, FormatBoth}}).
			Return([]*Product{}, nil).Once()

		_, err := svc.ListBooks(ctx, "")
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Ebooks filtered by genre", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("List", ctx, ListFilter{Genre: GenreHorror, Formats: []Format{FormatEbook, FormatBoth}}).
			Return([]*Product{}, nil).Once()

		_, err := svc.ListEbooks(ctx, "horror")
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestService_GetByID(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, uint(9)).Return(nil, ErrProductNotFound).Once()

	_, err := svc.GetByID(ctx, 9)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestService_Genres(t *testing.T) {
	svc := NewService(new(MockRepository))

	got := svc.Genres()

	assert.Len(t, got, 7)
	assert.Equal(t, GenreInfo{GenreMystery, "Kryminał"}, got[1])

	// callers cannot mutate the catalog
	got[0].Label = "x"
	assert.Equal(t, "Romans", svc.Genres()[0].Label)
}

package address

import (
	"context"

	"bookstore-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, userID uint) ([]*Address, error)
	Get(ctx context.Context, userID, id uint) (*Address, error)

	Create(ctx context.Context, userID uint, input Input) (*Address, error)
	Update(ctx context.Context, userID, id uint, patch PatchInput) (*Address, error)
	Delete(ctx context.Context, userID, id uint) error

	SetDefault(ctx context.Context, userID, id uint) (*Address, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, userID uint) ([]*Address, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) Get(ctx context.Context, userID, id uint) (*Address, error) {
	return s.repo.GetByID(ctx, id, userID)
}

func (s *service) Create(ctx context.Context, userID uint, input Input) (*Address, error) {
	if err := Validate(&input); err != nil {
		return nil, err
	}

	addr := &Address{
		UserID:        userID,
		RecipientName: input.RecipientName,
		Street:        input.Street,
		PostalCode:    input.PostalCode,
		City:          input.City,
		Country:       input.Country,
		Phone:         input.Phone,
		IsDefault:     input.IsDefault,
	}
	if err := s.repo.Create(ctx, addr); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("address created",
		zap.Uint("address_id", addr.ID),
		zap.Bool("is_default", addr.IsDefault),
	)
	return addr, nil
}

func (s *service) Update(ctx context.Context, userID, id uint, patch PatchInput) (*Address, error) {
	addr, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	input := patch.Apply(addr)
	if err := Validate(&input); err != nil {
		return nil, err
	}

	addr.RecipientName = input.RecipientName
	addr.Street = input.Street
	addr.PostalCode = input.PostalCode
	addr.City = input.City
	addr.Country = input.Country
	addr.Phone = input.Phone
	addr.IsDefault = input.IsDefault

	if err := s.repo.Update(ctx, addr); err != nil {
		return nil, err
	}
	return addr, nil
}

func (s *service) Delete(ctx context.Context, userID, id uint) error {
	return s.repo.Delete(ctx, id, userID)
}

func (s *service) SetDefault(ctx context.Context, userID, id uint) (*Address, error) {
	if err := s.repo.SetDefault(ctx, id, userID); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id, userID)
}

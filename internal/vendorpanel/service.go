package vendorpanel

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"bookstore-be/internal/apperror"
	"bookstore-be/internal/logger"
	"bookstore-be/internal/product"
	"bookstore-be/internal/transport"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductStore is the part of the product repository the panel works with.
type ProductStore interface {
	ListByVendorCompany(ctx context.Context, companyID uint) ([]*product.Product, error)
	GetByVendorCompany(ctx context.Context, id, companyID uint) (*product.Product, error)
	UpdateVendorFields(ctx context.Context, id uint, upd product.VendorUpdate) error
}

type Service interface {
	ListProducts(ctx context.Context, v Vendor) ([]*product.Product, error)
	GetProduct(ctx context.Context, v Vendor, id uint) (*product.Product, error)
	UpdateProduct(ctx context.Context, v Vendor, id uint, body map[string]json.RawMessage) (*product.Product, error)
	Analytics(ctx context.Context, v Vendor) (*Analytics, error)
	Dashboard(ctx context.Context, v Vendor) (*Dashboard, error)
}

type service struct {
	repo     Repository
	products ProductStore
	now      func() time.Time
}

func NewService(repo Repository, products ProductStore) Service {
	return &service{repo: repo, products: products, now: time.Now}
}

func (s *service) ListProducts(ctx context.Context, v Vendor) ([]*product.Product, error) {
	if v.CompanyID == nil {
		return []*product.Product{}, nil
	}
	return s.products.ListByVendorCompany(ctx, *v.CompanyID)
}

func (s *service) GetProduct(ctx context.Context, v Vendor, id uint) (*product.Product, error) {
	if v.CompanyID == nil {
		return nil, product.ErrProductNotFound
	}
	return s.products.GetByVendorCompany(ctx, id, *v.CompanyID)
}

func (s *service) UpdateProduct(ctx context.Context, v Vendor, id uint, body map[string]json.RawMessage) (*product.Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateProduct"),
		zap.Uint("product_id", id),
	)

	if _, err := s.GetProduct(ctx, v, id); err != nil {
		return nil, err
	}

	if denied := disallowedFields(body); len(denied) > 0 {
		log.Warn("vendor tried to edit restricted fields", zap.Strings("fields", denied))
		return nil, ErrFieldsNotAllowed.
			With(strings.Join(denied, ", ")).
			WithDetails(map[string]any{"allowed_fields": AllowedFields})
	}

	patch, err := decodePatch(body)
	if err != nil {
		return nil, err
	}
	if err := s.validate(patch); err != nil {
		return nil, err
	}

	upd := product.VendorUpdate{
		Description:     patch.Description,
		ImageURL:        patch.ImageURL,
		PageCount:       patch.PageCount,
		PublicationYear: patch.PublicationYear,
	}
	if err := s.products.UpdateVendorFields(ctx, id, upd); err != nil {
		return nil, err
	}

	log.Info("vendor product updated")
	return s.products.GetByVendorCompany(ctx, id, *v.CompanyID)
}

func disallowedFields(body map[string]json.RawMessage) []string {
	var denied []string
	for key := range body {
		allowed := false
		for _, f := range AllowedFields {
			if key == f {
				allowed = true
				break
			}
		}
		if !allowed {
			denied = append(denied, key)
		}
	}
	sort.Strings(denied)
	return denied
}

func decodePatch(body map[string]json.RawMessage) (productPatch, error) {
	var p productPatch
	raw, err := json.Marshal(body)
	if err != nil {
		return p, err
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return p, transport.ErrInvalidBody
	}
	return p, nil
}

func (s *service) validate(p productPatch) error {
	var page, year *apperror.Error
	if p.PageCount != nil && *p.PageCount <= 0 {
		page = ErrInvalidPageCount
	}
	maxYear := s.now().Year() + 1
	if p.PublicationYear != nil && (*p.PublicationYear < minPublicationYear || *p.PublicationYear > maxYear) {
		year = ErrInvalidPublication.With(strconv.Itoa(minPublicationYear), strconv.Itoa(maxYear))
	}
	return apperror.Join(page, year)
}

func (s *service) Analytics(ctx context.Context, v Vendor) (*Analytics, error) {
	if v.CompanyID == nil {
		return nil, ErrNoCompany
	}
	companyID := *v.CompanyID

	counts, err := s.repo.CountProducts(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if counts.Total == 0 {
		return &Analytics{
			Message:      MsgNoProducts,
			TotalRevenue: formatMoney(decimal.Zero),
			ProductsSold: []ProductSales{},
			MonthlySales: []MonthlySales{},
			Currency:     Currency,
		}, nil
	}

	totals, err := s.repo.Totals(ctx, companyID, time.Time{})
	if err != nil {
		return nil, err
	}
	top, err := s.repo.TopProducts(ctx, companyID, topProducts)
	if err != nil {
		return nil, err
	}
	monthly, err := s.repo.Monthly(ctx, companyID, monthStart(s.now()).AddDate(0, -(monthsBack-1), 0))
	if err != nil {
		return nil, err
	}

	return &Analytics{
		VendorCompany: companyName(v),
		TotalProducts: counts.Total,
		TotalSales:    totals.Quantity,
		TotalRevenue:  formatMoney(totals.Revenue),
		ProductsSold:  top,
		MonthlySales:  monthly,
		Currency:      Currency,
	}, nil
}

func (s *service) Dashboard(ctx context.Context, v Vendor) (*Dashboard, error) {
	if v.CompanyID == nil {
		return nil, ErrNoCompany
	}
	companyID := *v.CompanyID

	counts, err := s.repo.CountProducts(ctx, companyID)
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.Totals(ctx, companyID, s.now().AddDate(0, 0, -dashboardDays))
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		VendorCompany:      companyName(v),
		VendorEmail:        v.Email,
		TotalProducts:      counts.Total,
		InStockProducts:    counts.InStock,
		OutOfStockProducts: counts.Total - counts.InStock,
		Last30Days: RecentSales{
			Sales:       recent.Quantity,
			Revenue:     formatMoney(recent.Revenue),
			OrdersCount: recent.OrdersCount,
		},
		Currency: Currency,
	}, nil
}

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func companyName(v Vendor) string {
	if v.CompanyName == nil {
		return ""
	}
	return *v.CompanyName
}

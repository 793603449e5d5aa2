package product

import (
	"context"
)

type Service interface {
	List(ctx context.Context, genre, format string) ([]*Product, error)
	ListBooks(ctx context.Context, genre string) ([]*Product, error)
	ListEbooks(ctx context.Context, genre string) ([]*Product, error)
	GetByID(ctx context.Context, id uint) (*Product, error)
	Genres() []GenreInfo
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// List returns the whole catalog, newest first. Unknown filter values match
// nothing rather than being rejected.
func (s *service) List(ctx context.Context, genre, format string) ([]*Product, error) {
	filter := ListFilter{Genre: Genre(genre)}
	if format != "" {
		filter.Formats = []Format{Format(format)}
	}
	return s.repo.List(ctx, filter)
}

// ListBooks returns products available on paper.
func (s *service) ListBooks(ctx context.Context, genre string) ([]*Product, error) {
	return s.repo.List(ctx, ListFilter{
		Genre:   Genre(genre),
		Formats: []Format{FormatPaperback, FormatBoth},
	})
}

// ListEbooks returns products available as ebooks.
func (s *service) ListEbooks(ctx context.Context, genre string) ([]*Product, error) {
	return s.repo.List(ctx, ListFilter{
		Genre:   Genre(genre),
		Formats: []Format{FormatEbook, FormatBoth},
	})
}

func (s *service) GetByID(ctx context.Context, id uint) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Genres() []GenreInfo {
	out := make([]GenreInfo, len(genres))
	copy(out, genres)
	return out
}

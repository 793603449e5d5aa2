package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type Genre string

const (
	GenreRomance        Genre = "romance"
	GenreMystery        Genre = "mystery"
	GenreThriller       Genre = "thriller"
	GenreFantasy        Genre = "fantasy"
	GenreScienceFiction Genre = "science-fiction"
	GenreYoungAdult     Genre = "young-adult"
	GenreHorror         Genre = "horror"
)

// genres keeps the display order of the catalog.
var genres = []GenreInfo{
	{GenreRomance, "Romans"},
	{GenreMystery, "Kryminał"},
	{GenreThriller, "Thriller"},
	{GenreFantasy, "Fantasy"},
	{GenreScienceFiction, "Science Fiction"},
	{GenreYoungAdult, "Literatura młodzieżowa"},
	{GenreHorror, "Horror"},
}

type GenreInfo struct {
	Value Genre  `json:"value"`
	Label string `json:"label"`
}

func (g Genre) Valid() bool {
	for _, info := range genres {
		if info.Value == g {
			return true
		}
	}
	return false
}

func (g Genre) Label() string {
	for _, info := range genres {
		if info.Value == g {
			return info.Label
		}
	}
	return string(g)
}

type Format string

const (
	FormatPaperback Format = "paperback"
	FormatEbook     Format = "ebook"
	FormatBoth      Format = "both"
)

func (f Format) Valid() bool {
	return f == FormatPaperback || f == FormatEbook || f == FormatBoth
}

func (f Format) Label() string {
	switch f {
	case FormatPaperback:
		return "Książka papierowa"
	case FormatEbook:
		return "E-book"
	case FormatBoth:
		return "Książka papierowa i E-book"
	}
	return string(f)
}

type Product struct {
	ID                uint
	VendorCompanyID   *uint
	VendorCompanyName *string
	Title             string
	Author            string
	Genre             Genre
	Format            Format
	Description       string
	Price             decimal.Decimal
	Stock             int
	ImageURL          *string
	PublicationYear   *int
	Publisher         *string
	ISBN              *string
	PageCount         *int
	CreatedAt         time.Time
}

func (p *Product) IsInStock() bool {
	return p.Stock > 0
}

// PurchaseFormat resolves the format a buyer gets. Single-format products
// force their own format; a product sold in both formats needs an explicit
// choice of paperback or ebook.
func (p *Product) PurchaseFormat(selected Format) (Format, error) {
	switch p.Format {
	case FormatBoth:
		if selected != FormatPaperback && selected != FormatEbook {
			return "", ErrFormatRequired
		}
		return selected, nil
	default:
		if selected != "" && selected != p.Format {
			return "", ErrFormatUnavailable.With(selected)
		}
		return p.Format, nil
	}
}

type ListFilter struct {
	Genre   Genre
	Formats []Format
}

// VendorUpdate holds the product fields a vendor may change.
type VendorUpdate struct {
	Description     *string
	ImageURL        *string
	PageCount       *int
	PublicationYear *int
}

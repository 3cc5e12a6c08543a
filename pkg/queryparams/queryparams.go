package queryparams

import "strings"

const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
	DefaultOrderBy = "desc"
)

// ListParams liste sayfalarının query string parametreleri.
type ListParams struct {
	Page    int    `query:"page"`
	PerPage int    `query:"per_page"`
	Name    string `query:"name"`
	Status  string `query:"status"`
	SortBy  string `query:"sort_by"`
	OrderBy string `query:"order_by"`
}

// DefaultListParams verilen sıralama sütunu ile varsayılan parametreleri üretir.
func DefaultListParams(sortBy string) ListParams {
	return ListParams{
		Page:    DefaultPage,
		PerPage: DefaultPerPage,
		SortBy:  sortBy,
		OrderBy: DefaultOrderBy,
	}
}

// Validate sayfalama sınırlarını zorlar, geçersiz değerleri düzeltir.
func (p *ListParams) Validate() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	orderBy := strings.ToLower(p.OrderBy)
	if orderBy != "asc" && orderBy != "desc" {
		p.OrderBy = DefaultOrderBy
	}
}

// CalculateOffset sayfalama için OFFSET değerini hesaplar.
func (p *ListParams) CalculateOffset() int {
	return (p.Page - 1) * p.PerPage
}

// CalculateTotalPages toplam kayıt sayısından sayfa sayısını hesaplar.
func CalculateTotalPages(totalItems int64, perPage int) int {
	if perPage <= 0 || totalItems <= 0 {
		return 0
	}
	pages := int(totalItems) / perPage
	if int(totalItems)%perPage != 0 {
		pages++
	}
	return pages
}

// PaginationMeta sayfalanmış sonuç üst verisi.
type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
}

// PaginatedResult view katmanına giden sayfalanmış veri zarfı.
type PaginatedResult struct {
	Data interface{}    `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

package service

import "github.com/Skotchmaster/marketplace/internal/domain"

type SortKey string

const (
	SortTimeDesc  SortKey = "time_desc"
	SortSales     SortKey = "sales"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortDefault   SortKey = ""
)

var sortTable = map[SortKey]domain.SortSpec{
	SortTimeDesc:  {Field: domain.SortByCreatedAt, Desc: true},
	SortSales:     {Field: domain.SortBySold, Desc: true},
	SortPriceAsc:  {Field: domain.SortByFirstPrice},
	SortPriceDesc: {Field: domain.SortByFirstPrice, Desc: true},
}

// Resolve maps a sort key to its attribute and direction. Unknown and empty
// keys fall back to average rating, highest first.
func (k SortKey) Resolve() domain.SortSpec {
	if s, ok := sortTable[k]; ok {
		return s
	}
	return domain.SortSpec{Field: domain.SortByRating, Desc: true}
}

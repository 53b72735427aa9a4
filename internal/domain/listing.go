package domain

import (
	"github.com/google/uuid"
)

type SortField int

const (
	SortByRating SortField = iota
	SortByCreatedAt
	SortBySold
	SortByFirstPrice
)

func (f SortField) String() string {
	switch f {
	case SortByCreatedAt:
		return "created_at"
	case SortBySold:
		return "sold_quantity"
	case SortByFirstPrice:
		return "first_price"
	default:
		return "avg_rating"
	}
}

type SortSpec struct {
	Field SortField
	Desc  bool
}

// ListQuery selects one page of a seller's products. Ties on the sort field
// are broken by product id ascending.
type ListQuery struct {
	SellerID uuid.UUID
	Sort     SortSpec
	Offset   int
	Limit    int
}

// ProductSummary is the listing projection of a product.
type ProductSummary struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Images       []string  `json:"images"`
	SoldQuantity int64     `json:"sold_quantity"`
	AvgRating    float64   `json:"avg_rating"`
	CategoryID   uuid.UUID `json:"category_id"`
	CategoryName string    `json:"category_name"`
}

type CategoryGroup struct {
	CategoryID   uuid.UUID        `json:"category_id"`
	CategoryName string           `json:"category_name"`
	Products     []ProductSummary `json:"products"`
}

type Listing struct {
	Seller SellerSummary   `json:"seller"`
	Groups []CategoryGroup `json:"groups"`
}

// GroupByCategory buckets an already sorted window by category. Groups appear
// in order of their category's first appearance and keep window order inside.
func GroupByCategory(window []ProductSummary) []CategoryGroup {
	groups := make([]CategoryGroup, 0)
	index := make(map[uuid.UUID]int)
	for _, p := range window {
		i, ok := index[p.CategoryID]
		if !ok {
			i = len(groups)
			index[p.CategoryID] = i
			groups = append(groups, CategoryGroup{CategoryID: p.CategoryID, CategoryName: p.CategoryName})
		}
		groups[i].Products = append(groups[i].Products, p)
	}
	return groups
}

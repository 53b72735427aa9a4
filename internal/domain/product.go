package domain

import (
	"time"

	"github.com/google/uuid"
)

type Detail struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Variant struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Slug     string    `json:"slug"`
	Price    int64     `json:"price"`
	Position int       `json:"position"`
}

// Product.CategoryName is a snapshot taken when the product is written; it is
// not updated if the category is renamed later.
type Product struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Slug             string    `json:"slug"`
	Images           []string  `json:"images"`
	ShortDescription string    `json:"short_description"`
	Description      string    `json:"description"`
	Details          []Detail  `json:"details"`
	Variants         []Variant `json:"variants"`
	SoldQuantity     int64     `json:"sold_quantity"`
	AvgRating        float64   `json:"avg_rating"`
	SellerID         uuid.UUID `json:"seller_id"`
	CategoryID       uuid.UUID `json:"category_id"`
	CategoryName     string    `json:"category_name"`
	SupplierPrice    int64     `json:"supplier_price"`
	Sort             int64     `json:"sort"`
	CreatedAt        time.Time `json:"created_at"`
}

// VariantByID returns the variant with the given id, if the product has one.
func (p *Product) VariantByID(id uuid.UUID) (Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

// FirstPrice is the price of the lowest-position variant, which is what
// listings sort and display by.
func (p *Product) FirstPrice() int64 {
	if len(p.Variants) == 0 {
		return 0
	}
	first := p.Variants[0]
	for _, v := range p.Variants[1:] {
		if v.Position < first.Position {
			first = v
		}
	}
	return first.Price
}

type Category struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Slug             string    `json:"slug"`
	ShortDescription string    `json:"short_description"`
	Image            string    `json:"image"`
	CreatedAt        time.Time `json:"created_at"`
}

type CategoryName struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

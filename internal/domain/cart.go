package domain

import (
	"time"

	"github.com/google/uuid"
)

type CartOutcome int

const (
	CartLineCreated CartOutcome = iota + 1
	CartLineIncremented
)

func (o CartOutcome) String() string {
	switch o {
	case CartLineCreated:
		return "created"
	case CartLineIncremented:
		return "incremented"
	default:
		return "unknown"
	}
}

// CartLine is a cart entry with its product resolved for display.
type CartLine struct {
	ProductID  uuid.UUID `json:"product_id"`
	VariantID  uuid.UUID `json:"variant_id"`
	Quantity   int       `json:"quantity"`
	Name       string    `json:"name"`
	Images     []string  `json:"images"`
	Price      int64     `json:"price"`
	SellerName string    `json:"seller_name"`
	AddedAt    time.Time `json:"added_at"`
}

type AddResult struct {
	Outcome  CartOutcome `json:"-"`
	Quantity int         `json:"quantity"`
}

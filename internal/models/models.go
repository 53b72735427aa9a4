package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"       json:"id"`
	Email        string     `gorm:"uniqueIndex;not null"       json:"email"`
	Name         string     `gorm:"not null"                   json:"name"`
	PasswordHash string     `gorm:"not null"                   json:"-"`
	Phone        string     `gorm:"not null"                   json:"phone"`
	Gender       string     `json:"gender"`
	Birth        time.Time  `json:"birth"`
	Address      string     `json:"address"`
	Avatar       string     `json:"avatar"`
	CreatedAt    time.Time  `json:"created_at"`
	CartLines    []CartLine `gorm:"foreignKey:UserID"          json:"-"`
}

type Category struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string    `gorm:"not null"             json:"name"`
	Slug             string    `gorm:"index;not null"       json:"slug"`
	ShortDescription string    `gorm:"not null"             json:"short_description"`
	Image            string    `json:"image"`
	CreatedAt        time.Time `json:"created_at"`
}

type Detail struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Product struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"          json:"id"`
	Name             string    `gorm:"not null"                      json:"name"`
	Slug             string    `gorm:"index;not null"                json:"slug"`
	Images           []string  `gorm:"serializer:json"               json:"images"`
	ShortDescription string    `gorm:"not null"                      json:"short_description"`
	Description      string    `json:"description"`
	Details          []Detail  `gorm:"serializer:json"               json:"details"`
	Variants         []Variant `gorm:"foreignKey:ProductID"          json:"variants"`
	SoldQuantity     int64     `gorm:"not null;default:0"            json:"sold_quantity"`
	AvgRating        float64   `gorm:"not null;default:0"            json:"avg_rating"`
	SellerID         uuid.UUID `gorm:"type:uuid;index;not null"      json:"seller_id"`
	CategoryID       uuid.UUID `gorm:"type:uuid;index;not null"      json:"category_id"`
	CategoryName     string    `json:"category_name"`
	SupplierPrice    int64     `gorm:"not null"                      json:"supplier_price"`
	Sort             int64     `gorm:"not null"                      json:"sort"`
	CreatedAt        time.Time `gorm:"index"                         json:"created_at"`
}

type Variant struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;index;not null" json:"product_id"`
	Name      string    `gorm:"not null"                 json:"name"`
	Slug      string    `json:"slug"`
	Price     int64     `gorm:"not null;check:price>=0"  json:"price"`
	Position  int       `gorm:"not null"                 json:"position"`
}

// CartLine rows are unique per (user, product, variant). The serial id keeps
// insertion order.
type CartLine struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"                     json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_pair;not null" json:"user_id"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_pair;not null" json:"product_id"`
	VariantID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_pair;not null" json:"variant_id"`
	Quantity  int       `gorm:"not null;default:1;check:quantity>0"          json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	Product   Product   `gorm:"foreignKey:ProductID"                         json:"-"`
}

type Counter struct {
	Name  string `gorm:"primaryKey"`
	Value int64  `gorm:"not null"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (v *Variant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

func (CartLine) TableName() string {
	return "cart_lines"
}

// All lists every model for AutoMigrate.
func All() []any {
	return []any{&User{}, &Category{}, &Product{}, &Variant{}, &CartLine{}, &Counter{}}
}

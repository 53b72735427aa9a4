package mongorepo

import (
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/marketplace/internal/domain"
)

// Ids are stored in their canonical text form so that documents stay
// readable from the mongo shell.

type cartLineDoc struct {
	ProductID string    `bson:"product_id"`
	VariantID string    `bson:"variant_id"`
	Quantity  int       `bson:"quantity"`
	AddedAt   time.Time `bson:"added_at"`
}

type userDoc struct {
	ID           string        `bson:"_id"`
	Email        string        `bson:"email"`
	Name         string        `bson:"name"`
	PasswordHash string        `bson:"password_hash"`
	Phone        string        `bson:"phone"`
	Gender       string        `bson:"gender"`
	Birth        time.Time     `bson:"birth"`
	Address      string        `bson:"address"`
	Avatar       string        `bson:"avatar"`
	CreatedAt    time.Time     `bson:"created_at"`
	Cart         []cartLineDoc `bson:"cart"`
}

type categoryDoc struct {
	ID               string    `bson:"_id"`
	Name             string    `bson:"name"`
	Slug             string    `bson:"slug"`
	ShortDescription string    `bson:"short_description"`
	Image            string    `bson:"image"`
	CreatedAt        time.Time `bson:"created_at"`
}

type detailDoc struct {
	Name  string `bson:"name"`
	Value string `bson:"value"`
}

type variantDoc struct {
	ID       string `bson:"id"`
	Name     string `bson:"name"`
	Slug     string `bson:"slug"`
	Price    int64  `bson:"price"`
	Position int    `bson:"position"`
}

type productDoc struct {
	ID               string       `bson:"_id"`
	Name             string       `bson:"name"`
	Slug             string       `bson:"slug"`
	Images           []string     `bson:"images"`
	ShortDescription string       `bson:"short_description"`
	Description      string       `bson:"description"`
	Details          []detailDoc  `bson:"details"`
	Variants         []variantDoc `bson:"variants"`
	SoldQuantity     int64        `bson:"sold_quantity"`
	AvgRating        float64      `bson:"avg_rating"`
	SellerID         string       `bson:"seller_id"`
	CategoryID       string       `bson:"category_id"`
	CategoryName     string       `bson:"category_name"`
	SupplierPrice    int64        `bson:"supplier_price"`
	Sort             int64        `bson:"sort"`
	CreatedAt        time.Time    `bson:"created_at"`
}

type summaryDoc struct {
	ID           string   `bson:"_id"`
	Name         string   `bson:"name"`
	Images       []string `bson:"images"`
	SoldQuantity int64    `bson:"sold_quantity"`
	AvgRating    float64  `bson:"avg_rating"`
	CategoryID   string   `bson:"category_id"`
	CategoryName string   `bson:"category_name"`
}

type groupDoc struct {
	CategoryID   string       `bson:"_id"`
	CategoryName string       `bson:"category_name"`
	Products     []summaryDoc `bson:"products"`
}

type counterDoc struct {
	Name  string `bson:"_id"`
	Value int64  `bson:"value"`
}

func parseID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func (d *userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:           parseID(d.ID),
		Email:        d.Email,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		Phone:        d.Phone,
		Gender:       d.Gender,
		Birth:        d.Birth,
		Address:      d.Address,
		Avatar:       d.Avatar,
		CreatedAt:    d.CreatedAt,
	}
}

func userToDoc(u *domain.User) *userDoc {
	return &userDoc{
		ID:           u.ID.String(),
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Phone:        u.Phone,
		Gender:       u.Gender,
		Birth:        u.Birth,
		Address:      u.Address,
		Avatar:       u.Avatar,
		CreatedAt:    u.CreatedAt,
		Cart:         []cartLineDoc{},
	}
}

func (d *categoryDoc) toDomain() *domain.Category {
	return &domain.Category{
		ID:               parseID(d.ID),
		Name:             d.Name,
		Slug:             d.Slug,
		ShortDescription: d.ShortDescription,
		Image:            d.Image,
		CreatedAt:        d.CreatedAt,
	}
}

func (d *productDoc) toDomain() *domain.Product {
	p := &domain.Product{
		ID:               parseID(d.ID),
		Name:             d.Name,
		Slug:             d.Slug,
		Images:           d.Images,
		ShortDescription: d.ShortDescription,
		Description:      d.Description,
		SoldQuantity:     d.SoldQuantity,
		AvgRating:        d.AvgRating,
		SellerID:         parseID(d.SellerID),
		CategoryID:       parseID(d.CategoryID),
		CategoryName:     d.CategoryName,
		SupplierPrice:    d.SupplierPrice,
		Sort:             d.Sort,
		CreatedAt:        d.CreatedAt,
	}
	for _, dt := range d.Details {
		p.Details = append(p.Details, domain.Detail{Name: dt.Name, Value: dt.Value})
	}
	for _, v := range d.Variants {
		p.Variants = append(p.Variants, domain.Variant{
			ID:       parseID(v.ID),
			Name:     v.Name,
			Slug:     v.Slug,
			Price:    v.Price,
			Position: v.Position,
		})
	}
	return p
}

func productToDoc(p *domain.Product) *productDoc {
	d := &productDoc{
		ID:               p.ID.String(),
		Name:             p.Name,
		Slug:             p.Slug,
		Images:           p.Images,
		ShortDescription: p.ShortDescription,
		Description:      p.Description,
		SoldQuantity:     p.SoldQuantity,
		AvgRating:        p.AvgRating,
		SellerID:         p.SellerID.String(),
		CategoryID:       p.CategoryID.String(),
		CategoryName:     p.CategoryName,
		SupplierPrice:    p.SupplierPrice,
		Sort:             p.Sort,
		CreatedAt:        p.CreatedAt,
	}
	for _, dt := range p.Details {
		d.Details = append(d.Details, detailDoc{Name: dt.Name, Value: dt.Value})
	}
	for _, v := range p.Variants {
		d.Variants = append(d.Variants, variantDoc{
			ID:       v.ID.String(),
			Name:     v.Name,
			Slug:     v.Slug,
			Price:    v.Price,
			Position: v.Position,
		})
	}
	return d
}

func (g *groupDoc) toDomain() domain.CategoryGroup {
	out := domain.CategoryGroup{
		CategoryID:   parseID(g.CategoryID),
		CategoryName: g.CategoryName,
		Products:     make([]domain.ProductSummary, 0, len(g.Products)),
	}
	for _, s := range g.Products {
		out.Products = append(out.Products, domain.ProductSummary{
			ID:           parseID(s.ID),
			Name:         s.Name,
			Images:       s.Images,
			SoldQuantity: s.SoldQuantity,
			AvgRating:    s.AvgRating,
			CategoryID:   parseID(s.CategoryID),
			CategoryName: s.CategoryName,
		})
	}
	return out
}

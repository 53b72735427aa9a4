package gormrepo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/marketplace/internal/domain"
	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/internal/repo"
)

const firstPriceExpr = "(SELECT v.price FROM variants v WHERE v.product_id = products.id ORDER BY v.position LIMIT 1)"

func (r *GormRepo) CreateCategory(ctx context.Context, c *domain.Category) error {
	row := &models.Category{
		ID:               c.ID,
		Name:             c.Name,
		Slug:             c.Slug,
		ShortDescription: c.ShortDescription,
		Image:            c.Image,
	}
	if err := r.DB.WithContext(ctx).Create(row).Error; err != nil {
		return mapErr(err)
	}
	c.ID = row.ID
	c.CreatedAt = row.CreatedAt
	return nil
}

func (r *GormRepo) GetCategory(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	var c models.Category
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, mapErr(err)
	}
	return categoryToDomain(&c), nil
}

func (r *GormRepo) ListCategoryNames(ctx context.Context) ([]domain.CategoryName, error) {
	var rows []models.Category
	if err := r.DB.WithContext(ctx).Select("id", "name").Order("name ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, mapErr(err)
	}
	out := make([]domain.CategoryName, 0, len(rows))
	for _, c := range rows {
		out = append(out, domain.CategoryName{ID: c.ID, Name: c.Name})
	}
	return out, nil
}

// CreateProduct draws the next value of the products sequence and inserts the
// product with its variants in the same transaction. The first product gets
// sort 0.
func (r *GormRepo) CreateProduct(ctx context.Context, p *domain.Product) error {
	row := productFromDomain(p)
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq, err := nextValue(tx, repo.ProductsCounter)
		if err != nil {
			return err
		}
		row.Sort = seq - 1
		return tx.Create(row).Error
	})
	if err != nil {
		return mapErr(err)
	}

	created := productToDomain(row)
	*p = *created
	return nil
}

func nextValue(tx *gorm.DB, name string) (int64, error) {
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.Assignments(map[string]any{"value": gorm.Expr("counters.value + 1")}),
	}).Create(&models.Counter{Name: name, Value: 1}).Error
	if err != nil {
		return 0, err
	}

	var c models.Counter
	if err := tx.Where("name = ?", name).First(&c).Error; err != nil {
		return 0, err
	}
	return c.Value, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var p models.Product
	err := r.DB.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return productToDomain(&p), nil
}

func (r *GormRepo) ListSellerProducts(ctx context.Context, q domain.ListQuery) ([]domain.CategoryGroup, error) {
	var rows []models.Product
	err := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Select("products.id", "products.name", "products.images", "products.sold_quantity",
			"products.avg_rating", "products.category_id", "products.category_name").
		Where("products.seller_id = ?", q.SellerID).
		Order(orderBy(q.Sort)).
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, mapErr(err)
	}

	window := make([]domain.ProductSummary, 0, len(rows))
	for i := range rows {
		window = append(window, summaryFromModel(&rows[i]))
	}
	return domain.GroupByCategory(window), nil
}

func orderBy(s domain.SortSpec) string {
	col := "products.avg_rating"
	switch s.Field {
	case domain.SortByCreatedAt:
		col = "products.created_at"
	case domain.SortBySold:
		col = "products.sold_quantity"
	case domain.SortByFirstPrice:
		col = firstPriceExpr
	}
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}
	return col + " " + dir + ", products.id ASC"
}

package gormrepo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/marketplace/internal/domain"
	"github.com/Skotchmaster/marketplace/internal/models"
)

// AddCartLine inserts the (product, variant) line with quantity 1 or bumps the
// existing line by one in a single upsert guarded by idx_cart_pair. The line
// is read back inside the transaction to tell the two cases apart.
func (r *GormRepo) AddCartLine(ctx context.Context, userID, productID, variantID uuid.UUID) (domain.AddResult, error) {
	var res domain.AddResult
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owners int64
		if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&owners).Error; err != nil {
			return err
		}
		if owners == 0 {
			return gorm.ErrRecordNotFound
		}

		line := models.CartLine{
			UserID:    userID,
			ProductID: productID,
			VariantID: variantID,
			Quantity:  1,
		}
		err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}, {Name: "variant_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity": gorm.Expr("cart_lines.quantity + 1"),
			}),
		}).Create(&line).Error
		if err != nil {
			return err
		}

		var stored models.CartLine
		if err := tx.
			Where("user_id = ? AND product_id = ? AND variant_id = ?", userID, productID, variantID).
			First(&stored).Error; err != nil {
			return err
		}

		res.Quantity = stored.Quantity
		res.Outcome = domain.CartLineIncremented
		if stored.Quantity == 1 {
			res.Outcome = domain.CartLineCreated
		}
		return nil
	})
	if err != nil {
		return domain.AddResult{}, mapErr(err)
	}
	return res, nil
}

// RemoveCartLine deletes the exact pair. Removing a line that is not there is
// not an error.
func (r *GormRepo) RemoveCartLine(ctx context.Context, userID, productID, variantID uuid.UUID) (bool, error) {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ? AND variant_id = ?", userID, productID, variantID).
		Delete(&models.CartLine{})
	if res.Error != nil {
		return false, mapErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *GormRepo) CartLines(ctx context.Context, userID uuid.UUID) ([]domain.CartLine, error) {
	db := r.DB.WithContext(ctx)

	var rows []models.CartLine
	err := db.
		Preload("Product").
		Preload("Product.Variants", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, mapErr(err)
	}
	if len(rows) == 0 {
		return []domain.CartLine{}, nil
	}

	sellerIDs := make([]uuid.UUID, 0, len(rows))
	for _, l := range rows {
		sellerIDs = append(sellerIDs, l.Product.SellerID)
	}
	var sellers []models.User
	if err := db.Select("id", "name").Where("id IN ?", sellerIDs).Find(&sellers).Error; err != nil {
		return nil, mapErr(err)
	}
	names := make(map[uuid.UUID]string, len(sellers))
	for _, s := range sellers {
		names[s.ID] = s.Name
	}

	out := make([]domain.CartLine, 0, len(rows))
	for _, l := range rows {
		p := productToDomain(&l.Product)
		out = append(out, domain.CartLine{
			ProductID:  l.ProductID,
			VariantID:  l.VariantID,
			Quantity:   l.Quantity,
			Name:       p.Name,
			Images:     p.Images,
			Price:      p.FirstPrice(),
			SellerName: names[p.SellerID],
			AddedAt:    l.CreatedAt,
		})
	}
	return out, nil
}

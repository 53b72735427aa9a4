package gormrepo

import (
	"github.com/Skotchmaster/marketplace/internal/domain"
	"github.com/Skotchmaster/marketplace/internal/models"
)

func userToDomain(u *models.User) *domain.User {
	return &domain.User{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Phone:        u.Phone,
		Gender:       u.Gender,
		Birth:        u.Birth,
		Address:      u.Address,
		Avatar:       u.Avatar,
		CreatedAt:    u.CreatedAt,
	}
}

func userFromDomain(u *domain.User) *models.User {
	return &models.User{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Phone:        u.Phone,
		Gender:       u.Gender,
		Birth:        u.Birth,
		Address:      u.Address,
		Avatar:       u.Avatar,
	}
}

func categoryToDomain(c *models.Category) *domain.Category {
	return &domain.Category{
		ID:               c.ID,
		Name:             c.Name,
		Slug:             c.Slug,
		ShortDescription: c.ShortDescription,
		Image:            c.Image,
		CreatedAt:        c.CreatedAt,
	}
}

func productToDomain(p *models.Product) *domain.Product {
	out := &domain.Product{
		ID:               p.ID,
		Name:             p.Name,
		Slug:             p.Slug,
		Images:           p.Images,
		ShortDescription: p.ShortDescription,
		Description:      p.Description,
		SoldQuantity:     p.SoldQuantity,
		AvgRating:        p.AvgRating,
		SellerID:         p.SellerID,
		CategoryID:       p.CategoryID,
		CategoryName:     p.CategoryName,
		SupplierPrice:    p.SupplierPrice,
		Sort:             p.Sort,
		CreatedAt:        p.CreatedAt,
	}
	for _, d := range p.Details {
		out.Details = append(out.Details, domain.Detail{Name: d.Name, Value: d.Value})
	}
	for _, v := range p.Variants {
		out.Variants = append(out.Variants, domain.Variant{
			ID:       v.ID,
			Name:     v.Name,
			Slug:     v.Slug,
			Price:    v.Price,
			Position: v.Position,
		})
	}
	return out
}

func productFromDomain(p *domain.Product) *models.Product {
	out := &models.Product{
		ID:               p.ID,
		Name:             p.Name,
		Slug:             p.Slug,
		Images:           p.Images,
		ShortDescription: p.ShortDescription,
		Description:      p.Description,
		SoldQuantity:     p.SoldQuantity,
		AvgRating:        p.AvgRating,
		SellerID:         p.SellerID,
		CategoryID:       p.CategoryID,
		CategoryName:     p.CategoryName,
		SupplierPrice:    p.SupplierPrice,
		CreatedAt:        p.CreatedAt,
	}
	for _, d := range p.Details {
		out.Details = append(out.Details, models.Detail{Name: d.Name, Value: d.Value})
	}
	for _, v := range p.Variants {
		out.Variants = append(out.Variants, models.Variant{
			ID:       v.ID,
			Name:     v.Name,
			Slug:     v.Slug,
			Price:    v.Price,
			Position: v.Position,
		})
	}
	return out
}

func summaryFromModel(p *models.Product) domain.ProductSummary {
	return domain.ProductSummary{
		ID:           p.ID,
		Name:         p.Name,
		Images:       p.Images,
		SoldQuantity: p.SoldQuantity,
		AvgRating:    p.AvgRating,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
	}
}

package gormrepo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/marketplace/internal/domain"
	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/internal/repo"
)

func (r *GormRepo) CreateUser(ctx context.Context, u *domain.User) error {
	row := userFromDomain(u)
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.User{}).Where("email = ?", row.Email).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("email %q: %w", row.Email, repo.ErrConflict)
		}
		return tx.Omit("CartLines").Create(row).Error
	})
	if err != nil {
		return mapErr(err)
	}

	u.ID = row.ID
	u.CreatedAt = row.CreatedAt
	return nil
}

func (r *GormRepo) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, mapErr(err)
	}
	return userToDomain(&u), nil
}

func (r *GormRepo) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, mapErr(err)
	}
	return userToDomain(&u), nil
}

package gormrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/internal/repo"
)

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

func (r *GormRepo) Migrate(ctx context.Context) error {
	if err := r.DB.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func (r *GormRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %w", repo.ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", repo.ErrConflict, err)
	default:
		return err
	}
}

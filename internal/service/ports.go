package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Skotchmaster/marketplace/internal/domain"
)

// Store implementations return repo.ErrNotFound and repo.ErrConflict for
// missing and duplicate records.

type UserStore interface {
	CreateUser(ctx context.Context, u *domain.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

type CategoryStore interface {
	CreateCategory(ctx context.Context, c *domain.Category) error
	GetCategory(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	ListCategoryNames(ctx context.Context) ([]domain.CategoryName, error)
}

type ProductStore interface {
	// CreateProduct assigns Sort from the products sequence.
	CreateProduct(ctx context.Context, p *domain.Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListSellerProducts(ctx context.Context, q domain.ListQuery) ([]domain.CategoryGroup, error)
}

type CartStore interface {
	// AddCartLine must be a single atomic conditional write on the exact
	// (product, variant) pair.
	AddCartLine(ctx context.Context, userID, productID, variantID uuid.UUID) (domain.AddResult, error)
	RemoveCartLine(ctx context.Context, userID, productID, variantID uuid.UUID) (bool, error)
	CartLines(ctx context.Context, userID uuid.UUID) ([]domain.CartLine, error)
}

type Store interface {
	UserStore
	CategoryStore
	ProductStore
	CartStore
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
}

type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

type NoopPublisher struct{}

func (NoopPublisher) PublishEvent(context.Context, string, string, any) error { return nil }

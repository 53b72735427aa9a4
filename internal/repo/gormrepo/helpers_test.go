package gormrepo

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/marketplace/internal/domain"
	"github.com/Skotchmaster/marketplace/pkg/db"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()
	gdb, err := db.OpenSQLite(filepath.Join(t.TempDir(), "marketplace.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	r := New(gdb)
	require.NoError(t, r.Migrate(context.Background()))
	return r
}

func seedUser(t *testing.T, r *GormRepo, name string) *domain.User {
	t.Helper()
	u := &domain.User{
		Email:        fmt.Sprintf("%s-%s@example.com", name, uuid.NewString()[:8]),
		Name:         name,
		PasswordHash: "x",
		Phone:        "0900000000",
		Address:      "1 Main St",
	}
	require.NoError(t, r.CreateUser(context.Background(), u))
	return u
}

func seedCategory(t *testing.T, r *GormRepo, name string) *domain.Category {
	t.Helper()
	c := &domain.Category{Name: name, Slug: name, ShortDescription: "d"}
	require.NoError(t, r.CreateCategory(context.Background(), c))
	return c
}

type productOpt func(*domain.Product)

func withPrice(price int64) productOpt {
	return func(p *domain.Product) { p.Variants[0].Price = price }
}

func withCreated(at time.Time) productOpt {
	return func(p *domain.Product) { p.CreatedAt = at }
}

func withSold(n int64) productOpt {
	return func(p *domain.Product) { p.SoldQuantity = n }
}

func withRating(v float64) productOpt {
	return func(p *domain.Product) { p.AvgRating = v }
}

func seedProduct(t *testing.T, r *GormRepo, seller *domain.User, cat *domain.Category, name string, opts ...productOpt) *domain.Product {
	t.Helper()
	p := &domain.Product{
		Name:             name,
		Slug:             name,
		Images:           []string{"/images/" + name + ".png"},
		ShortDescription: "short",
		Description:      "long",
		Details:          []domain.Detail{{Name: "material", Value: "cotton"}},
		Variants: []domain.Variant{
			{Name: "S", Slug: "s", Price: 100, Position: 0},
			{Name: "M", Slug: "m", Price: 999, Position: 1},
		},
		SellerID:      seller.ID,
		CategoryID:    cat.ID,
		CategoryName:  cat.Name,
		SupplierPrice: 50,
	}
	for _, o := range opts {
		o(p)
	}
	require.NoError(t, r.CreateProduct(context.Background(), p))
	return p
}

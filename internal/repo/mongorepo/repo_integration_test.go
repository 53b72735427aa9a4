package mongorepo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/Skotchmaster/marketplace/internal/domain"
	"github.com/Skotchmaster/marketplace/internal/repo"
)

// These tests need a running MongoDB (5.0+ for $setWindowFields) and are
// skipped unless MONGO_TEST_URI is set.
func newIntegrationRepo(t *testing.T) *MongoRepo {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbName := "marketplace_test_" + uuid.NewString()[:8]
	r, err := Connect(ctx, uri, dbName)
	require.NoError(t, err)
	require.NoError(t, r.Migrate(ctx))
	t.Cleanup(func() {
		_ = r.DB.Drop(context.Background())
		_ = r.Close(context.Background())
	})
	return r
}

func seed(t *testing.T, r *MongoRepo) (*domain.User, *domain.User, *domain.Category) {
	t.Helper()
	ctx := context.Background()
	seller := &domain.User{Email: "seller-" + uuid.NewString() + "@example.com", Name: "seller"}
	buyer := &domain.User{Email: "buyer-" + uuid.NewString() + "@example.com", Name: "buyer"}
	require.NoError(t, r.CreateUser(ctx, seller))
	require.NoError(t, r.CreateUser(ctx, buyer))
	cat := &domain.Category{Name: "c"}
	require.NoError(t, r.CreateCategory(ctx, cat))
	return seller, buyer, cat
}

func newProduct(seller *domain.User, cat *domain.Category, name string, price int64) *domain.Product {
	return &domain.Product{
		Name:         name,
		Images:       []string{name + ".png"},
		SellerID:     seller.ID,
		CategoryID:   cat.ID,
		CategoryName: cat.Name,
		Variants: []domain.Variant{
			{Name: "S", Price: price, Position: 0},
			{Name: "M", Price: price + 1000, Position: 1},
		},
	}
}

func TestMongo_DuplicateEmail(t *testing.T) {
	r := newIntegrationRepo(t)
	ctx := context.Background()
	require.NoError(t, r.CreateUser(ctx, &domain.User{Email: "x@example.com"}))
	err := r.CreateUser(ctx, &domain.User{Email: "x@example.com"})
	assert.True(t, errors.Is(err, repo.ErrConflict))
}

func TestMongo_ListingPagesAndPriceOrder(t *testing.T) {
	r := newIntegrationRepo(t)
	ctx := context.Background()
	seller, _, cat := seed(t, r)

	for i := 0; i < 20; i++ {
		require.NoError(t, r.CreateProduct(ctx, newProduct(seller, cat, fmt.Sprintf("p%02d", i), int64(100-i))))
	}

	q := domain.ListQuery{SellerID: seller.ID, Sort: domain.SortSpec{Field: domain.SortByFirstPrice}, Limit: 17}
	page1, err := r.ListSellerProducts(ctx, q)
	require.NoError(t, err)
	require.Len(t, page1, 1)
	require.Len(t, page1[0].Products, 17)
	assert.Equal(t, "p19", page1[0].Products[0].Name)

	q.Offset = 17
	page2, err := r.ListSellerProducts(ctx, q)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Len(t, page2[0].Products, 3)
}

func TestMongo_CartAddRemove(t *testing.T) {
	r := newIntegrationRepo(t)
	ctx := context.Background()
	seller, buyer, cat := seed(t, r)
	p := newProduct(seller, cat, "shirt", 100)
	require.NoError(t, r.CreateProduct(ctx, p))
	v := p.Variants[0].ID

	res, err := r.AddCartLine(ctx, buyer.ID, p.ID, v)
	require.NoError(t, err)
	assert.Equal(t, domain.CartLineCreated, res.Outcome)

	res, err = r.AddCartLine(ctx, buyer.ID, p.ID, v)
	require.NoError(t, err)
	assert.Equal(t, domain.CartLineIncremented, res.Outcome)
	assert.Equal(t, 2, res.Quantity)

	lines, err := r.CartLines(ctx, buyer.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "seller", lines[0].SellerName)

	removed, err := r.RemoveCartLine(ctx, buyer.ID, p.ID, v)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = r.RemoveCartLine(ctx, buyer.ID, p.ID, v)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestMongo_ConcurrentAdds(t *testing.T) {
	r := newIntegrationRepo(t)
	ctx := context.Background()
	seller, buyer, cat := seed(t, r)
	p := newProduct(seller, cat, "shirt", 100)
	require.NoError(t, r.CreateProduct(ctx, p))

	const adds = 20
	var g errgroup.Group
	for i := 0; i < adds; i++ {
		g.Go(func() error {
			_, err := r.AddCartLine(ctx, buyer.ID, p.ID, p.Variants[0].ID)
			return err
		})
	}
	require.NoError(t, g.Wait())

	lines, err := r.CartLines(ctx, buyer.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, adds, lines[0].Quantity)
}

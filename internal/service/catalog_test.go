package service

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/marketplace/internal/domain"
)

func count(l *domain.Listing) int {
	n := 0
	for _, g := range l.Groups {
		n += len(g.Products)
	}
	return n
}

func TestListSellerProducts_PagesOf17(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := env.register(t, "seller")
	cats := []*domain.Category{env.category(t, "shirts"), env.category(t, "hats")}
	for i := 0; i < 20; i++ {
		env.product(t, seller, cats[i%2], fmt.Sprintf("item-%02d", i))
	}

	page1, err := env.Catalog.ListSellerProducts(ctx, seller.ID.String(), 1, SortDefault)
	require.NoError(t, err)
	assert.Equal(t, 17, count(page1))
	assert.Equal(t, "seller", page1.Seller.Name)
	assert.Equal(t, "1 Main St", page1.Seller.Address)

	page2, err := env.Catalog.ListSellerProducts(ctx, seller.ID.String(), 2, SortDefault)
	require.NoError(t, err)
	assert.Equal(t, 3, count(page2))

	seen := map[uuid.UUID]bool{}
	for _, l := range []*domain.Listing{page1, page2} {
		for _, g := range l.Groups {
			for _, p := range g.Products {
				assert.Equal(t, g.CategoryID, p.CategoryID)
				seen[p.ID] = true
			}
		}
	}
	assert.Len(t, seen, 20)

	page3, err := env.Catalog.ListSellerProducts(ctx, seller.ID.String(), 3, SortDefault)
	require.ErrorIs(t, err, ErrNoProducts)
	require.NotNil(t, page3)
	assert.Empty(t, page3.Groups)
	assert.Equal(t, seller.ID, page3.Seller.ID)
}

func TestListSellerProducts_HugePageIsEmpty(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := env.register(t, "seller")
	cat := env.category(t, "shirts")
	for i := 0; i < 3; i++ {
		env.product(t, seller, cat, fmt.Sprintf("item-%02d", i))
	}

	for _, page := range []int{math.MaxInt/17 + 2, math.MaxInt} {
		l, err := env.Catalog.ListSellerProducts(ctx, seller.ID.String(), page, SortDefault)
		require.ErrorIs(t, err, ErrNoProducts, "page %d", page)
		require.NotNil(t, l)
		assert.Empty(t, l.Groups)
		assert.Equal(t, seller.ID, l.Seller.ID)
	}
}

func TestListSellerProducts_PriceAscWithinPage(t *testing.T) {
	env := newTestEnv(t)
	seller := env.register(t, "seller")
	cat := env.category(t, "c")
	for i, price := range []int64{500, 100, 300, 200, 400} {
		env.product(t, seller, cat, fmt.Sprintf("p%d", i), price, 1)
	}

	l, err := env.Catalog.ListSellerProducts(context.Background(), seller.ID.String(), 1, SortPriceAsc)
	require.NoError(t, err)
	require.Len(t, l.Groups, 1)

	var names []string
	for _, p := range l.Groups[0].Products {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"p1", "p3", "p2", "p4", "p0"}, names)
}

func TestListSellerProducts_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := env.register(t, "seller")

	_, err := env.Catalog.ListSellerProducts(ctx, "not-an-id", 1, SortDefault)
	assert.ErrorIs(t, err, ErrInvalidIdentifier)

	_, err = env.Catalog.ListSellerProducts(ctx, uuid.NewString(), 1, SortDefault)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.Catalog.ListSellerProducts(ctx, seller.ID.String(), 0, SortDefault)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	l, err := env.Catalog.ListSellerProducts(ctx, seller.ID.String(), 1, SortSales)
	assert.ErrorIs(t, err, ErrNoProducts)
	assert.Equal(t, KindNoProducts, KindOf(err))
	assert.NotNil(t, l)
}

func TestCreateProduct(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := env.register(t, "seller")
	cat := env.category(t, "Áo Thun")
	assert.Equal(t, "ao-thun", cat.Slug)

	p := env.product(t, seller, cat, "Blue Shirt", 100, 200)
	assert.Equal(t, "blue-shirt", p.Slug)
	assert.Equal(t, seller.ID, p.SellerID)
	assert.Equal(t, "Áo Thun", p.CategoryName)
	require.Len(t, p.Variants, 2)
	assert.Equal(t, 0, p.Variants[0].Position)
	assert.Equal(t, 1, p.Variants[1].Position)
	assert.EqualValues(t, 0, p.Sort)

	second := env.product(t, seller, cat, "Red Shirt")
	assert.EqualValues(t, 1, second.Sort)
	assert.Contains(t, env.Events.types(), "product_created")

	detail, err := env.Catalog.GetProduct(ctx, p.ID.String())
	require.NoError(t, err)
	require.NotNil(t, detail.Seller)
	assert.Equal(t, "seller@example.com", detail.Seller.Email)
	assert.Len(t, detail.Variants, 2)
}

func TestCreateProduct_Rejects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := env.register(t, "seller")
	cat := env.category(t, "c")

	noVariants := productRequest(cat, "x")
	noVariants.Variants = nil
	_, err := env.Catalog.CreateProduct(ctx, seller.ID.String(), noVariants)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	negative := productRequest(cat, "x", -1)
	_, err = env.Catalog.CreateProduct(ctx, seller.ID.String(), negative)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	noImages := productRequest(cat, "x")
	noImages.Images = nil
	_, err = env.Catalog.CreateProduct(ctx, seller.ID.String(), noImages)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	badCategory := productRequest(cat, "x")
	badCategory.CategoryID = "nope"
	_, err = env.Catalog.CreateProduct(ctx, seller.ID.String(), badCategory)
	assert.ErrorIs(t, err, ErrInvalidIdentifier)

	missingCategory := productRequest(cat, "x")
	missingCategory.CategoryID = uuid.NewString()
	_, err = env.Catalog.CreateProduct(ctx, seller.ID.String(), missingCategory)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryNames(t *testing.T) {
	env := newTestEnv(t)
	env.category(t, "b")
	env.category(t, "a")

	names, err := env.Catalog.CategoryNames(context.Background())
	require.NoError(t, err)
	require.Len(t, names, 2)
	assert.Equal(t, "a", names[0].Name)
}

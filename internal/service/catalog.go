package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Skotchmaster/marketplace/internal/domain"
	"github.com/Skotchmaster/marketplace/internal/mykafka"
	"github.com/Skotchmaster/marketplace/internal/transport"
	"github.com/Skotchmaster/marketplace/internal/util"
	"github.com/Skotchmaster/marketplace/pkg/metrics"
	"github.com/Skotchmaster/marketplace/pkg/slug"
)

type CatalogService struct {
	Products   ProductStore
	Categories CategoryStore
	Users      UserStore
	Events     Publisher
	PageSize   int
}

func (s *CatalogService) pageSize() int {
	if s.PageSize > 0 {
		return s.PageSize
	}
	return util.DefaultPageSize
}

// ListSellerProducts returns one page of a seller's products grouped by
// category. When the page is empty the listing is still returned, with the
// seller filled in, together with ErrNoProducts.
func (s *CatalogService) ListSellerProducts(ctx context.Context, sellerID string, page int, key SortKey) (*domain.Listing, error) {
	id, err := parseID("seller id", sellerID)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		return nil, fmt.Errorf("page %d: %w", page, ErrInvalidArgument)
	}

	seller, err := s.Users.GetUser(ctx, id)
	if err != nil {
		return nil, storeErr("seller", err)
	}

	spec := key.Resolve()
	offset, limit := util.Calculate(page, s.pageSize())
	groups, err := s.Products.ListSellerProducts(ctx, domain.ListQuery{
		SellerID: id,
		Sort:     spec,
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		return nil, storeErr("products", err)
	}

	listing := &domain.Listing{Seller: seller.Summary(), Groups: groups}
	if listing.Groups == nil {
		listing.Groups = []domain.CategoryGroup{}
	}
	if len(listing.Groups) == 0 {
		metrics.ListingRequests.WithLabelValues(spec.Field.String(), "empty").Inc()
		return listing, fmt.Errorf("seller %s page %d: %w", id, page, ErrNoProducts)
	}
	metrics.ListingRequests.WithLabelValues(spec.Field.String(), "ok").Inc()
	return listing, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, req transport.CreateCategoryRequest) (*domain.Category, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	c := &domain.Category{
		ID:               uuid.New(),
		Name:             req.Name,
		Slug:             slug.Make(req.Name),
		ShortDescription: req.ShortDescription,
		Image:            req.Image,
	}
	if err := s.Categories.CreateCategory(ctx, c); err != nil {
		return nil, storeErr("category", err)
	}
	return c, nil
}

func (s *CatalogService) CategoryNames(ctx context.Context) ([]domain.CategoryName, error) {
	names, err := s.Categories.ListCategoryNames(ctx)
	if err != nil {
		return nil, storeErr("categories", err)
	}
	return names, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, sellerID string, req transport.CreateProductRequest) (*domain.Product, error) {
	seller, err := parseID("seller id", sellerID)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	categoryID, err := parseID("category id", req.CategoryID)
	if err != nil {
		return nil, err
	}

	category, err := s.Categories.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, storeErr("category", err)
	}

	p := &domain.Product{
		ID:               uuid.New(),
		Name:             req.Name,
		Slug:             slug.Make(req.Name),
		Images:           req.Images,
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
		SellerID:         seller,
		CategoryID:       category.ID,
		CategoryName:     category.Name,
		SupplierPrice:    req.SupplierPrice,
	}
	for _, d := range req.Details {
		p.Details = append(p.Details, domain.Detail{Name: d.Name, Value: d.Value})
	}
	for i, v := range req.Variants {
		p.Variants = append(p.Variants, domain.Variant{
			ID:       uuid.New(),
			Name:     v.Name,
			Slug:     slug.Make(v.Name),
			Price:    v.Price,
			Position: i,
		})
	}

	if err := s.Products.CreateProduct(ctx, p); err != nil {
		return nil, storeErr("product", err)
	}

	publish(ctx, s.Events, mykafka.TopicProducts, p.ID.String(), "product_created", map[string]any{
		"product_id":  p.ID,
		"seller_id":   p.SellerID,
		"category_id": p.CategoryID,
		"name":        p.Name,
	})
	return p, nil
}

type ProductDetail struct {
	*domain.Product
	Seller *domain.SellerProfile `json:"seller"`
}

// GetProduct returns the product with its seller's contact details. A product
// whose seller record is gone is still returned, without the seller block.
func (s *CatalogService) GetProduct(ctx context.Context, productID string) (*ProductDetail, error) {
	id, err := parseID("product id", productID)
	if err != nil {
		return nil, err
	}
	p, err := s.Products.GetProduct(ctx, id)
	if err != nil {
		return nil, storeErr("product", err)
	}

	out := &ProductDetail{Product: p}
	seller, err := s.Users.GetUser(ctx, p.SellerID)
	switch {
	case err == nil:
		profile := seller.Profile()
		out.Seller = &profile
	case errors.Is(storeErr("seller", err), ErrNotFound):
	default:
		return nil, storeErr("seller", err)
	}
	return out, nil
}

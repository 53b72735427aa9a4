package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/marketplace/internal/domain"
	"github.com/Skotchmaster/marketplace/internal/service"
	"github.com/Skotchmaster/marketplace/internal/transport"
	"github.com/Skotchmaster/marketplace/internal/util"
	"github.com/Skotchmaster/marketplace/pkg/logging"
	middleware "github.com/Skotchmaster/marketplace/pkg/middleware/auth"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

type listingResponse struct {
	Kind    string                 `json:"kind,omitempty"`
	Message string                 `json:"message,omitempty"`
	Page    int                    `json:"page"`
	Seller  domain.SellerSummary   `json:"seller"`
	Groups  []domain.CategoryGroup `json:"groups"`
}

func (h *CatalogHTTP) ListSellerProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list_seller_products")

	page, err := util.ParsePage(c.QueryParam("page"))
	if err != nil {
		l.Warn("list_products_failed", "status", 400, "reason", "bad page", "error", err)
		return badRequest(err.Error())
	}

	listing, err := h.Svc.ListSellerProducts(ctx, c.Param("sellerId"), page, service.SortKey(c.QueryParam("sortBy")))
	if errors.Is(err, service.ErrNoProducts) {
		l.Info("list_products_empty", "page", page)
		return c.JSON(http.StatusOK, listingResponse{
			Kind:    string(service.KindNoProducts),
			Message: "seller has no products on this page",
			Page:    page,
			Seller:  listing.Seller,
			Groups:  []domain.CategoryGroup{},
		})
	}
	if err != nil {
		return serviceError(l, "list_products_failed", err)
	}

	return c.JSON(http.StatusOK, listingResponse{Page: page, Seller: listing.Seller, Groups: listing.Groups})
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_product")

	product, err := h.Svc.GetProduct(ctx, c.Param("id"))
	if err != nil {
		return serviceError(l, "get_product_failed", err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_product")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_create_error", "status", 400, "reason", "invalid body", "error", err)
		return badRequest("invalid body")
	}

	sellerID, _ := c.Get(middleware.ContextUserID).(string)
	product, err := h.Svc.CreateProduct(ctx, sellerID, req)
	if err != nil {
		return serviceError(l, "product_create_error", err)
	}

	l.Info("create_product_success", "product_id", product.ID)
	return c.JSON(http.StatusCreated, product)
}

func (h *CatalogHTTP) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_category")

	var req transport.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("category_create_error", "status", 400, "reason", "invalid body", "error", err)
		return badRequest("invalid body")
	}

	category, err := h.Svc.CreateCategory(ctx, req)
	if err != nil {
		return serviceError(l, "category_create_error", err)
	}
	return c.JSON(http.StatusCreated, category)
}

func (h *CatalogHTTP) CategoryNames(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.category_names")

	names, err := h.Svc.CategoryNames(ctx)
	if err != nil {
		return serviceError(l, "category_names_error", err)
	}
	return c.JSON(http.StatusOK, names)
}

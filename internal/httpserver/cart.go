package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/marketplace/internal/domain"
	"github.com/Skotchmaster/marketplace/internal/service"
	"github.com/Skotchmaster/marketplace/internal/transport"
	"github.com/Skotchmaster/marketplace/pkg/logging"
	middleware "github.com/Skotchmaster/marketplace/pkg/middleware/auth"
)

type CartHTTP struct {
	Svc *service.CartService
}

func userID(c echo.Context) string {
	id, _ := c.Get(middleware.ContextUserID).(string)
	return id
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get_cart")

	lines, err := h.Svc.View(ctx, userID(c))
	if err != nil {
		return serviceError(l, "get_cart_failed", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": lines})
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_item")

	var req transport.AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_failed", "status", 400, "reason", "invalid body", "error", err)
		return badRequest("invalid body")
	}

	res, err := h.Svc.Add(ctx, userID(c), req.ProductID, req.VariantID)
	if err != nil {
		return serviceError(l, "add_to_cart_failed", err)
	}

	status := http.StatusOK
	if res.Outcome == domain.CartLineCreated {
		status = http.StatusCreated
	}
	return c.JSON(status, transport.AddCartItemResponse{
		ProductID: req.ProductID,
		VariantID: req.VariantID,
		Quantity:  res.Quantity,
		Outcome:   res.Outcome.String(),
	})
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_item")

	removed, err := h.Svc.Remove(ctx, userID(c), c.Param("productId"), c.Param("variantId"))
	if err != nil {
		return serviceError(l, "remove_from_cart_failed", err)
	}
	return c.JSON(http.StatusOK, transport.RemoveCartItemResponse{Removed: removed})
}

package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	middleware "github.com/Skotchmaster/marketplace/pkg/middleware/auth"
)

type Deps struct {
	UserHandler    *UserHTTP
	CatalogHandler *CatalogHTTP
	CartHandler    *CartHTTP
	UploadHandler  *UploadHTTP
	Verify         middleware.Verifier
	Ready          func(ctx context.Context) error
	Metrics        http.Handler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				return newHTTPError(http.StatusServiceUnavailable, kindInternal, "store unavailable")
			}
		}
		return c.NoContent(http.StatusOK)
	})
	if d.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(d.Metrics))
	}

	authMW := middleware.NewAuthMiddleware(d.Verify)

	api := e.Group("/api")

	users := api.Group("/users")
	users.POST("", d.UserHandler.Register)
	users.POST("/login", d.UserHandler.Login)
	api.GET("/auth/check", d.UserHandler.Check, authMW.RequireAuth)

	categories := api.Group("/categories")
	categories.GET("/names", d.CatalogHandler.CategoryNames)
	categories.POST("", d.CatalogHandler.CreateCategory, authMW.RequireAuth)

	products := api.Group("/products")
	products.GET("/:id", d.CatalogHandler.GetProduct)
	products.POST("", d.CatalogHandler.CreateProduct, authMW.RequireAuth)

	api.GET("/sellers/:sellerId/products", d.CatalogHandler.ListSellerProducts)

	cart := api.Group("/cart", authMW.RequireAuth)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("/items", d.CartHandler.AddItem)
	cart.DELETE("/items/:productId/:variantId", d.CartHandler.RemoveItem)

	if d.UploadHandler != nil {
		api.POST("/uploads", d.UploadHandler.Upload, echomw.BodyLimit("32M"))
		e.Static(imagesPrefix, d.UploadHandler.Dir)
	}
}

package httpserver

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/marketplace/pkg/metrics"
	loggingmw "github.com/Skotchmaster/marketplace/pkg/middleware/logging"
)

// New builds the echo instance with the shared middleware stack. Routes are
// added by Register.
func New(logger *slog.Logger, corsOrigins []string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(echomw.Recover())
	e.Use(echomw.Secure())
	e.Use(metrics.Middleware())
	e.Use(loggingmw.RequestLogger(logger))
	if len(corsOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: corsOrigins}))
	} else {
		e.Use(echomw.CORS())
	}
	return e
}

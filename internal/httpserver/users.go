package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/marketplace/internal/service"
	"github.com/Skotchmaster/marketplace/internal/transport"
	middleware "github.com/Skotchmaster/marketplace/pkg/middleware/auth"
	"github.com/Skotchmaster/marketplace/pkg/logging"
)

type UserHTTP struct {
	Svc *service.UserService
}

func (h *UserHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_failed", "status", 400, "reason", "invalid body", "error", err)
		return badRequest("invalid body")
	}

	u, err := h.Svc.Register(ctx, req)
	if err != nil {
		return serviceError(l, "register_failed", err)
	}

	l.Info("register_success", "user_id", u.ID)
	return c.JSON(http.StatusCreated, u)
}

func (h *UserHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "invalid body", "error", err)
		return badRequest("invalid body")
	}

	token, exp, err := h.Svc.Login(ctx, req)
	if err != nil {
		return serviceError(l, "login_failed", err)
	}

	return c.JSON(http.StatusOK, transport.LoginResponse{Token: token, ExpiresAt: exp})
}

func (h *UserHTTP) Check(c echo.Context) error {
	userID, _ := c.Get(middleware.ContextUserID).(string)
	return c.JSON(http.StatusOK, map[string]any{"valid": true, "user_id": userID})
}

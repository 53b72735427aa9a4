package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/marketplace/internal/service"
)

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

const kindInternal = "internal"

func statusOf(kind service.Kind) int {
	switch kind {
	case service.KindInvalidIdentifier, service.KindInvalidArgument:
		return http.StatusBadRequest
	case service.KindUnauthenticated:
		return http.StatusUnauthorized
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindConflict:
		return http.StatusConflict
	case service.KindNoProducts:
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}

func kindForStatus(code int) string {
	switch {
	case code == http.StatusUnauthorized:
		return string(service.KindUnauthenticated)
	case code == http.StatusNotFound:
		return string(service.KindNotFound)
	case code == http.StatusConflict:
		return string(service.KindConflict)
	case code >= 500:
		return kindInternal
	default:
		return string(service.KindInvalidArgument)
	}
}

func newHTTPError(code int, kind, msg string) *echo.HTTPError {
	return echo.NewHTTPError(code, errorBody{Kind: kind, Message: msg})
}

func badRequest(msg string) *echo.HTTPError {
	return newHTTPError(http.StatusBadRequest, string(service.KindInvalidArgument), msg)
}

// serviceError logs err under event and converts it into the HTTP error for
// its kind. Data layer details stay in the log.
func serviceError(l *slog.Logger, event string, err error) error {
	kind := service.KindOf(err)
	code := statusOf(kind)
	if code >= 500 {
		l.Error(event, "status", code, "reason", string(kind), "error", err)
		return newHTTPError(code, string(kind), "storage failure")
	}
	l.Warn(event, "status", code, "reason", string(kind), "error", err)
	return newHTTPError(code, string(kind), err.Error())
}

// ErrorHandler renders every error as {"kind","message"}.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		he = newHTTPError(http.StatusInternalServerError, kindInternal, "internal error")
	}

	body, ok := he.Message.(errorBody)
	if !ok {
		body = errorBody{Kind: kindForStatus(he.Code), Message: fmt.Sprint(he.Message)}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(he.Code)
		return
	}
	_ = c.JSON(he.Code, body)
}

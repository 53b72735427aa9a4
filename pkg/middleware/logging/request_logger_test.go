package loggingmw

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/marketplace/pkg/logging"
)

func TestRequestLogger_RendersErrorAndLogs(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestLogger(logging.NewWithWriter(&buf, "debug")))
	e.GET("/boom", func(c echo.Context) error {
		logging.FromContext(c.Request().Context()).Info("inside")
		return echo.NewHTTPError(http.StatusNotFound, "gone")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(echo.HeaderXRequestID, "rid-1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "rid-1", rec.Header().Get(echo.HeaderXRequestID))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var inner, done map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &inner))
	require.NoError(t, json.Unmarshal(lines[1], &done))
	assert.Equal(t, "rid-1", inner["request_id"])
	assert.Equal(t, "WARN", done["level"])
	assert.EqualValues(t, 404, done["status"])
}

func TestRequestLogger_GeneratesRequestID(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestLogger(logging.NewWithWriter(&buf, "info")))
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/marketplace/internal/repo/gormrepo"
	"github.com/Skotchmaster/marketplace/internal/service"
	"github.com/Skotchmaster/marketplace/pkg/db"
	"github.com/Skotchmaster/marketplace/pkg/logging"
	middleware "github.com/Skotchmaster/marketplace/pkg/middleware/auth"
)

var testSecret = []byte("http-test-secret")

type testEnv struct {
	E         *echo.Echo
	UploadDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb, err := db.OpenSQLite(filepath.Join(t.TempDir(), "http.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	r := gormrepo.New(gdb)
	require.NoError(t, r.Migrate(context.Background()))

	users := &service.UserService{Users: r, Events: service.NoopPublisher{}, JWTSecret: testSecret}
	uploadDir := t.TempDir()

	e := New(logging.NewWithWriter(io.Discard, "error"), nil)
	Register(e, &Deps{
		UserHandler: &UserHTTP{Svc: users},
		CatalogHandler: &CatalogHTTP{Svc: &service.CatalogService{
			Products:   r,
			Categories: r,
			Users:      r,
			Events:     service.NoopPublisher{},
			PageSize:   17,
		}},
		CartHandler: &CartHTTP{Svc: &service.CartService{
			Cart:     r,
			Products: r,
			Events:   service.NoopPublisher{},
		}},
		UploadHandler: &UploadHTTP{Dir: uploadDir},
		Verify:        middleware.JWTVerifier(testSecret),
		Ready:         r.Ping,
	})
	return &testEnv{E: e, UploadDir: uploadDir}
}

func (env *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

type session struct {
	ID    string
	Token string
}

func (env *testEnv) signup(t *testing.T, email string) session {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/api/users", "", map[string]any{
		"email":    email,
		"name":     "Name " + email,
		"password": "password",
		"phone":    "0900000000",
		"gender":   "other",
		"birth":    "1990-01-01T00:00:00Z",
		"address":  "1 Main St",
		"avatar":   "/images/a.png",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	user := decode[map[string]any](t, rec)

	rec = env.do(t, http.MethodPost, "/api/users/login", "", map[string]any{"email": email, "password": "password"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	login := decode[map[string]any](t, rec)

	return session{ID: user["id"].(string), Token: login["token"].(string)}
}

func (env *testEnv) createCategory(t *testing.T, s session, name string) string {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/api/categories", s.Token, map[string]any{
		"name":              name,
		"image":             "/images/c.png",
		"short_description": "about " + name,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[map[string]any](t, rec)["id"].(string)
}

type createdProduct struct {
	ID       string `json:"id"`
	Variants []struct {
		ID string `json:"id"`
	} `json:"variants"`
}

func (env *testEnv) createProduct(t *testing.T, s session, categoryID, name string, price int64) createdProduct {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/api/products", s.Token, map[string]any{
		"name":              name,
		"short_description": "short",
		"description":       "long",
		"supplier_price":    1,
		"category_id":       categoryID,
		"images":            []string{"/images/p.png"},
		"details":           []map[string]string{{"name": "k", "value": "v"}},
		"variants":          []map[string]any{{"name": "S", "price": price}, {"name": "M", "price": price + 10}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[createdProduct](t, rec)
}

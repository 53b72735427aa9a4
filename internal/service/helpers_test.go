package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/marketplace/internal/domain"
	"github.com/Skotchmaster/marketplace/internal/repo/gormrepo"
	"github.com/Skotchmaster/marketplace/internal/transport"
	"github.com/Skotchmaster/marketplace/pkg/db"
)

type recordedEvent struct {
	Topic string
	Key   string
	Event Event
}

type fakePublisher struct {
	mu     sync.Mutex
	events []recordedEvent
	err    error
}

func (f *fakePublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ev, ok := event.(Event); ok {
		f.events = append(f.events, recordedEvent{Topic: topic, Key: key, Event: ev})
	}
	return f.err
}

func (f *fakePublisher) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Event.Type)
	}
	return out
}

type testEnv struct {
	Repo    *gormrepo.GormRepo
	Events  *fakePublisher
	Users   *UserService
	Catalog *CatalogService
	Cart    *CartService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb, err := db.OpenSQLite(filepath.Join(t.TempDir(), "svc.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	r := gormrepo.New(gdb)
	require.NoError(t, r.Migrate(context.Background()))

	ev := &fakePublisher{}
	return &testEnv{
		Repo:   r,
		Events: ev,
		Users: &UserService{
			Users:     r,
			Events:    ev,
			JWTSecret: []byte("secret"),
			TokenTTL:  DefaultTokenTTL,
		},
		Catalog: &CatalogService{
			Products:   r,
			Categories: r,
			Users:      r,
			Events:     ev,
			PageSize:   17,
		},
		Cart: &CartService{
			Cart:     r,
			Products: r,
			Events:   ev,
		},
	}
}

func (env *testEnv) register(t *testing.T, name string) *domain.User {
	t.Helper()
	u, err := env.Users.Register(context.Background(), transport.RegisterRequest{
		Email:    name + "@example.com",
		Name:     name,
		Password: "password",
		Phone:    "0900000000",
		Gender:   "female",
		Birth:    time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Address:  "1 Main St",
		Avatar:   "/images/avatar.png",
	})
	require.NoError(t, err)
	return u
}

func (env *testEnv) category(t *testing.T, name string) *domain.Category {
	t.Helper()
	c, err := env.Catalog.CreateCategory(context.Background(), transport.CreateCategoryRequest{
		Name:             name,
		Image:            "/images/" + name + ".png",
		ShortDescription: "category " + name,
	})
	require.NoError(t, err)
	return c
}

func productRequest(cat *domain.Category, name string, prices ...int64) transport.CreateProductRequest {
	if len(prices) == 0 {
		prices = []int64{100}
	}
	req := transport.CreateProductRequest{
		Name:             name,
		ShortDescription: "short",
		Description:      "long",
		SupplierPrice:    10,
		CategoryID:       cat.ID.String(),
		Images:           []string{"/images/" + name + ".png"},
		Details:          []transport.DetailRequest{{Name: "origin", Value: "VN"}},
	}
	for i, p := range prices {
		req.Variants = append(req.Variants, transport.VariantRequest{Name: fmt.Sprintf("v%d", i), Price: p})
	}
	return req
}

func (env *testEnv) product(t *testing.T, seller *domain.User, cat *domain.Category, name string, prices ...int64) *domain.Product {
	t.Helper()
	p, err := env.Catalog.CreateProduct(context.Background(), seller.ID.String(), productRequest(cat, name, prices...))
	require.NoError(t, err)
	return p
}

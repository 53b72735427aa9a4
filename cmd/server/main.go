package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Skotchmaster/marketplace/internal/config"
	"github.com/Skotchmaster/marketplace/internal/httpserver"
	"github.com/Skotchmaster/marketplace/internal/mykafka"
	"github.com/Skotchmaster/marketplace/internal/repo/gormrepo"
	"github.com/Skotchmaster/marketplace/internal/repo/mongorepo"
	"github.com/Skotchmaster/marketplace/internal/service"
	"github.com/Skotchmaster/marketplace/pkg/db"
	"github.com/Skotchmaster/marketplace/pkg/logging"
	"github.com/Skotchmaster/marketplace/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config_load_failed", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, closeStore, err := openStore(initCtx, cfg)
	if err == nil {
		err = store.Migrate(initCtx)
	}
	cancel()
	if err != nil {
		logger.Error("store_init_failed", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}

	var events service.Publisher = service.NoopPublisher{}
	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		if err := mykafka.EnsureTopics(cfg.KafkaBrokers[0], mykafka.TopicUsers, mykafka.TopicProducts, mykafka.TopicCart); err != nil {
			logger.Warn("kafka_topics_not_created", "error", err)
		}
		producer, err = mykafka.NewProducer(cfg.KafkaBrokers, logger)
		if err != nil {
			logger.Error("kafka_init_failed", "error", err)
			os.Exit(1)
		}
		events = producer
	} else {
		logger.Info("kafka_disabled", "reason", "KAFKA_BROKERS is empty")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.MustRegister(reg)

	users := &service.UserService{
		Users:     store,
		Events:    events,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
	}

	e := httpserver.New(logger, cfg.CORSOrigins)
	httpserver.Register(e, &httpserver.Deps{
		UserHandler: &httpserver.UserHTTP{Svc: users},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: &service.CatalogService{
			Products:   store,
			Categories: store,
			Users:      store,
			Events:     events,
			PageSize:   cfg.ListingPageSize,
		}},
		CartHandler: &httpserver.CartHTTP{Svc: &service.CartService{
			Cart:     store,
			Products: store,
			Events:   events,
		}},
		UploadHandler: &httpserver.UploadHTTP{Dir: cfg.UploadDir},
		Verify: func(token string) (string, error) {
			id, err := users.VerifyIdentity(token)
			if err != nil {
				return "", err
			}
			return id.String(), nil
		},
		Ready:   store.Ping,
		Metrics: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})

	go func() {
		logger.Info("server_starting", "port", cfg.Port, "driver", cfg.StoreDriver)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server_failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("server_shutting_down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_failed", "error", err)
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Warn("kafka_close_failed", "error", err)
		}
	}
	if err := closeStore(shutdownCtx); err != nil {
		logger.Warn("store_close_failed", "error", err)
	}
	logger.Info("server_stopped")
}

func openStore(ctx context.Context, cfg *config.Config) (service.Store, func(context.Context) error, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		r, err := mongorepo.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		return r, r.Close, nil
	case db.DriverSQLite:
		gdb, err := db.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return gormrepo.New(gdb), func(context.Context) error { return db.Close(gdb) }, nil
	default:
		gdb, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return gormrepo.New(gdb), func(context.Context) error { return db.Close(gdb) }, nil
	}
}

package config

import (
	"fmt"
	"strings"
	"time"

	pkgconfig "github.com/Skotchmaster/marketplace/pkg/config"
	"github.com/Skotchmaster/marketplace/pkg/db"
	"github.com/Skotchmaster/marketplace/internal/util"
)

const DriverMongo = "mongo"

type Config struct {
	ServiceName string
	Port        string
	LogLevel    string

	StoreDriver   string
	DatabaseURL   string
	SQLitePath    string
	MongoURI      string
	MongoDatabase string

	JWTSecret []byte
	TokenTTL  time.Duration

	KafkaBrokers    []string
	ListingPageSize int
	UploadDir       string
	CORSOrigins     []string
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if err := pkgconfig.LoadDotEnv(".env"); err != nil {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		ServiceName:     pkgconfig.EnvDefault("SERVICE_NAME", "marketplace"),
		Port:            pkgconfig.EnvDefault("SERVER_PORT", "8080"),
		LogLevel:        pkgconfig.EnvDefault("LOG_LEVEL", "info"),
		StoreDriver:     strings.ToLower(pkgconfig.EnvDefault("STORE_DRIVER", db.DriverPostgres)),
		DatabaseURL:     pkgconfig.EnvDefault("DATABASE_URL", ""),
		SQLitePath:      pkgconfig.EnvDefault("SQLITE_PATH", "marketplace.db"),
		MongoURI:        pkgconfig.EnvDefault("MONGO_URI", ""),
		MongoDatabase:   pkgconfig.EnvDefault("MONGO_DATABASE", "marketplace"),
		JWTSecret:       []byte(pkgconfig.EnvDefault("JWT_SECRET", "")),
		TokenTTL:        time.Duration(pkgconfig.EnvIntDefault("JWT_TTL_HOURS", 10)) * time.Hour,
		KafkaBrokers:    pkgconfig.CSV(pkgconfig.EnvDefault("KAFKA_BROKERS", "")),
		ListingPageSize: pkgconfig.EnvIntDefault("LISTING_PAGE_SIZE", util.DefaultPageSize),
		UploadDir:       pkgconfig.EnvDefault("UPLOAD_DIR", "public/images"),
		CORSOrigins:     pkgconfig.CSV(pkgconfig.EnvDefault("CORS_ORIGINS", "")),
	}

	if err := pkgconfig.RequireNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET"); err != nil {
		return nil, err
	}
	switch cfg.StoreDriver {
	case db.DriverPostgres:
		if err := pkgconfig.RequireNonEmpty(cfg.DatabaseURL, "DATABASE_URL"); err != nil {
			return nil, err
		}
	case db.DriverSQLite:
	case DriverMongo:
		if err := pkgconfig.RequireNonEmpty(cfg.MongoURI, "MONGO_URI"); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	if cfg.ListingPageSize < 1 {
		return nil, fmt.Errorf("LISTING_PAGE_SIZE must be positive, got %d", cfg.ListingPageSize)
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("JWT_TTL_HOURS must be positive")
	}
	return cfg, nil
}

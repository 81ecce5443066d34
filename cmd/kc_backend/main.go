package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/kwanzacontrol/kc_backend/internal/adapters/storage/memory"
	"github.com/kwanzacontrol/kc_backend/internal/adapters/storage/pgsql"
	"github.com/kwanzacontrol/kc_backend/internal/adapters/storage/sqlite"
	portsrepo "github.com/kwanzacontrol/kc_backend/internal/core/ports/repositories"
	"github.com/kwanzacontrol/kc_backend/internal/core/services"
	"github.com/kwanzacontrol/kc_backend/internal/core/store"
	"github.com/kwanzacontrol/kc_backend/internal/handlers"
	"github.com/kwanzacontrol/kc_backend/internal/middleware"
	"github.com/kwanzacontrol/kc_backend/internal/platform/config"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	kv, cleanup, err := openKVStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	ledgerStore := store.New(kv, logger)
	if err := ledgerStore.Load(ctx); err != nil {
		logger.Error("Failed to load ledger store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	serviceContainer := services.NewServiceContainer(ledgerStore)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting",
		slog.String("port", cfg.Port),
		slog.String("storage_driver", cfg.StorageDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// openKVStore selects the persistence medium from configuration. The cleanup
// func closes whatever the driver opened.
func openKVStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.KVStore, func(), error) {
	switch cfg.StorageDriver {
	case config.DriverSQLite:
		kv, err := sqlite.NewKV(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("SQLite storage opened", slog.String("path", cfg.SQLitePath))
		return kv, func() { _ = kv.Close() }, nil

	case config.DriverPostgres:
		if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
			return nil, nil, err
		}
		pool, err := pgsql.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("PostgreSQL connection pool established")
		return pgsql.NewKV(pool), pool.Close, nil

	default:
		logger.Warn("Using in-memory storage, data will not survive a restart")
		return memory.NewKV(), func() {}, nil
	}
}

// runMigrations applies all pending up migrations from the migrations dir.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}
	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply")
	} else {
		logger.Info("Database migrations applied")
	}
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"medex/cmd"
	httpin "medex/internal/adapters/in/http"
	"medex/internal/adapters/out/postgres/syncattemptrepo"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := cmd.LoadConfig()
	logger := cmd.NewLogger(configs)

	gormDB := mustGormOpen(configs.DSN())
	redisClient := newRedisClient(configs)

	app := cmd.NewCompositionRoot(configs, gormDB, redisClient, logger)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs, logger)
}

func mustGormOpen(dsn string) *gorm.DB {
	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = gormDB.AutoMigrate(&syncattemptrepo.SyncAttemptDTO{}); err != nil {
		log.Fatalf("Failed to migrate sync ledger: %v", err)
	}
	return gormDB
}

// newRedisClient returns nil when no address is configured, which disables the cache.
func newRedisClient(configs cmd.Config) *redis.Client {
	if configs.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     configs.RedisAddr,
		Password: configs.RedisPassword,
		DB:       configs.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), configs.OutboundTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warnf("Redis at %s unreachable, storefront lookups will go to WooCommerce: %v", configs.RedisAddr, err)
	}
	return client
}

func startWebServer(app cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) {
	e, err := httpin.NewRouter(app.CreateServer(), logger)
	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); startErr != nil &&
			!errors.Is(startErr, http.ErrServerClosed) {
			e.Logger.Fatal(startErr)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), configs.ShutdownTimeout)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}

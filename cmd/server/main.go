package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/freshdeli/console/internal/config"
	"github.com/freshdeli/console/internal/infrastructure/http/server"
	"github.com/freshdeli/console/internal/infrastructure/monitoring"
	"github.com/freshdeli/console/internal/infrastructure/persistence/postgres"
	"github.com/freshdeli/console/internal/infrastructure/persistence/redis"
	"github.com/freshdeli/console/internal/infrastructure/scheduler"
	"github.com/freshdeli/console/internal/pkg/clock"
	"github.com/freshdeli/console/internal/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	flag.Parse()

	log := logger.NewLogger()
	log.Info("Starting Fresh Deli Console")

	cfg, configErr := config.LoadConfig(*configPath)
	if configErr != nil {
		log.Fatal("Failed to load configuration", "error", configErr)
	}

	db, dbErr := postgres.NewConnection(cfg.Database)
	if dbErr != nil {
		log.Fatal("Failed to connect to database", "error", dbErr)
	}
	defer db.Close()

	if migrationErr := postgres.RunMigrations(cfg.Database); migrationErr != nil {
		log.Fatal("Failed to run migrations", "error", migrationErr)
	}

	redisClient, err := redis.NewConnection(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis", "error", err)
	}
	defer redisClient.Close()

	dbMetricsCollector := monitoring.NewDBMetricsCollector(db.GetDB())
	dbMetricsCollector.StartCollecting(context.Background(), 30*time.Second)

	catalogRepo := postgres.NewCatalogRepository(db)
	catalogScheduler := scheduler.NewCatalogScheduler(
		catalogRepo,
		clock.NewRealClock(),
		log,
		cfg.Catalog.MetricsRefreshInterval(),
	)

	httpServer := server.NewServer(cfg, db.GetDB(), db, redisClient, log)

	serverCtx, serverStopCtx := context.WithCancel(context.Background())

	go catalogScheduler.Start(serverCtx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigChan
		shutdownCtx, shutdownCancel := context.WithTimeout(serverCtx, 30*time.Second)
		defer shutdownCancel()

		log.Info("Shutting down server...")
		catalogScheduler.Stop()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown error", "error", err)
		}

		serverStopCtx()
	}()

	log.Info("Server starting", "address", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("Server failed", "error", err)
	}

	<-serverCtx.Done()
	log.Info("Server stopped")
}

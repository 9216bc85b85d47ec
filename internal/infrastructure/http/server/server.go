package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/freshdeli/console/internal/application/use_cases"
	"github.com/freshdeli/console/internal/config"
	"github.com/freshdeli/console/internal/infrastructure/http/handlers"
	"github.com/freshdeli/console/internal/infrastructure/persistence/postgres"
	"github.com/freshdeli/console/internal/infrastructure/persistence/redis"
	"github.com/freshdeli/console/internal/pkg/clock"
	"github.com/freshdeli/console/internal/pkg/logger"
)

type Server struct {
	server     *http.Server
	logger     *logger.Logger
	cfg        *config.Config
	cache      *redis.Cache
	sessionTTL time.Duration

	healthHandler     *handlers.HealthHandler
	authHandler       *handlers.AuthHandler
	catalogHandler    *handlers.CatalogHandler
	reorderHandler    *handlers.ReorderHandler
	deliveryHandler   *handlers.DeliveryHandler
	storefrontHandler *handlers.StorefrontHandler
	uploadHandler     *handlers.UploadHandler
}

func NewServer(cfg *config.Config, db *sql.DB, conn *postgres.Connection, redisConn *redis.Connection, log *logger.Logger) *Server {
	catalogRepo := postgres.NewCatalogRepository(conn)
	deliveryRepo := postgres.NewDeliveryRepository(conn)
	operatorRepo := postgres.NewOperatorRepository(conn)

	cache := redis.NewCache(redisConn, log)
	clk := clock.NewRealClock()

	reorderUseCase := use_cases.NewReorderUseCase(catalogRepo, cache, clk, log)
	bulkMoveUseCase := use_cases.NewBulkMoveUseCase(catalogRepo, cache, log)

	healthHandler := handlers.NewHealthHandler(db, redisConn.GetClient(), log)
	authHandler := handlers.NewAuthHandler(operatorRepo, cache, cfg.Session.TTL(), log)
	catalogHandler := handlers.NewCatalogHandler(catalogRepo, cache, bulkMoveUseCase, clk, log)
	reorderHandler := handlers.NewReorderHandler(reorderUseCase, log)
	deliveryHandler := handlers.NewDeliveryHandler(deliveryRepo, log)
	storefrontHandler := handlers.NewStorefrontHandler(catalogRepo, deliveryRepo, cache, cfg.Catalog.StorefrontCacheTTL(), clk, log)
	uploadHandler := handlers.NewUploadHandler(catalogRepo, cache, cfg.Uploads.Dir, cfg.Uploads.BaseURL, cfg.Uploads.MaxBytes, log)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		server:            httpServer,
		logger:            log,
		cfg:               cfg,
		cache:             cache,
		sessionTTL:        cfg.Session.TTL(),
		healthHandler:     healthHandler,
		authHandler:       authHandler,
		catalogHandler:    catalogHandler,
		reorderHandler:    reorderHandler,
		deliveryHandler:   deliveryHandler,
		storefrontHandler: storefrontHandler,
		uploadHandler:     uploadHandler,
	}
}

func (s *Server) ListenAndServe() error {
	s.server.Handler = s.setupRoutes()

	s.logger.Info("Starting HTTP server", "address", s.server.Addr)

	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

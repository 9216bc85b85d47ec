package scheduler

import (
	"context"
	"time"

	"github.com/freshdeli/console/internal/application/ports"
	"github.com/freshdeli/console/internal/domain/catalog"
	"github.com/freshdeli/console/internal/infrastructure/monitoring"
	"github.com/freshdeli/console/internal/pkg/clock"
	"github.com/freshdeli/console/internal/pkg/logger"
)

// CatalogScheduler periodically regroups the catalog and publishes per-bucket
// item counts as gauges. Items migrate between buckets purely by the passage
// of time, so the gauges drift without any write happening; the refresh keeps
// them honest across the midnight JST rollover.
type CatalogScheduler struct {
	catalogRepo ports.CatalogRepository
	clk         clock.Clock
	logger      *logger.Logger
	interval    time.Duration
	stopChan    chan struct{}
}

func NewCatalogScheduler(
	catalogRepo ports.CatalogRepository,
	clk clock.Clock,
	log *logger.Logger,
	interval time.Duration,
) *CatalogScheduler {
	return &CatalogScheduler{
		catalogRepo: catalogRepo,
		clk:         clk,
		logger:      log,
		interval:    interval,
		stopChan:    make(chan struct{}),
	}
}

func (s *CatalogScheduler) Start(ctx context.Context) {
	s.logger.Info("Starting catalog scheduler", "interval", s.interval.String())

	if err := s.refresh(ctx); err != nil {
		s.logger.Error("Failed initial bucket metrics refresh", "error", err)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Catalog scheduler stopped")
			return
		case <-s.stopChan:
			s.logger.Info("Catalog scheduler stopped")
			return
		case <-ticker.C:
			if err := s.refresh(ctx); err != nil {
				s.logger.Error("Failed scheduled bucket metrics refresh", "error", err)
			}
		}
	}
}

func (s *CatalogScheduler) Stop() {
	close(s.stopChan)
}

func (s *CatalogScheduler) refresh(ctx context.Context) error {
	items, err := s.catalogRepo.ListItems(ctx)
	if err != nil {
		return err
	}

	buckets := catalog.Group(items, s.clk.Now())
	monitoring.UpdateBucketCounts(buckets)

	s.logger.Info("Refreshed bucket metrics", "items", len(items), "buckets", len(buckets))
	return nil
}

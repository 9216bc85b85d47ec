package use_cases

import (
	"context"

	"github.com/freshdeli/console/internal/application/commands"
	"github.com/freshdeli/console/internal/application/ports"
	"github.com/freshdeli/console/internal/domain/catalog"
	domainErrors "github.com/freshdeli/console/internal/domain/errors"
	"github.com/freshdeli/console/internal/infrastructure/monitoring"
	"github.com/freshdeli/console/internal/pkg/logger"
)

// BulkMoveUseCase applies one new sell date to the selected items. Ranks in
// the destination bucket are deliberately not re-canonicalized: the
// destination's membership is only known after the next regrouping, and the
// conflicts it may carry are resolved by the repair pass the next time that
// bucket's reorder dialog opens.
type BulkMoveUseCase struct {
	repo  ports.CatalogRepository
	cache ports.Cache
	log   *logger.Logger
}

func NewBulkMoveUseCase(repo ports.CatalogRepository, cache ports.Cache, log *logger.Logger) *BulkMoveUseCase {
	return &BulkMoveUseCase{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func (uc *BulkMoveUseCase) Execute(ctx context.Context, cmd commands.BulkMoveCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	items, err := uc.repo.GetItemsByIDs(ctx, cmd.ItemIDs)
	if err != nil {
		uc.log.Error("Failed to load items for bulk move", "error", err)
		return 0, err
	}
	if len(items) != len(cmd.ItemIDs) {
		return 0, domainErrors.ErrItemNotFound
	}

	moved := catalog.MoveToDate(items, cmd.NewSellDate)

	moves := make([]catalog.DateMove, 0, len(moved))
	for _, item := range moved {
		moves = append(moves, catalog.DateMove{ItemID: item.ID, SellDate: *item.SellDate})
	}

	if err := uc.repo.MoveSellDates(ctx, moves); err != nil {
		uc.log.Error("Failed to persist bulk move", "error", err)
		return 0, err
	}

	if err := uc.cache.InvalidateStorefrontCatalog(ctx); err != nil {
		uc.log.Warn("Failed to invalidate storefront cache", "error", err)
	}

	monitoring.BulkMovesTotal.Inc()
	monitoring.BulkMovedItemsTotal.Add(float64(len(moves)))

	uc.log.Info("Bulk sell date move applied",
		"items", len(moves),
		"new_sell_date", cmd.NewSellDate.String(),
	)

	return len(moves), nil
}

package use_cases

import (
	"context"
	"testing"

	"github.com/freshdeli/console/internal/application/commands"
	"github.com/freshdeli/console/internal/domain/catalog"
	domainErrors "github.com/freshdeli/console/internal/domain/errors"
	"github.com/freshdeli/console/internal/pkg/logger"
)

func TestBulkMovePersistsNewDates(t *testing.T) {
	repo := &fakeCatalogRepo{items: testItems()}
	cache := newFakeCache()
	cache.catalogBytes = []byte(`[]`)
	uc := NewBulkMoveUseCase(repo, cache, logger.NewLogger())

	target := catalog.Date{Year: 2025, Month: 9, Day: 20}
	moved, err := uc.Execute(context.Background(), commands.BulkMoveCommand{
		ItemIDs:     []int64{1, 3},
		NewSellDate: target,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if moved != 2 {
		t.Fatalf("expected 2 moved items, got %d", moved)
	}

	if len(repo.moves) != 2 {
		t.Fatalf("expected 2 persisted moves, got %d", len(repo.moves))
	}
	for _, move := range repo.moves {
		if move.SellDate != target {
			t.Errorf("item %d moved to %s, want %s", move.ItemID, move.SellDate, target)
		}
	}
	if cache.invalidated == 0 {
		t.Error("expected storefront cache invalidation")
	}
}

func TestBulkMoveEmptySelection(t *testing.T) {
	repo := &fakeCatalogRepo{items: testItems()}
	uc := NewBulkMoveUseCase(repo, newFakeCache(), logger.NewLogger())

	_, err := uc.Execute(context.Background(), commands.BulkMoveCommand{
		ItemIDs:     nil,
		NewSellDate: catalog.Date{Year: 2025, Month: 9, Day: 20},
	})
	if err != domainErrors.ErrNoItemsSelected {
		t.Fatalf("expected ErrNoItemsSelected, got %v", err)
	}
}

func TestBulkMoveUnknownItem(t *testing.T) {
	repo := &fakeCatalogRepo{items: testItems()}
	uc := NewBulkMoveUseCase(repo, newFakeCache(), logger.NewLogger())

	_, err := uc.Execute(context.Background(), commands.BulkMoveCommand{
		ItemIDs:     []int64{1, 99},
		NewSellDate: catalog.Date{Year: 2025, Month: 9, Day: 20},
	})
	if err != domainErrors.ErrItemNotFound {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

package use_cases

import (
	"context"
	"testing"
	"time"

	"github.com/freshdeli/console/internal/application/commands"
	"github.com/freshdeli/console/internal/domain/catalog"
	domainErrors "github.com/freshdeli/console/internal/domain/errors"
	"github.com/freshdeli/console/internal/pkg/clock"
	"github.com/freshdeli/console/internal/pkg/logger"
)

type fakeCatalogRepo struct {
	items      []catalog.Item
	savedOrder []int64
	moves      []catalog.DateMove
	saveErr    error
}

func (r *fakeCatalogRepo) GetItemByID(ctx context.Context, id int64) (*catalog.Item, error) {
	for _, item := range r.items {
		if item.ID == id {
			return &item, nil
		}
	}
	return nil, domainErrors.ErrItemNotFound
}

func (r *fakeCatalogRepo) GetItemsByIDs(ctx context.Context, ids []int64) ([]catalog.Item, error) {
	var found []catalog.Item
	for _, id := range ids {
		for _, item := range r.items {
			if item.ID == id {
				found = append(found, item)
			}
		}
	}
	return found, nil
}

func (r *fakeCatalogRepo) ListItems(ctx context.Context) ([]catalog.Item, error) {
	return r.items, nil
}

func (r *fakeCatalogRepo) CreateItem(ctx context.Context, item *catalog.Item) error  { return nil }
func (r *fakeCatalogRepo) UpdateItem(ctx context.Context, item catalog.Item) error   { return nil }
func (r *fakeCatalogRepo) DeleteItem(ctx context.Context, id int64) error            { return nil }
func (r *fakeCatalogRepo) UpdateImageURL(ctx context.Context, id int64, _ string) error {
	return nil
}

func (r *fakeCatalogRepo) SaveBucketOrder(ctx context.Context, orderedIDs []int64) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.savedOrder = orderedIDs
	return nil
}

func (r *fakeCatalogRepo) MoveSellDates(ctx context.Context, moves []catalog.DateMove) error {
	r.moves = moves
	return nil
}

type fakeCache struct {
	sessions     map[string]string
	invalidated  int
	catalogBytes []byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{sessions: make(map[string]string)}
}

func (c *fakeCache) CreateSession(ctx context.Context, token, username string, ttl time.Duration) error {
	c.sessions[token] = username
	return nil
}

func (c *fakeCache) GetSession(ctx context.Context, token string) (string, error) {
	username, ok := c.sessions[token]
	if !ok {
		return "", domainErrors.ErrSessionNotFound
	}
	return username, nil
}

func (c *fakeCache) RefreshSession(ctx context.Context, token string, ttl time.Duration) error {
	return nil
}

func (c *fakeCache) DeleteSession(ctx context.Context, token string) error {
	delete(c.sessions, token)
	return nil
}

func (c *fakeCache) GetStorefrontCatalog(ctx context.Context) ([]byte, bool, error) {
	return c.catalogBytes, c.catalogBytes != nil, nil
}

func (c *fakeCache) SetStorefrontCatalog(ctx context.Context, payload []byte, ttl time.Duration) error {
	c.catalogBytes = payload
	return nil
}

func (c *fakeCache) InvalidateStorefrontCatalog(ctx context.Context) error {
	c.invalidated++
	c.catalogBytes = nil
	return nil
}

var testNow = time.Date(2025, 9, 15, 12, 0, 0, 0, catalog.Zone)

func datePtr(d catalog.Date) *catalog.Date { return &d }
func rankPtr(r int) *int                   { return &r }

func testItems() []catalog.Item {
	today := catalog.DateOf(testNow)
	return []catalog.Item{
		{ID: 1, Name: "Salmon bento", SellDate: datePtr(today), Rank: rankPtr(2)},
		{ID: 2, Name: "Pork cutlet", SellDate: datePtr(today), Rank: rankPtr(2)},
		{ID: 3, Name: "Egg sandwich", SellDate: datePtr(today)},
		{ID: 4, Name: "Potato salad", SellDate: datePtr(today), Rank: rankPtr(1)},
	}
}

func newTestReorder(repo *fakeCatalogRepo, cache *fakeCache) *ReorderUseCase {
	return NewReorderUseCase(repo, cache, clock.NewMockClock(testNow), logger.NewLogger())
}

func TestOpenRepairsRanking(t *testing.T) {
	repo := &fakeCatalogRepo{items: testItems()}
	uc := newTestReorder(repo, newFakeCache())

	bucket := catalog.ExactDateKey(catalog.DateOf(testNow))
	sessionID, rows, err := uc.Open(context.Background(), commands.OpenOrderCommand{Bucket: bucket})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if sessionID == "" {
		t.Fatal("expected a session id")
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}

	// Ranks 1..4, ascending. Item 4 keeps its unique rank 1; the duplicate
	// rank-2 holders and the unranked item are reassigned in input order.
	for i, row := range rows {
		if row.Rank != i+1 {
			t.Fatalf("row %d has rank %d", i, row.Rank)
		}
	}
	if rows[0].Item.ID != 4 {
		t.Errorf("rank 1 should be item 4, got %d", rows[0].Item.ID)
	}
	if rows[1].Item.ID != 1 {
		t.Errorf("rank 2 should be item 1, got %d", rows[1].Item.ID)
	}
}

func TestOpenUnknownBucket(t *testing.T) {
	repo := &fakeCatalogRepo{items: testItems()}
	uc := newTestReorder(repo, newFakeCache())

	_, _, err := uc.Open(context.Background(), commands.OpenOrderCommand{Bucket: catalog.Aged30Key})
	if err != domainErrors.ErrBucketNotFound {
		t.Fatalf("expected ErrBucketNotFound, got %v", err)
	}
}

func TestShiftAndUndo(t *testing.T) {
	repo := &fakeCatalogRepo{items: testItems()}
	uc := newTestReorder(repo, newFakeCache())

	bucket := catalog.ExactDateKey(catalog.DateOf(testNow))
	sessionID, before, err := uc.Open(context.Background(), commands.OpenOrderCommand{Bucket: bucket})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	lastID := before[len(before)-1].Item.ID
	after, err := uc.Shift(commands.ShiftCommand{SessionID: sessionID, TargetID: lastID, NewRank: 1})
	if err != nil {
		t.Fatalf("Shift: %v", err)
	}
	if after[0].Item.ID != lastID {
		t.Fatalf("expected item %d at rank 1, got %d", lastID, after[0].Item.ID)
	}

	restored, err := uc.Undo(sessionID)
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	for i := range before {
		if restored[i].Item.ID != before[i].Item.ID {
			t.Fatalf("undo did not restore position %d", i)
		}
	}

	if _, err := uc.Undo(sessionID); err != domainErrors.ErrNothingToUndo {
		t.Fatalf("expected ErrNothingToUndo, got %v", err)
	}
}

func TestShiftValidation(t *testing.T) {
	repo := &fakeCatalogRepo{items: testItems()}
	uc := newTestReorder(repo, newFakeCache())

	bucket := catalog.ExactDateKey(catalog.DateOf(testNow))
	sessionID, _, err := uc.Open(context.Background(), commands.OpenOrderCommand{Bucket: bucket})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if _, err := uc.Shift(commands.ShiftCommand{SessionID: sessionID, TargetID: 1, NewRank: 0}); err != domainErrors.ErrRankOutOfRange {
		t.Errorf("rank 0: expected ErrRankOutOfRange, got %v", err)
	}
	if _, err := uc.Shift(commands.ShiftCommand{SessionID: sessionID, TargetID: 1, NewRank: 5}); err != domainErrors.ErrRankOutOfRange {
		t.Errorf("rank 5: expected ErrRankOutOfRange, got %v", err)
	}
	if _, err := uc.Shift(commands.ShiftCommand{SessionID: sessionID, TargetID: 99, NewRank: 2}); err != domainErrors.ErrItemNotFound {
		t.Errorf("unknown item: expected ErrItemNotFound, got %v", err)
	}
	if _, err := uc.Shift(commands.ShiftCommand{SessionID: "E-missing", TargetID: 1, NewRank: 2}); err != domainErrors.ErrEditSessionNotFound {
		t.Errorf("missing session: expected ErrEditSessionNotFound, got %v", err)
	}
}

func TestSavePersistsOrderAndClosesSession(t *testing.T) {
	repo := &fakeCatalogRepo{items: testItems()}
	cache := newFakeCache()
	cache.catalogBytes = []byte(`[]`)
	uc := newTestReorder(repo, cache)

	bucket := catalog.ExactDateKey(catalog.DateOf(testNow))
	sessionID, _, err := uc.Open(context.Background(), commands.OpenOrderCommand{Bucket: bucket})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if _, err := uc.Shift(commands.ShiftCommand{SessionID: sessionID, TargetID: 3, NewRank: 1}); err != nil {
		t.Fatalf("Shift: %v", err)
	}
	if err := uc.Save(context.Background(), commands.SaveOrderCommand{SessionID: sessionID}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if len(repo.savedOrder) != 4 {
		t.Fatalf("expected 4 saved ids, got %d", len(repo.savedOrder))
	}
	if repo.savedOrder[0] != 3 {
		t.Errorf("expected item 3 first, got %d", repo.savedOrder[0])
	}
	if cache.invalidated == 0 {
		t.Error("expected storefront cache invalidation on save")
	}

	// Session is gone after save.
	if err := uc.Save(context.Background(), commands.SaveOrderCommand{SessionID: sessionID}); err != domainErrors.ErrEditSessionNotFound {
		t.Fatalf("expected ErrEditSessionNotFound after save, got %v", err)
	}
}

func TestAbandonDiscardsEdits(t *testing.T) {
	repo := &fakeCatalogRepo{items: testItems()}
	cache := newFakeCache()
	uc := newTestReorder(repo, cache)

	bucket := catalog.ExactDateKey(catalog.DateOf(testNow))
	sessionID, _, err := uc.Open(context.Background(), commands.OpenOrderCommand{Bucket: bucket})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if _, err := uc.Shift(commands.ShiftCommand{SessionID: sessionID, TargetID: 1, NewRank: 4}); err != nil {
		t.Fatalf("Shift: %v", err)
	}
	if err := uc.Abandon(commands.AbandonOrderCommand{SessionID: sessionID}); err != nil {
		t.Fatalf("Abandon: %v", err)
	}

	if repo.savedOrder != nil {
		t.Error("abandon must not persist anything")
	}
	if cache.invalidated != 0 {
		t.Error("abandon must not invalidate the storefront cache")
	}
	if err := uc.Abandon(commands.AbandonOrderCommand{SessionID: sessionID}); err != domainErrors.ErrEditSessionNotFound {
		t.Fatalf("expected ErrEditSessionNotFound, got %v", err)
	}
}

package use_cases

import (
	"context"
	"sort"
	"sync"

	"github.com/freshdeli/console/internal/application/commands"
	"github.com/freshdeli/console/internal/application/ports"
	"github.com/freshdeli/console/internal/domain/catalog"
	domainErrors "github.com/freshdeli/console/internal/domain/errors"
	"github.com/freshdeli/console/internal/infrastructure/monitoring"
	"github.com/freshdeli/console/internal/pkg/clock"
	"github.com/freshdeli/console/internal/pkg/generator"
	"github.com/freshdeli/console/internal/pkg/logger"
)

// ReorderUseCase runs the per-bucket edit session: open repairs the stored
// ranks into a canonical ranking, each shift cascades through the affected
// window, and only an explicit save writes anything back. An abandoned
// session just disappears; nothing partial ever reaches the store.
type ReorderUseCase struct {
	repo    ports.CatalogRepository
	cache   ports.Cache
	clk     clock.Clock
	log     *logger.Logger
	codeGen *generator.CodeGenerator

	mu       sync.Mutex
	sessions map[string]*editSession
}

type editSession struct {
	bucket  catalog.BucketKey
	items   map[int64]catalog.Item
	ranking catalog.Ranking
	undo    []catalog.Ranking
}

// RankedItem is one row of the reorder dialog.
type RankedItem struct {
	Item catalog.Item
	Rank int
}

func NewReorderUseCase(
	repo ports.CatalogRepository,
	cache ports.Cache,
	clk clock.Clock,
	log *logger.Logger,
) *ReorderUseCase {
	return &ReorderUseCase{
		repo:     repo,
		cache:    cache,
		clk:      clk,
		log:      log,
		codeGen:  generator.NewCodeGenerator(),
		sessions: make(map[string]*editSession),
	}
}

// Open loads the bucket, repairs its ranking, and returns a session the
// operator can shift against. The repaired ranking lives only in memory
// until Save.
func (uc *ReorderUseCase) Open(ctx context.Context, cmd commands.OpenOrderCommand) (string, []RankedItem, error) {
	items, err := uc.repo.ListItems(ctx)
	if err != nil {
		uc.log.Error("Failed to list items for reorder", "error", err, "bucket", cmd.Bucket.String())
		return "", nil, err
	}

	buckets := catalog.Group(items, uc.clk.Now())
	bucketItems, ok := buckets[cmd.Bucket]
	if !ok || len(bucketItems) == 0 {
		return "", nil, domainErrors.ErrBucketNotFound
	}

	ranking := catalog.Repair(bucketItems)

	repaired := 0
	for _, item := range bucketItems {
		if item.Rank == nil || *item.Rank != ranking[item.ID] {
			repaired++
		}
	}
	monitoring.RecordRankRepair(repaired)

	session := &editSession{
		bucket:  cmd.Bucket,
		items:   make(map[int64]catalog.Item, len(bucketItems)),
		ranking: ranking,
	}
	for _, item := range bucketItems {
		session.items[item.ID] = item
	}

	sessionID := uc.codeGen.GenerateEditSessionID()

	uc.mu.Lock()
	uc.sessions[sessionID] = session
	monitoring.ReorderSessionsActive.Set(float64(len(uc.sessions)))
	uc.mu.Unlock()

	uc.log.Info("Opened reorder session",
		"session_id", sessionID,
		"bucket", cmd.Bucket.String(),
		"items", len(bucketItems),
		"repaired", repaired,
	)

	return sessionID, entries(session), nil
}

// Shift applies one rank change and returns the updated rows. The previous
// ranking is kept for Undo; Shift itself is pure, so keeping history is just
// keeping the old map.
func (uc *ReorderUseCase) Shift(cmd commands.ShiftCommand) ([]RankedItem, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	session, ok := uc.sessions[cmd.SessionID]
	if !ok {
		return nil, domainErrors.ErrEditSessionNotFound
	}
	if err := cmd.Validate(len(session.ranking)); err != nil {
		return nil, err
	}
	if _, ok := session.ranking[cmd.TargetID]; !ok {
		return nil, domainErrors.ErrItemNotFound
	}

	session.undo = append(session.undo, session.ranking)
	session.ranking = catalog.Shift(session.ranking, cmd.TargetID, cmd.NewRank)
	monitoring.RankShiftsTotal.Inc()

	return entries(session), nil
}

func (uc *ReorderUseCase) Undo(sessionID string) ([]RankedItem, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	session, ok := uc.sessions[sessionID]
	if !ok {
		return nil, domainErrors.ErrEditSessionNotFound
	}
	if len(session.undo) == 0 {
		return nil, domainErrors.ErrNothingToUndo
	}

	session.ranking = session.undo[len(session.undo)-1]
	session.undo = session.undo[:len(session.undo)-1]

	return entries(session), nil
}

// Save writes the full ordered id list in one transaction and closes the
// session. Last writer wins if two operators raced on the same bucket.
func (uc *ReorderUseCase) Save(ctx context.Context, cmd commands.SaveOrderCommand) error {
	uc.mu.Lock()
	session, ok := uc.sessions[cmd.SessionID]
	uc.mu.Unlock()
	if !ok {
		return domainErrors.ErrEditSessionNotFound
	}

	orderedIDs := session.ranking.OrderedIDs()
	if err := uc.repo.SaveBucketOrder(ctx, orderedIDs); err != nil {
		uc.log.Error("Failed to save bucket order", "error", err, "session_id", cmd.SessionID)
		return err
	}

	if err := uc.cache.InvalidateStorefrontCatalog(ctx); err != nil {
		uc.log.Warn("Failed to invalidate storefront cache", "error", err)
	}

	uc.closeSession(cmd.SessionID)
	monitoring.ReorderSavesTotal.Inc()

	uc.log.Info("Saved bucket order",
		"session_id", cmd.SessionID,
		"bucket", session.bucket.String(),
		"items", len(orderedIDs),
	)

	return nil
}

func (uc *ReorderUseCase) Abandon(cmd commands.AbandonOrderCommand) error {
	uc.mu.Lock()
	_, ok := uc.sessions[cmd.SessionID]
	uc.mu.Unlock()
	if !ok {
		return domainErrors.ErrEditSessionNotFound
	}

	uc.closeSession(cmd.SessionID)
	return nil
}

func (uc *ReorderUseCase) closeSession(sessionID string) {
	uc.mu.Lock()
	delete(uc.sessions, sessionID)
	monitoring.ReorderSessionsActive.Set(float64(len(uc.sessions)))
	uc.mu.Unlock()
}

func entries(session *editSession) []RankedItem {
	rows := make([]RankedItem, 0, len(session.ranking))
	for id, rank := range session.ranking {
		rows = append(rows, RankedItem{Item: session.items[id], Rank: rank})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Rank < rows[j].Rank
	})
	return rows
}

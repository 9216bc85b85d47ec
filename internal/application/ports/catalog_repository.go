package ports

import (
	"context"

	"github.com/freshdeli/console/internal/domain/catalog"
)

type CatalogRepository interface {
	GetItemByID(ctx context.Context, id int64) (*catalog.Item, error)
	GetItemsByIDs(ctx context.Context, ids []int64) ([]catalog.Item, error)
	ListItems(ctx context.Context) ([]catalog.Item, error)
	CreateItem(ctx context.Context, item *catalog.Item) error
	UpdateItem(ctx context.Context, item catalog.Item) error
	DeleteItem(ctx context.Context, id int64) error
	UpdateImageURL(ctx context.Context, id int64, imageURL string) error

	// SaveBucketOrder persists rank 1..N by position for one bucket's ordered
	// id list, atomically. Items outside the list are untouched.
	SaveBucketOrder(ctx context.Context, orderedIDs []int64) error

	// MoveSellDates persists the (itemID, newSellDate) pairs of a bulk move,
	// atomically. Ranks are not touched.
	MoveSellDates(ctx context.Context, moves []catalog.DateMove) error
}

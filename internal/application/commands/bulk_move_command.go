package commands

import (
	"github.com/freshdeli/console/internal/domain/catalog"
	domainErrors "github.com/freshdeli/console/internal/domain/errors"
)

// BulkMoveCommand assigns one new sell date to a set of selected items,
// possibly spread over several buckets.
type BulkMoveCommand struct {
	ItemIDs     []int64
	NewSellDate catalog.Date
}

func (c BulkMoveCommand) Validate() error {
	if len(c.ItemIDs) == 0 {
		return domainErrors.ErrNoItemsSelected
	}
	return nil
}

package commands

import (
	"github.com/freshdeli/console/internal/domain/catalog"
	domainErrors "github.com/freshdeli/console/internal/domain/errors"
)

// ShiftCommand asks to move one item to a new rank inside an open edit
// session. NewRank is validated against the bucket size here, before the
// domain is reached; Shift itself assumes a valid request.
type ShiftCommand struct {
	SessionID string
	TargetID  int64
	NewRank   int
}

func (c ShiftCommand) Validate(bucketSize int) error {
	if c.NewRank < 1 || c.NewRank > bucketSize {
		return domainErrors.ErrRankOutOfRange
	}
	return nil
}

type OpenOrderCommand struct {
	Bucket catalog.BucketKey
}

type SaveOrderCommand struct {
	SessionID string
}

type AbandonOrderCommand struct {
	SessionID string
}

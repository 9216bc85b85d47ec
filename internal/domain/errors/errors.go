package errors

import (
	"errors"
)

var (
	ErrItemNotFound    = errors.New("item not found")
	ErrBucketNotFound  = errors.New("bucket not found")
	ErrNoItemsSelected = errors.New("no items selected")

	ErrRankOutOfRange      = errors.New("rank out of range for bucket")
	ErrEditSessionNotFound = errors.New("edit session not found")
	ErrNothingToUndo       = errors.New("nothing to undo")

	ErrOperatorNotFound   = errors.New("operator not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")

	ErrOrderNotFound        = errors.New("order not found")
	ErrWindowNotFound       = errors.New("delivery window not found")
	ErrInvalidStatusChange  = errors.New("invalid order status change")
	ErrImageTooLarge        = errors.New("image exceeds maximum size")
	ErrUnsupportedImageType = errors.New("unsupported image type")
)

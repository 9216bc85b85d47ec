package ports

import (
	"context"
	"time"
)

type Cache interface {
	CreateSession(ctx context.Context, token, username string, ttl time.Duration) error
	GetSession(ctx context.Context, token string) (string, error)
	RefreshSession(ctx context.Context, token string, ttl time.Duration) error
	DeleteSession(ctx context.Context, token string) error

	GetStorefrontCatalog(ctx context.Context) ([]byte, bool, error)
	SetStorefrontCatalog(ctx context.Context, payload []byte, ttl time.Duration) error
	InvalidateStorefrontCatalog(ctx context.Context) error
}

package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainErrors "github.com/freshdeli/console/internal/domain/errors"
	"github.com/freshdeli/console/internal/infrastructure/monitoring"
	"github.com/freshdeli/console/internal/pkg/logger"
)

const storefrontCatalogKey = "storefront:catalog"

// Cache backs the two volatile stores of the console: admin session tokens
// and the rendered storefront catalog. Both expire on their own; neither is
// a source of truth.
type Cache struct {
	client *redis.Client
	logger *logger.Logger
}

func NewCache(conn *Connection, log *logger.Logger) *Cache {
	client := monitoring.InstrumentRedisClient(conn.GetClient())

	return &Cache{
		client: client,
		logger: log,
	}
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

func (c *Cache) CreateSession(ctx context.Context, token, username string, ttl time.Duration) error {
	return c.client.Set(ctx, sessionKey(token), username, ttl).Err()
}

func (c *Cache) GetSession(ctx context.Context, token string) (string, error) {
	username, err := c.client.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", domainErrors.ErrSessionNotFound
		}
		return "", err
	}
	return username, nil
}

// RefreshSession slides the expiry so an active operator is not logged out
// mid-shift.
func (c *Cache) RefreshSession(ctx context.Context, token string, ttl time.Duration) error {
	ok, err := c.client.Expire(ctx, sessionKey(token), ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return domainErrors.ErrSessionNotFound
	}
	return nil
}

func (c *Cache) DeleteSession(ctx context.Context, token string) error {
	return c.client.Del(ctx, sessionKey(token)).Err()
}

func (c *Cache) GetStorefrontCatalog(ctx context.Context) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, storefrontCatalogKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			monitoring.RecordStorefrontCacheMiss()
			return nil, false, nil
		}
		return nil, false, err
	}

	monitoring.RecordStorefrontCacheHit()
	return payload, true, nil
}

func (c *Cache) SetStorefrontCatalog(ctx context.Context, payload []byte, ttl time.Duration) error {
	return c.client.Set(ctx, storefrontCatalogKey, payload, ttl).Err()
}

func (c *Cache) InvalidateStorefrontCatalog(ctx context.Context) error {
	return c.client.Del(ctx, storefrontCatalogKey).Err()
}

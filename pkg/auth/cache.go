package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultCacheTTL = 5 * time.Minute

// CachedClient fronts another Client with a redis session cache so hot
// dashboard interactions do not hit the auth collaborator per request.
// Negative results are never cached; an invalid token is re-checked
// every time.
type CachedClient struct {
	inner  Client
	redis  *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedClient wraps inner with a redis-backed session cache.
func NewCachedClient(inner Client, redisClient *redis.Client, logger *slog.Logger) *CachedClient {
	return &CachedClient{
		inner:  inner,
		redis:  redisClient,
		ttl:    defaultCacheTTL,
		logger: logger.With("module", "auth_cache"),
	}
}

// SessionFromToken returns the cached session for a token, resolving and
// caching it on miss. Cache failures degrade to the inner client; they
// never fail the lookup.
func (c *CachedClient) SessionFromToken(ctx context.Context, token string) (*Session, error) {
	key := c.cacheKey(token)

	cached, err := c.redis.Get(ctx, key).Bytes()
	if err == nil {
		var session Session
		if jsonErr := json.Unmarshal(cached, &session); jsonErr == nil {
			if !session.Expired(time.Now().UTC()) {
				return &session, nil
			}
		}
	} else if !errors.Is(err, redis.Nil) {
		c.logger.WarnContext(ctx, "session cache read failed", "error", err)
	}

	session, err := c.inner.SessionFromToken(ctx, token)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session for cache: %w", err)
	}

	ttl := c.ttl
	if !session.ExpiresAt.IsZero() {
		if remaining := time.Until(session.ExpiresAt); remaining < ttl {
			ttl = remaining
		}
	}

	if ttl > 0 {
		err = c.redis.Set(ctx, key, payload, ttl).Err()
		if err != nil {
			c.logger.WarnContext(ctx, "session cache write failed", "error", err)
		}
	}

	return session, nil
}

// SignOut invalidates the session and evicts it from the cache.
func (c *CachedClient) SignOut(ctx context.Context, token string) error {
	err := c.redis.Del(ctx, c.cacheKey(token)).Err()
	if err != nil {
		c.logger.WarnContext(ctx, "session cache eviction failed", "error", err)
	}

	return c.inner.SignOut(ctx, token)
}

// cacheKey hashes the token so raw credentials never land in redis keys.
func (c *CachedClient) cacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))

	return "flowdeck:session:" + hex.EncodeToString(sum[:])
}

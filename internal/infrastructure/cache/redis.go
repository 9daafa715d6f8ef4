package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"prism-lab/internal/config"
	"prism-lab/internal/domain/models"
	"prism-lab/pkg/logger"
)

// RedisCache wraps the Redis client with typed operations
type RedisCache struct {
	client    *redis.Client
	keyPrefix string
	logger    *logger.Logger
}

// NewRedis creates a new Redis client
func NewRedis(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (*RedisCache, error) {
	log = log.WithComponent("redis")
	log.Info().Str("host", cfg.Host).Int("port", cfg.Port).Msg("connecting to Redis")

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	log.Info().Msg("connected to Redis successfully")

	return &RedisCache{
		client:    client,
		keyPrefix: cfg.KeyPrefix,
		logger:    log,
	}, nil
}

// Client returns the underlying Redis client
func (c *RedisCache) Client() *redis.Client {
	return c.client
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	c.logger.Info().Msg("closing Redis connection")
	return c.client.Close()
}

// key prepends the namespace prefix to a key
func (c *RedisCache) key(k string) string {
	return c.keyPrefix + k
}

// Get retrieves a value from cache
func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	return c.client.Get(ctx, c.key(key)).Result()
}

// GetJSON retrieves and unmarshals a JSON value from cache
func (c *RedisCache) GetJSON(ctx context.Context, key string, dest any) error {
	data, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

// Set stores a value in cache with optional TTL
func (c *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return c.client.Set(ctx, c.key(key), value, ttl).Err()
}

// SetJSON marshals and stores a value in cache
func (c *RedisCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return c.Set(ctx, key, string(data), ttl)
}

// Delete removes a key from cache
func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	prefixedKeys := make([]string, len(keys))
	for i, k := range keys {
		prefixedKeys[i] = c.key(k)
	}
	return c.client.Del(ctx, prefixedKeys...).Err()
}

// Incr increments an integer value
func (c *RedisCache) Incr(ctx context.Context, key string) (int64, error) {
	return c.client.Incr(ctx, c.key(key)).Result()
}

// Pipeline returns a Redis pipeline for batch operations
func (c *RedisCache) Pipeline() redis.Pipeliner {
	return c.client.Pipeline()
}

// Cache key constants for PRISM
const (
	// Verdict cache keys, both keyed by content hash
	KeyMessageVerdictPrefix = "cache:verdict:message:"
	KeyURLVerdictPrefix     = "cache:verdict:url:"

	// Rate limiting keys
	KeyRateLimitPrefix = "rate_limit:"

	// Stats counters
	KeyStatsMessages   = "stats:messages_analyzed"
	KeyStatsScams      = "stats:scams_detected"
	KeyStatsSuspicious = "stats:suspicious_detected"
	KeyStatsURLScans   = "stats:urls_scanned"
	KeyStatsUnsafeURLs = "stats:unsafe_urls"
)

// contentKey hashes arbitrary content into a stable cache key component.
func contentKey(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// GetURLVerdict returns the cached verdict for a URL, or (nil, nil) on a
// cache miss.
func (c *RedisCache) GetURLVerdict(ctx context.Context, rawURL string) (*models.URLVerdict, error) {
	var verdict models.URLVerdict
	err := c.GetJSON(ctx, KeyURLVerdictPrefix+contentKey(rawURL), &verdict)
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &verdict, nil
}

// SetURLVerdict caches a URL verdict with the given TTL.
func (c *RedisCache) SetURLVerdict(ctx context.Context, rawURL string, v *models.URLVerdict, ttl time.Duration) error {
	return c.SetJSON(ctx, KeyURLVerdictPrefix+contentKey(rawURL), v, ttl)
}

// GetMessageVerdict returns the cached verdict for a message text, or
// (nil, nil) on a cache miss.
func (c *RedisCache) GetMessageVerdict(ctx context.Context, text string) (*models.RiskVerdict, error) {
	var verdict models.RiskVerdict
	err := c.GetJSON(ctx, KeyMessageVerdictPrefix+contentKey(text), &verdict)
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &verdict, nil
}

// SetMessageVerdict caches a message verdict with the given TTL.
func (c *RedisCache) SetMessageVerdict(ctx context.Context, text string, v *models.RiskVerdict, ttl time.Duration) error {
	return c.SetJSON(ctx, KeyMessageVerdictPrefix+contentKey(text), v, ttl)
}

// IncrStat bumps a stats counter; failures are logged, not returned, since
// stats must never affect an analysis.
func (c *RedisCache) IncrStat(ctx context.Context, key string) {
	if _, err := c.Incr(ctx, key); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("failed to increment stat")
	}
}

// GetStats reads all stats counters in one round trip.
func (c *RedisCache) GetStats(ctx context.Context) (map[string]int64, error) {
	keys := []string{
		KeyStatsMessages, KeyStatsScams, KeyStatsSuspicious,
		KeyStatsURLScans, KeyStatsUnsafeURLs,
	}

	pipe := c.Pipeline()
	cmds := make([]*redis.StringCmd, len(keys))
	for i, k := range keys {
		cmds[i] = pipe.Get(ctx, c.key(k))
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, err
	}

	stats := make(map[string]int64, len(keys))
	for i, k := range keys {
		n, err := cmds[i].Int64()
		if err != nil && err != redis.Nil {
			return nil, err
		}
		stats[k] = n
	}
	return stats, nil
}

// CheckRateLimit checks and increments the rate limit counter
// Returns (allowed, remaining, resetTime, error)
func (c *RedisCache) CheckRateLimit(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, time.Time, error) {
	now := time.Now()
	windowKey := fmt.Sprintf("%s%s:%d", KeyRateLimitPrefix, key, now.Unix()/int64(window.Seconds()))

	pipe := c.Pipeline()
	incr := pipe.Incr(ctx, c.key(windowKey))
	pipe.Expire(ctx, c.key(windowKey), window)
	_, err := pipe.Exec(ctx)
	if err != nil {
		return false, 0, time.Time{}, err
	}

	count := incr.Val()
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}

	resetTime := now.Add(window)

	return count <= limit, remaining, resetTime, nil
}

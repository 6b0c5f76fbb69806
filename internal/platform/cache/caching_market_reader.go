// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"etf_platform/internal/platform/etfapi"
)

// MarketReader abstracts the read-only upstream calls worth caching.
// Following Go convention: interfaces are defined by the consumer (cache),
// not the provider (etfapi).
type MarketReader interface {
	Dashboard(ctx context.Context) (*etfapi.DashboardSummary, error)
	Rankings(ctx context.Context, kind string) (*etfapi.RankingResult, error)
	Themes(ctx context.Context) (*etfapi.ThemeList, error)
	ThemeDetail(ctx context.Context, theme string) (*etfapi.ThemeDetail, error)
}

// CachingMarketReader decorates a MarketReader with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying client. Upstream data refreshes once a day, so
// cached entries stay valid until the next refresh.
type CachingMarketReader struct {
	inner     MarketReader
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingMarketReader decorates a MarketReader with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "market".
func NewCachingMarketReader(rdb *redis.Client, ttl time.Duration, inner MarketReader, namespace string) *CachingMarketReader {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "market"
	}
	return &CachingMarketReader{inner: inner, rdb: rdb, ttl: ttl, namespace: namespace}
}

// Dashboard retrieves the dashboard summary, checking cache first.
func (c *CachingMarketReader) Dashboard(ctx context.Context) (*etfapi.DashboardSummary, error) {
	return cached(ctx, c, c.key("dashboard"), func() (*etfapi.DashboardSummary, error) {
		return c.inner.Dashboard(ctx)
	})
}

// Rankings retrieves a ranking, checking cache first.
func (c *CachingMarketReader) Rankings(ctx context.Context, kind string) (*etfapi.RankingResult, error) {
	return cached(ctx, c, c.key("rankings", kind), func() (*etfapi.RankingResult, error) {
		return c.inner.Rankings(ctx, kind)
	})
}

// Themes retrieves the theme list, checking cache first.
func (c *CachingMarketReader) Themes(ctx context.Context) (*etfapi.ThemeList, error) {
	return cached(ctx, c, c.key("themes"), func() (*etfapi.ThemeList, error) {
		return c.inner.Themes(ctx)
	})
}

// ThemeDetail retrieves one theme's funds, checking cache first.
func (c *CachingMarketReader) ThemeDetail(ctx context.Context, theme string) (*etfapi.ThemeDetail, error) {
	return cached(ctx, c, c.key("theme", theme), func() (*etfapi.ThemeDetail, error) {
		return c.inner.ThemeDetail(ctx, theme)
	})
}

// cached runs the cache-aside flow for one upstream call. Errors from the
// upstream are never cached: a retry always re-issues the request.
func cached[T any](ctx context.Context, c *CachingMarketReader, key string, load func() (*T, error)) (*T, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return load()
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		out := new(T)
		if err := json.Unmarshal(b, out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the upstream API
	out, err := load()
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// key generates a cache key from the namespace and parts.
func (c *CachingMarketReader) key(parts ...string) string {
	escaped := make([]string, 0, len(parts)+1)
	escaped = append(escaped, c.namespace)
	for _, p := range parts {
		escaped = append(escaped, safe(p))
	}
	return strings.Join(escaped, ":")
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}

package content

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/xy-planning-network/switchback/metrics"
	"github.com/xy-planning-network/switchback/route"
)

var (
	_ Cache = (*MemoryCache)(nil)
	_ Cache = RedisCache{}
)

const keyPrefix = "switchback:content:"

// A Cache stores rendered fragments by key.
// A miss is reported by false, not an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

// A MemoryCache stores fragments in a map.
//
// Server restarts reset this map.
type MemoryCache struct {
	mu  sync.Mutex
	val map[string]memoryEntry
	now func() time.Time
}

type memoryEntry struct {
	b       []byte
	expires time.Time
}

// NewMemoryCache constructs an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{val: make(map[string]memoryEntry), now: time.Now}
}

// Get retrieves the fragment paired to key, if it has not expired.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.val[key]
	if !ok {
		return nil, false, nil
	}

	if !e.expires.IsZero() && !c.now().Before(e.expires) {
		delete(c.val, key)
		return nil, false, nil
	}

	return e.b, true, nil
}

// Set overwrites the fragment paired to key.
// A ttl of zero never expires.
//
// For each call to Set, expired keys are evicted.
func (c *MemoryCache) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.val {
		if !e.expires.IsZero() && !now.Before(e.expires) {
			delete(c.val, k)
		}
	}

	e := memoryEntry{b: val}
	if ttl > 0 {
		e.expires = now.Add(ttl)
	}

	c.val[key] = e
	return nil
}

// A RedisCache connects to a Redis backend for caching fragments.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache constructs a RedisCache with the options passed in.
func NewRedisCache(opts *redis.Options) RedisCache {
	return RedisCache{client: redis.NewClient(opts)}
}

// NewRedisCacheURL constructs a RedisCache from a redis:// URL,
// authenticating with pass when the URL carries none.
func NewRedisCacheURL(uri, pass string) (RedisCache, error) {
	opts, err := redis.ParseURL(uri)
	if err != nil {
		return RedisCache{}, fmt.Errorf("%w: redis url: %s", ErrCache, err)
	}

	if opts.Password == "" {
		opts.Password = pass
	}

	return NewRedisCache(opts), nil
}

// Get retrieves the fragment paired to key from the connected Redis backend.
func (c RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("%w: %s", ErrCache, err)
	}

	return b, true, nil
}

// Set saves the fragment by pairing it to the key in the Redis backend.
func (c RedisCache) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, keyPrefix+key, val, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %s", ErrCache, err)
	}

	return nil
}

// Ping checks the connection to Redis.
func (c RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the connection pool.
func (c RedisCache) Close() error { return c.client.Close() }

// Cached memoizes a Renderer's fragments in a Cache for ttl,
// keyed by the matched route and path.
//
// A fragment is shared by every request the guards let through;
// renderers whose output depends on who asks need WithVary.
// Cache failures fall through to the Renderer.
// Errors from the Renderer are never cached.
type Cached struct {
	next    Renderer
	cache   Cache
	ttl     time.Duration
	metrics *metrics.Collector
	vary    func(context.Context) string
}

// A CachedOpt configures a Cached.
type CachedOpt func(*Cached)

// WithVary appends the value fn derives from the request context, e.g. the signed in subject,
// to every cache key.
func WithVary(fn func(context.Context) string) CachedOpt {
	return func(c *Cached) {
		c.vary = fn
	}
}

// NewCached wraps next. A nil collector records nothing.
func NewCached(next Renderer, cache Cache, ttl time.Duration, c *metrics.Collector, opts ...CachedOpt) *Cached {
	cached := &Cached{next: next, cache: cache, ttl: ttl, metrics: c}
	for _, opt := range opts {
		opt(cached)
	}
	return cached
}

// Render serves a cached fragment or renders and stores a new one.
func (c *Cached) Render(ctx context.Context, m *route.Match) (template.HTML, error) {
	key := CacheKey(m)
	if c.vary != nil {
		key += "|" + c.vary(ctx)
	}

	if b, ok, err := c.cache.Get(ctx, key); err == nil && ok {
		c.metrics.ObserveCache(true)
		return template.HTML(b), nil
	}

	c.metrics.ObserveCache(false)
	html, err := c.next.Render(ctx, m)
	if err != nil {
		return "", err
	}

	// NOTE: a failed write only costs the next request a render
	_ = c.cache.Set(ctx, key, []byte(html), c.ttl)
	return html, nil
}

// CacheKey identifies the fragment for m.
func CacheKey(m *route.Match) string {
	return m.Pattern() + "|" + m.URL()
}

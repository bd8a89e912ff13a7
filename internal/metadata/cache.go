package metadata

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"palletScope/internal/model"
)

// DefaultTTL is the cache entry lifetime applied uniformly to every entry.
const DefaultTTL = 5 * time.Minute

// Fetcher retrieves the raw metadata payload for an endpoint. The transport
// session satisfies it; tests substitute a stub.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint string) (string, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, endpoint string) (string, error)

func (f FetcherFunc) Fetch(ctx context.Context, endpoint string) (string, error) {
	return f(ctx, endpoint)
}

type entry struct {
	info      *model.ChainInfo
	expiresAt time.Time
}

// Cache holds decoded chain metadata keyed by endpoint with a fixed TTL.
// Keys are exact, case-sensitive endpoint strings. Entries are replaced
// wholesale on refresh and expire lazily; there is no size bound.
type Cache struct {
	fetcher Fetcher
	decoder Decoder
	ttl     time.Duration
	logger  *zap.Logger
	now     func() time.Time

	mu      sync.RWMutex
	entries map[string]entry

	group singleflight.Group
}

// NewCache builds a cache over the given fetcher and decoder. A ttl of zero
// selects DefaultTTL.
func NewCache(fetcher Fetcher, decoder Decoder, ttl time.Duration, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if decoder == nil {
		decoder = FallbackDecoder{}
	}
	return &Cache{
		fetcher: fetcher,
		decoder: decoder,
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// Get returns the chain metadata for endpoint, served from an unexpired
// entry when possible. Concurrent callers for the same endpoint share one
// in-flight fetch. A fetch failure leaves any existing entry untouched.
func (c *Cache) Get(ctx context.Context, endpoint string) (*model.ChainInfo, error) {
	if info, ok := c.lookup(endpoint); ok {
		return info, nil
	}

	v, err, shared := c.group.Do(endpoint, func() (interface{}, error) {
		// Re-check under the flight: a concurrent refresher may have
		// populated the entry while this caller queued.
		if info, ok := c.lookup(endpoint); ok {
			return info, nil
		}
		return c.refresh(ctx, endpoint)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.Debug("fetch coalesced", zap.String("endpoint", endpoint))
	}
	return v.(*model.ChainInfo), nil
}

// Invalidate drops the entry for endpoint, if present.
func (c *Cache) Invalidate(endpoint string) {
	c.mu.Lock()
	delete(c.entries, endpoint)
	c.mu.Unlock()
}

func (c *Cache) lookup(endpoint string) (*model.ChainInfo, bool) {
	c.mu.RLock()
	e, ok := c.entries[endpoint]
	c.mu.RUnlock()
	if !ok || !c.now().Before(e.expiresAt) {
		return nil, false
	}
	return e.info, true
}

func (c *Cache) refresh(ctx context.Context, endpoint string) (*model.ChainInfo, error) {
	payload, err := c.fetcher.Fetch(ctx, endpoint)
	if err != nil {
		c.logger.Warn("metadata fetch failed", zap.String("endpoint", endpoint), zap.Error(err))
		return nil, err
	}

	info, err := c.decoder.Decode(payload)
	if err != nil {
		c.logger.Warn("metadata decode failed", zap.String("endpoint", endpoint), zap.Error(err))
		return nil, err
	}

	expiresAt := c.now().Add(c.ttl)
	c.mu.Lock()
	c.entries[endpoint] = entry{info: info, expiresAt: expiresAt}
	c.mu.Unlock()

	c.logger.Info("metadata cached",
		zap.String("endpoint", endpoint),
		zap.String("chain", info.Name),
		zap.Int("pallets", len(info.Pallets)),
		zap.Time("expires_at", expiresAt),
	)
	return info, nil
}

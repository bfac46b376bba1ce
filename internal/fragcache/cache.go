// Package fragcache is an in-memory, TTL-based cache for mini-game markup
// fragments. Concurrent fetches of the same key are coalesced into one
// underlying request, and keys can be preloaded in the background one at a
// time.
package fragcache

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a fetched fragment stays fresh.
const DefaultTTL = 5 * time.Minute

// ErrClosed is returned by fetches started or finished after Close.
var ErrClosed = errors.New("fragcache: cache closed")

// Fetcher retrieves the payload for a resource key.
type Fetcher interface {
	Fetch(ctx context.Context, key string) (string, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, key string) (string, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, key string) (string, error) {
	return f(ctx, key)
}

// Quality describes the current connection quality.
type Quality int

const (
	QualityGood Quality = iota
	QualityFair
	QualityPoor
)

func (q Quality) String() string {
	switch q {
	case QualityGood:
		return "good"
	case QualityFair:
		return "fair"
	case QualityPoor:
		return "poor"
	default:
		return "unknown"
	}
}

type entry struct {
	payload  string
	storedAt time.Time
	ttl      time.Duration
	version  string
}

func (e entry) validAt(now time.Time) bool {
	return now.Sub(e.storedAt) <= e.ttl
}

// Stats is a snapshot of cache activity.
type Stats struct {
	Entries   int
	Hits      map[string]int
	Fetches   int
	Failures  int
	LastFetch map[string]time.Duration
}

// Cache maps resource keys to fetched payloads with expiry.
type Cache struct {
	fetcher      Fetcher
	ttl          time.Duration
	fetchTimeout time.Duration
	idleDelay    time.Duration
	now          func() time.Time
	log          *zap.Logger

	mu        sync.Mutex
	entries   map[string]entry
	hits      map[string]int
	fetches   int
	failures  int
	durations map[string]time.Duration

	group singleflight.Group

	queueMu sync.Mutex
	queue   []string
	queued  map[string]bool
	working bool
	closed  bool
	quality Quality

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL sets the default time-to-live for fetched entries.
func WithTTL(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.log = l
		}
	}
}

// WithIdleDelay sets the pause between background preload fetches.
func WithIdleDelay(d time.Duration) Option {
	return func(c *Cache) { c.idleDelay = d }
}

// WithFetchTimeout bounds each underlying fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			c.fetchTimeout = d
		}
	}
}

// New creates a Cache that loads misses through fetcher.
func New(fetcher Fetcher, opts ...Option) *Cache {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Cache{
		fetcher:      fetcher,
		ttl:          DefaultTTL,
		fetchTimeout: 10 * time.Second,
		idleDelay:    50 * time.Millisecond,
		now:          time.Now,
		log:          zap.NewNop(),
		entries:      make(map[string]entry),
		hits:         make(map[string]int),
		durations:    make(map[string]time.Duration),
		queued:       make(map[string]bool),
		ctx:          ctx,
		cancel:       cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached payload if present and unexpired. Expired entries
// are evicted.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.lookupLocked(key)
	if !ok {
		return "", false
	}
	c.hits[key]++
	c.log.Debug("cache hit", zap.String("key", key), zap.Int("hits", c.hits[key]))
	return e.payload, true
}

// peek is Get without hit accounting.
func (c *Cache) peek(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.lookupLocked(key)
	return e.payload, ok
}

func (c *Cache) lookupLocked(key string) (entry, bool) {
	e, ok := c.entries[key]
	if !ok {
		return entry{}, false
	}
	if !e.validAt(c.now()) {
		delete(c.entries, key)
		return entry{}, false
	}
	return e, true
}

// Set stores or overwrites an entry stamped with the current time. A
// non-positive ttl uses the cache default.
func (c *Cache) Set(key, payload string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.ttl
	}
	c.mu.Lock()
	c.entries[key] = entry{
		payload:  payload,
		storedAt: c.now(),
		ttl:      ttl,
		version:  Version(key),
	}
	c.mu.Unlock()
}

// FetchCached returns the cached payload for key, fetching and storing it
// on a miss. Concurrent callers for the same key share one fetch and see
// the same payload or error. A failed fetch stores nothing.
//
// The shared fetch is detached from any single caller's cancellation and
// bounded by the fetch timeout; a caller whose ctx ends stops waiting.
// Close cancels shared fetches still in flight.
func (c *Cache) FetchCached(ctx context.Context, key string) (string, error) {
	if p, ok := c.Get(key); ok {
		return p, nil
	}

	ch := c.group.DoChan(key, func() (any, error) {
		if p, ok := c.peek(key); ok {
			return p, nil
		}
		if !c.track() {
			return nil, ErrClosed
		}
		defer c.wg.Done()

		fctx, stop := c.detach(ctx)
		defer stop()
		return c.fetch(fctx, key)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// track registers an in-flight fetch with the wait group unless the cache
// is closed. Close flips closed under queueMu before waiting.
func (c *Cache) track() bool {
	c.queueMu.Lock()
	defer c.queueMu.Unlock()
	if c.closed {
		return false
	}
	c.wg.Add(1)
	return true
}

// detach drops the caller's cancellation but keeps the cache's own.
func (c *Cache) detach(ctx context.Context) (context.Context, func()) {
	fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	stopAfter := context.AfterFunc(c.ctx, cancel)
	return fctx, func() {
		stopAfter()
		cancel()
	}
}

func (c *Cache) fetch(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	start := time.Now()
	payload, err := c.fetcher.Fetch(ctx, key)
	elapsed := time.Since(start)

	c.mu.Lock()
	c.fetches++
	c.durations[key] = elapsed
	if err != nil {
		c.failures++
	}
	c.mu.Unlock()

	if err != nil {
		c.log.Warn("fetch failed", zap.String("key", key), zap.Duration("elapsed", elapsed), zap.Error(err))
		return "", err
	}
	if c.ctx.Err() != nil {
		return "", ErrClosed
	}

	c.Set(key, payload, c.ttl)
	c.log.Debug("fetched", zap.String("key", key), zap.Duration("elapsed", elapsed), zap.Int("bytes", len(payload)))
	return payload, nil
}

// Preload queues keys for background fetching, skipping keys that are
// already cached or queued. Keys are fetched one at a time with an idle
// pause between them. Returns the number of keys queued.
func (c *Cache) Preload(keys []string) int {
	c.queueMu.Lock()
	if c.closed || c.quality == QualityPoor {
		c.queueMu.Unlock()
		return 0
	}

	added := 0
	for _, k := range keys {
		if c.queued[k] {
			continue
		}
		if _, ok := c.peek(k); ok {
			continue
		}
		c.queue = append(c.queue, k)
		c.queued[k] = true
		added++
	}

	start := !c.working && len(c.queue) > 0
	if start {
		c.working = true
		c.wg.Add(1)
	}
	c.queueMu.Unlock()

	if start {
		go c.drain()
	}
	return added
}

func (c *Cache) drain() {
	defer c.wg.Done()
	for {
		key, ok := c.nextQueued()
		if !ok {
			return
		}

		if _, err := c.FetchCached(c.ctx, key); err != nil {
			c.log.Debug("preload skipped", zap.String("key", key), zap.Error(err))
		}

		select {
		case <-c.ctx.Done():
			c.stopWorking()
			return
		case <-time.After(c.idleDelay):
		}
	}
}

func (c *Cache) nextQueued() (string, bool) {
	c.queueMu.Lock()
	defer c.queueMu.Unlock()
	if c.closed || len(c.queue) == 0 {
		c.working = false
		return "", false
	}
	key := c.queue[0]
	c.queue = c.queue[1:]
	delete(c.queued, key)
	return key, true
}

func (c *Cache) stopWorking() {
	c.queueMu.Lock()
	c.working = false
	c.queueMu.Unlock()
}

// Pending returns the number of keys waiting to be preloaded.
func (c *Cache) Pending() int {
	c.queueMu.Lock()
	defer c.queueMu.Unlock()
	return len(c.queue)
}

// SetQuality adjusts preloading for the connection quality. Poor quality
// drops every pending preload and refuses new ones; stored entries are kept.
// Returns the number of dropped keys.
func (c *Cache) SetQuality(q Quality) int {
	c.queueMu.Lock()
	defer c.queueMu.Unlock()

	c.quality = q
	c.log.Info("connection quality", zap.Stringer("quality", q))
	if q != QualityPoor {
		return 0
	}
	dropped := len(c.queue)
	c.queue = nil
	c.queued = make(map[string]bool)
	return dropped
}

// Quality returns the current connection quality.
func (c *Cache) Quality() Quality {
	c.queueMu.Lock()
	defer c.queueMu.Unlock()
	return c.quality
}

// Stats returns a copy of the cache counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Entries:   len(c.entries),
		Hits:      make(map[string]int, len(c.hits)),
		Fetches:   c.fetches,
		Failures:  c.failures,
		LastFetch: make(map[string]time.Duration, len(c.durations)),
	}
	for k, v := range c.hits {
		s.Hits[k] = v
	}
	for k, v := range c.durations {
		s.LastFetch[k] = v
	}
	return s
}

// Close stops the preload worker, cancels in-flight fetches and waits for
// both to exit. Nothing is stored after Close returns.
func (c *Cache) Close() {
	c.queueMu.Lock()
	c.closed = true
	c.queue = nil
	c.queueMu.Unlock()

	c.cancel()
	c.wg.Wait()
}

// Package cache memoizes catalog reads and invalidates them by tag.
//
// Every entry records the generation of each of its tags at the moment the
// backing fetch started. A write bumps the generations of the tags it touches,
// so any entry fetched before the write no longer matches and is refetched on
// the next read, regardless of its TTL.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/domain"
	"github.com/GoSim-25-26J-441/showcase-backend/internal/logging"
	"github.com/GoSim-25-26J-441/showcase-backend/internal/metrics"
)

const (
	DefaultTTL          = 300 * time.Second
	DefaultMaxEntries   = 512
	DefaultFetchTimeout = 10 * time.Second
)

// Source is the backing record store.
type Source interface {
	List(ctx context.Context) ([]domain.Project, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Project, error)
}

type Options struct {
	TTL        time.Duration
	MaxEntries int
	// FetchTimeout bounds a backing fetch, which outlives the caller that started it.
	FetchTimeout time.Duration
	// Shared is an optional cross-instance generation store.
	Shared  GenStore
	Metrics *metrics.Metrics
	Now     func() time.Time
}

type entry struct {
	records  []domain.Project
	storedAt time.Time
	tags     []string
	local    []uint64
	shared   []uint64
}

// Coordinator is safe for concurrent use.
type Coordinator struct {
	src          Source
	ttl          time.Duration
	fetchTimeout time.Duration
	entries      *lru.Cache[string, entry]
	local        *LocalGens
	shared       GenStore
	metrics      *metrics.Metrics
	now          func() time.Time
	group        singleflight.Group

	mu sync.Mutex // guards store against purges
}

func NewCoordinator(src Source, opts Options) (*Coordinator, error) {
	if src == nil {
		return nil, errors.New("cache source is required")
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = DefaultMaxEntries
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	entries, err := lru.New[string, entry](opts.MaxEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}
	return &Coordinator{
		src:          src,
		ttl:          opts.TTL,
		fetchTimeout: opts.FetchTimeout,
		entries:      entries,
		local:        NewLocalGens(),
		shared:       opts.Shared,
		metrics:      opts.Metrics,
		now:          opts.Now,
	}, nil
}

// Get returns the records for key, from cache when the entry is fresh.
// The returned slice is a copy and may be modified by the caller.
func (c *Coordinator) Get(ctx context.Context, key Key) ([]domain.Project, error) {
	logger := logging.NewLogger(ctx)
	label := queryLabel(key)

	localGens, _ := c.local.Current(ctx, key.Tags...)
	var sharedGens []uint64
	if c.shared != nil {
		var err error
		sharedGens, err = c.shared.Current(ctx, key.Tags...)
		if err != nil {
			logger.LogWarnf("CacheGet", "key=%s shared generations unavailable, bypassing cache: %v", key.ID, err)
			c.metrics.CacheLookup(label, "bypass")
			return c.fetch(ctx, key)
		}
	}

	if e, ok := c.entries.Get(key.ID); ok {
		if c.fresh(e, localGens, sharedGens) {
			c.metrics.CacheLookup(label, "hit")
			return domain.CloneAll(e.records), nil
		}
	}
	c.metrics.CacheLookup(label, "miss")

	// Readers that observed different generations never share a fetch.
	flightKey := key.ID + "@" + signature(localGens) + "/" + signature(sharedGens)
	// The shared fetch ignores the leader's cancellation; each caller only
	// stops waiting on its own.
	flight := c.group.DoChan(flightKey, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.fetchTimeout)
		defer cancel()
		records, err := c.fetch(fetchCtx, key)
		if err != nil {
			return nil, err
		}
		c.store(key, entry{
			records:  records,
			storedAt: c.now(),
			tags:     key.Tags,
			local:    localGens,
			shared:   sharedGens,
		})
		return records, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-flight:
		if res.Err != nil {
			return nil, res.Err
		}
		return domain.CloneAll(res.Val.([]domain.Project)), nil
	}
}

// AllProjects returns every project in store order.
func (c *Coordinator) AllProjects(ctx context.Context) ([]domain.Project, error) {
	return c.Get(ctx, AllProjectsKey())
}

// ProjectBySlug returns domain.ErrNotFound when no project has slug.
func (c *Coordinator) ProjectBySlug(ctx context.Context, slug string) (domain.Project, error) {
	records, err := c.Get(ctx, ProjectKey(slug))
	if err != nil {
		return domain.Project{}, err
	}
	if len(records) == 0 {
		return domain.Project{}, domain.ErrNotFound
	}
	return records[0], nil
}

// Invalidate makes every entry carrying one of tags stale. Local entries are
// dropped even when the shared store cannot be reached; that error is returned.
func (c *Coordinator) Invalidate(ctx context.Context, tags ...string) error {
	if len(tags) == 0 {
		return nil
	}
	_ = c.local.Bump(ctx, tags...)

	var sharedErr error
	if c.shared != nil {
		if err := c.shared.Bump(ctx, tags...); err != nil {
			logging.NewLogger(ctx).LogError("CacheInvalidate", err)
			sharedErr = err
		}
	}

	c.mu.Lock()
	for _, id := range c.entries.Keys() {
		e, ok := c.entries.Peek(id)
		if ok && intersects(e.tags, tags) {
			c.entries.Remove(id)
		}
	}
	c.mu.Unlock()

	for _, t := range tags {
		c.metrics.Invalidation(tagKind(t))
	}
	return sharedErr
}

// PurgeExpired drops entries older than the TTL and reports how many.
func (c *Coordinator) PurgeExpired() int {
	now := c.now()
	n := 0
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range c.entries.Keys() {
		e, ok := c.entries.Peek(id)
		if ok && now.Sub(e.storedAt) >= c.ttl {
			c.entries.Remove(id)
			n++
		}
	}
	c.metrics.Purged(n)
	return n
}

// Len reports the number of resident entries, expired ones included.
func (c *Coordinator) Len() int {
	return c.entries.Len()
}

func (c *Coordinator) fetch(ctx context.Context, key Key) ([]domain.Project, error) {
	if key.kind == kindSlug {
		p, err := c.src.GetBySlug(ctx, key.slug)
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.Project{}, nil
		}
		if err != nil {
			return nil, err
		}
		return []domain.Project{*p}, nil
	}
	return c.src.List(ctx)
}

func (c *Coordinator) store(key Key, e entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	// skip when an invalidation landed during the fetch
	current, _ := c.local.Current(context.Background(), key.Tags...)
	if !equalGens(current, e.local) {
		return
	}
	c.entries.Add(key.ID, e)
}

func (c *Coordinator) fresh(e entry, local, shared []uint64) bool {
	if c.now().Sub(e.storedAt) >= c.ttl {
		return false
	}
	return equalGens(e.local, local) && equalGens(e.shared, shared)
}

func equalGens(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func signature(gens []uint64) string {
	parts := make([]string, len(gens))
	for i, g := range gens {
		parts[i] = strconv.FormatUint(g, 10)
	}
	return strings.Join(parts, ",")
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

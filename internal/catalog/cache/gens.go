package cache

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/redis/go-redis/v9"
)

// GenStore holds a monotonically increasing generation per tag. An entry is
// only served while every one of its tags still has the generation observed
// when the entry was fetched.
type GenStore interface {
	Current(ctx context.Context, tags ...string) ([]uint64, error)
	Bump(ctx context.Context, tags ...string) error
}

// LocalGens keeps generations in process memory.
type LocalGens struct {
	mu   sync.Mutex
	gens map[string]uint64
}

func NewLocalGens() *LocalGens {
	return &LocalGens{gens: make(map[string]uint64)}
}

func (g *LocalGens) Current(_ context.Context, tags ...string) ([]uint64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]uint64, len(tags))
	for i, t := range tags {
		out[i] = g.gens[t]
	}
	return out, nil
}

func (g *LocalGens) Bump(_ context.Context, tags ...string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, t := range tags {
		g.gens[t]++
	}
	return nil
}

const genKeyPrefix = "showcase:gen:" // showcase:gen:{tag}

// RedisGens shares generations between instances through Redis counters.
type RedisGens struct {
	client *redis.Client
}

func NewRedisGens(client *redis.Client) *RedisGens {
	return &RedisGens{client: client}
}

func (g *RedisGens) Current(ctx context.Context, tags ...string) ([]uint64, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	keys := make([]string, len(tags))
	for i, t := range tags {
		keys[i] = genKeyPrefix + t
	}
	vals, err := g.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read generations: %w", err)
	}
	out := make([]uint64, len(tags))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			// missing key: generation zero
			continue
		}
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad generation for %s: %w", tags[i], err)
		}
		out[i] = n
	}
	return out, nil
}

func (g *RedisGens) Bump(ctx context.Context, tags ...string) error {
	pipe := g.client.Pipeline()
	for _, t := range tags {
		pipe.Incr(ctx, genKeyPrefix+t)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to bump generations: %w", err)
	}
	return nil
}

package block

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/junior13sam/DynamicGens/internal/adapter"
	"github.com/junior13sam/DynamicGens/internal/logger"
)

// HeightSource provides the monotonically non-decreasing block counter read by
// the lifecycle engine at call time. Implementations must never report a
// height lower than one they already reported.
//
//go:generate mockgen -source=height.go -destination=../mocks/height.go -package=mocks -mock_names=HeightSource=MockHeightSource,Fetcher=MockFetcher
type HeightSource interface {
	// Current returns the current block height
	Current(ctx context.Context) (uint64, error)
}

// Fetcher fetches the current height from an external host counter.
type Fetcher interface {
	FetchHeight(ctx context.Context) (uint64, error)
}

// chainTicker derives the height from elapsed wall-clock time since a genesis
// instant, one block per interval. It needs no external host and is trivially
// monotone as long as the clock is.
type chainTicker struct {
	genesis  time.Time
	interval time.Duration
	clock    adapter.Clock

	mu   sync.Mutex
	last uint64
}

// NewChainTicker creates a HeightSource advancing one block per interval from
// the genesis instant.
func NewChainTicker(genesis time.Time, interval time.Duration, clock adapter.Clock) HeightSource {
	if interval <= 0 {
		interval = time.Second
	}
	return &chainTicker{genesis: genesis, interval: interval, clock: clock}
}

func (t *chainTicker) Current(_ context.Context) (uint64, error) {
	elapsed := t.clock.Now().Sub(t.genesis)
	var height uint64
	if elapsed > 0 {
		height = uint64(elapsed / t.interval)
	}

	// Guard against clock steps going backwards.
	t.mu.Lock()
	defer t.mu.Unlock()
	if height < t.last {
		return t.last, nil
	}
	t.last = height
	return height, nil
}

// Config holds configuration for the cached height source.
type Config struct {
	// TTL is how long a fetched height stays fresh
	TTL time.Duration

	// StaleWindow is how long a stale height may still be served when fetching
	// fails. Beyond it, the fetch error is surfaced.
	StaleWindow time.Duration
}

// cachedSource wraps a Fetcher with TTL-based caching and a stale-read
// fallback, so a flaky host counter does not stall lifecycle operations.
type cachedSource struct {
	fetcher Fetcher
	config  Config
	clock   adapter.Clock

	mu        sync.Mutex
	height    uint64
	fetchedAt time.Time
}

// NewCachedSource creates a HeightSource backed by an external fetcher.
func NewCachedSource(fetcher Fetcher, config Config, clock adapter.Clock) HeightSource {
	return &cachedSource{fetcher: fetcher, config: config, clock: clock}
}

func (s *cachedSource) Current(ctx context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if !s.fetchedAt.IsZero() && now.Sub(s.fetchedAt) < s.config.TTL {
		return s.height, nil
	}

	height, err := s.fetcher.FetchHeight(ctx)
	if err != nil {
		if !s.fetchedAt.IsZero() && now.Sub(s.fetchedAt) < s.config.StaleWindow {
			logger.Debug("Serving stale block height", zap.Uint64("height", s.height))
			return s.height, nil
		}
		return 0, fmt.Errorf("failed to fetch block height and no valid cache available: %w", err)
	}

	// The counter is non-decreasing; drop fetches that would move backwards.
	if height < s.height {
		height = s.height
	}

	s.height = height
	s.fetchedAt = now
	return height, nil
}

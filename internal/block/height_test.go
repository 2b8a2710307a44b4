package block_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junior13sam/DynamicGens/internal/block"
	"github.com/junior13sam/DynamicGens/internal/logger"
	"github.com/junior13sam/DynamicGens/internal/mocks"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestChainTickerAdvancesPerInterval(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	genesis := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := mocks.NewMockClock(ctrl)
	source := block.NewChainTicker(genesis, 10*time.Second, clock)

	clock.EXPECT().Now().Return(genesis)
	height, err := source.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(0), height)

	clock.EXPECT().Now().Return(genesis.Add(9 * time.Second))
	height, err = source.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(0), height)

	clock.EXPECT().Now().Return(genesis.Add(10 * time.Second))
	height, err = source.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), height)

	clock.EXPECT().Now().Return(genesis.Add(25 * time.Minute))
	height, err = source.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(150), height)
}

func TestChainTickerNeverMovesBackwards(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	genesis := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := mocks.NewMockClock(ctrl)
	source := block.NewChainTicker(genesis, time.Second, clock)

	clock.EXPECT().Now().Return(genesis.Add(100 * time.Second))
	height, err := source.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(100), height)

	// Clock stepped backwards; the reported height must not.
	clock.EXPECT().Now().Return(genesis.Add(40 * time.Second))
	height, err = source.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(100), height)
}

func TestChainTickerBeforeGenesis(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	genesis := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := mocks.NewMockClock(ctrl)
	source := block.NewChainTicker(genesis, time.Second, clock)

	clock.EXPECT().Now().Return(genesis.Add(-time.Hour))
	height, err := source.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(0), height)
}

func TestCachedSourceServesFreshCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := mocks.NewMockFetcher(ctrl)
	clock := mocks.NewMockClock(ctrl)
	source := block.NewCachedSource(fetcher, block.Config{
		TTL:         30 * time.Second,
		StaleWindow: 5 * time.Minute,
	}, clock)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	clock.EXPECT().Now().Return(start)
	fetcher.EXPECT().FetchHeight(gomock.Any()).Return(uint64(500), nil)
	height, err := source.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(500), height)

	// Within the TTL the fetcher must not be called again.
	clock.EXPECT().Now().Return(start.Add(29 * time.Second))
	height, err = source.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(500), height)

	clock.EXPECT().Now().Return(start.Add(31 * time.Second))
	fetcher.EXPECT().FetchHeight(gomock.Any()).Return(uint64(503), nil)
	height, err = source.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(503), height)
}

func TestCachedSourceServesStaleOnFetchError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := mocks.NewMockFetcher(ctrl)
	clock := mocks.NewMockClock(ctrl)
	source := block.NewCachedSource(fetcher, block.Config{
		TTL:         30 * time.Second,
		StaleWindow: 5 * time.Minute,
	}, clock)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	clock.EXPECT().Now().Return(start)
	fetcher.EXPECT().FetchHeight(gomock.Any()).Return(uint64(500), nil)
	_, err := source.Current(context.Background())
	require.NoError(t, err)

	// Fetch fails inside the stale window: the cached height is served.
	clock.EXPECT().Now().Return(start.Add(2 * time.Minute))
	fetcher.EXPECT().FetchHeight(gomock.Any()).Return(uint64(0), errors.New("connection refused"))
	height, err := source.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(500), height)

	// Beyond the stale window the error surfaces.
	clock.EXPECT().Now().Return(start.Add(10 * time.Minute))
	fetcher.EXPECT().FetchHeight(gomock.Any()).Return(uint64(0), errors.New("connection refused"))
	_, err = source.Current(context.Background())
	assert.Error(t, err)
}

func TestCachedSourceErrorWithEmptyCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := mocks.NewMockFetcher(ctrl)
	clock := mocks.NewMockClock(ctrl)
	source := block.NewCachedSource(fetcher, block.Config{
		TTL:         30 * time.Second,
		StaleWindow: 5 * time.Minute,
	}, clock)

	clock.EXPECT().Now().Return(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	fetcher.EXPECT().FetchHeight(gomock.Any()).Return(uint64(0), errors.New("connection refused"))
	_, err := source.Current(context.Background())
	assert.Error(t, err)
}

func TestCachedSourceClampsBackwardFetches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := mocks.NewMockFetcher(ctrl)
	clock := mocks.NewMockClock(ctrl)
	source := block.NewCachedSource(fetcher, block.Config{
		TTL:         time.Second,
		StaleWindow: time.Minute,
	}, clock)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	clock.EXPECT().Now().Return(start)
	fetcher.EXPECT().FetchHeight(gomock.Any()).Return(uint64(700), nil)
	height, err := source.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(700), height)

	// A lagging host reporting an older height must not rewind the counter.
	clock.EXPECT().Now().Return(start.Add(2 * time.Second))
	fetcher.EXPECT().FetchHeight(gomock.Any()).Return(uint64(690), nil)
	height, err = source.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(700), height)
}

package engine_test

import (
	"context"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junior13sam/DynamicGens/internal/adapter"
	"github.com/junior13sam/DynamicGens/internal/domain"
	"github.com/junior13sam/DynamicGens/internal/engine"
	"github.com/junior13sam/DynamicGens/internal/logger"
	"github.com/junior13sam/DynamicGens/internal/mocks"
	"github.com/junior13sam/DynamicGens/internal/store"
	"github.com/junior13sam/DynamicGens/internal/store/schema"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// fixedHeights is a HeightSource pinned to a settable block height.
type fixedHeights struct {
	height uint64
}

func (f *fixedHeights) Current(_ context.Context) (uint64, error) {
	return f.height, nil
}

func testConfig() engine.Config {
	return engine.Config{
		CollectionLimit: 50,
		MintPrice:       10,
		EvolutionPrice:  5,
		BreedingPrice:   20,
		CooldownBlocks:  144,
		BaseURI:         "https://tokens.example/",
		Treasury:        "treasury",
		AdminIdentity:   "admin",
	}
}

func newTestEngine(t *testing.T, cfg engine.Config) (*engine.Engine, store.Store, *fixedHeights) {
	t.Helper()

	s := store.NewMemoryStore()
	heights := &fixedHeights{height: 100}
	e := engine.New(cfg, s, heights, nil, adapter.NewClock())

	for _, identity := range []string{"alice", "bob"} {
		require.NoError(t, s.Deposit(context.Background(), identity, 1000))
	}
	return e, s, heights
}

func TestMint(t *testing.T) {
	e, _, heights := newTestEngine(t, testConfig())
	ctx := context.Background()

	token, err := e.Mint(ctx, "alice", "alice")
	require.NoError(t, err)

	seed, err := domain.GenerateSeed("alice", 1, heights.height)
	require.NoError(t, err)

	assert.Equal(t, uint64(1), token.ID)
	assert.Equal(t, uint64(domain.MinGeneration), token.Generation)
	assert.Equal(t, seed, token.GenerationSeed)
	assert.Equal(t, domain.DeriveTraits(seed, heights.height), token.Traits())
	assert.Equal(t, domain.RarityScore(token.Traits(), 1), token.RarityScore)
	assert.Equal(t, heights.height, token.BirthBlock)
	assert.Equal(t, uint64(0), token.EvolutionCount)
	assert.Nil(t, token.ParentOne)
	assert.Nil(t, token.ParentTwo)
	assert.Equal(t, "https://tokens.example/1", token.URI)

	owner, err := e.OwnerOf(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", owner)

	index, err := e.TokensOf(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []uint64{1}, index)

	balance, err := e.BalanceOf(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, uint64(990), balance)

	stats, err := e.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), stats.TotalMinted)
	assert.Equal(t, uint64(2), stats.NextTokenID)

	last, err := e.LastTokenID(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), last)
}

func TestMintWhilePaused(t *testing.T) {
	e, _, _ := newTestEngine(t, testConfig())
	ctx := context.Background()

	paused, err := e.TogglePause(ctx, "admin")
	require.NoError(t, err)
	require.True(t, paused)

	_, err = e.Mint(ctx, "alice", "alice")
	assert.ErrorIs(t, err, domain.ErrFeatureDisabled)
}

func TestMintCollectionLimit(t *testing.T) {
	cfg := testConfig()
	cfg.CollectionLimit = 1
	e, _, _ := newTestEngine(t, cfg)
	ctx := context.Background()

	_, err := e.Mint(ctx, "alice", "alice")
	require.NoError(t, err)

	_, err = e.Mint(ctx, "alice", "alice")
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
}

func TestMintInsufficientFunds(t *testing.T) {
	e, _, _ := newTestEngine(t, testConfig())

	_, err := e.Mint(context.Background(), "pauper", "pauper")
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
}

func TestEvolveCooldownScenario(t *testing.T) {
	e, _, heights := newTestEngine(t, testConfig())
	ctx := context.Background()

	minted, err := e.Mint(ctx, "alice", "alice")
	require.NoError(t, err)

	heights.height = 250
	evolved, err := e.Evolve(ctx, "alice", minted.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), evolved.Generation)
	assert.Equal(t, uint64(1), evolved.EvolutionCount)
	assert.Equal(t, uint64(250), evolved.LastEvolutionBlock)
	assert.GreaterOrEqual(t, evolved.RarityScore, minted.RarityScore)
	assert.True(t, evolved.Traits().Valid())

	seed, err := domain.GenerateSeed("alice", minted.ID+250, 250)
	require.NoError(t, err)
	assert.Equal(t, domain.Mutate(minted.Traits(), seed), evolved.Traits())

	history, err := e.History(ctx, minted.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint64{250}, history)

	// 300 - 250 = 50 < 144.
	heights.height = 300
	_, err = e.Evolve(ctx, "alice", minted.ID)
	assert.ErrorIs(t, err, domain.ErrCooldownActive)

	eligible, err := e.CooldownEligible(ctx, minted.ID)
	require.NoError(t, err)
	assert.False(t, eligible)

	// Exactly 144 blocks elapsed.
	heights.height = 394
	eligible, err = e.CooldownEligible(ctx, minted.ID)
	require.NoError(t, err)
	assert.True(t, eligible)

	again, err := e.Evolve(ctx, "alice", minted.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), again.Generation)
	assert.GreaterOrEqual(t, again.RarityScore, evolved.RarityScore)

	stats, err := e.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), stats.TotalEvolved)
}

func TestEvolveGenerationCap(t *testing.T) {
	e, _, heights := newTestEngine(t, testConfig())
	ctx := context.Background()

	minted, err := e.Mint(ctx, "alice", "alice")
	require.NoError(t, err)

	// Four evolutions carry the token from generation 1 to the cap at 5.
	for i := 0; i < 4; i++ {
		heights.height += 144
		_, err = e.Evolve(ctx, "alice", minted.ID)
		require.NoError(t, err)
	}

	token, err := e.Token(ctx, minted.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(domain.MaxGeneration), token.Generation)

	heights.height += 144
	_, err = e.Evolve(ctx, "alice", minted.ID)
	assert.ErrorIs(t, err, domain.ErrGenerationCapReached)
}

func TestEvolveAuthorization(t *testing.T) {
	e, _, heights := newTestEngine(t, testConfig())
	ctx := context.Background()

	minted, err := e.Mint(ctx, "alice", "alice")
	require.NoError(t, err)

	heights.height = 250
	_, err = e.Evolve(ctx, "bob", minted.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = e.Evolve(ctx, "alice", 999)
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func TestEvolveFeatureDisabled(t *testing.T) {
	e, _, heights := newTestEngine(t, testConfig())
	ctx := context.Background()

	minted, err := e.Mint(ctx, "alice", "alice")
	require.NoError(t, err)

	enabled, err := e.ToggleEvolution(ctx, "admin")
	require.NoError(t, err)
	require.False(t, enabled)

	heights.height = 250
	_, err = e.Evolve(ctx, "alice", minted.ID)
	assert.ErrorIs(t, err, domain.ErrFeatureDisabled)
}

func TestBreed(t *testing.T) {
	e, s, heights := newTestEngine(t, testConfig())
	ctx := context.Background()

	parentA, err := e.Mint(ctx, "alice", "alice")
	require.NoError(t, err)
	parentB, err := e.Mint(ctx, "alice", "alice")
	require.NoError(t, err)

	heights.height = 500
	offspring, err := e.Breed(ctx, "alice", parentA.ID, parentB.ID, "bob")
	require.NoError(t, err)

	seed, err := domain.GenerateSeed("bob", parentA.ID+parentB.ID+offspring.ID, 500)
	require.NoError(t, err)

	assert.Equal(t, uint64(3), offspring.ID)
	assert.Equal(t, uint64(2), offspring.Generation)
	assert.Equal(t, seed, offspring.GenerationSeed)
	assert.Equal(t, domain.Recombine(parentA.Traits(), parentB.Traits(), seed), offspring.Traits())
	assert.Equal(t, uint64(500), offspring.BirthBlock)
	require.NotNil(t, offspring.ParentOne)
	require.NotNil(t, offspring.ParentTwo)
	assert.Equal(t, parentA.ID, *offspring.ParentOne)
	assert.Equal(t, parentB.ID, *offspring.ParentTwo)

	owner, err := e.OwnerOf(ctx, offspring.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", owner)

	record, err := s.GetBreedingRecord(ctx, parentA.ID, parentB.ID)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, offspring.ID, record.OffspringID)

	// The swapped ordered pair is a distinct registry key.
	swapped, err := s.GetBreedingRecord(ctx, parentB.ID, parentA.ID)
	require.NoError(t, err)
	assert.Nil(t, swapped)

	stats, err := e.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), stats.TotalMinted)
	assert.Equal(t, uint64(1), stats.TotalBred)
}

func TestBreedSelfRejected(t *testing.T) {
	e, _, _ := newTestEngine(t, testConfig())

	// Rejected before any balance or ownership check.
	_, err := e.Breed(context.Background(), "pauper", 1, 1, "pauper")
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
}

func TestBreedGenerationCap(t *testing.T) {
	e, s, _ := newTestEngine(t, testConfig())
	ctx := context.Background()

	// Seed two terminal-generation parents directly.
	for id := uint64(1); id <= 2; id++ {
		token := schema.Token{
			ID:          id,
			RarityScore: 210,
			Generation:  domain.MaxGeneration,
			BirthBlock:  1,
			URI:         "https://tokens.example/",
		}
		token.SetTraits(domain.TraitVector{Background: 1, Body: 2, Eyes: 3, Mouth: 4, Accessory: 5})
		require.NoError(t, s.CreateTokenMint(ctx, store.MintInput{Token: token, Owner: "alice"}))
	}

	_, err := e.Breed(ctx, "alice", 1, 2, "alice")
	assert.ErrorIs(t, err, domain.ErrGenerationCapReached)
}

func TestBreedRequiresParentOwnership(t *testing.T) {
	e, _, _ := newTestEngine(t, testConfig())
	ctx := context.Background()

	_, err := e.Mint(ctx, "alice", "alice")
	require.NoError(t, err)
	_, err = e.Mint(ctx, "alice", "alice")
	require.NoError(t, err)

	_, err = e.Breed(ctx, "bob", 1, 2, "bob")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = e.Breed(ctx, "alice", 1, 99, "alice")
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func TestTransfer(t *testing.T) {
	e, _, _ := newTestEngine(t, testConfig())
	ctx := context.Background()

	minted, err := e.Mint(ctx, "alice", "alice")
	require.NoError(t, err)

	// Neither the owner nor the admin.
	err = e.Transfer(ctx, "bob", minted.ID, "alice", "bob")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Sender not the recorded owner.
	err = e.Transfer(ctx, "bob", minted.ID, "bob", "alice")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	err = e.Transfer(ctx, "alice", minted.ID, "alice", "bob")
	require.NoError(t, err)

	owner, err := e.OwnerOf(ctx, minted.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", owner)

	// The indexes record "ever owned": alice keeps the entry, bob gains none.
	aliceIndex, err := e.TokensOf(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []uint64{minted.ID}, aliceIndex)
	bobIndex, err := e.TokensOf(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, bobIndex)

	// The admin can move the token on the new owner's behalf.
	err = e.Transfer(ctx, "admin", minted.ID, "bob", "alice")
	require.NoError(t, err)

	owner, err = e.OwnerOf(ctx, minted.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", owner)
}

func TestAdminToggles(t *testing.T) {
	e, _, _ := newTestEngine(t, testConfig())
	ctx := context.Background()

	_, err := e.TogglePause(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	paused, err := e.TogglePause(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, paused)
	paused, err = e.TogglePause(ctx, "admin")
	require.NoError(t, err)
	assert.False(t, paused)

	breeding, err := e.ToggleBreeding(ctx, "admin")
	require.NoError(t, err)
	assert.False(t, breeding)

	stats, err := e.Stats(ctx)
	require.NoError(t, err)
	assert.False(t, stats.ContractPaused)
	assert.True(t, stats.EvolutionEnabled)
	assert.False(t, stats.BreedingEnabled)
}

func TestDeposit(t *testing.T) {
	e, _, _ := newTestEngine(t, testConfig())
	ctx := context.Background()

	err := e.Deposit(ctx, "alice", "alice", 100)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	err = e.Deposit(ctx, "admin", "carol", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)

	require.NoError(t, e.Deposit(ctx, "admin", "carol", 100))
	balance, err := e.BalanceOf(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, uint64(100), balance)
}

func TestChangesJournal(t *testing.T) {
	e, _, heights := newTestEngine(t, testConfig())
	ctx := context.Background()

	minted, err := e.Mint(ctx, "alice", "alice")
	require.NoError(t, err)
	heights.height = 250
	_, err = e.Evolve(ctx, "alice", minted.ID)
	require.NoError(t, err)
	require.NoError(t, e.Transfer(ctx, "alice", minted.ID, "alice", "bob"))

	changes, err := e.Changes(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, changes, 3)
	assert.Equal(t, domain.EventTypeMint, changes[0].EventType)
	assert.Equal(t, domain.EventTypeEvolve, changes[1].EventType)
	assert.Equal(t, domain.EventTypeTransfer, changes[2].EventType)

	// Anchor-based pagination resumes after the given journal ID.
	tail, err := e.Changes(ctx, changes[1].ID, 10)
	require.NoError(t, err)
	require.Len(t, tail, 1)
	assert.Equal(t, domain.EventTypeTransfer, tail[0].EventType)
}

func TestLifecycleEventsPublished(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := store.NewMemoryStore()
	heights := &fixedHeights{height: 100}
	publisher := mocks.NewMockPublisher(ctrl)
	e := engine.New(testConfig(), s, heights, publisher, adapter.NewClock())

	ctx := context.Background()
	require.NoError(t, s.Deposit(ctx, "alice", 1000))

	var published *domain.TokenEvent
	publisher.EXPECT().
		PublishEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event *domain.TokenEvent) error {
			published = event
			return nil
		})

	minted, err := e.Mint(ctx, "alice", "alice")
	require.NoError(t, err)

	require.NotNil(t, published)
	assert.NotEmpty(t, published.EventID)
	assert.Equal(t, domain.EventTypeMint, published.EventType)
	assert.Equal(t, minted.ID, published.TokenID)
	assert.Equal(t, "alice", published.Actor)
	assert.Equal(t, uint64(100), published.BlockHeight)
	assert.False(t, published.Timestamp.IsZero())
}

func TestPublishFailureDoesNotAbort(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := store.NewMemoryStore()
	heights := &fixedHeights{height: 100}
	publisher := mocks.NewMockPublisher(ctrl)
	e := engine.New(testConfig(), s, heights, publisher, adapter.NewClock())

	ctx := context.Background()
	require.NoError(t, s.Deposit(ctx, "alice", 1000))

	publisher.EXPECT().
		PublishEvent(gomock.Any(), gomock.Any()).
		Return(assert.AnError)

	minted, err := e.Mint(ctx, "alice", "alice")
	require.NoError(t, err)

	// The commit stands even though the event was lost.
	token, err := e.Token(ctx, minted.ID)
	require.NoError(t, err)
	assert.Equal(t, minted.ID, token.ID)
}

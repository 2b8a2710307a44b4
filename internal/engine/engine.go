package engine

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/junior13sam/DynamicGens/internal/adapter"
	"github.com/junior13sam/DynamicGens/internal/block"
	"github.com/junior13sam/DynamicGens/internal/domain"
	"github.com/junior13sam/DynamicGens/internal/logger"
	"github.com/junior13sam/DynamicGens/internal/messaging"
	"github.com/junior13sam/DynamicGens/internal/store"
)

// Config holds the collection parameters governing the lifecycle engine.
type Config struct {
	// CollectionLimit is the highest token identifier that may ever be assigned
	CollectionLimit uint64
	// MintPrice, EvolutionPrice and BreedingPrice are debited from the caller
	// and credited to the treasury per operation
	MintPrice      uint64
	EvolutionPrice uint64
	BreedingPrice  uint64
	// CooldownBlocks is the minimum block distance between successive
	// evolutions of the same token
	CooldownBlocks uint64
	// BaseURI is the prefix for token metadata descriptors
	BaseURI string
	// Treasury is the identity credited by settlements
	Treasury string
	// AdminIdentity is the identity allowed to flip feature flags, deposit
	// funds and transfer on behalf of owners
	AdminIdentity string
}

// Engine orchestrates token lifecycle operations over the persistent store.
// Every state-changing operation reads its preconditions, runs the pure trait
// computations, and hands the fully computed result to a single store write
// method that commits it atomically.
type Engine struct {
	config    Config
	store     store.Store
	heights   block.HeightSource
	publisher messaging.Publisher
	clock     adapter.Clock
}

// New creates a lifecycle engine. publisher may be nil, in which case no
// lifecycle events are emitted.
func New(
	config Config,
	s store.Store,
	heights block.HeightSource,
	publisher messaging.Publisher,
	clock adapter.Clock,
) *Engine {
	if config.CooldownBlocks == 0 {
		config.CooldownBlocks = 144
	}
	return &Engine{
		config:    config,
		store:     s,
		heights:   heights,
		publisher: publisher,
		clock:     clock,
	}
}

// isAdmin reports whether the caller is the configured administrative identity.
func (e *Engine) isAdmin(caller string) bool {
	return caller == e.config.AdminIdentity
}

// checkOperational returns ErrFeatureDisabled when the contract is paused, or
// when the named feature flag (optional) is off.
func (e *Engine) checkOperational(ctx context.Context, featureKey string) error {
	paused, err := e.store.GetFlag(ctx, store.KeyContractPaused)
	if err != nil {
		return err
	}
	if paused {
		return domain.ErrFeatureDisabled
	}

	if featureKey == "" {
		return nil
	}
	enabled, err := e.store.GetFlag(ctx, featureKey)
	if err != nil {
		return err
	}
	if !enabled {
		return domain.ErrFeatureDisabled
	}
	return nil
}

// checkFunds returns ErrInsufficientFunds when the identity cannot cover the
// price. The store re-checks inside the write transaction; this is the
// precondition gate.
func (e *Engine) checkFunds(ctx context.Context, identity string, price uint64) error {
	if price == 0 {
		return nil
	}
	balance, err := e.store.GetBalance(ctx, identity)
	if err != nil {
		return err
	}
	if balance < price {
		return domain.ErrInsufficientFunds
	}
	return nil
}

// publishEvent emits a lifecycle event after the operation committed. Failures
// are logged and swallowed; the committed state is authoritative.
func (e *Engine) publishEvent(ctx context.Context, event domain.TokenEvent) {
	if e.publisher == nil {
		return
	}

	event.EventID = ulid.Make().String()
	event.Timestamp = e.now()

	if err := e.publisher.PublishEvent(ctx, &event); err != nil {
		logger.ErrorCtx(ctx, err,
			zap.String("event_type", string(event.EventType)),
			zap.Uint64("token_id", event.TokenID),
		)
	}
}

func (e *Engine) now() time.Time {
	if e.clock != nil {
		return e.clock.Now()
	}
	return time.Now()
}

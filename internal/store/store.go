package store

import (
	"context"
	"errors"

	"gorm.io/datatypes"

	"github.com/junior13sam/DynamicGens/internal/domain"
	"github.com/junior13sam/DynamicGens/internal/store/schema"
)

// Keys for the global counters and feature flags held in the key-value store.
const (
	KeyNextTokenID      = "next_token_id"
	KeyTotalMinted      = "total_minted"
	KeyTotalEvolved     = "total_evolved"
	KeyTotalBred        = "total_bred"
	KeyContractPaused   = "contract_paused"
	KeyEvolutionEnabled = "evolution_enabled"
	KeyBreedingEnabled  = "breeding_enabled"
)

// counterDefaults are the values reported for counters that have never been
// written. Token identifiers start at 1.
var counterDefaults = map[string]uint64{
	KeyNextTokenID: 1,
}

// flagDefaults are the values reported for flags that have never been written.
// Evolution and breeding ship enabled; the contract ships unpaused.
var flagDefaults = map[string]bool{
	KeyContractPaused:   false,
	KeyEvolutionEnabled: true,
	KeyBreedingEnabled:  true,
}

// ErrStaleState is returned by a write transaction when the persisted state no
// longer matches what the caller computed against. Operations are serialized
// by the host, so hitting this indicates a serialization violation rather than
// an expected race.
var ErrStaleState = errors.New("store: state changed since read")

// Payment describes a settlement executed inside a write transaction: the
// payer is debited and the receiver credited atomically with the rest of the
// operation. A zero Amount is a no-op.
type Payment struct {
	From   string
	To     string
	Amount uint64
}

// MintInput carries the fully computed state persisted by a mint operation.
type MintInput struct {
	Token       schema.Token
	Owner       string
	Payment     Payment
	JournalMeta datatypes.JSON
}

// EvolutionInput carries the fully computed state applied by an evolve
// operation to an existing token.
type EvolutionInput struct {
	TokenID     uint64
	Traits      domain.TraitVector
	Generation  uint64
	RarityScore uint64
	BlockHeight uint64
	Payment     Payment
	JournalMeta datatypes.JSON
}

// BreedInput carries the fully computed offspring persisted by a breed
// operation, together with the ordered parent pair for the registry.
type BreedInput struct {
	Token       schema.Token
	Owner       string
	Payment     Payment
	JournalMeta datatypes.JSON
}

// TransferInput carries an ownership overwrite. The per-owner token index is
// deliberately left untouched by transfers.
type TransferInput struct {
	TokenID     uint64
	From        string
	To          string
	BlockHeight uint64
	JournalMeta datatypes.JSON
}

// Store defines the interface for database operations. Read methods return
// zero values when nothing is found; each write method executes as a single
// atomic transaction and either commits every effect of the lifecycle
// operation or none of them.
type Store interface {
	// GetToken retrieves a token record, or nil if the identifier has no record
	GetToken(ctx context.Context, tokenID uint64) (*schema.Token, error)
	// GetOwner retrieves the current owner of a token, or "" if none is recorded
	GetOwner(ctx context.Context, tokenID uint64) (string, error)
	// GetOwnerIndex retrieves the owner's token index in append order
	GetOwnerIndex(ctx context.Context, owner string) ([]uint64, error)
	// GetEvolutionHistory retrieves the block heights of a token's retained evolutions, oldest first
	GetEvolutionHistory(ctx context.Context, tokenID uint64) ([]uint64, error)
	// GetBalance retrieves an identity's spendable balance
	GetBalance(ctx context.Context, identity string) (uint64, error)
	// GetCounter retrieves a global counter value
	GetCounter(ctx context.Context, key string) (uint64, error)
	// GetFlag retrieves a feature flag value
	GetFlag(ctx context.Context, key string) (bool, error)
	// GetBreedingRecord retrieves the offspring recorded for an ordered parent pair, or nil
	GetBreedingRecord(ctx context.Context, parentOne, parentTwo uint64) (*schema.BreedingRecord, error)
	// ListChanges retrieves journal rows with ID greater than anchor, ascending
	ListChanges(ctx context.Context, anchor uint64, limit int) ([]schema.ChangesJournal, error)

	// SetFlag overwrites a feature flag value
	SetFlag(ctx context.Context, key string, value bool) error
	// Deposit credits an identity's balance
	Deposit(ctx context.Context, identity string, amount uint64) error

	// CreateTokenMint persists a freshly minted token with its ownership,
	// owner-index entry, settlement, counters and journal row
	CreateTokenMint(ctx context.Context, input MintInput) error
	// ApplyEvolution applies an evolution to an existing token with its
	// settlement, history append, counters and journal row
	ApplyEvolution(ctx context.Context, input EvolutionInput) error
	// CreateTokenBreed persists a bred token with its ownership, owner-index
	// entry, breeding-registry record, settlement, counters and journal row
	CreateTokenBreed(ctx context.Context, input BreedInput) error
	// TransferOwnership overwrites a token's owner and journals the transfer
	TransferOwnership(ctx context.Context, input TransferInput) error
}

package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/junior13sam/DynamicGens/internal/domain"
	"github.com/junior13sam/DynamicGens/internal/store"
	"github.com/junior13sam/DynamicGens/internal/store/schema"
)

// Mint creates a fresh generation-1 token for the recipient, paid for by the
// caller. The token identifier is the current next_token_id; traits are
// derived from a seed bound to the recipient, the identifier and the current
// block height.
func (e *Engine) Mint(ctx context.Context, caller, recipient string) (*schema.Token, error) {
	if err := e.checkOperational(ctx, ""); err != nil {
		return nil, err
	}

	nextID, err := e.store.GetCounter(ctx, store.KeyNextTokenID)
	if err != nil {
		return nil, err
	}
	if nextID > e.config.CollectionLimit {
		return nil, domain.ErrCapacityExceeded
	}

	if err := e.checkFunds(ctx, caller, e.config.MintPrice); err != nil {
		return nil, err
	}

	height, err := e.heights.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read block height: %w", err)
	}

	seed, err := domain.GenerateSeed(recipient, nextID, height)
	if err != nil {
		return nil, err
	}

	traits := domain.DeriveTraits(seed, height)
	if !traits.Valid() {
		return nil, domain.ErrInvalidTraits
	}

	token := schema.Token{
		ID:             nextID,
		RarityScore:    domain.RarityScore(traits, domain.MinGeneration),
		GenerationSeed: seed,
		Generation:     domain.MinGeneration,
		BirthBlock:     height,
		URI:            domain.TokenURI(e.config.BaseURI, nextID),
	}
	token.SetTraits(traits)

	meta, err := journalMeta(schema.MintChangeMeta{
		Owner:       recipient,
		Generation:  token.Generation,
		RarityScore: token.RarityScore,
		Seed:        seed,
	})
	if err != nil {
		return nil, err
	}

	err = e.store.CreateTokenMint(ctx, store.MintInput{
		Token: token,
		Owner: recipient,
		Payment: store.Payment{
			From:   caller,
			To:     e.config.Treasury,
			Amount: e.config.MintPrice,
		},
		JournalMeta: meta,
	})
	if err != nil {
		return nil, err
	}

	e.publishEvent(ctx, domain.TokenEvent{
		EventType:   domain.EventTypeMint,
		TokenID:     token.ID,
		Actor:       caller,
		Owner:       recipient,
		Generation:  token.Generation,
		RarityScore: token.RarityScore,
		BlockHeight: height,
	})

	return &token, nil
}

// Evolve mutates an existing token's traits and advances its generation by
// one. Only the current owner may evolve, at most once per cooldown window.
func (e *Engine) Evolve(ctx context.Context, caller string, tokenID uint64) (*schema.Token, error) {
	token, err := e.store.GetToken(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, domain.ErrTokenNotFound
	}

	if err := e.checkOperational(ctx, store.KeyEvolutionEnabled); err != nil {
		return nil, err
	}

	owner, err := e.store.GetOwner(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	if owner != caller {
		return nil, domain.ErrUnauthorized
	}

	if err := e.checkFunds(ctx, caller, e.config.EvolutionPrice); err != nil {
		return nil, err
	}

	if token.Generation >= domain.MaxGeneration {
		return nil, domain.ErrGenerationCapReached
	}

	height, err := e.heights.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read block height: %w", err)
	}
	// Tokens never evolved before carry an implicit last-evolution block of 0,
	// so the first evolution is always eligible.
	if height-token.LastEvolutionBlock < e.config.CooldownBlocks {
		return nil, domain.ErrCooldownActive
	}

	seed, err := domain.GenerateSeed(caller, tokenID+height, height)
	if err != nil {
		return nil, err
	}

	mutated := domain.Mutate(token.Traits(), seed)
	generation := token.Generation + 1

	// The trait bonuses can drop on mutation by more than the generation bonus
	// adds, so the persisted score is clamped to keep the token's history
	// non-decreasing.
	score := domain.RarityScore(mutated, generation)
	if score < token.RarityScore {
		score = token.RarityScore
	}

	meta, err := journalMeta(schema.EvolveChangeMeta{
		Generation:  generation,
		RarityScore: score,
		Seed:        seed,
	})
	if err != nil {
		return nil, err
	}

	err = e.store.ApplyEvolution(ctx, store.EvolutionInput{
		TokenID:     tokenID,
		Traits:      mutated,
		Generation:  generation,
		RarityScore: score,
		BlockHeight: height,
		Payment: store.Payment{
			From:   caller,
			To:     e.config.Treasury,
			Amount: e.config.EvolutionPrice,
		},
		JournalMeta: meta,
	})
	if err != nil {
		return nil, err
	}

	e.publishEvent(ctx, domain.TokenEvent{
		EventType:   domain.EventTypeEvolve,
		TokenID:     tokenID,
		Actor:       caller,
		Owner:       owner,
		Generation:  generation,
		RarityScore: score,
		BlockHeight: height,
	})

	evolved := *token
	evolved.SetTraits(mutated)
	evolved.RarityScore = score
	evolved.Generation = generation
	evolved.EvolutionCount = token.EvolutionCount + 1
	evolved.LastEvolutionBlock = height
	return &evolved, nil
}

// Breed creates a fresh token for the recipient by recombining the traits of
// two existing parents. The caller must own at least one parent and pays the
// breeding price; the offspring's generation is one past the older parent's.
func (e *Engine) Breed(ctx context.Context, caller string, parentA, parentB uint64, recipient string) (*schema.Token, error) {
	if parentA == parentB {
		return nil, domain.ErrInvalidOperation
	}

	tokenA, err := e.store.GetToken(ctx, parentA)
	if err != nil {
		return nil, err
	}
	if tokenA == nil {
		return nil, domain.ErrTokenNotFound
	}
	tokenB, err := e.store.GetToken(ctx, parentB)
	if err != nil {
		return nil, err
	}
	if tokenB == nil {
		return nil, domain.ErrTokenNotFound
	}

	if err := e.checkOperational(ctx, store.KeyBreedingEnabled); err != nil {
		return nil, err
	}

	nextID, err := e.store.GetCounter(ctx, store.KeyNextTokenID)
	if err != nil {
		return nil, err
	}
	if nextID > e.config.CollectionLimit {
		return nil, domain.ErrCapacityExceeded
	}

	if err := e.checkFunds(ctx, caller, e.config.BreedingPrice); err != nil {
		return nil, err
	}

	ownerA, err := e.store.GetOwner(ctx, parentA)
	if err != nil {
		return nil, err
	}
	ownerB, err := e.store.GetOwner(ctx, parentB)
	if err != nil {
		return nil, err
	}
	if ownerA != caller && ownerB != caller {
		return nil, domain.ErrUnauthorized
	}

	generation := tokenA.Generation
	if tokenB.Generation > generation {
		generation = tokenB.Generation
	}
	generation++
	if generation > domain.MaxGeneration {
		return nil, domain.ErrGenerationCapReached
	}

	height, err := e.heights.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read block height: %w", err)
	}

	seed, err := domain.GenerateSeed(recipient, parentA+parentB+nextID, height)
	if err != nil {
		return nil, err
	}

	traits := domain.Recombine(tokenA.Traits(), tokenB.Traits(), seed)
	if !traits.Valid() {
		return nil, domain.ErrInvalidTraits
	}

	token := schema.Token{
		ID:             nextID,
		RarityScore:    domain.RarityScore(traits, generation),
		GenerationSeed: seed,
		Generation:     generation,
		BirthBlock:     height,
		ParentOne:      &parentA,
		ParentTwo:      &parentB,
		URI:            domain.TokenURI(e.config.BaseURI, nextID),
	}
	token.SetTraits(traits)

	meta, err := journalMeta(schema.MintChangeMeta{
		Owner:       recipient,
		Generation:  generation,
		RarityScore: token.RarityScore,
		Seed:        seed,
		ParentOne:   &parentA,
		ParentTwo:   &parentB,
	})
	if err != nil {
		return nil, err
	}

	err = e.store.CreateTokenBreed(ctx, store.BreedInput{
		Token: token,
		Owner: recipient,
		Payment: store.Payment{
			From:   caller,
			To:     e.config.Treasury,
			Amount: e.config.BreedingPrice,
		},
		JournalMeta: meta,
	})
	if err != nil {
		return nil, err
	}

	e.publishEvent(ctx, domain.TokenEvent{
		EventType:   domain.EventTypeBreed,
		TokenID:     token.ID,
		Actor:       caller,
		Owner:       recipient,
		Generation:  generation,
		RarityScore: token.RarityScore,
		BlockHeight: height,
	})

	return &token, nil
}

// Transfer overwrites a token's owner. Only the sender themselves or the
// administrative identity may initiate it, and the sender must be the current
// recorded owner. The per-owner token index is deliberately left untouched: it
// is an append log of every identity that ever held the token.
func (e *Engine) Transfer(ctx context.Context, caller string, tokenID uint64, sender, recipient string) error {
	token, err := e.store.GetToken(ctx, tokenID)
	if err != nil {
		return err
	}
	if token == nil {
		return domain.ErrTokenNotFound
	}

	if caller != sender && !e.isAdmin(caller) {
		return domain.ErrUnauthorized
	}

	owner, err := e.store.GetOwner(ctx, tokenID)
	if err != nil {
		return err
	}
	if owner != sender {
		return domain.ErrUnauthorized
	}

	height, err := e.heights.Current(ctx)
	if err != nil {
		return fmt.Errorf("failed to read block height: %w", err)
	}

	meta, err := journalMeta(schema.TransferChangeMeta{From: sender, To: recipient})
	if err != nil {
		return err
	}

	err = e.store.TransferOwnership(ctx, store.TransferInput{
		TokenID:     tokenID,
		From:        sender,
		To:          recipient,
		BlockHeight: height,
		JournalMeta: meta,
	})
	if err != nil {
		return err
	}

	e.publishEvent(ctx, domain.TokenEvent{
		EventType:   domain.EventTypeTransfer,
		TokenID:     tokenID,
		Actor:       caller,
		Owner:       recipient,
		BlockHeight: height,
	})

	return nil
}

func journalMeta(v any) (datatypes.JSON, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal journal meta: %w", err)
	}
	return datatypes.JSON(raw), nil
}

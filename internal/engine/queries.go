package engine

import (
	"context"
	"fmt"

	"github.com/junior13sam/DynamicGens/internal/domain"
	"github.com/junior13sam/DynamicGens/internal/store"
	"github.com/junior13sam/DynamicGens/internal/store/schema"
)

// Stats is the aggregate reporting snapshot of the collection.
type Stats struct {
	TotalMinted      uint64 `json:"total_minted"`
	TotalEvolved     uint64 `json:"total_evolved"`
	TotalBred        uint64 `json:"total_bred"`
	NextTokenID      uint64 `json:"next_token_id"`
	ContractPaused   bool   `json:"contract_paused"`
	EvolutionEnabled bool   `json:"evolution_enabled"`
	BreedingEnabled  bool   `json:"breeding_enabled"`
}

// Token retrieves a token record.
func (e *Engine) Token(ctx context.Context, tokenID uint64) (*schema.Token, error) {
	token, err := e.store.GetToken(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, domain.ErrTokenNotFound
	}
	return token, nil
}

// TokenURI returns the metadata descriptor string for a token.
func (e *Engine) TokenURI(ctx context.Context, tokenID uint64) (string, error) {
	token, err := e.Token(ctx, tokenID)
	if err != nil {
		return "", err
	}
	return token.URI, nil
}

// OwnerOf returns the current recorded owner of a token.
func (e *Engine) OwnerOf(ctx context.Context, tokenID uint64) (string, error) {
	if _, err := e.Token(ctx, tokenID); err != nil {
		return "", err
	}
	return e.store.GetOwner(ctx, tokenID)
}

// TokensOf returns the identifiers in an owner's token index, in append order.
// The index records every token the identity was ever assigned, not current
// holdings.
func (e *Engine) TokensOf(ctx context.Context, owner string) ([]uint64, error) {
	return e.store.GetOwnerIndex(ctx, owner)
}

// History returns the retained evolution block heights of a token, oldest
// first.
func (e *Engine) History(ctx context.Context, tokenID uint64) ([]uint64, error) {
	if _, err := e.Token(ctx, tokenID); err != nil {
		return nil, err
	}
	return e.store.GetEvolutionHistory(ctx, tokenID)
}

// CooldownEligible reports whether a token may evolve at the current block
// height as far as the cooldown is concerned.
func (e *Engine) CooldownEligible(ctx context.Context, tokenID uint64) (bool, error) {
	token, err := e.Token(ctx, tokenID)
	if err != nil {
		return false, err
	}

	height, err := e.heights.Current(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read block height: %w", err)
	}
	return height-token.LastEvolutionBlock >= e.config.CooldownBlocks, nil
}

// LastTokenID returns the highest token identifier assigned so far, 0 when
// nothing has been created yet.
func (e *Engine) LastTokenID(ctx context.Context) (uint64, error) {
	nextID, err := e.store.GetCounter(ctx, store.KeyNextTokenID)
	if err != nil {
		return 0, err
	}
	return nextID - 1, nil
}

// BalanceOf returns an identity's spendable balance.
func (e *Engine) BalanceOf(ctx context.Context, identity string) (uint64, error) {
	return e.store.GetBalance(ctx, identity)
}

// Stats returns the aggregate counters and feature flags.
func (e *Engine) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	counters := []struct {
		key  string
		dest *uint64
	}{
		{store.KeyTotalMinted, &stats.TotalMinted},
		{store.KeyTotalEvolved, &stats.TotalEvolved},
		{store.KeyTotalBred, &stats.TotalBred},
		{store.KeyNextTokenID, &stats.NextTokenID},
	}
	for _, c := range counters {
		value, err := e.store.GetCounter(ctx, c.key)
		if err != nil {
			return nil, err
		}
		*c.dest = value
	}

	flags := []struct {
		key  string
		dest *bool
	}{
		{store.KeyContractPaused, &stats.ContractPaused},
		{store.KeyEvolutionEnabled, &stats.EvolutionEnabled},
		{store.KeyBreedingEnabled, &stats.BreedingEnabled},
	}
	for _, f := range flags {
		value, err := e.store.GetFlag(ctx, f.key)
		if err != nil {
			return nil, err
		}
		*f.dest = value
	}

	return stats, nil
}

// Changes returns journal rows with identifiers greater than anchor, in
// ascending order, at most limit rows.
func (e *Engine) Changes(ctx context.Context, anchor uint64, limit int) ([]schema.ChangesJournal, error) {
	return e.store.ListChanges(ctx, anchor, limit)
}

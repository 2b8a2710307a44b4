package engine

import (
	"context"

	"github.com/junior13sam/DynamicGens/internal/domain"
	"github.com/junior13sam/DynamicGens/internal/store"
)

// TogglePause flips the contract-wide pause flag and returns the new value.
// Administrative identity only.
func (e *Engine) TogglePause(ctx context.Context, caller string) (bool, error) {
	return e.toggleFlag(ctx, caller, store.KeyContractPaused)
}

// ToggleEvolution flips the evolution feature flag and returns the new value.
// Administrative identity only.
func (e *Engine) ToggleEvolution(ctx context.Context, caller string) (bool, error) {
	return e.toggleFlag(ctx, caller, store.KeyEvolutionEnabled)
}

// ToggleBreeding flips the breeding feature flag and returns the new value.
// Administrative identity only.
func (e *Engine) ToggleBreeding(ctx context.Context, caller string) (bool, error) {
	return e.toggleFlag(ctx, caller, store.KeyBreedingEnabled)
}

func (e *Engine) toggleFlag(ctx context.Context, caller, key string) (bool, error) {
	if !e.isAdmin(caller) {
		return false, domain.ErrUnauthorized
	}

	current, err := e.store.GetFlag(ctx, key)
	if err != nil {
		return false, err
	}

	next := !current
	if err := e.store.SetFlag(ctx, key, next); err != nil {
		return false, err
	}
	return next, nil
}

// Deposit credits an identity's spendable balance. Administrative identity
// only; this is how identities get funded in the first place.
func (e *Engine) Deposit(ctx context.Context, caller, identity string, amount uint64) error {
	if !e.isAdmin(caller) {
		return domain.ErrUnauthorized
	}
	if identity == "" || amount == 0 {
		return domain.ErrInvalidOperation
	}
	return e.store.Deposit(ctx, identity, amount)
}

package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/junior13sam/DynamicGens/internal/domain"
)

func TestTraitVector_Valid(t *testing.T) {
	tests := []struct {
		name   string
		traits domain.TraitVector
		valid  bool
	}{
		{
			name:   "all zero",
			traits: domain.TraitVector{},
			valid:  true,
		},
		{
			name:   "all at upper bound",
			traits: domain.TraitVector{Background: 9, Body: 9, Eyes: 9, Mouth: 9, Accessory: 9},
			valid:  true,
		},
		{
			name:   "background out of domain",
			traits: domain.TraitVector{Background: 10},
			valid:  false,
		},
		{
			name:   "eyes out of domain",
			traits: domain.TraitVector{Eyes: 42},
			valid:  false,
		},
		{
			name:   "accessory out of domain",
			traits: domain.TraitVector{Accessory: 10},
			valid:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.traits.Valid())
		})
	}
}

func TestDeriveTraits_DigitExtraction(t *testing.T) {
	// Seed 43210 decomposes into digit groups 0,1,2,3,4 in attribute order.
	traits := domain.DeriveTraits(43210, 0)

	assert.Equal(t, domain.TraitVector{
		Background: 0,
		Body:       1,
		Eyes:       2,
		Mouth:      3,
		Accessory:  4,
	}, traits)
}

func TestDeriveTraits_AccessoryBlockOffset(t *testing.T) {
	base := domain.DeriveTraits(43210, 0)
	offset := domain.DeriveTraits(43210, 7)

	// Only the accessory depends on the block height.
	assert.Equal(t, base.Background, offset.Background)
	assert.Equal(t, base.Body, offset.Body)
	assert.Equal(t, base.Eyes, offset.Eyes)
	assert.Equal(t, base.Mouth, offset.Mouth)
	assert.Equal(t, uint64(1), offset.Accessory) // (4 + 7) % 10
}

func TestDeriveTraits_DomainClosure(t *testing.T) {
	for seed := uint64(0); seed < 999999; seed += 7919 {
		for _, height := range []uint64{0, 1, 99, 144, 1_000_000} {
			traits := domain.DeriveTraits(seed, height)
			assert.True(t, traits.Valid(), "seed=%d height=%d produced %+v", seed, height, traits)
		}
	}
}

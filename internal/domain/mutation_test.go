package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/junior13sam/DynamicGens/internal/domain"
)

func TestMutate_AllAttributesHit(t *testing.T) {
	// Seed 0 makes every digit-group slice 0, below every threshold.
	traits := domain.TraitVector{Background: 1, Body: 2, Eyes: 3, Mouth: 4, Accessory: 5}

	mutated := domain.Mutate(traits, 0)

	assert.Equal(t, domain.TraitVector{
		Background: 2,
		Body:       3,
		Eyes:       4,
		Mouth:      5,
		Accessory:  6,
	}, mutated)
}

func TestMutate_NoAttributeHit(t *testing.T) {
	// Seed 999998 makes every slice >= its threshold (98, 99, 99, 99, 99).
	traits := domain.TraitVector{Background: 1, Body: 2, Eyes: 3, Mouth: 4, Accessory: 5}

	mutated := domain.Mutate(traits, 999998)

	assert.Equal(t, traits, mutated)
}

func TestMutate_WrapsAroundDomain(t *testing.T) {
	traits := domain.TraitVector{Background: 9, Body: 9, Eyes: 9, Mouth: 9, Accessory: 9}

	mutated := domain.Mutate(traits, 0)

	assert.Equal(t, domain.TraitVector{}, mutated)
}

func TestMutate_Deterministic(t *testing.T) {
	traits := domain.TraitVector{Background: 3, Body: 1, Eyes: 4, Mouth: 1, Accessory: 5}

	first := domain.Mutate(traits, 271828)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, domain.Mutate(traits, 271828))
	}
}

func TestMutate_DomainClosure(t *testing.T) {
	traits := domain.TraitVector{Background: 9, Body: 0, Eyes: 9, Mouth: 0, Accessory: 9}

	for seed := uint64(0); seed < 999999; seed += 1237 {
		mutated := domain.Mutate(traits, seed)
		assert.True(t, mutated.Valid(), "seed=%d produced %+v", seed, mutated)
	}
}

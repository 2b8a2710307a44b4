package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/junior13sam/DynamicGens/internal/domain"
)

var (
	parentA = domain.TraitVector{Background: 1, Body: 1, Eyes: 1, Mouth: 1, Accessory: 1}
	parentB = domain.TraitVector{Background: 8, Body: 8, Eyes: 8, Mouth: 8, Accessory: 8}
)

func TestRecombine_AllFromParentA(t *testing.T) {
	// Seed 0: every digit-group slice is even.
	assert.Equal(t, parentA, domain.Recombine(parentA, parentB, 0))
}

func TestRecombine_AllFromParentB(t *testing.T) {
	// Seed 11111: every digit-group slice is odd.
	assert.Equal(t, parentB, domain.Recombine(parentA, parentB, 11111))
}

func TestRecombine_MixesPerAttribute(t *testing.T) {
	// Seed 10101: background/eyes/accessory slices are odd, body/mouth even.
	offspring := domain.Recombine(parentA, parentB, 10101)

	assert.Equal(t, domain.TraitVector{
		Background: 8,
		Body:       1,
		Eyes:       8,
		Mouth:      1,
		Accessory:  8,
	}, offspring)
}

func TestRecombine_OrderMatters(t *testing.T) {
	// Swapping parent roles flips every inherited attribute for a mixed seed.
	forward := domain.Recombine(parentA, parentB, 10101)
	swapped := domain.Recombine(parentB, parentA, 10101)

	assert.NotEqual(t, forward, swapped)
}

func TestRecombine_DomainClosure(t *testing.T) {
	a := domain.TraitVector{Background: 0, Body: 9, Eyes: 2, Mouth: 7, Accessory: 4}
	b := domain.TraitVector{Background: 9, Body: 0, Eyes: 7, Mouth: 2, Accessory: 5}

	for seed := uint64(0); seed < 999999; seed += 997 {
		offspring := domain.Recombine(a, b, seed)
		assert.True(t, offspring.Valid(), "seed=%d produced %+v", seed, offspring)
	}
}

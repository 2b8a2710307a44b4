package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junior13sam/DynamicGens/internal/domain"
)

func TestGenerateSeed_Deterministic(t *testing.T) {
	first, err := domain.GenerateSeed("did:gens:alice", 1, 100)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := domain.GenerateSeed("did:gens:alice", 1, 100)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestGenerateSeed_WithinModulus(t *testing.T) {
	for tokenID := uint64(1); tokenID <= 50; tokenID++ {
		seed, err := domain.GenerateSeed("did:gens:alice", tokenID, 12345)
		require.NoError(t, err)
		assert.Less(t, seed, uint64(999999))
	}
}

func TestGenerateSeed_InputsMatter(t *testing.T) {
	// The hash is deterministic, so we cannot assert any two particular inputs
	// differ. Instead assert that varying each input produces a spread of
	// values rather than a constant.
	distinct := func(seeds []uint64) int {
		set := make(map[uint64]struct{}, len(seeds))
		for _, s := range seeds {
			set[s] = struct{}{}
		}
		return len(set)
	}

	var byToken, byHeight, byActor []uint64
	actors := []string{"alice", "bob", "carol", "dave", "erin", "frank", "grace", "heidi"}
	for i := uint64(0); i < 8; i++ {
		s1, err := domain.GenerateSeed("alice", i, 100)
		require.NoError(t, err)
		byToken = append(byToken, s1)

		s2, err := domain.GenerateSeed("alice", 1, 100+i)
		require.NoError(t, err)
		byHeight = append(byHeight, s2)

		s3, err := domain.GenerateSeed(actors[i], 1, 100)
		require.NoError(t, err)
		byActor = append(byActor, s3)
	}

	assert.Greater(t, distinct(byToken), 1)
	assert.Greater(t, distinct(byHeight), 1)
	assert.Greater(t, distinct(byActor), 1)
}

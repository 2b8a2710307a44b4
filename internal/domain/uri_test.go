package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/junior13sam/DynamicGens/internal/domain"
)

func TestTokenURI_Concatenates(t *testing.T) {
	assert.Equal(t, "ipfs://Qmbase/42", domain.TokenURI("ipfs://Qmbase/", 42))
}

func TestTokenURI_FallsBackToBaseWhenTooLong(t *testing.T) {
	base := strings.Repeat("a", 255)

	// Appending any token id would exceed the 256 character cap.
	assert.Equal(t, base, domain.TokenURI(base, 1234))
}

func TestTokenURI_ExactlyAtCap(t *testing.T) {
	base := strings.Repeat("a", 254)

	// 254 + 2 digits = 256, which still fits.
	assert.Equal(t, base+"77", domain.TokenURI(base, 77))
}

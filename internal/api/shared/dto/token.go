package dto

import (
	"time"

	"github.com/junior13sam/DynamicGens/internal/domain"
	"github.com/junior13sam/DynamicGens/internal/store/schema"
)

// TokenResponse represents a token record
type TokenResponse struct {
	ID             uint64             `json:"id"`
	Traits         domain.TraitVector `json:"traits"`
	RarityScore    uint64             `json:"rarity_score"`
	GenerationSeed uint64             `json:"generation_seed"`
	Generation     uint64             `json:"generation"`
	BirthBlock     uint64             `json:"birth_block"`
	EvolutionCount uint64             `json:"evolution_count"`
	LastEvolution  uint64             `json:"last_evolution_block"`
	ParentOne      *uint64            `json:"parent_one,omitempty"`
	ParentTwo      *uint64            `json:"parent_two,omitempty"`
	URI            string             `json:"uri"`
	CreatedAt      time.Time          `json:"created_at"`

	// Owner is filled when the handler resolves ownership alongside the record
	Owner string `json:"owner,omitempty"`
}

// TokenListResponse represents an owner's token index
type TokenListResponse struct {
	Owner    string   `json:"owner"`
	TokenIDs []uint64 `json:"token_ids"`
}

// MapTokenToDTO maps a schema.Token to TokenResponse
func MapTokenToDTO(token *schema.Token) *TokenResponse {
	return &TokenResponse{
		ID:             token.ID,
		Traits:         token.Traits(),
		RarityScore:    token.RarityScore,
		GenerationSeed: token.GenerationSeed,
		Generation:     token.Generation,
		BirthBlock:     token.BirthBlock,
		EvolutionCount: token.EvolutionCount,
		LastEvolution:  token.LastEvolutionBlock,
		ParentOne:      token.ParentOne,
		ParentTwo:      token.ParentTwo,
		URI:            token.URI,
		CreatedAt:      token.CreatedAt,
	}
}

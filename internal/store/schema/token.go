package schema

import (
	"time"

	"github.com/junior13sam/DynamicGens/internal/domain"
)

// Token represents the tokens table - one record per token identifier.
// Identifiers are sequential positive integers starting at 1 and are assigned
// by the lifecycle engine, never by the database.
type Token struct {
	// ID is the token identifier
	ID uint64 `gorm:"column:id;primaryKey"`
	// Background, Body, Eyes, Mouth and Accessory form the trait vector, each in [0, 10)
	Background uint64 `gorm:"column:background;not null"`
	Body       uint64 `gorm:"column:body;not null"`
	Eyes       uint64 `gorm:"column:eyes;not null"`
	Mouth      uint64 `gorm:"column:mouth;not null"`
	Accessory  uint64 `gorm:"column:accessory;not null"`
	// RarityScore is monotonically non-decreasing across the token's evolution history
	RarityScore uint64 `gorm:"column:rarity_score;not null"`
	// GenerationSeed is the seed used at creation, immutable afterwards
	GenerationSeed uint64 `gorm:"column:generation_seed;not null"`
	// Generation is the lifecycle stage in [1, 5]
	Generation uint64 `gorm:"column:generation;not null"`
	// BirthBlock is the block height at creation, immutable
	BirthBlock uint64 `gorm:"column:birth_block;not null"`
	// EvolutionCount increments by one per successful evolution
	EvolutionCount uint64 `gorm:"column:evolution_count;not null;default:0"`
	// LastEvolutionBlock is the height of the most recent evolution (0 if never evolved)
	LastEvolutionBlock uint64 `gorm:"column:last_evolution_block;not null;default:0"`
	// ParentOne and ParentTwo are both nil for minted tokens, both set for bred tokens
	ParentOne *uint64 `gorm:"column:parent_one"`
	ParentTwo *uint64 `gorm:"column:parent_two"`
	// URI is the metadata descriptor string assigned at creation
	URI string `gorm:"column:uri;not null;type:text"`
	// CreatedAt is the wall-clock timestamp when this record was persisted
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
}

// TableName specifies the table name for the Token model
func (Token) TableName() string {
	return "tokens"
}

// Traits returns the token's trait vector.
func (t *Token) Traits() domain.TraitVector {
	return domain.TraitVector{
		Background: t.Background,
		Body:       t.Body,
		Eyes:       t.Eyes,
		Mouth:      t.Mouth,
		Accessory:  t.Accessory,
	}
}

// SetTraits overwrites the token's trait vector columns.
func (t *Token) SetTraits(v domain.TraitVector) {
	t.Background = v.Background
	t.Body = v.Body
	t.Eyes = v.Eyes
	t.Mouth = v.Mouth
	t.Accessory = v.Accessory
}

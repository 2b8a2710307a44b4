package schema

import "time"

// EvolutionHistoryCapacity is the fixed capacity of a token's evolution
// history. When an append exceeds it, the oldest entry is silently dropped.
const EvolutionHistoryCapacity = 10

// EvolutionHistoryEntry represents the evolution_history table - the ordered
// sequence of block heights at which a token evolved, keeping only the most
// recent EvolutionHistoryCapacity entries per token.
type EvolutionHistoryEntry struct {
	// ID is the internal database primary key; iteration order within a token
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// TokenID references the evolved token
	TokenID uint64 `gorm:"column:token_id;not null;index:idx_evolution_history_token"`
	// BlockHeight is the height at which the evolution happened
	BlockHeight uint64 `gorm:"column:block_height;not null"`
	// CreatedAt is the timestamp of the append
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
}

// TableName specifies the table name for the EvolutionHistoryEntry model
func (EvolutionHistoryEntry) TableName() string {
	return "evolution_history"
}

package schema

import "time"

// KeyValueStore stores arbitrary key-value pairs for collection state.
// Used for the global counters (next_token_id, total_minted, total_evolved,
// total_bred) and the feature flags (contract_paused, evolution_enabled,
// breeding_enabled).
type KeyValueStore struct {
	Key       string    `gorm:"primaryKey;type:text"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (KeyValueStore) TableName() string {
	return "key_value_store"
}

package schema

import "time"

// BreedingRecord represents the breeding_registry table - the offspring
// recorded for an ordered parent pair. The pair is positionally keyed:
// breeding the same parents with roles swapped is a distinct key.
type BreedingRecord struct {
	// ParentOne is the first parent as given to the breed operation
	ParentOne uint64 `gorm:"column:parent_one;primaryKey"`
	// ParentTwo is the second parent as given to the breed operation
	ParentTwo uint64 `gorm:"column:parent_two;primaryKey"`
	// OffspringID is the token produced by the most recent breeding of this pair
	OffspringID uint64 `gorm:"column:offspring_id;not null"`
	// CreatedAt is the timestamp the record was last written
	CreatedAt time.Time `gorm:"column:created_at;not null;autoUpdateTime"`
}

// TableName specifies the table name for the BreedingRecord model
func (BreedingRecord) TableName() string {
	return "breeding_registry"
}

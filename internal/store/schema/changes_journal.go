package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/junior13sam/DynamicGens/internal/domain"
)

// ChangesJournal represents the changes_journal table - a sequential audit log
// of every committed state-changing operation. Rows are written inside the
// same transaction as the operation they describe.
type ChangesJournal struct {
	// ID is the journal sequence number, used as the pagination anchor
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// TokenID is the token the operation acted on or created
	TokenID uint64 `gorm:"column:token_id;not null;index:idx_changes_journal_token"`
	// EventType is the lifecycle operation (mint, evolve, breed, transfer)
	EventType domain.EventType `gorm:"column:event_type;not null;type:text"`
	// BlockHeight is the height the operation executed at
	BlockHeight uint64 `gorm:"column:block_height;not null"`
	// Meta carries operation-specific detail as JSON
	Meta datatypes.JSON `gorm:"column:meta;type:jsonb"`
	// ChangedAt is the wall-clock commit timestamp
	ChangedAt time.Time `gorm:"column:changed_at;not null;autoCreateTime"`
}

// TableName specifies the table name for the ChangesJournal model
func (ChangesJournal) TableName() string {
	return "changes_journal"
}

// MintChangeMeta is the journal meta payload for mint and breed operations.
type MintChangeMeta struct {
	Owner       string  `json:"owner"`
	Generation  uint64  `json:"generation"`
	RarityScore uint64  `json:"rarity_score"`
	Seed        uint64  `json:"seed"`
	ParentOne   *uint64 `json:"parent_one,omitempty"`
	ParentTwo   *uint64 `json:"parent_two,omitempty"`
}

// EvolveChangeMeta is the journal meta payload for evolve operations.
type EvolveChangeMeta struct {
	Generation  uint64 `json:"generation"`
	RarityScore uint64 `json:"rarity_score"`
	Seed        uint64 `json:"seed"`
}

// TransferChangeMeta is the journal meta payload for transfer operations.
type TransferChangeMeta struct {
	From string `json:"from"`
	To   string `json:"to"`
}

package schema

import "time"

// OwnerIndexCapacity is the fixed capacity of the per-owner token index.
// Appends beyond it are rejected, never truncated.
const OwnerIndexCapacity = 50

// OwnerIndexEntry represents the owner_index table - the ordered sequence of
// token identifiers ever appended to an owner's index. The index is
// append-only: transfers do not remove entries from the previous owner, so it
// records "ever owned", not "currently owns".
type OwnerIndexEntry struct {
	// ID is the internal database primary key; iteration order within an owner
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Owner is the identity the entry was appended for
	Owner string `gorm:"column:owner;not null;type:text;uniqueIndex:idx_owner_index_owner_token,priority:1"`
	// TokenID is the appended token identifier
	TokenID uint64 `gorm:"column:token_id;not null;uniqueIndex:idx_owner_index_owner_token,priority:2"`
	// CreatedAt is the timestamp of the append
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
}

// TableName specifies the table name for the OwnerIndexEntry model
func (OwnerIndexEntry) TableName() string {
	return "owner_index"
}

package schema

import "time"

// Ownership represents the ownerships table - the current owner of each token.
// Created at mint/breed, overwritten at transfer, never deleted while the
// token exists.
type Ownership struct {
	// TokenID references the owned token
	TokenID uint64 `gorm:"column:token_id;primaryKey"`
	// Owner is the owning identity
	Owner string `gorm:"column:owner;not null;type:text;index:idx_ownerships_owner"`
	// UpdatedAt is the timestamp of the most recent ownership change
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
	// CreatedAt is the timestamp when ownership was first recorded
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
}

// TableName specifies the table name for the Ownership model
func (Ownership) TableName() string {
	return "ownerships"
}

package schema

import "time"

// Balance represents the balances table - the spendable amount held by an
// identity. Settlement debits the payer and credits the treasury inside the
// same transaction as the lifecycle operation it pays for.
type Balance struct {
	// Identity is the balance holder
	Identity string `gorm:"column:identity;primaryKey;type:text"`
	// Amount is the spendable balance
	Amount uint64 `gorm:"column:amount;not null;default:0"`
	// UpdatedAt is the timestamp of the last settlement touching this balance
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
	// CreatedAt is the timestamp the balance row was created
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
}

// TableName specifies the table name for the Balance model
func (Balance) TableName() string {
	return "balances"
}

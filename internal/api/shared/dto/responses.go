package dto

// ToggleResponse represents the new value of an administrative feature flag
type ToggleResponse struct {
	Flag  string `json:"flag"`
	Value bool   `json:"value"`
}

// OwnerResponse represents a token's current owner
type OwnerResponse struct {
	TokenID uint64 `json:"token_id"`
	Owner   string `json:"owner"`
}

// URIResponse represents a token's metadata descriptor
type URIResponse struct {
	TokenID uint64 `json:"token_id"`
	URI     string `json:"uri"`
}

// HistoryResponse represents a token's retained evolution heights, oldest first
type HistoryResponse struct {
	TokenID uint64   `json:"token_id"`
	Heights []uint64 `json:"heights"`
}

// CooldownResponse represents a token's cooldown eligibility
type CooldownResponse struct {
	TokenID  uint64 `json:"token_id"`
	Eligible bool   `json:"eligible"`
}

// BalanceResponse represents an identity's spendable balance
type BalanceResponse struct {
	Identity string `json:"identity"`
	Balance  uint64 `json:"balance"`
}

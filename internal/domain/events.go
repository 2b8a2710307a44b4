package domain

import "time"

// EventType represents the type of a token lifecycle event
type EventType string

const (
	EventTypeMint     EventType = "mint"
	EventTypeEvolve   EventType = "evolve"
	EventTypeBreed    EventType = "breed"
	EventTypeTransfer EventType = "transfer"
)

// TokenEvent is the normalized lifecycle event published to messaging after a
// state-changing operation commits. EventID is a ULID, so events sort by
// emission time.
type TokenEvent struct {
	EventID     string    `json:"event_id"`
	EventType   EventType `json:"event_type"`
	TokenID     uint64    `json:"token_id"`
	Actor       string    `json:"actor"`
	Owner       string    `json:"owner,omitempty"`
	Generation  uint64    `json:"generation,omitempty"`
	RarityScore uint64    `json:"rarity_score,omitempty"`
	BlockHeight uint64    `json:"block_height"`
	Timestamp   time.Time `json:"timestamp"`
}

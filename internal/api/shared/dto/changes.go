package dto

import (
	"encoding/json"
	"time"

	"github.com/junior13sam/DynamicGens/internal/domain"
	"github.com/junior13sam/DynamicGens/internal/store/schema"
)

// ChangeResponse represents a change journal entry
type ChangeResponse struct {
	ID          uint64           `json:"id"`
	TokenID     uint64           `json:"token_id"`
	EventType   domain.EventType `json:"event_type"`
	BlockHeight uint64           `json:"block_height"`
	Meta        json.RawMessage  `json:"meta,omitempty"`
	ChangedAt   time.Time        `json:"changed_at"`
}

// ChangeListResponse represents a paginated list of changes
type ChangeListResponse struct {
	Changes []ChangeResponse `json:"items"`
	// NextAnchor is the ID-based cursor for the next page, absent on the last page
	NextAnchor *uint64 `json:"next_anchor,omitempty"`
}

// MapChangeToDTO maps a schema.ChangesJournal to ChangeResponse
func MapChangeToDTO(change *schema.ChangesJournal) *ChangeResponse {
	dto := &ChangeResponse{
		ID:          change.ID,
		TokenID:     change.TokenID,
		EventType:   change.EventType,
		BlockHeight: change.BlockHeight,
		ChangedAt:   change.ChangedAt,
	}

	if change.Meta != nil {
		dto.Meta = json.RawMessage(change.Meta)
	}

	return dto
}

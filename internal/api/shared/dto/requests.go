package dto

import (
	apierrors "github.com/junior13sam/DynamicGens/internal/api/shared/errors"
)

// MintRequest represents the request body for minting a token
type MintRequest struct {
	// Recipient receives the token; defaults to the caller when empty
	Recipient string `json:"recipient,omitempty"`
}

// BreedRequest represents the request body for breeding two tokens
type BreedRequest struct {
	ParentOne uint64 `json:"parent_one"`
	ParentTwo uint64 `json:"parent_two"`
	// Recipient receives the offspring; defaults to the caller when empty
	Recipient string `json:"recipient,omitempty"`
}

// Validate validates the request body
func (r *BreedRequest) Validate() error {
	if r.ParentOne == 0 {
		return apierrors.NewValidationError("parent_one is required")
	}
	if r.ParentTwo == 0 {
		return apierrors.NewValidationError("parent_two is required")
	}
	return nil
}

// TransferRequest represents the request body for transferring a token
type TransferRequest struct {
	// Sender is the current owner; defaults to the caller when empty, so only
	// the administrative identity needs to set it explicitly
	Sender    string `json:"sender,omitempty"`
	Recipient string `json:"recipient"`
}

// Validate validates the request body
func (r *TransferRequest) Validate() error {
	if r.Recipient == "" {
		return apierrors.NewValidationError("recipient is required")
	}
	return nil
}

// DepositRequest represents the request body for the administrative deposit
type DepositRequest struct {
	Identity string `json:"identity"`
	Amount   uint64 `json:"amount"`
}

// Validate validates the request body
func (r *DepositRequest) Validate() error {
	if r.Identity == "" {
		return apierrors.NewValidationError("identity is required")
	}
	if r.Amount == 0 {
		return apierrors.NewValidationError("amount must be positive")
	}
	return nil
}

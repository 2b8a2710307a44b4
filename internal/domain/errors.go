package domain

import "errors"

var (
	// ErrUnauthorized is returned when the caller lacks the role or ownership required for an operation
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTokenNotFound is returned when a referenced token identifier has no record
	ErrTokenNotFound = errors.New("token not found")

	// ErrInsufficientFunds is returned when the caller balance is below the required price
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrCapacityExceeded is returned when the collection limit is reached or a bounded
	// list would exceed its fixed capacity on append
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrFeatureDisabled is returned when the contract is paused or the specific feature is disabled
	ErrFeatureDisabled = errors.New("feature disabled")

	// ErrCooldownActive is returned when evolution is attempted before the cooldown has elapsed
	ErrCooldownActive = errors.New("evolution cooldown active")

	// ErrGenerationCapReached is returned when evolution or breeding would exceed the generation cap
	ErrGenerationCapReached = errors.New("generation cap reached")

	// ErrInvalidTraits is returned when a derived trait vector fails domain validation
	ErrInvalidTraits = errors.New("invalid traits")

	// ErrInvalidOperation is returned for structurally invalid argument combinations,
	// e.g. breeding a token with itself
	ErrInvalidOperation = errors.New("invalid operation")
)

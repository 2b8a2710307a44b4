package messaging

import (
	"context"

	"github.com/junior13sam/DynamicGens/internal/domain"
)

// Publisher defines the interface for publishing token lifecycle events to the
// message broker. Publishing happens after the operation commits and is
// best-effort: a failed publish is logged by the caller, never rolled into the
// operation's outcome.
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes a token lifecycle event
	PublishEvent(ctx context.Context, event *domain.TokenEvent) error
	// Close closes the connection
	Close()
}

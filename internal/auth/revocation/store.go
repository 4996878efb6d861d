package revocation

import (
	"context"
	"time"
)

// Store remembers the ids of tokens that were logged out until they would
// have expired anyway.
type Store interface {
	// Revoke marks the token id as revoked until expiresAt.
	// An expiry in the past is a no-op.
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	// IsRevoked reports whether the token id has been revoked
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	// Close releases any underlying connection
	Close() error
}

// Pruner is implemented by stores that must drop expired ids themselves
type Pruner interface {
	Prune() int
}

package auth

import (
	"context"
	"time"

	"github.com/rezkam/bucketlist/internal/domain"
)

// Repository defines storage operations for authentication.
type Repository interface {
	// FindByShortToken retrieves an API key by its short token for
	// validation. Returns *domain.NotFoundError if no key matches.
	FindByShortToken(ctx context.Context, shortToken string) (*domain.APIKey, error)

	// UpdateLastUsed updates the last used timestamp for an API key.
	UpdateLastUsed(ctx context.Context, keyID string, timestamp time.Time) error

	// CreateKey persists a new API key.
	CreateKey(ctx context.Context, key *domain.APIKey) error
}

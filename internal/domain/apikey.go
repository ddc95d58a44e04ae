package domain

import "time"

// APIKey represents an API key credential scoped to one profile. The
// key material itself is split: a short token stored in clear for
// lookup, and a BLAKE2b-256 hash of the long secret for verification.
// The assembled plain key is shown once at creation and never stored.
type APIKey struct {
	ID             string
	ProfileID      string
	KeyType        string
	Service        string
	Version        string
	ShortToken     string
	LongSecretHash string
	Name           string
	IsActive       bool
	CreatedAt      time.Time
	LastUsedAt     *time.Time
	ExpiresAt      *time.Time
}

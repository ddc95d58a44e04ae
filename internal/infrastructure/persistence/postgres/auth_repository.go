package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/rezkam/bucketlist/internal/domain"
)

// === Auth Repository Implementation ===
// Implements application/auth.Repository.

// FindByShortToken retrieves an API key by its short token for validation.
func (s *Store) FindByShortToken(ctx context.Context, shortToken string) (*domain.APIKey, error) {
	var key domain.APIKey

	err := s.db.QueryRow(ctx, `SELECT id, profile_id, key_type, service, version,
		short_token, long_secret_hash, name, is_active, created_at, last_used_at, expires_at
		FROM api_keys WHERE short_token = $1`, shortToken).
		Scan(&key.ID, &key.ProfileID, &key.KeyType, &key.Service, &key.Version,
			&key.ShortToken, &key.LongSecretHash, &key.Name, &key.IsActive,
			&key.CreatedAt, &key.LastUsedAt, &key.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("api_key", "", "")
		}
		return nil, mapPgError(err, "FindByShortToken", "api_key")
	}

	key.CreatedAt = key.CreatedAt.UTC()
	key.LastUsedAt = timePtrUTC(key.LastUsedAt)
	key.ExpiresAt = timePtrUTC(key.ExpiresAt)
	return &key, nil
}

// UpdateLastUsed updates the last used timestamp for an API key.
// Only moves the timestamp forward; an older timestamp is an idempotent
// no-op. Returns *domain.NotFoundError if the key doesn't exist.
func (s *Store) UpdateLastUsed(ctx context.Context, keyID string, timestamp time.Time) error {
	tag, err := s.db.Exec(ctx, `UPDATE api_keys SET last_used_at = $2
		WHERE id = $1 AND (last_used_at IS NULL OR last_used_at < $2)`,
		keyID, timestamp.UTC())
	if err != nil {
		return mapPgError(err, "UpdateLastUsed", "api_key")
	}

	if tag.RowsAffected() == 0 {
		// Either the key doesn't exist or the timestamp wasn't later.
		// Check existence to distinguish the cases.
		var exists bool
		if err := s.db.QueryRow(ctx,
			"SELECT EXISTS(SELECT 1 FROM api_keys WHERE id = $1)", keyID).Scan(&exists); err != nil {
			return mapPgError(err, "UpdateLastUsed", "api_key")
		}
		if !exists {
			return domain.NewNotFoundError("api_key", keyID, "")
		}
	}
	return nil
}

// EnsureProfile creates a profile row if it doesn't exist yet. An
// existing profile keeps its display name.
func (s *Store) EnsureProfile(ctx context.Context, id, displayName string) error {
	_, err := s.db.Exec(ctx, `INSERT INTO profiles (id, display_name)
		VALUES ($1, NULLIF($2, '')) ON CONFLICT (id) DO NOTHING`, id, displayName)
	if err != nil {
		return mapPgError(err, "EnsureProfile", "profile")
	}
	return nil
}

// CreateKey persists a new API key.
func (s *Store) CreateKey(ctx context.Context, key *domain.APIKey) error {
	_, err := s.db.Exec(ctx, `INSERT INTO api_keys
		(id, profile_id, key_type, service, version, short_token,
		 long_secret_hash, name, is_active, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		key.ID, key.ProfileID, key.KeyType, key.Service, key.Version,
		key.ShortToken, key.LongSecretHash, key.Name, key.IsActive,
		key.CreatedAt.UTC(), key.ExpiresAt)
	if err != nil {
		return mapPgError(err, "CreateKey", "api_key")
	}
	return nil
}

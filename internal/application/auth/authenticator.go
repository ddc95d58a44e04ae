package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rezkam/bucketlist/internal/domain"
	"github.com/rezkam/bucketlist/internal/infrastructure/keygen"
)

// Default configuration values.
const (
	DefaultOperationTimeout = 5 * time.Second
	DefaultUpdateQueueSize  = 1000
)

// Config holds configuration for the Authenticator.
type Config struct {
	OperationTimeout time.Duration // Timeout for storage operations
	UpdateQueueSize  int           // Buffer size for last_used_at updates
}

// lastUsedUpdate holds information for updating an API key's last_used_at timestamp.
type lastUsedUpdate struct {
	keyID     string
	timestamp time.Time
}

// Authenticator validates profile-scoped API keys. A successful
// validation yields the key with its owning profile id, which the HTTP
// middleware installs as the request identity.
type Authenticator struct {
	repo             Repository
	appCtx           context.Context // Application context, cancelled on shutdown
	lastUsedUpdates  chan lastUsedUpdate
	shutdownChan     chan struct{}
	shutdownOnce     sync.Once // Ensures shutdown is idempotent
	wg               sync.WaitGroup
	operationTimeout time.Duration // Timeout for storage operations
}

// NewAuthenticator creates a new authenticator and starts the background
// worker for processing last_used_at updates.
// The ctx parameter should be an application-level context that gets cancelled on shutdown.
// Zero OperationTimeout means no timeout (operations wait indefinitely).
// Zero UpdateQueueSize gets the default (must be > 0 to avoid blocking).
func NewAuthenticator(ctx context.Context, repo Repository, config Config) *Authenticator {
	if config.OperationTimeout < 0 {
		config.OperationTimeout = DefaultOperationTimeout
	}
	if config.UpdateQueueSize <= 0 {
		config.UpdateQueueSize = DefaultUpdateQueueSize
	}

	a := &Authenticator{
		repo:             repo,
		appCtx:           ctx,
		lastUsedUpdates:  make(chan lastUsedUpdate, config.UpdateQueueSize),
		shutdownChan:     make(chan struct{}),
		operationTimeout: config.OperationTimeout,
	}

	a.wg.Add(1)
	go a.processLastUsedUpdates()

	return a
}

// opContext derives a per-operation context. Zero timeout means the
// operation waits as long as the parent allows.
func (a *Authenticator) opContext(parent context.Context) (context.Context, context.CancelFunc) {
	if a.operationTimeout > 0 {
		return context.WithTimeout(parent, a.operationTimeout)
	}
	return context.WithCancel(parent)
}

// processLastUsedUpdates is a background worker that processes last_used_at
// updates from a buffered channel. This prevents goroutine explosion under
// high load.
func (a *Authenticator) processLastUsedUpdates() {
	defer a.wg.Done()

	for {
		select {
		case update := <-a.lastUsedUpdates:
			// Derive context from application context (respects shutdown).
			// cancel() runs explicitly instead of deferred because defer in
			// a loop defers until function exit.
			ctx, cancel := a.opContext(a.appCtx)

			if err := a.repo.UpdateLastUsed(ctx, update.keyID, update.timestamp); err != nil {
				// Log failure but continue processing (last_used_at is non-critical)
				slog.WarnContext(ctx, "Failed to update API key last_used_at",
					slog.String("key_id", update.keyID),
					slog.String("error", err.Error()))
			}
			cancel()

		case <-a.shutdownChan:
			// Drain remaining updates before shutdown
			for {
				select {
				case update := <-a.lastUsedUpdates:
					// Use context.Background() so cleanup completes even
					// though appCtx is cancelled during shutdown; the
					// timeout still bounds it.
					ctx, cancel := a.opContext(context.Background())
					_ = a.repo.UpdateLastUsed(ctx, update.keyID, update.timestamp)
					cancel()
				default:
					return
				}
			}
		}
	}
}

// Shutdown gracefully shuts down the authenticator by signaling the worker
// to stop and waiting for it to finish processing remaining updates.
// It respects the provided context's deadline for shutdown timeout.
// This method is idempotent and safe to call multiple times.
func (a *Authenticator) Shutdown(ctx context.Context) error {
	var shutdownErr error
	a.shutdownOnce.Do(func() {
		close(a.shutdownChan)

		done := make(chan struct{})
		go func() {
			a.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			shutdownErr = nil
		case <-ctx.Done():
			shutdownErr = fmt.Errorf("shutdown timeout: %w", ctx.Err())
		}
	})
	return shutdownErr
}

// ValidateAPIKey validates an API key and returns the key information if
// valid. Returns *domain.AuthenticationError if the key is malformed,
// unknown, inactive or expired; the reason distinguishes bad credentials
// from expiry.
func (a *Authenticator) ValidateAPIKey(ctx context.Context, apiKey string) (*domain.APIKey, error) {
	keyParts, err := keygen.ParseAPIKey(apiKey)
	if err != nil {
		return nil, domain.NewAuthenticationError("", domain.AuthReasonInvalidCredentials)
	}

	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	key, err := a.repo.FindByShortToken(opCtx, keyParts.ShortToken)
	if err != nil || key == nil {
		return nil, domain.NewAuthenticationError("", domain.AuthReasonInvalidCredentials)
	}

	// Verify the long secret using BLAKE2b-256 with constant-time comparison
	providedHash := keygen.HashSecret(keyParts.LongSecret)
	if subtle.ConstantTimeCompare([]byte(key.LongSecretHash), []byte(providedHash)) != 1 {
		return nil, domain.NewAuthenticationError("", domain.AuthReasonInvalidCredentials)
	}

	if !key.IsActive {
		return nil, domain.NewAuthenticationError("API key revoked", domain.AuthReasonInsufficientPermissions)
	}

	if key.ExpiresAt != nil && key.ExpiresAt.Before(time.Now().UTC()) {
		return nil, domain.NewAuthenticationError("", domain.AuthReasonTokenExpired)
	}

	// Queue last_used_at update (non-blocking, processed by background worker)
	select {
	case a.lastUsedUpdates <- lastUsedUpdate{
		keyID:     key.ID,
		timestamp: time.Now().UTC(),
	}:
	default:
		// Channel full, drop the update: last_used_at is non-critical and
		// backpressure here prevents unbounded goroutine spawning.
		slog.WarnContext(ctx, "Dropped last_used_at update due to full queue",
			slog.String("key_id", key.ID))
	}

	return key, nil
}

// CreateAPIKey creates a new API key bound to a profile and returns the
// plain key (only shown once).
func CreateAPIKey(ctx context.Context, repo Repository, profileID, keyType, service, version, name string, expiresAt *time.Time) (string, error) {
	keyParts, err := keygen.GenerateAPIKey(keyType, service, version)
	if err != nil {
		return "", fmt.Errorf("failed to generate API key: %w", err)
	}

	longSecretHash := keygen.HashSecret(keyParts.LongSecret)

	keyID, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate key ID: %w", err)
	}

	err = repo.CreateKey(ctx, &domain.APIKey{
		ID:             keyID.String(),
		ProfileID:      profileID,
		KeyType:        keyParts.KeyType,
		Service:        keyParts.Service,
		Version:        keyParts.Version,
		ShortToken:     keyParts.ShortToken,
		LongSecretHash: longSecretHash,
		Name:           name,
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
		ExpiresAt:      expiresAt,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create API key: %w", err)
	}

	// The full plain key: this is the only time it is visible.
	return keyParts.FullKey, nil
}

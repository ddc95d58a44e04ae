package bucket

import (
	"context"

	"github.com/rezkam/bucketlist/internal/domain"
)

// Repository defines storage operations for bucket list management.
// This is the error-returning variant of the data-access contract: every
// failure surfaces as a Go error drawn from the domain error taxonomy.
// The explicit-failure-value variant is ResultRepository, which adapts
// any Repository without changing its store-call behavior.
//
// Lookup semantics: FindByID, FindCategoryByID and GetUserStats return
// (nil, nil) when the row does not exist - absence is a normal outcome
// for lookups. Update and Delete on a missing row return
// *domain.NotFoundError.
type Repository interface {
	// === Item Operations ===

	// FindAll retrieves items matching the given filters.
	// A nil filters pointer selects everything; so does an empty filter
	// object. Results use the stable default order (created_at desc).
	FindAll(ctx context.Context, filters *domain.BucketListFilters) ([]domain.BucketItem, error)

	// FindAllWithCategory retrieves filtered items joined with their
	// category rows, for feed views rendering category metadata inline.
	FindAllWithCategory(ctx context.Context, filters *domain.BucketListFilters) ([]domain.BucketItemWithCategory, error)

	// FindByID retrieves a single item. Returns (nil, nil) if absent.
	FindByID(ctx context.Context, id string) (*domain.BucketItem, error)

	// FindByProfileID retrieves one profile's items with optional
	// filtering and sorting. Nil sort applies the default order.
	FindByProfileID(ctx context.Context, profileID string, filters *domain.BucketListFilters, sort *domain.BucketListSort) ([]domain.BucketItem, error)

	// FindPublic retrieves items published to the shared feed.
	FindPublic(ctx context.Context, filters *domain.BucketListFilters, sort *domain.BucketListSort) ([]domain.BucketItem, error)

	// Create persists a new item from validated insert data.
	// Returns the item as persisted, with server-assigned ID and timestamps.
	Create(ctx context.Context, insert domain.InsertBucketItem) (*domain.BucketItem, error)

	// CreateBatch persists a collection of items in a single transaction.
	// All-or-none: on failure no item is persisted and the returned error
	// identifies the offending input by index.
	CreateBatch(ctx context.Context, inserts []domain.InsertBucketItem) ([]domain.BucketItem, error)

	// Update applies a partial patch; only non-nil fields change.
	// Status transitions maintain the completion timestamp invariant.
	// Returns *domain.NotFoundError if the item does not exist.
	Update(ctx context.Context, id string, patch domain.UpdateBucketItemParams) (*domain.BucketItem, error)

	// Delete removes an item permanently.
	// Returns *domain.NotFoundError if the item does not exist.
	Delete(ctx context.Context, id string) error

	// === Category Operations (read-only reference data) ===

	// FindAllCategories retrieves all categories ordered by id.
	FindAllCategories(ctx context.Context) ([]domain.Category, error)

	// FindCategoryByID retrieves a category. Returns (nil, nil) if absent.
	FindCategoryByID(ctx context.Context, id int) (*domain.Category, error)

	// === Stats ===

	// GetUserStats retrieves the derived per-profile statistics row.
	// Returns (nil, nil) when the profile has no stats row.
	GetUserStats(ctx context.Context, profileID string) (*domain.UserBucketStats, error)
}

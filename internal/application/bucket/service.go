package bucket

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rezkam/bucketlist/internal/domain"
	"github.com/rezkam/bucketlist/internal/memo"
)

// Service exposes the use-case operations of the bucket list over a
// Repository. It orchestrates store calls and dashboard aggregation;
// structural validation happens at the edge (value-object constructors
// and the HTTP schema layer), so the service trusts well-formed input.
type Service struct {
	repo   Repository
	logger *slog.Logger

	// Category loads are deduplicated and cached for the service lifetime.
	// Categories are immutable reference data seeded by migration, so
	// sharing results across requests cannot leak per-profile state: the
	// flight collapses concurrent loads into one store round trip, the
	// cache replays the result to later calls without touching the store.
	categoriesFlight memo.Flight[[]domain.Category]
	categoryCache    *memo.Cache[string, []domain.Category]

	// now is the clock; overridable in tests.
	now func() time.Time
}

// NewService creates the bucket list service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:          repo,
		logger:        logger,
		categoryCache: memo.NewCache[string, []domain.Category](),
		now:           time.Now,
	}
}

// GetUserBucketItems returns one profile's items. Filters and sort pass
// through to the repository unmodified: a nil pointer stays nil, since
// the repository distinguishes "no filter" from an empty filter object.
func (s *Service) GetUserBucketItems(ctx context.Context, profileID string, filters *domain.BucketListFilters, sort *domain.BucketListSort) ([]domain.BucketItem, error) {
	return s.repo.FindByProfileID(ctx, profileID, filters, sort)
}

// CreateBucketItem persists a new item from pre-validated insert data.
func (s *Service) CreateBucketItem(ctx context.Context, insert domain.InsertBucketItem) (*domain.BucketItem, error) {
	item, err := s.repo.Create(ctx, insert)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "bucket item created",
		"item_id", item.ID, "profile_id", item.ProfileID)
	return item, nil
}

// CreateBucketItemsBatch persists a collection of items atomically:
// either every item is created or none is. A failure identifies the
// offending input by index so callers can surface it per row.
func (s *Service) CreateBucketItemsBatch(ctx context.Context, inserts []domain.InsertBucketItem) ([]domain.BucketItem, error) {
	if len(inserts) == 0 {
		return []domain.BucketItem{}, nil
	}
	items, err := s.repo.CreateBatch(ctx, inserts)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "bucket items batch created", "count", len(items))
	return items, nil
}

// GetBucketItem returns an item by id, or (nil, nil) when absent.
func (s *Service) GetBucketItem(ctx context.Context, id string) (*domain.BucketItem, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateBucketItem applies a partial patch to an item.
func (s *Service) UpdateBucketItem(ctx context.Context, id string, patch domain.UpdateBucketItemParams) (*domain.BucketItem, error) {
	if patch.Empty() {
		return nil, domain.NewValidationError("patch", "update requires at least one field", "empty_patch")
	}
	return s.repo.Update(ctx, id, patch)
}

// DeleteBucketItem removes an item permanently.
func (s *Service) DeleteBucketItem(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// GetCategories returns the shared category reference data. Concurrent
// callers share one store round trip; after the first successful load
// the cached result is served without hitting the store again.
func (s *Service) GetCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categoriesFlight.Do(ctx, "categories", func(ctx context.Context) ([]domain.Category, error) {
		return s.categoryCache.GetOrLoad(ctx, "categories", s.repo.FindAllCategories)
	})
}

// GetUserStats returns the derived per-profile statistics, or (nil, nil)
// when the profile has no stats row.
func (s *Service) GetUserStats(ctx context.Context, profileID string) (*domain.UserBucketStats, error) {
	return s.repo.GetUserStats(ctx, profileID)
}

// GetPublicBucketItems returns items published to the shared feed.
func (s *Service) GetPublicBucketItems(ctx context.Context, filters *domain.BucketListFilters, sort *domain.BucketListSort) ([]domain.BucketItem, error) {
	return s.repo.FindPublic(ctx, filters, sort)
}

// GetDashboardData assembles the dashboard view for one profile. Items,
// stats and categories are fetched concurrently, exactly one repository
// call each; if any leg fails the whole operation fails - the dashboard
// is never partially populated. Aggregations run over the fetched item
// collection with a single reference "now".
func (s *Service) GetDashboardData(ctx context.Context, profileID string) (*DashboardData, error) {
	var (
		items      []domain.BucketItem
		stats      *domain.UserBucketStats
		categories []domain.Category
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.repo.FindByProfileID(ctx, profileID, nil, nil)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.repo.GetUserStats(ctx, profileID)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.GetCategories(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, domain.NewApplicationError("dashboard load failed", err, map[string]any{
			"profile_id": profileID,
		})
	}

	if stats == nil {
		stats = ComputeStats(profileID, items)
	}

	now := s.now().UTC()
	return &DashboardData{
		Items:             items,
		Stats:             stats,
		Categories:        categories,
		RecentlyCompleted: RecentlyCompleted(items),
		Upcoming:          UpcomingItems(items, now),
		CategoryBreakdown: CategoryBreakdown(items, categories),
	}, nil
}

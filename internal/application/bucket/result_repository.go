package bucket

import (
	"context"

	"github.com/rezkam/bucketlist/internal/domain"
)

// ResultRepository is the explicit-failure-value variant of the data
// access contract: every operation returns a domain.Result and never a
// Go error. It adapts any Repository, so both variants issue exactly the
// same underlying store calls with the same arguments - behavioral
// equivalence holds by construction and is asserted directly by the
// equivalence tests.
//
// Absence semantics carry over unchanged: FindByID, FindCategoryByID and
// GetUserStats yield a success result with a nil pointer when the row
// does not exist.
type ResultRepository struct {
	repo Repository
}

// NewResultRepository wraps an error-returning repository in the
// Result-typed contract.
func NewResultRepository(repo Repository) *ResultRepository {
	return &ResultRepository{repo: repo}
}

func (r *ResultRepository) FindAll(ctx context.Context, filters *domain.BucketListFilters) domain.Result[[]domain.BucketItem] {
	items, err := r.repo.FindAll(ctx, filters)
	if err != nil {
		return domain.Fail[[]domain.BucketItem](err)
	}
	return domain.Ok(items)
}

func (r *ResultRepository) FindAllWithCategory(ctx context.Context, filters *domain.BucketListFilters) domain.Result[[]domain.BucketItemWithCategory] {
	items, err := r.repo.FindAllWithCategory(ctx, filters)
	if err != nil {
		return domain.Fail[[]domain.BucketItemWithCategory](err)
	}
	return domain.Ok(items)
}

func (r *ResultRepository) FindByID(ctx context.Context, id string) domain.Result[*domain.BucketItem] {
	item, err := r.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Fail[*domain.BucketItem](err)
	}
	return domain.Ok(item)
}

func (r *ResultRepository) FindByProfileID(ctx context.Context, profileID string, filters *domain.BucketListFilters, sort *domain.BucketListSort) domain.Result[[]domain.BucketItem] {
	items, err := r.repo.FindByProfileID(ctx, profileID, filters, sort)
	if err != nil {
		return domain.Fail[[]domain.BucketItem](err)
	}
	return domain.Ok(items)
}

func (r *ResultRepository) FindPublic(ctx context.Context, filters *domain.BucketListFilters, sort *domain.BucketListSort) domain.Result[[]domain.BucketItem] {
	items, err := r.repo.FindPublic(ctx, filters, sort)
	if err != nil {
		return domain.Fail[[]domain.BucketItem](err)
	}
	return domain.Ok(items)
}

func (r *ResultRepository) Create(ctx context.Context, insert domain.InsertBucketItem) domain.Result[*domain.BucketItem] {
	item, err := r.repo.Create(ctx, insert)
	if err != nil {
		return domain.Fail[*domain.BucketItem](err)
	}
	return domain.Ok(item)
}

func (r *ResultRepository) CreateBatch(ctx context.Context, inserts []domain.InsertBucketItem) domain.Result[[]domain.BucketItem] {
	items, err := r.repo.CreateBatch(ctx, inserts)
	if err != nil {
		return domain.Fail[[]domain.BucketItem](err)
	}
	return domain.Ok(items)
}

func (r *ResultRepository) Update(ctx context.Context, id string, patch domain.UpdateBucketItemParams) domain.Result[*domain.BucketItem] {
	item, err := r.repo.Update(ctx, id, patch)
	if err != nil {
		return domain.Fail[*domain.BucketItem](err)
	}
	return domain.Ok(item)
}

func (r *ResultRepository) Delete(ctx context.Context, id string) domain.Result[struct{}] {
	if err := r.repo.Delete(ctx, id); err != nil {
		return domain.Fail[struct{}](err)
	}
	return domain.Ok(struct{}{})
}

func (r *ResultRepository) FindAllCategories(ctx context.Context) domain.Result[[]domain.Category] {
	categories, err := r.repo.FindAllCategories(ctx)
	if err != nil {
		return domain.Fail[[]domain.Category](err)
	}
	return domain.Ok(categories)
}

func (r *ResultRepository) FindCategoryByID(ctx context.Context, id int) domain.Result[*domain.Category] {
	category, err := r.repo.FindCategoryByID(ctx, id)
	if err != nil {
		return domain.Fail[*domain.Category](err)
	}
	return domain.Ok(category)
}

func (r *ResultRepository) GetUserStats(ctx context.Context, profileID string) domain.Result[*domain.UserBucketStats] {
	stats, err := r.repo.GetUserStats(ctx, profileID)
	if err != nil {
		return domain.Fail[*domain.UserBucketStats](err)
	}
	return domain.Ok(stats)
}

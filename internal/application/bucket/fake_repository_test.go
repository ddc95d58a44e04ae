package bucket

import (
	"context"
	"fmt"
	"sync"

	"github.com/rezkam/bucketlist/internal/domain"
)

// recordedCall is one store invocation with its full payload, rendered
// to a comparable string so call sequences can be asserted verbatim.
type recordedCall struct {
	op   string
	args string
}

// fakeRepo is a recording in-memory Repository. Each operation records
// its call, then replies from the configured fixtures. err, when set,
// fails every operation - used to drive error-path equivalence.
type fakeRepo struct {
	mu    sync.Mutex
	calls []recordedCall

	items      []domain.BucketItem
	item       *domain.BucketItem
	categories []domain.Category
	category   *domain.Category
	stats      *domain.UserBucketStats
	err        error

	// errOn fails only the named operation, for partial-failure tests.
	errOn string
}

func (f *fakeRepo) record(op string, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, recordedCall{op: op, args: fmt.Sprint(args...)})
}

func (f *fakeRepo) failure(op string) error {
	if f.err != nil {
		return f.err
	}
	if f.errOn == op {
		return domain.NewDatabaseError("injected failure", "57P01", op)
	}
	return nil
}

func (f *fakeRepo) callSeq() []recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedCall(nil), f.calls...)
}

func (f *fakeRepo) FindAll(_ context.Context, filters *domain.BucketListFilters) ([]domain.BucketItem, error) {
	f.record("FindAll", filters)
	if err := f.failure("FindAll"); err != nil {
		return nil, err
	}
	return f.items, nil
}

func (f *fakeRepo) FindAllWithCategory(_ context.Context, filters *domain.BucketListFilters) ([]domain.BucketItemWithCategory, error) {
	f.record("FindAllWithCategory", filters)
	if err := f.failure("FindAllWithCategory"); err != nil {
		return nil, err
	}
	joined := make([]domain.BucketItemWithCategory, 0, len(f.items))
	for _, item := range f.items {
		joined = append(joined, domain.BucketItemWithCategory{BucketItem: item})
	}
	return joined, nil
}

func (f *fakeRepo) FindByID(_ context.Context, id string) (*domain.BucketItem, error) {
	f.record("FindByID", id)
	if err := f.failure("FindByID"); err != nil {
		return nil, err
	}
	return f.item, nil
}

func (f *fakeRepo) FindByProfileID(_ context.Context, profileID string, filters *domain.BucketListFilters, sort *domain.BucketListSort) ([]domain.BucketItem, error) {
	f.record("FindByProfileID", profileID, filters, sort)
	if err := f.failure("FindByProfileID"); err != nil {
		return nil, err
	}
	return f.items, nil
}

func (f *fakeRepo) FindPublic(_ context.Context, filters *domain.BucketListFilters, sort *domain.BucketListSort) ([]domain.BucketItem, error) {
	f.record("FindPublic", filters, sort)
	if err := f.failure("FindPublic"); err != nil {
		return nil, err
	}
	return f.items, nil
}

func (f *fakeRepo) Create(_ context.Context, insert domain.InsertBucketItem) (*domain.BucketItem, error) {
	f.record("Create", insert)
	if err := f.failure("Create"); err != nil {
		return nil, err
	}
	return f.item, nil
}

func (f *fakeRepo) CreateBatch(_ context.Context, inserts []domain.InsertBucketItem) ([]domain.BucketItem, error) {
	f.record("CreateBatch", inserts)
	if err := f.failure("CreateBatch"); err != nil {
		return nil, err
	}
	return f.items, nil
}

func (f *fakeRepo) Update(_ context.Context, id string, patch domain.UpdateBucketItemParams) (*domain.BucketItem, error) {
	f.record("Update", id, patch)
	if err := f.failure("Update"); err != nil {
		return nil, err
	}
	if f.item == nil {
		return nil, domain.NewNotFoundError("item", id, "")
	}
	return f.item, nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	f.record("Delete", id)
	if err := f.failure("Delete"); err != nil {
		return err
	}
	if f.item == nil {
		return domain.NewNotFoundError("item", id, "")
	}
	return nil
}

func (f *fakeRepo) FindAllCategories(_ context.Context) ([]domain.Category, error) {
	f.record("FindAllCategories")
	if err := f.failure("FindAllCategories"); err != nil {
		return nil, err
	}
	return f.categories, nil
}

func (f *fakeRepo) FindCategoryByID(_ context.Context, id int) (*domain.Category, error) {
	f.record("FindCategoryByID", id)
	if err := f.failure("FindCategoryByID"); err != nil {
		return nil, err
	}
	return f.category, nil
}

func (f *fakeRepo) GetUserStats(_ context.Context, profileID string) (*domain.UserBucketStats, error) {
	f.record("GetUserStats", profileID)
	if err := f.failure("GetUserStats"); err != nil {
		return nil, err
	}
	return f.stats, nil
}

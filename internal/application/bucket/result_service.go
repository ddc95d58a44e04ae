package bucket

import (
	"context"

	"github.com/rezkam/bucketlist/internal/domain"
)

// ResultService is the explicit-failure-value view of the service layer.
// It adapts a Service, so both styles run the same orchestration code and
// the same repository calls; only the failure channel differs.
type ResultService struct {
	svc *Service
}

// NewResultService wraps a service in the Result-typed interface.
func NewResultService(svc *Service) *ResultService {
	return &ResultService{svc: svc}
}

func (s *ResultService) GetUserBucketItems(ctx context.Context, profileID string, filters *domain.BucketListFilters, sort *domain.BucketListSort) domain.Result[[]domain.BucketItem] {
	items, err := s.svc.GetUserBucketItems(ctx, profileID, filters, sort)
	if err != nil {
		return domain.Fail[[]domain.BucketItem](err)
	}
	return domain.Ok(items)
}

func (s *ResultService) CreateBucketItem(ctx context.Context, insert domain.InsertBucketItem) domain.Result[*domain.BucketItem] {
	item, err := s.svc.CreateBucketItem(ctx, insert)
	if err != nil {
		return domain.Fail[*domain.BucketItem](err)
	}
	return domain.Ok(item)
}

func (s *ResultService) CreateBucketItemsBatch(ctx context.Context, inserts []domain.InsertBucketItem) domain.Result[[]domain.BucketItem] {
	items, err := s.svc.CreateBucketItemsBatch(ctx, inserts)
	if err != nil {
		return domain.Fail[[]domain.BucketItem](err)
	}
	return domain.Ok(items)
}

func (s *ResultService) GetBucketItem(ctx context.Context, id string) domain.Result[*domain.BucketItem] {
	item, err := s.svc.GetBucketItem(ctx, id)
	if err != nil {
		return domain.Fail[*domain.BucketItem](err)
	}
	return domain.Ok(item)
}

func (s *ResultService) UpdateBucketItem(ctx context.Context, id string, patch domain.UpdateBucketItemParams) domain.Result[*domain.BucketItem] {
	item, err := s.svc.UpdateBucketItem(ctx, id, patch)
	if err != nil {
		return domain.Fail[*domain.BucketItem](err)
	}
	return domain.Ok(item)
}

func (s *ResultService) DeleteBucketItem(ctx context.Context, id string) domain.Result[struct{}] {
	if err := s.svc.DeleteBucketItem(ctx, id); err != nil {
		return domain.Fail[struct{}](err)
	}
	return domain.Ok(struct{}{})
}

func (s *ResultService) GetCategories(ctx context.Context) domain.Result[[]domain.Category] {
	categories, err := s.svc.GetCategories(ctx)
	if err != nil {
		return domain.Fail[[]domain.Category](err)
	}
	return domain.Ok(categories)
}

func (s *ResultService) GetUserStats(ctx context.Context, profileID string) domain.Result[*domain.UserBucketStats] {
	stats, err := s.svc.GetUserStats(ctx, profileID)
	if err != nil {
		return domain.Fail[*domain.UserBucketStats](err)
	}
	return domain.Ok(stats)
}

func (s *ResultService) GetPublicBucketItems(ctx context.Context, filters *domain.BucketListFilters, sort *domain.BucketListSort) domain.Result[[]domain.BucketItem] {
	items, err := s.svc.GetPublicBucketItems(ctx, filters, sort)
	if err != nil {
		return domain.Fail[[]domain.BucketItem](err)
	}
	return domain.Ok(items)
}

func (s *ResultService) GetDashboardData(ctx context.Context, profileID string) domain.Result[*DashboardData] {
	data, err := s.svc.GetDashboardData(ctx, profileID)
	if err != nil {
		return domain.Fail[*DashboardData](err)
	}
	return domain.Ok(data)
}

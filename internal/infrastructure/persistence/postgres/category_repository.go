package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/rezkam/bucketlist/internal/domain"
)

// === Category Operations ===

// FindAllCategories retrieves the seeded category reference data,
// ordered by id.
func (s *Store) FindAllCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.db.Query(ctx,
		"SELECT id, name, color, created_at FROM categories ORDER BY id")
	if err != nil {
		return nil, mapPgError(err, "FindAllCategories", "category")
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, mapPgError(err, "FindAllCategories", "category")
		}
		categories = append(categories, *category)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "FindAllCategories", "category")
	}
	return categories, nil
}

// FindCategoryByID retrieves a category, (nil, nil) when absent.
func (s *Store) FindCategoryByID(ctx context.Context, id int) (*domain.Category, error) {
	category, err := scanCategory(s.db.QueryRow(ctx,
		"SELECT id, name, color, created_at FROM categories WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapPgError(err, "FindCategoryByID", "category")
	}
	return category, nil
}

// === Stats ===

// GetUserStats reads the per-profile statistics view, (nil, nil) when
// the profile has no items yet.
func (s *Store) GetUserStats(ctx context.Context, profileID string) (*domain.UserBucketStats, error) {
	stats := &domain.UserBucketStats{ProfileID: profileID}

	err := s.db.QueryRow(ctx, `SELECT display_name, total_items, completed_items,
		in_progress_items, not_started_items, completion_rate
		FROM user_bucket_stats WHERE profile_id = $1`, profileID).
		Scan(&stats.DisplayName, &stats.Total, &stats.Completed,
			&stats.InProgress, &stats.NotStarted, &stats.CompletionRate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapPgError(err, "GetUserStats", "stats")
	}
	return stats, nil
}

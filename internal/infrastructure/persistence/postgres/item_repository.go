package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rezkam/bucketlist/internal/domain"
)

// === Item Operations ===

// FindAll retrieves items matching the given filters in the stable
// default order.
func (s *Store) FindAll(ctx context.Context, filters *domain.BucketListFilters) ([]domain.BucketItem, error) {
	var b queryBuilder
	query := "SELECT " + itemColumns + " FROM bucket_items" +
		whereClause(itemPredicates(filters, &b)) +
		orderClause(nil)

	rows, err := s.db.Query(ctx, query, b.args...)
	if err != nil {
		return nil, mapPgError(err, "FindAll", "item")
	}

	items, err := collectItems(rows)
	if err != nil {
		return nil, mapPgError(err, "FindAll", "item")
	}
	return items, nil
}

// FindAllWithCategory retrieves filtered items joined with their
// category rows.
func (s *Store) FindAllWithCategory(ctx context.Context, filters *domain.BucketListFilters) ([]domain.BucketItemWithCategory, error) {
	const joinedColumns = `bucket_items.id, profile_id, title, description, category_id,
	priority, status, is_public, due_type, due_date, completed_at,
	completion_comment, bucket_items.created_at, updated_at,
	c.id, c.name, c.color, c.created_at`

	var b queryBuilder
	query := "SELECT " + joinedColumns +
		" FROM bucket_items JOIN categories c ON c.id = bucket_items.category_id" +
		whereClause(itemPredicates(filters, &b)) +
		" ORDER BY bucket_items.created_at DESC, bucket_items.id ASC"

	rows, err := s.db.Query(ctx, query, b.args...)
	if err != nil {
		return nil, mapPgError(err, "FindAllWithCategory", "item")
	}
	defer rows.Close()

	joined := make([]domain.BucketItemWithCategory, 0)
	for rows.Next() {
		var (
			item      domain.BucketItem
			category  domain.Category
			priority  string
			status    string
			dueType   string
			createdAt time.Time
			updatedAt time.Time
			catCreate time.Time
		)
		err := rows.Scan(
			&item.ID, &item.ProfileID, &item.Title, &item.Description,
			&item.CategoryID, &priority, &status, &item.IsPublic,
			&dueType, &item.DueDate, &item.CompletedAt, &item.CompletionComment,
			&createdAt, &updatedAt,
			&category.ID, &category.Name, &category.Color, &catCreate,
		)
		if err != nil {
			return nil, mapPgError(err, "FindAllWithCategory", "item")
		}
		item.Priority = domain.Priority(priority)
		item.Status = domain.Status(status)
		item.DueType = domain.DueType(dueType)
		item.DueDate = timePtrUTC(item.DueDate)
		item.CompletedAt = timePtrUTC(item.CompletedAt)
		item.CreatedAt = createdAt.UTC()
		item.UpdatedAt = updatedAt.UTC()
		category.CreatedAt = catCreate.UTC()
		joined = append(joined, domain.BucketItemWithCategory{BucketItem: item, Category: category})
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "FindAllWithCategory", "item")
	}
	return joined, nil
}

// FindByID retrieves a single item, (nil, nil) when absent.
func (s *Store) FindByID(ctx context.Context, id string) (*domain.BucketItem, error) {
	query := "SELECT " + itemColumns + " FROM bucket_items WHERE id = $1"

	item, err := scanItem(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapPgError(err, "FindByID", "item")
	}
	return item, nil
}

// FindByProfileID retrieves one profile's items with optional filtering
// and sorting.
func (s *Store) FindByProfileID(ctx context.Context, profileID string, filters *domain.BucketListFilters, sort *domain.BucketListSort) ([]domain.BucketItem, error) {
	var b queryBuilder
	conditions := []string{"profile_id = " + b.bind(profileID)}
	conditions = append(conditions, itemPredicates(filters, &b)...)

	query := "SELECT " + itemColumns + " FROM bucket_items" +
		whereClause(conditions) + orderClause(sort)

	rows, err := s.db.Query(ctx, query, b.args...)
	if err != nil {
		return nil, mapPgError(err, "FindByProfileID", "item")
	}

	items, err := collectItems(rows)
	if err != nil {
		return nil, mapPgError(err, "FindByProfileID", "item")
	}
	return items, nil
}

// FindPublic retrieves items published to the shared feed.
func (s *Store) FindPublic(ctx context.Context, filters *domain.BucketListFilters, sort *domain.BucketListSort) ([]domain.BucketItem, error) {
	var b queryBuilder
	conditions := []string{"is_public = TRUE"}
	conditions = append(conditions, itemPredicates(filters, &b)...)

	query := "SELECT " + itemColumns + " FROM bucket_items" +
		whereClause(conditions) + orderClause(sort)

	rows, err := s.db.Query(ctx, query, b.args...)
	if err != nil {
		return nil, mapPgError(err, "FindPublic", "item")
	}

	items, err := collectItems(rows)
	if err != nil {
		return nil, mapPgError(err, "FindPublic", "item")
	}
	return items, nil
}

const insertItemQuery = `INSERT INTO bucket_items
	(id, profile_id, title, description, category_id, priority, status,
	 is_public, due_type, due_date, completed_at, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
	RETURNING ` + itemColumns

// insertCompletedAt returns the completion timestamp for a brand-new
// row. An item created already completed is stamped with the creation
// time, keeping the status/completed_at pairing the schema enforces.
func insertCompletedAt(status domain.Status, now time.Time) *time.Time {
	if status != domain.StatusCompleted {
		return nil
	}
	return &now
}

// Create persists a new item, assigning a v7 UUID and UTC timestamps.
func (s *Store) Create(ctx context.Context, insert domain.InsertBucketItem) (*domain.BucketItem, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, domain.NewApplicationError("failed to generate item id", err, nil)
	}
	now := time.Now().UTC()

	item, err := scanItem(s.db.QueryRow(ctx, insertItemQuery,
		id.String(), insert.ProfileID, insert.Title, insert.Description,
		insert.CategoryID, string(insert.Priority), string(insert.Status),
		insert.IsPublic, string(insert.DueType), insert.DueDate,
		insertCompletedAt(insert.Status, now), now,
	))
	if err != nil {
		return nil, mapPgError(err, "Create", "item")
	}
	return item, nil
}

// CreateBatch persists a collection of items in one transaction.
// All-or-none: the first failure rolls everything back, and the returned
// error carries the index of the offending input.
func (s *Store) CreateBatch(ctx context.Context, inserts []domain.InsertBucketItem) ([]domain.BucketItem, error) {
	if len(inserts) == 0 {
		return []domain.BucketItem{}, nil
	}

	items := make([]domain.BucketItem, 0, len(inserts))
	err := s.executeInTransaction(ctx, "create_batch", func(txStore *Store) error {
		for i, insert := range inserts {
			item, err := txStore.Create(ctx, insert)
			if err != nil {
				return domain.NewApplicationError(
					fmt.Sprintf("batch create failed at index %d", i), err,
					map[string]any{"index": i, "count": len(inserts)})
			}
			items = append(items, *item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Update applies a partial patch inside a transaction: the current row
// is locked, the patch applied in memory (status transitions run through
// ApplyStatus to keep the completion timestamp consistent), and the full
// row written back.
func (s *Store) Update(ctx context.Context, id string, patch domain.UpdateBucketItemParams) (*domain.BucketItem, error) {
	var updated *domain.BucketItem
	err := s.executeInTransaction(ctx, "update_item", func(txStore *Store) error {
		query := "SELECT " + itemColumns + " FROM bucket_items WHERE id = $1 FOR UPDATE"
		item, err := scanItem(txStore.db.QueryRow(ctx, query, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.NewNotFoundError("item", id, "")
			}
			return mapPgError(err, "Update", "item")
		}

		now := time.Now().UTC()
		if err := applyPatch(item, patch, now); err != nil {
			return err
		}
		item.UpdatedAt = now

		_, err = txStore.db.Exec(ctx, `UPDATE bucket_items SET
			title = $2, description = $3, category_id = $4, priority = $5,
			status = $6, is_public = $7, due_type = $8, due_date = $9,
			completed_at = $10, completion_comment = $11, updated_at = $12
			WHERE id = $1`,
			item.ID, item.Title, item.Description, item.CategoryID,
			string(item.Priority), string(item.Status), item.IsPublic,
			string(item.DueType), item.DueDate, item.CompletedAt,
			item.CompletionComment, item.UpdatedAt,
		)
		if err != nil {
			return mapPgError(err, "Update", "item")
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// applyPatch merges non-nil patch fields into the item. Status changes
// go through ApplyStatus so the completion invariant holds; a completion
// comment applies only while the item is completed. The merged item must
// not end up with due_type specific_date and no date, whichever side of
// the pair the patch touched.
func applyPatch(item *domain.BucketItem, patch domain.UpdateBucketItemParams, now time.Time) error {
	if patch.Title != nil {
		item.Title = *patch.Title
	}
	if patch.Description != nil {
		item.Description = patch.Description
	}
	if patch.CategoryID != nil {
		item.CategoryID = *patch.CategoryID
	}
	if patch.Priority != nil {
		item.Priority = *patch.Priority
	}
	if patch.IsPublic != nil {
		item.IsPublic = *patch.IsPublic
	}
	if patch.DueType != nil {
		item.DueType = *patch.DueType
		if item.DueType != domain.DueTypeSpecificDate {
			item.DueDate = nil
		}
	}
	if patch.DueDate != nil && item.DueType == domain.DueTypeSpecificDate {
		item.DueDate = timePtrUTC(patch.DueDate)
	}
	if item.DueType == domain.DueTypeSpecificDate && item.DueDate == nil {
		return domain.NewValidationError("due_date", "due_date is required when due_type is specific_date", "required")
	}
	if patch.Status != nil {
		item.ApplyStatus(*patch.Status, now)
	}
	if patch.CompletionComment != nil && item.Status == domain.StatusCompleted {
		item.CompletionComment = patch.CompletionComment
	}
	return nil
}

// Delete removes an item permanently.
func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM bucket_items WHERE id = $1", id)
	if err != nil {
		return mapPgError(err, "Delete", "item")
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("item", id, "")
	}
	return nil
}

package postgres

import (
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/rezkam/bucketlist/internal/domain"
)

// itemColumns is the canonical column list for bucket item scans. Every
// item query selects exactly these, in this order, so one scan helper
// serves them all.
const itemColumns = `id, profile_id, title, description, category_id, priority, status,
	is_public, due_type, due_date, completed_at, completion_comment, created_at, updated_at`

// scanItem reads one bucket item row. Timestamps normalize to UTC.
func scanItem(row pgx.Row) (*domain.BucketItem, error) {
	var (
		item              domain.BucketItem
		priority, status  string
		dueType           string
		dueDate           *time.Time
		completedAt       *time.Time
		createdAt         time.Time
		updatedAt         time.Time
		description       *string
		completionComment *string
	)

	err := row.Scan(
		&item.ID,
		&item.ProfileID,
		&item.Title,
		&description,
		&item.CategoryID,
		&priority,
		&status,
		&item.IsPublic,
		&dueType,
		&dueDate,
		&completedAt,
		&completionComment,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Description = description
	item.Priority = domain.Priority(priority)
	item.Status = domain.Status(status)
	item.DueType = domain.DueType(dueType)
	item.DueDate = timePtrUTC(dueDate)
	item.CompletedAt = timePtrUTC(completedAt)
	item.CompletionComment = completionComment
	item.CreatedAt = createdAt.UTC()
	item.UpdatedAt = updatedAt.UTC()
	return &item, nil
}

// collectItems drains a query result into a slice of items.
func collectItems(rows pgx.Rows) ([]domain.BucketItem, error) {
	defer rows.Close()

	items := make([]domain.BucketItem, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// scanCategory reads one category row.
func scanCategory(row pgx.Row) (*domain.Category, error) {
	var category domain.Category
	var createdAt time.Time

	if err := row.Scan(&category.ID, &category.Name, &category.Color, &createdAt); err != nil {
		return nil, err
	}
	category.CreatedAt = createdAt.UTC()
	return &category, nil
}

// timePtrUTC normalizes an optional timestamp to UTC.
func timePtrUTC(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}

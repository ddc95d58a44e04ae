package domain

import "time"

// BucketItem is the aggregate root of the bucket list: a single goal entry
// owned by a profile.
//
// Invariant: CompletedAt is non-nil if and only if Status == StatusCompleted.
// The repository update path maintains this through ApplyStatus; no other
// code writes CompletedAt directly.
type BucketItem struct {
	ID        string
	ProfileID string

	Title       string
	Description *string

	CategoryID int
	Priority   Priority
	Status     Status

	// IsPublic controls whether the item appears in the shared public feed.
	IsPublic bool

	// Due date specification. DueDate is set only when DueType is
	// specific_date; the coarse variants (this_year, next_year,
	// unspecified) carry no concrete timestamp.
	DueType DueType
	DueDate *time.Time

	// Completion tracking. CompletedAt is set on the transition into
	// completed and cleared when the item leaves completed.
	CompletedAt       *time.Time
	CompletionComment *string

	// Server-assigned timestamps, always UTC. UpdatedAt >= CreatedAt.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ApplyStatus transitions the item to the given status and keeps the
// completion timestamp consistent with it. The transition is idempotent:
// re-applying completed leaves the original CompletedAt untouched.
func (i *BucketItem) ApplyStatus(status Status, now time.Time) {
	if status == StatusCompleted {
		if i.Status != StatusCompleted || i.CompletedAt == nil {
			completedAt := now.UTC()
			i.CompletedAt = &completedAt
		}
	} else {
		i.CompletedAt = nil
		i.CompletionComment = nil
	}
	i.Status = status
}

// HasConcreteDueDate reports whether the item carries a resolvable due
// timestamp that can be compared against a reference time.
func (i *BucketItem) HasConcreteDueDate() bool {
	return i.DueType == DueTypeSpecificDate && i.DueDate != nil
}

// BucketItemWithCategory is a read model joining an item with its category
// row, used by feed views that render category name and color inline.
type BucketItemWithCategory struct {
	BucketItem
	Category Category
}

// Category is shared read-only reference data: items point at exactly one
// category. Categories are seeded by migration and never mutated by the
// application.
type Category struct {
	ID        int
	Name      string
	Color     string
	CreatedAt time.Time
}

// UserBucketStats is a derived aggregate over one profile's items. It is
// computed on demand (either by the stats view or from an in-memory item
// collection) and never persisted by this layer.
type UserBucketStats struct {
	ProfileID   string
	DisplayName *string

	Total      int
	Completed  int
	InProgress int
	NotStarted int

	// CompletionRate is Completed/Total as a percentage, 0 when Total is 0.
	CompletionRate float64
}

// InsertBucketItem carries validated insert data for a new item. The
// schema layer guarantees structural validity before this reaches the
// service; the repository assigns ID and timestamps.
type InsertBucketItem struct {
	ProfileID   string
	Title       string
	Description *string
	CategoryID  int
	Priority    Priority
	Status      Status
	IsPublic    bool
	DueType     DueType
	DueDate     *time.Time
}

// UpdateBucketItemParams is a partial patch: only non-nil fields are
// applied. Status transitions manage CompletedAt through ApplyStatus.
type UpdateBucketItemParams struct {
	Title             *string
	Description       *string
	CategoryID        *int
	Priority          *Priority
	Status            *Status
	IsPublic          *bool
	DueType           *DueType
	DueDate           *time.Time
	CompletionComment *string
}

// Empty reports whether the patch carries no field changes.
func (p UpdateBucketItemParams) Empty() bool {
	return p.Title == nil && p.Description == nil && p.CategoryID == nil &&
		p.Priority == nil && p.Status == nil && p.IsPublic == nil &&
		p.DueType == nil && p.DueDate == nil && p.CompletionComment == nil
}

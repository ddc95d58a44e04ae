package domain

// BucketListFilters is an optional-field predicate bag for item queries.
// Absent (nil) fields impose no constraint. Composition is conjunctive,
// except Search which matches title OR description by case-insensitive
// substring containment.
//
// Common use cases:
//   - "My completed travel goals": ProfileID=p, CategoryID=2, Status=completed
//   - "Public high-priority items": IsPublic=true, Priority=high
//   - Free text: Search="marathon"
type BucketListFilters struct {
	ProfileID  *string
	CategoryID *int
	Priority   *Priority
	Status     *Status
	IsPublic   *bool
	Search     *string
}

// Empty reports whether no predicate is set. Note that a nil *filters*
// pointer and an empty filter object both select everything; callers that
// care about the distinction (the service pass-through contract) must not
// coerce nil into an empty value.
func (f BucketListFilters) Empty() bool {
	return f.ProfileID == nil && f.CategoryID == nil && f.Priority == nil &&
		f.Status == nil && f.IsPublic == nil && f.Search == nil
}

// BucketListSort is a single (field, direction) ordering specification.
// When absent, the repository applies the stable default order
// (created_at descending) so unsorted queries stay deterministic.
type BucketListSort struct {
	Field     SortField
	Direction SortDirection
}

// DefaultSort is the ordering applied when no sort is requested.
func DefaultSort() BucketListSort {
	return BucketListSort{Field: SortByCreatedAt, Direction: SortDesc}
}

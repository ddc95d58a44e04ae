package domain

// Priority represents the priority level of a bucket list item.
// Value object - immutable string enum.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Status represents the progress state of a bucket list item.
// Value object - immutable string enum.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// DueType describes how the due date of an item is specified.
// Only DueTypeSpecificDate carries a concrete calendar date; the other
// variants are coarse buckets with no resolvable timestamp.
type DueType string

const (
	DueTypeSpecificDate DueType = "specific_date"
	DueTypeThisYear     DueType = "this_year"
	DueTypeNextYear     DueType = "next_year"
	DueTypeUnspecified  DueType = "unspecified"
)

// SortField identifies a column items can be ordered by.
type SortField string

const (
	SortByCreatedAt SortField = "created_at"
	SortByDueDate   SortField = "due_date"
	SortByTitle     SortField = "title"
	SortByPriority  SortField = "priority"
)

// SortDirection is the order direction for a sort field.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

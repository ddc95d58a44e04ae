package domain

import (
	"fmt"
	"strings"
)

// Title length limits for bucket list items.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
)

// Title is a validated title value object (1-200 characters).
type Title struct {
	value string
}

// NewTitle creates a new Title, validating the input.
func NewTitle(s string) (Title, error) {
	s = strings.TrimSpace(s)

	if s == "" {
		return Title{}, NewValidationError("title", "title is required", "required")
	}

	if len(s) > MaxTitleLength {
		return Title{}, NewValidationError("title", fmt.Sprintf("title must be %d characters or less", MaxTitleLength), "too_long")
	}

	return Title{value: s}, nil
}

// String returns the title value.
func (t Title) String() string {
	return t.value
}

// Description is a validated description value object (0-1000 characters).
type Description struct {
	value string
}

// NewDescription creates a new Description. Empty input is allowed.
func NewDescription(s string) (Description, error) {
	s = strings.TrimSpace(s)

	if len(s) > MaxDescriptionLength {
		return Description{}, NewValidationError("description", fmt.Sprintf("description must be %d characters or less", MaxDescriptionLength), "too_long")
	}

	return Description{value: s}, nil
}

// String returns the description value.
func (d Description) String() string {
	return d.value
}

// NewPriority validates and creates a Priority.
// Empty input defaults to medium.
func NewPriority(s string) (Priority, error) {
	if s == "" {
		return PriorityMedium, nil
	}

	priority := Priority(strings.ToLower(s))

	switch priority {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return priority, nil
	default:
		return "", NewValidationError("priority", fmt.Sprintf("invalid priority: %s", s), "invalid_enum")
	}
}

// NewStatus validates and creates a Status.
// Empty input defaults to not_started.
func NewStatus(s string) (Status, error) {
	if s == "" {
		return StatusNotStarted, nil
	}

	status := Status(strings.ToLower(s))

	switch status {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return status, nil
	default:
		return "", NewValidationError("status", fmt.Sprintf("invalid status: %s", s), "invalid_enum")
	}
}

// NewDueType validates and creates a DueType.
// Empty input defaults to unspecified.
func NewDueType(s string) (DueType, error) {
	if s == "" {
		return DueTypeUnspecified, nil
	}

	dueType := DueType(strings.ToLower(s))

	switch dueType {
	case DueTypeSpecificDate, DueTypeThisYear, DueTypeNextYear, DueTypeUnspecified:
		return dueType, nil
	default:
		return "", NewValidationError("due_type", fmt.Sprintf("invalid due type: %s", s), "invalid_enum")
	}
}

// NewSortField validates and creates a SortField.
func NewSortField(s string) (SortField, error) {
	field := SortField(strings.ToLower(s))

	switch field {
	case SortByCreatedAt, SortByDueDate, SortByTitle, SortByPriority:
		return field, nil
	default:
		return "", NewValidationError("sort", fmt.Sprintf("unsupported sort field: %s", s), "invalid_enum")
	}
}

// NewSortDirection validates and creates a SortDirection.
// Empty input defaults to descending, matching the repository default order.
func NewSortDirection(s string) (SortDirection, error) {
	if s == "" {
		return SortDesc, nil
	}

	dir := SortDirection(strings.ToLower(s))

	switch dir {
	case SortAsc, SortDesc:
		return dir, nil
	default:
		return "", NewValidationError("order", fmt.Sprintf("invalid sort direction: %s", s), "invalid_enum")
	}
}

package handler

import (
	"net/url"
	"strconv"

	"github.com/rezkam/bucketlist/internal/domain"
)

// parseFilters builds the filter object from query parameters. Absent
// parameters stay absent; a request with no filter parameters yields a
// nil filter pointer so the repository sees "no filter", not an empty
// one.
func parseFilters(query url.Values) (*domain.BucketListFilters, error) {
	var filters domain.BucketListFilters

	if raw := query.Get("category_id"); raw != "" {
		categoryID, err := strconv.Atoi(raw)
		if err != nil {
			return nil, domain.NewValidationError("category_id", "must be an integer", "invalid_type")
		}
		filters.CategoryID = &categoryID
	}
	if raw := query.Get("priority"); raw != "" {
		priority, err := domain.NewPriority(raw)
		if err != nil {
			return nil, err
		}
		filters.Priority = &priority
	}
	if raw := query.Get("status"); raw != "" {
		status, err := domain.NewStatus(raw)
		if err != nil {
			return nil, err
		}
		filters.Status = &status
	}
	if raw := query.Get("is_public"); raw != "" {
		isPublic, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, domain.NewValidationError("is_public", "must be a boolean", "invalid_type")
		}
		filters.IsPublic = &isPublic
	}
	if raw := query.Get("search"); raw != "" {
		search := raw
		filters.Search = &search
	}

	if filters.Empty() {
		return nil, nil
	}
	return &filters, nil
}

// parseSort builds the sort specification from the sort and order query
// parameters. Absent parameters yield a nil sort, leaving the default
// order to the repository.
func parseSort(query url.Values) (*domain.BucketListSort, error) {
	rawField := query.Get("sort")
	rawDirection := query.Get("order")
	if rawField == "" && rawDirection == "" {
		return nil, nil
	}

	field := domain.SortByCreatedAt
	if rawField != "" {
		parsed, err := domain.NewSortField(rawField)
		if err != nil {
			return nil, err
		}
		field = parsed
	}

	direction, err := domain.NewSortDirection(rawDirection)
	if err != nil {
		return nil, err
	}

	return &domain.BucketListSort{Field: field, Direction: direction}, nil
}

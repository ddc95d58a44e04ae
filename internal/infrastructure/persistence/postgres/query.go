package postgres

import (
	"fmt"
	"strings"

	"github.com/rezkam/bucketlist/internal/domain"
)

// Filter and sort specifications compose into SQL here, in one place.
// Predicates AND together; the free-text search predicate ORs title and
// description internally. Column names come from fixed whitelists, never
// from input, so the builder cannot be steered into injection.

// queryBuilder collects positional arguments and renders $n placeholders.
type queryBuilder struct {
	args []any
}

func (b *queryBuilder) bind(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

// likePattern wraps a search term for ILIKE containment, escaping the
// pattern metacharacters so user input matches literally.
func likePattern(term string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
	return "%" + escaped + "%"
}

// itemPredicates renders the filter object into WHERE conditions. A nil
// filters pointer and an empty filter object both yield no conditions:
// absent fields impose no constraint.
func itemPredicates(filters *domain.BucketListFilters, b *queryBuilder) []string {
	if filters == nil {
		return nil
	}

	var conditions []string
	if filters.ProfileID != nil {
		conditions = append(conditions, "profile_id = "+b.bind(*filters.ProfileID))
	}
	if filters.CategoryID != nil {
		conditions = append(conditions, "category_id = "+b.bind(*filters.CategoryID))
	}
	if filters.Priority != nil {
		conditions = append(conditions, "priority = "+b.bind(string(*filters.Priority)))
	}
	if filters.Status != nil {
		conditions = append(conditions, "status = "+b.bind(string(*filters.Status)))
	}
	if filters.IsPublic != nil {
		conditions = append(conditions, "is_public = "+b.bind(*filters.IsPublic))
	}
	if filters.Search != nil {
		pattern := b.bind(likePattern(*filters.Search))
		conditions = append(conditions,
			fmt.Sprintf("(title ILIKE %s OR description ILIKE %s)", pattern, pattern))
	}
	return conditions
}

// whereClause joins conditions into a WHERE clause, or returns the empty
// string when nothing constrains the query.
func whereClause(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conditions, " AND ")
}

// sortColumns whitelists the sortable columns.
var sortColumns = map[domain.SortField]string{
	domain.SortByCreatedAt: "created_at",
	domain.SortByDueDate:   "due_date",
	domain.SortByTitle:     "title",
	domain.SortByPriority:  "priority",
}

// orderClause renders the sort specification, falling back to the stable
// default (created_at desc) for a nil sort or an unknown field. A
// trailing id tiebreaker keeps equal-key orderings deterministic.
func orderClause(sort *domain.BucketListSort) string {
	spec := domain.DefaultSort()
	if sort != nil {
		spec = *sort
	}

	column, ok := sortColumns[spec.Field]
	if !ok {
		column = sortColumns[domain.SortByCreatedAt]
	}
	direction := "DESC"
	if spec.Direction == domain.SortAsc {
		direction = "ASC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, id ASC", column, direction)
}

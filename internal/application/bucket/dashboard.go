package bucket

import (
	"math"
	"sort"
	"time"

	"github.com/rezkam/bucketlist/internal/domain"
)

const (
	recentlyCompletedLimit = 5
	upcomingLimit          = 5
	upcomingWindow         = 30 * 24 * time.Hour
)

// DashboardData is the composite read model for the dashboard view,
// assembled from one concurrent fan-out over the repository.
type DashboardData struct {
	Items             []domain.BucketItem
	Stats             *domain.UserBucketStats
	Categories        []domain.Category
	RecentlyCompleted []domain.BucketItem
	Upcoming          []domain.BucketItem
	CategoryBreakdown []CategoryStats
}

// CategoryStats is the per-category slice of the dashboard breakdown.
type CategoryStats struct {
	Category   domain.Category
	Total      int
	Completed  int
	Percentage float64
}

// The aggregation functions below are pure: they read (items, now) and
// never touch the store or mutate their inputs, so identical input
// always yields identical output and results are safe to memoize.

// CompletionRate returns completed/total as a percentage. Zero items
// means zero percent, not a division error.
func CompletionRate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

// RecentlyCompleted returns the newest completed items, ordered by
// completion time descending and capped at five.
func RecentlyCompleted(items []domain.BucketItem) []domain.BucketItem {
	completed := make([]domain.BucketItem, 0, len(items))
	for _, item := range items {
		if item.Status == domain.StatusCompleted && item.CompletedAt != nil {
			completed = append(completed, item)
		}
	}

	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].CompletedAt.After(*completed[j].CompletedAt)
	})

	if len(completed) > recentlyCompletedLimit {
		completed = completed[:recentlyCompletedLimit]
	}
	return completed
}

// UpcomingItems returns unfinished items whose due date falls inside the
// next 30 days from now, ordered by due date ascending and capped at
// five. Items without a concrete due date (due_type other than
// specific_date) cannot be temporally compared and are excluded.
func UpcomingItems(items []domain.BucketItem, now time.Time) []domain.BucketItem {
	horizon := now.Add(upcomingWindow)

	upcoming := make([]domain.BucketItem, 0, len(items))
	for _, item := range items {
		if item.Status == domain.StatusCompleted || !item.HasConcreteDueDate() {
			continue
		}
		if item.DueDate.Before(now) || item.DueDate.After(horizon) {
			continue
		}
		upcoming = append(upcoming, item)
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].DueDate.Before(*upcoming[j].DueDate)
	})

	if len(upcoming) > upcomingLimit {
		upcoming = upcoming[:upcomingLimit]
	}
	return upcoming
}

// CategoryBreakdown counts total and completed items per category and
// derives a rounded completion percentage. Categories with no items
// still appear with zero counts so the dashboard renders a full legend.
func CategoryBreakdown(items []domain.BucketItem, categories []domain.Category) []CategoryStats {
	breakdown := make([]CategoryStats, len(categories))
	index := make(map[int]int, len(categories))
	for i, category := range categories {
		breakdown[i] = CategoryStats{Category: category}
		index[category.ID] = i
	}

	for _, item := range items {
		i, ok := index[item.CategoryID]
		if !ok {
			continue
		}
		breakdown[i].Total++
		if item.Status == domain.StatusCompleted {
			breakdown[i].Completed++
		}
	}

	for i := range breakdown {
		breakdown[i].Percentage = math.Round(CompletionRate(breakdown[i].Completed, breakdown[i].Total))
	}
	return breakdown
}

// ComputeStats derives per-profile statistics from an in-memory item
// collection. Used as the fallback when the store has no stats row for
// the profile yet.
func ComputeStats(profileID string, items []domain.BucketItem) *domain.UserBucketStats {
	stats := &domain.UserBucketStats{ProfileID: profileID}
	for _, item := range items {
		stats.Total++
		switch item.Status {
		case domain.StatusCompleted:
			stats.Completed++
		case domain.StatusInProgress:
			stats.InProgress++
		case domain.StatusNotStarted:
			stats.NotStarted++
		}
	}
	stats.CompletionRate = CompletionRate(stats.Completed, stats.Total)
	return stats
}

package handler

import (
	"time"

	"github.com/rezkam/bucketlist/internal/application/bucket"
	"github.com/rezkam/bucketlist/internal/domain"
)

// Wire DTOs. The request types validate through the domain value-object
// constructors here at the edge; the service trusts the insert data it
// receives.

type itemResponse struct {
	ID                string     `json:"id"`
	ProfileID         string     `json:"profile_id"`
	Title             string     `json:"title"`
	Description       *string    `json:"description,omitempty"`
	CategoryID        int        `json:"category_id"`
	Priority          string     `json:"priority"`
	Status            string     `json:"status"`
	IsPublic          bool       `json:"is_public"`
	DueType           string     `json:"due_type"`
	DueDate           *time.Time `json:"due_date,omitempty"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	CompletionComment *string    `json:"completion_comment,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func toItemResponse(item domain.BucketItem) itemResponse {
	return itemResponse{
		ID:                item.ID,
		ProfileID:         item.ProfileID,
		Title:             item.Title,
		Description:       item.Description,
		CategoryID:        item.CategoryID,
		Priority:          string(item.Priority),
		Status:            string(item.Status),
		IsPublic:          item.IsPublic,
		DueType:           string(item.DueType),
		DueDate:           item.DueDate,
		CompletedAt:       item.CompletedAt,
		CompletionComment: item.CompletionComment,
		CreatedAt:         item.CreatedAt,
		UpdatedAt:         item.UpdatedAt,
	}
}

func toItemResponses(items []domain.BucketItem) []itemResponse {
	responses := make([]itemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toItemResponse(item))
	}
	return responses
}

type categoryResponse struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

func toCategoryResponses(categories []domain.Category) []categoryResponse {
	responses := make([]categoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, categoryResponse{
			ID:    category.ID,
			Name:  category.Name,
			Color: category.Color,
		})
	}
	return responses
}

type statsResponse struct {
	ProfileID      string  `json:"profile_id"`
	DisplayName    *string `json:"display_name,omitempty"`
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	InProgress     int     `json:"in_progress"`
	NotStarted     int     `json:"not_started"`
	CompletionRate float64 `json:"completion_rate"`
}

func toStatsResponse(stats *domain.UserBucketStats) statsResponse {
	return statsResponse{
		ProfileID:      stats.ProfileID,
		DisplayName:    stats.DisplayName,
		Total:          stats.Total,
		Completed:      stats.Completed,
		InProgress:     stats.InProgress,
		NotStarted:     stats.NotStarted,
		CompletionRate: stats.CompletionRate,
	}
}

type categoryStatsResponse struct {
	Category   categoryResponse `json:"category"`
	Total      int              `json:"total"`
	Completed  int              `json:"completed"`
	Percentage float64          `json:"percentage"`
}

type dashboardResponse struct {
	Items             []itemResponse          `json:"items"`
	Stats             statsResponse           `json:"stats"`
	Categories        []categoryResponse      `json:"categories"`
	RecentlyCompleted []itemResponse          `json:"recently_completed"`
	Upcoming          []itemResponse          `json:"upcoming"`
	CategoryBreakdown []categoryStatsResponse `json:"category_breakdown"`
}

func toDashboardResponse(data *bucket.DashboardData) dashboardResponse {
	breakdown := make([]categoryStatsResponse, 0, len(data.CategoryBreakdown))
	for _, entry := range data.CategoryBreakdown {
		breakdown = append(breakdown, categoryStatsResponse{
			Category: categoryResponse{
				ID:    entry.Category.ID,
				Name:  entry.Category.Name,
				Color: entry.Category.Color,
			},
			Total:      entry.Total,
			Completed:  entry.Completed,
			Percentage: entry.Percentage,
		})
	}

	return dashboardResponse{
		Items:             toItemResponses(data.Items),
		Stats:             toStatsResponse(data.Stats),
		Categories:        toCategoryResponses(data.Categories),
		RecentlyCompleted: toItemResponses(data.RecentlyCompleted),
		Upcoming:          toItemResponses(data.Upcoming),
		CategoryBreakdown: breakdown,
	}
}

type createItemRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	CategoryID  int        `json:"category_id"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	IsPublic    bool       `json:"is_public"`
	DueType     string     `json:"due_type"`
	DueDate     *time.Time `json:"due_date"`
}

// toInsert validates the request through the value-object constructors
// and binds it to the authenticated profile.
func (r createItemRequest) toInsert(profileID string) (domain.InsertBucketItem, error) {
	title, err := domain.NewTitle(r.Title)
	if err != nil {
		return domain.InsertBucketItem{}, err
	}

	var description *string
	if r.Description != nil {
		parsed, err := domain.NewDescription(*r.Description)
		if err != nil {
			return domain.InsertBucketItem{}, err
		}
		if s := parsed.String(); s != "" {
			description = &s
		}
	}

	priority, err := domain.NewPriority(r.Priority)
	if err != nil {
		return domain.InsertBucketItem{}, err
	}
	status, err := domain.NewStatus(r.Status)
	if err != nil {
		return domain.InsertBucketItem{}, err
	}
	dueType, err := domain.NewDueType(r.DueType)
	if err != nil {
		return domain.InsertBucketItem{}, err
	}
	if dueType == domain.DueTypeSpecificDate && r.DueDate == nil {
		return domain.InsertBucketItem{}, domain.NewValidationError(
			"due_date", "required when due_type is specific_date", "required")
	}

	dueDate := r.DueDate
	if dueType != domain.DueTypeSpecificDate {
		dueDate = nil
	}

	return domain.InsertBucketItem{
		ProfileID:   profileID,
		Title:       title.String(),
		Description: description,
		CategoryID:  r.CategoryID,
		Priority:    priority,
		Status:      status,
		IsPublic:    r.IsPublic,
		DueType:     dueType,
		DueDate:     dueDate,
	}, nil
}

type updateItemRequest struct {
	Title             *string    `json:"title"`
	Description       *string    `json:"description"`
	CategoryID        *int       `json:"category_id"`
	Priority          *string    `json:"priority"`
	Status            *string    `json:"status"`
	IsPublic          *bool      `json:"is_public"`
	DueType           *string    `json:"due_type"`
	DueDate           *time.Time `json:"due_date"`
	CompletionComment *string    `json:"completion_comment"`
}

func (r updateItemRequest) toParams() (domain.UpdateBucketItemParams, error) {
	var params domain.UpdateBucketItemParams

	if r.Title != nil {
		title, err := domain.NewTitle(*r.Title)
		if err != nil {
			return params, err
		}
		s := title.String()
		params.Title = &s
	}
	if r.Description != nil {
		description, err := domain.NewDescription(*r.Description)
		if err != nil {
			return params, err
		}
		s := description.String()
		params.Description = &s
	}
	params.CategoryID = r.CategoryID
	if r.Priority != nil {
		priority, err := domain.NewPriority(*r.Priority)
		if err != nil {
			return params, err
		}
		params.Priority = &priority
	}
	if r.Status != nil {
		status, err := domain.NewStatus(*r.Status)
		if err != nil {
			return params, err
		}
		params.Status = &status
	}
	params.IsPublic = r.IsPublic
	if r.DueType != nil {
		dueType, err := domain.NewDueType(*r.DueType)
		if err != nil {
			return params, err
		}
		params.DueType = &dueType
	}
	params.DueDate = r.DueDate
	params.CompletionComment = r.CompletionComment
	return params, nil
}

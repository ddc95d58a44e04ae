package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/bucketlist/internal/application/bucket"
	"github.com/rezkam/bucketlist/internal/domain"
	"github.com/rezkam/bucketlist/internal/http/middleware"
)

// stubRepo is an in-memory Repository for handler tests.
type stubRepo struct {
	items      map[string]domain.BucketItem
	categories []domain.Category
	stats      *domain.UserBucketStats
	err        error
}

func newStubRepo(items ...domain.BucketItem) *stubRepo {
	r := &stubRepo{items: make(map[string]domain.BucketItem)}
	for _, item := range items {
		r.items[item.ID] = item
	}
	return r
}

func (r *stubRepo) FindAll(ctx context.Context, filters *domain.BucketListFilters) ([]domain.BucketItem, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]domain.BucketItem, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	return out, nil
}

func (r *stubRepo) FindAllWithCategory(ctx context.Context, filters *domain.BucketListFilters) ([]domain.BucketItemWithCategory, error) {
	return nil, r.err
}

func (r *stubRepo) FindByID(ctx context.Context, id string) (*domain.BucketItem, error) {
	if r.err != nil {
		return nil, r.err
	}
	if item, ok := r.items[id]; ok {
		return &item, nil
	}
	return nil, nil
}

func (r *stubRepo) FindByProfileID(ctx context.Context, profileID string, filters *domain.BucketListFilters, sort *domain.BucketListSort) ([]domain.BucketItem, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]domain.BucketItem, 0)
	for _, item := range r.items {
		if item.ProfileID == profileID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *stubRepo) FindPublic(ctx context.Context, filters *domain.BucketListFilters, sort *domain.BucketListSort) ([]domain.BucketItem, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]domain.BucketItem, 0)
	for _, item := range r.items {
		if item.IsPublic {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *stubRepo) Create(ctx context.Context, insert domain.InsertBucketItem) (*domain.BucketItem, error) {
	if r.err != nil {
		return nil, r.err
	}
	now := time.Now().UTC()
	item := domain.BucketItem{
		ID:          uuid.NewString(),
		ProfileID:   insert.ProfileID,
		Title:       insert.Title,
		Description: insert.Description,
		CategoryID:  insert.CategoryID,
		Priority:    insert.Priority,
		Status:      insert.Status,
		IsPublic:    insert.IsPublic,
		DueType:     insert.DueType,
		DueDate:     insert.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if insert.Status == domain.StatusCompleted {
		item.CompletedAt = &now
	}
	r.items[item.ID] = item
	return &item, nil
}

func (r *stubRepo) CreateBatch(ctx context.Context, inserts []domain.InsertBucketItem) ([]domain.BucketItem, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]domain.BucketItem, 0, len(inserts))
	for _, insert := range inserts {
		item, err := r.Create(ctx, insert)
		if err != nil {
			return nil, err
		}
		out = append(out, *item)
	}
	return out, nil
}

func (r *stubRepo) Update(ctx context.Context, id string, patch domain.UpdateBucketItemParams) (*domain.BucketItem, error) {
	if r.err != nil {
		return nil, r.err
	}
	item, ok := r.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("item", id, "")
	}
	if patch.Title != nil {
		item.Title = *patch.Title
	}
	if patch.DueType != nil {
		item.DueType = *patch.DueType
		if item.DueType != domain.DueTypeSpecificDate {
			item.DueDate = nil
		}
	}
	if patch.DueDate != nil && item.DueType == domain.DueTypeSpecificDate {
		item.DueDate = patch.DueDate
	}
	if item.DueType == domain.DueTypeSpecificDate && item.DueDate == nil {
		return nil, domain.NewValidationError("due_date", "due_date is required when due_type is specific_date", "required")
	}
	if patch.Status != nil {
		item.ApplyStatus(*patch.Status, time.Now().UTC())
	}
	item.UpdatedAt = time.Now().UTC()
	r.items[id] = item
	return &item, nil
}

func (r *stubRepo) Delete(ctx context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.items[id]; !ok {
		return domain.NewNotFoundError("item", id, "")
	}
	delete(r.items, id)
	return nil
}

func (r *stubRepo) FindAllCategories(ctx context.Context) ([]domain.Category, error) {
	return r.categories, r.err
}

func (r *stubRepo) FindCategoryByID(ctx context.Context, id int) (*domain.Category, error) {
	for _, category := range r.categories {
		if category.ID == id {
			return &category, nil
		}
	}
	return nil, nil
}

func (r *stubRepo) GetUserStats(ctx context.Context, profileID string) (*domain.UserBucketStats, error) {
	return r.stats, r.err
}

var _ bucket.Repository = (*stubRepo)(nil)

const (
	testProfile  = "profile-1"
	otherProfile = "profile-2"
)

func testItem(profileID string) domain.BucketItem {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return domain.BucketItem{
		ID:         uuid.NewString(),
		ProfileID:  profileID,
		Title:      "Climb Kilimanjaro",
		CategoryID: 1,
		Priority:   domain.PriorityHigh,
		Status:     domain.StatusNotStarted,
		DueType:    domain.DueTypeUnspecified,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// newTestRouter mounts the handlers the way the real router does, with a
// stub middleware that installs the test profile instead of validating a
// key.
func newTestRouter(repo *stubRepo) *chi.Mux {
	service := bucket.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
	server := NewServer(service)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middleware.WithProfileID(req.Context(), testProfile)))
		})
	})
	r.Get("/items", server.ListItems)
	r.Post("/items", server.CreateItem)
	r.Post("/items/batch", server.CreateItemsBatch)
	r.Get("/items/{id}", server.GetItem)
	r.Patch("/items/{id}", server.UpdateItem)
	r.Delete("/items/{id}", server.DeleteItem)
	r.Get("/categories", server.ListCategories)
	r.Get("/stats", server.GetStats)
	r.Get("/dashboard", server.GetDashboard)
	r.Get("/public/items", server.ListPublicItems)
	return r
}

func doRequest(t *testing.T, router *chi.Mux, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestListItems_ReturnsOwnItemsOnly(t *testing.T) {
	mine := testItem(testProfile)
	foreign := testItem(otherProfile)
	router := newTestRouter(newStubRepo(mine, foreign))

	rec := doRequest(t, router, http.MethodGet, "/items", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []itemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, mine.ID, got[0].ID)
}

func TestListItems_InvalidFilterRejected(t *testing.T) {
	router := newTestRouter(newStubRepo())

	rec := doRequest(t, router, http.MethodGet, "/items?priority=urgent", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateItem(t *testing.T) {
	repo := newStubRepo()
	router := newTestRouter(repo)

	rec := doRequest(t, router, http.MethodPost, "/items",
		`{"title":"Learn to sail","category_id":2,"priority":"low"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var got itemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Learn to sail", got.Title)
	// Identity comes from the API key, not the payload.
	assert.Equal(t, testProfile, got.ProfileID)
	assert.Equal(t, "not_started", got.Status)
}

func TestCreateItem_TitleTooLong(t *testing.T) {
	router := newTestRouter(newStubRepo())

	body := fmt.Sprintf(`{"title":%q,"category_id":1}`, strings.Repeat("x", 201))
	rec := doRequest(t, router, http.MethodPost, "/items", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateItem_AlreadyCompleted(t *testing.T) {
	repo := newStubRepo()
	router := newTestRouter(repo)

	rec := doRequest(t, router, http.MethodPost, "/items",
		`{"title":"Skydive over Dubai","category_id":1,"status":"completed"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var got itemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "completed", got.Status)
	// An item born completed is stamped at creation time.
	assert.NotNil(t, got.CompletedAt)
}

func TestCreateItem_SpecificDateRequiresDueDate(t *testing.T) {
	router := newTestRouter(newStubRepo())

	rec := doRequest(t, router, http.MethodPost, "/items",
		`{"title":"Northern lights","category_id":1,"due_type":"specific_date"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateItemsBatch(t *testing.T) {
	repo := newStubRepo()
	router := newTestRouter(repo)

	rec := doRequest(t, router, http.MethodPost, "/items/batch",
		`[{"title":"One","category_id":1},{"title":"Two","category_id":1}]`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var got []itemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 2)
	assert.Len(t, repo.items, 2)
}

func TestCreateItemsBatch_TooLarge(t *testing.T) {
	repo := newStubRepo()
	router := newTestRouter(repo)

	entries := make([]string, maxBatchSize+1)
	for i := range entries {
		entries[i] = fmt.Sprintf(`{"title":"Item %d","category_id":1}`, i)
	}
	rec := doRequest(t, router, http.MethodPost, "/items/batch",
		"["+strings.Join(entries, ",")+"]")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Empty(t, repo.items)
}

func TestGetItem(t *testing.T) {
	item := testItem(testProfile)
	router := newTestRouter(newStubRepo(item))

	rec := doRequest(t, router, http.MethodGet, "/items/"+item.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got itemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, item.ID, got.ID)
}

func TestGetItem_InvalidID(t *testing.T) {
	router := newTestRouter(newStubRepo())

	rec := doRequest(t, router, http.MethodGet, "/items/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetItem_MissingAndForeignLookAlike(t *testing.T) {
	foreign := testItem(otherProfile)
	router := newTestRouter(newStubRepo(foreign))

	missing := doRequest(t, router, http.MethodGet, "/items/"+uuid.NewString(), "")
	foreignRec := doRequest(t, router, http.MethodGet, "/items/"+foreign.ID, "")

	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, http.StatusNotFound, foreignRec.Code)
	assert.JSONEq(t, missing.Body.String(), foreignRec.Body.String())
}

func TestUpdateItem(t *testing.T) {
	item := testItem(testProfile)
	repo := newStubRepo(item)
	router := newTestRouter(repo)

	rec := doRequest(t, router, http.MethodPatch, "/items/"+item.ID,
		`{"status":"completed"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got itemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "completed", got.Status)
	assert.NotNil(t, got.CompletedAt)
}

func TestUpdateItem_SpecificDateRequiresDueDate(t *testing.T) {
	item := testItem(testProfile)
	repo := newStubRepo(item)
	router := newTestRouter(repo)

	rec := doRequest(t, router, http.MethodPatch, "/items/"+item.ID,
		`{"due_type":"specific_date"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, domain.DueTypeUnspecified, repo.items[item.ID].DueType)
}

func TestUpdateItem_EmptyPatch(t *testing.T) {
	item := testItem(testProfile)
	router := newTestRouter(newStubRepo(item))

	rec := doRequest(t, router, http.MethodPatch, "/items/"+item.ID, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateItem_ForeignItem(t *testing.T) {
	foreign := testItem(otherProfile)
	repo := newStubRepo(foreign)
	router := newTestRouter(repo)

	rec := doRequest(t, router, http.MethodPatch, "/items/"+foreign.ID,
		`{"title":"Hijacked"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Climb Kilimanjaro", repo.items[foreign.ID].Title)
}

func TestDeleteItem(t *testing.T) {
	item := testItem(testProfile)
	repo := newStubRepo(item)
	router := newTestRouter(repo)

	rec := doRequest(t, router, http.MethodDelete, "/items/"+item.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, repo.items)
}

func TestDeleteItem_ForeignItem(t *testing.T) {
	foreign := testItem(otherProfile)
	repo := newStubRepo(foreign)
	router := newTestRouter(repo)

	rec := doRequest(t, router, http.MethodDelete, "/items/"+foreign.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Len(t, repo.items, 1)
}

func TestListCategories(t *testing.T) {
	repo := newStubRepo()
	repo.categories = []domain.Category{
		{ID: 1, Name: "Travel", Color: "#3B82F6"},
		{ID: 2, Name: "Career", Color: "#10B981"},
	}
	router := newTestRouter(repo)

	rec := doRequest(t, router, http.MethodGet, "/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []categoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Travel", got[0].Name)
}

func TestGetStats_AbsentRowYieldsZeroStats(t *testing.T) {
	router := newTestRouter(newStubRepo())

	rec := doRequest(t, router, http.MethodGet, "/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got statsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, testProfile, got.ProfileID)
	assert.Zero(t, got.Total)
	assert.Zero(t, got.CompletionRate)
}

func TestGetDashboard(t *testing.T) {
	item := testItem(testProfile)
	repo := newStubRepo(item)
	repo.categories = []domain.Category{{ID: 1, Name: "Travel", Color: "#3B82F6"}}
	router := newTestRouter(repo)

	rec := doRequest(t, router, http.MethodGet, "/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got dashboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got.Items, 1)
	assert.Equal(t, 1, got.Stats.Total)
	require.Len(t, got.CategoryBreakdown, 1)
	assert.Equal(t, 1, got.CategoryBreakdown[0].Total)
}

func TestListPublicItems(t *testing.T) {
	public := testItem(otherProfile)
	public.IsPublic = true
	private := testItem(testProfile)
	router := newTestRouter(newStubRepo(public, private))

	rec := doRequest(t, router, http.MethodGet, "/public/items", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []itemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, public.ID, got[0].ID)
}

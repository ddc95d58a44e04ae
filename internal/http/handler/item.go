package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rezkam/bucketlist/internal/domain"
	"github.com/rezkam/bucketlist/internal/http/middleware"
	"github.com/rezkam/bucketlist/internal/http/response"
)

// maxBatchSize bounds one batch create request.
const maxBatchSize = 100

// ListItems handles GET /items: the authenticated profile's items with
// optional filtering and sorting.
func (s *Server) ListItems(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.ProfileID(r.Context())

	filters, err := parseFilters(r.URL.Query())
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	sort, err := parseSort(r.URL.Query())
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	items, err := s.service.GetUserBucketItems(r.Context(), profileID, filters, sort)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, toItemResponses(items))
}

// CreateItem handles POST /items.
func (s *Server) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	insert, err := req.toInsert(middleware.ProfileID(r.Context()))
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	item, err := s.service.CreateBucketItem(r.Context(), insert)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.Created(w, toItemResponse(*item))
}

// CreateItemsBatch handles POST /items/batch. All-or-none: either every
// item in the payload is created or none is.
func (s *Server) CreateItemsBatch(w http.ResponseWriter, r *http.Request) {
	var reqs []createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if len(reqs) > maxBatchSize {
		response.FromDomainError(w, r, domain.NewBusinessRuleError("batch_size",
			"batch exceeds the maximum of 100 items", map[string]any{"size": len(reqs)}))
		return
	}

	profileID := middleware.ProfileID(r.Context())
	inserts := make([]domain.InsertBucketItem, 0, len(reqs))
	for _, req := range reqs {
		insert, err := req.toInsert(profileID)
		if err != nil {
			response.FromDomainError(w, r, err)
			return
		}
		inserts = append(inserts, insert)
	}

	items, err := s.service.CreateBucketItemsBatch(r.Context(), inserts)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.Created(w, toItemResponses(items))
}

// GetItem handles GET /items/{id}.
func (s *Server) GetItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		response.ValidationFailed(w, "id", "invalid ID format")
		return
	}

	item, err := s.service.GetBucketItem(r.Context(), id)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	if item == nil || item.ProfileID != middleware.ProfileID(r.Context()) {
		// Hide other profiles' items behind the same 404.
		response.NotFound(w, "item")
		return
	}
	response.OK(w, toItemResponse(*item))
}

// UpdateItem handles PATCH /items/{id}.
func (s *Server) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		response.ValidationFailed(w, "id", "invalid ID format")
		return
	}

	if ok := s.ensureOwnership(w, r, id); !ok {
		return
	}

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	params, err := req.toParams()
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	item, err := s.service.UpdateBucketItem(r.Context(), id, params)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, toItemResponse(*item))
}

// DeleteItem handles DELETE /items/{id}.
func (s *Server) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		response.ValidationFailed(w, "id", "invalid ID format")
		return
	}

	if ok := s.ensureOwnership(w, r, id); !ok {
		return
	}

	if err := s.service.DeleteBucketItem(r.Context(), id); err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.NoContent(w)
}

// ensureOwnership loads the item and verifies it belongs to the
// authenticated profile, writing a 404 otherwise. Missing items and
// foreign items are indistinguishable to the client.
func (s *Server) ensureOwnership(w http.ResponseWriter, r *http.Request, id string) bool {
	item, err := s.service.GetBucketItem(r.Context(), id)
	if err != nil {
		response.FromDomainError(w, r, err)
		return false
	}
	if item == nil || item.ProfileID != middleware.ProfileID(r.Context()) {
		response.NotFound(w, "item")
		return false
	}
	return true
}

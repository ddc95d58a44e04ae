package handler

import (
	"net/http"

	"github.com/rezkam/bucketlist/internal/http/response"
)

// ListPublicItems handles GET /public/items: the shared feed of items
// their owners chose to publish. No authentication required.
func (s *Server) ListPublicItems(w http.ResponseWriter, r *http.Request) {
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

	items, err := s.service.GetPublicBucketItems(r.Context(), filters, sort)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, toItemResponses(items))
}

package handler

import (
	"net/http"

	"github.com/rezkam/bucketlist/internal/http/response"
)

// ListCategories handles GET /categories.
func (s *Server) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.service.GetCategories(r.Context())
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, toCategoryResponses(categories))
}

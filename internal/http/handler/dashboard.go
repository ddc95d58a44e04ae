package handler

import (
	"net/http"

	"github.com/rezkam/bucketlist/internal/http/middleware"
	"github.com/rezkam/bucketlist/internal/http/response"
)

// GetDashboard handles GET /dashboard: the composite dashboard view for
// the authenticated profile.
func (s *Server) GetDashboard(w http.ResponseWriter, r *http.Request) {
	data, err := s.service.GetDashboardData(r.Context(), middleware.ProfileID(r.Context()))
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, toDashboardResponse(data))
}

// GetStats handles GET /stats: the authenticated profile's counters.
// Profiles with no items yet get zero-valued stats, not a 404.
func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	profileID := middleware.ProfileID(r.Context())

	stats, err := s.service.GetUserStats(r.Context(), profileID)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	if stats == nil {
		response.OK(w, statsResponse{ProfileID: profileID})
		return
	}
	response.OK(w, toStatsResponse(stats))
}

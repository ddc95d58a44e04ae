package handler

import (
	"github.com/rezkam/bucketlist/internal/application/bucket"
)

// Server holds the HTTP handlers for the bucket list API.
type Server struct {
	service *bucket.Service
}

// NewServer creates a new HTTP handler server.
func NewServer(service *bucket.Service) *Server {
	return &Server{
		service: service,
	}
}

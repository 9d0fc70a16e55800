package api

import (
	"net/http"
)

// pricingHandler returns the public distance and box price tables
func (s *Server) pricingHandler(w http.ResponseWriter, r *http.Request) {
	tables, err := s.pricingService.Tables(r.Context())

	if err != nil {
		s.respondWithAppError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    tables,
	})
}

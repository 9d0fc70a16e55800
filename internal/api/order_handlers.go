package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// feedbackRequest is the payload for submitting order feedback
type feedbackRequest struct {
	Description string `json:"description" validate:"required"`
}

// orderHistoryHandler returns one page of the caller's order history
func (s *Server) orderHistoryHandler(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)

	page, err := s.orderService.History(r.Context(), sess, queryPage(r))

	if err != nil {
		s.respondWithAppError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    page,
	})
}

// orderDetailHandler returns the denormalized detail view of one order
func (s *Server) orderDetailHandler(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)

	orderID, err := pathID(mux.Vars(r)["id"])

	if err != nil {
		s.respondWithAppError(w, err)
		return
	}

	detail, err := s.orderService.Detail(r.Context(), sess, orderID)

	if err != nil {
		s.respondWithAppError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    detail,
	})
}

// submitFeedbackHandler creates or updates feedback for a completed order
func (s *Server) submitFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)

	orderID, err := pathID(mux.Vars(r)["id"])

	if err != nil {
		s.respondWithAppError(w, err)
		return
	}

	var req feedbackRequest

	if err := s.decodeBody(r, &req); err != nil {
		s.respondWithAppError(w, err)
		return
	}
	defer r.Body.Close()

	if err := s.orderService.SubmitFeedback(r.Context(), sess, orderID, req.Description); err != nil {
		s.respondWithAppError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{
		Success: true,
	})
}

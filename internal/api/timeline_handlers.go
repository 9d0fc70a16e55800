package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// listTimelinesHandler returns the active delivery runs. Query parameters:
// branchId filters by route, completed=true restricts to finished runs.
func (s *Server) listTimelinesHandler(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)

	var branchID int64

	if raw := r.URL.Query().Get("branchId"); raw != "" {
		id, err := pathID(raw)

		if err != nil {
			s.respondWithAppError(w, err)
			return
		}
		branchID = id
	}

	onlyCompleted, _ := strconv.ParseBool(r.URL.Query().Get("completed"))

	timelines, err := s.timelineService.ListTimelines(r.Context(), sess, branchID, onlyCompleted)

	if err != nil {
		s.respondWithAppError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    timelines,
	})
}

// timelineManifestHandler returns the denormalized manifest of one delivery run
func (s *Server) timelineManifestHandler(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)

	timelineID, err := pathID(mux.Vars(r)["id"])

	if err != nil {
		s.respondWithAppError(w, err)
		return
	}

	manifest, err := s.timelineService.BuildManifest(r.Context(), sess, timelineID)

	if err != nil {
		s.respondWithAppError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    manifest,
	})
}

// advanceTimelineHandler moves a delivery run to its next status
func (s *Server) advanceTimelineHandler(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)

	timelineID, err := pathID(mux.Vars(r)["id"])

	if err != nil {
		s.respondWithAppError(w, err)
		return
	}

	if err := s.timelineService.AdvanceTimeline(r.Context(), sess, timelineID); err != nil {
		s.respondWithAppError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{
		Success: true,
	})
}

// completeOrderHandler marks one loaded order as delivered
func (s *Server) completeOrderHandler(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)

	orderID, err := pathID(mux.Vars(r)["orderId"])

	if err != nil {
		s.respondWithAppError(w, err)
		return
	}

	if err := s.timelineService.CompleteOrder(r.Context(), sess, orderID); err != nil {
		s.respondWithAppError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{
		Success: true,
	})
}

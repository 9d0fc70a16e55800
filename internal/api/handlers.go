package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/koiexpress/shipping-gateway/pkg/errors"
)

type ApiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Health represents the health check response
type Health struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// healthCheckHandler handles the health check endpoint
func (s *Server) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	health := Health{
		Status:    "ok",
		Version:   "0.1.0",
		Timestamp: time.Now().Format(time.RFC3339),
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    health,
	})
}

// respondWithError sends a JSON response with an error message
func (s *Server) respondWithError(w http.ResponseWriter, code int, message string) {
	s.respondWithJSON(w, code, ApiResponse{
		Success: false,
		Error:   message,
	})
}

// respondWithAppError maps a service error to its HTTP status
func (s *Server) respondWithAppError(w http.ResponseWriter, err error) {
	s.respondWithError(w, errors.StatusOf(err), err.Error())
}

// respondWithJSON sends a JSON response
func (s *Server) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)

	if err != nil {
		s.logger.Error("Failed to marshal response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// decodeBody decodes and validates a JSON request body
func (s *Server) decodeBody(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)

	if err := decoder.Decode(dst); err != nil {
		return errors.NewInvalidInputError("invalid request payload")
	}

	if err := s.validate.Struct(dst); err != nil {
		return errors.NewInvalidInputError(err.Error())
	}

	return nil
}

// pathID extracts an integer path variable
func pathID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)

	if err != nil || id <= 0 {
		return 0, errors.NewInvalidInputError("invalid id")
	}
	return id, nil
}

// queryPage reads the page query parameter, defaulting to 1
func queryPage(r *http.Request) int {
	raw := r.URL.Query().Get("page")

	if raw == "" {
		return 1
	}

	page, err := strconv.Atoi(raw)

	if err != nil || page < 1 {
		return 1
	}
	return page
}

package api

import (
	"net/http"
)

// loginRequest is the credential payload for the login endpoint
type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// loginHandler exchanges credentials for a gateway session
func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest

	if err := s.decodeBody(r, &req); err != nil {
		s.respondWithAppError(w, err)
		return
	}
	defer r.Body.Close()

	result, err := s.authService.Login(r.Context(), req.Email, req.Password)

	if err != nil {
		s.respondWithAppError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    result,
	})
}

// logoutHandler drops the caller's session
func (s *Server) logoutHandler(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)

	s.authService.Logout(sess.ID)

	s.respondWithJSON(w, http.StatusOK, ApiResponse{
		Success: true,
	})
}

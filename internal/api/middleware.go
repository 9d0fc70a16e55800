package api

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/koiexpress/shipping-gateway/internal/session"
)

type contextKey string

const (
	requestIDKey contextKey = "requestID"
	sessionKey   contextKey = "session"
)

// sessionHeader carries the opaque session ID issued at login
const sessionHeader = "X-Session-Id"

// requestIDMiddleware tags every request with a UUID for log correlation
func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-Id")

		if requestID == "" {
			requestID = uuid.New().String()
		}

		w.Header().Set("X-Request-Id", requestID)

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Middleware for logging requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		s.logger.Info("Request processed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
			"remoteAddr", r.RemoteAddr,
			"requestId", r.Context().Value(requestIDKey),
		)
	})
}

// sessionMiddleware resolves the session header and rejects requests without
// a live session
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(sessionHeader)

		if id == "" {
			s.respondWithError(w, http.StatusUnauthorized, "missing session")
			return
		}

		sess, err := s.sessions.Get(id)

		if err != nil {
			s.respondWithAppError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), sessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionFrom returns the session placed in the context by sessionMiddleware
func sessionFrom(r *http.Request) *session.Session {
	sess, _ := r.Context().Value(sessionKey).(*session.Session)
	return sess
}

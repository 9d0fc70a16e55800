package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/koiexpress/shipping-gateway/pkg/errors"
)

// Session holds the identifiers that scope backend queries to the current
// principal. Populated on login, cleared on logout; no other state survives
// a request.
type Session struct {
	ID        string
	Token     string
	UserID    int64
	Role      string
	WalletID  int64
	ExpiresAt time.Time
}

// Expired reports whether the session's bearer token has lapsed
func (s *Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// Store keeps active sessions in memory behind a mutex. Session IDs are
// opaque UUIDs; the bearer token never leaves the gateway. Lookups hand out
// copies, so a session read by one request is never written by another.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty session store
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
	}
}

// Create registers a new session for a logged-in principal and returns it.
// The expiry follows the bearer token's exp claim when one is present.
func (st *Store) Create(token string, userID int64, role string, walletID int64) *Session {
	s := &Session{
		ID:        uuid.New().String(),
		Token:     token,
		UserID:    userID,
		Role:      role,
		WalletID:  walletID,
		ExpiresAt: tokenExpiry(token),
	}

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	snapshot := *s
	return &snapshot
}

// Get resolves a session ID, evicting it when the token has expired. The
// returned Session is a snapshot; later SetWalletID calls are only visible
// through a fresh Get.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]

	var snapshot Session
	if ok {
		snapshot = *s
	}
	st.mu.RUnlock()

	if !ok {
		return nil, errors.NewUnauthorizedError("unknown session")
	}

	if snapshot.Expired() {
		st.Delete(id)
		return nil, errors.NewUnauthorizedError("session expired")
	}

	return &snapshot, nil
}

// Delete removes a session, e.g. on logout
func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// SetWalletID records a wallet resolved after login (wallet creation is lazy
// on the backend)
func (st *Store) SetWalletID(id string, walletID int64) {
	st.mu.Lock()
	if s, ok := st.sessions[id]; ok {
		s.WalletID = walletID
	}
	st.mu.Unlock()
}

// tokenExpiry reads the exp claim without verifying the signature. The
// backend is the authority on the token; the gateway only mirrors its
// lifetime. A token without exp yields a session that never self-expires.
func tokenExpiry(token string) time.Time {
	parser := jwt.NewParser()

	parsed, _, err := parser.ParseUnverified(token, jwt.MapClaims{})

	if err != nil {
		return time.Time{}
	}

	exp, err := parsed.Claims.GetExpirationTime()

	if err != nil || exp == nil {
		return time.Time{}
	}

	return exp.Time
}

package service

import (
	"context"

	"github.com/koiexpress/shipping-gateway/internal/models"
	"github.com/koiexpress/shipping-gateway/internal/session"
	"github.com/koiexpress/shipping-gateway/pkg/logger"
)

// AuthService exchanges backend credentials for gateway sessions
type AuthService struct {
	backend  Backend
	sessions *session.Store
	logger   logger.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(backend Backend, sessions *session.Store, logger logger.Logger) *AuthService {
	return &AuthService{
		backend:  backend,
		sessions: sessions,
		logger:   logger,
	}
}

// LoginResult is returned to the client after a successful login
type LoginResult struct {
	SessionID   string `json:"sessionId"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	WalletID    int64  `json:"walletId,omitempty"`
	LandingPath string `json:"landingPath"`
}

// Login authenticates against the backend, loads the profile, and opens a
// gateway session. Wallet resolution is best effort; a user without a wallet
// still logs in.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	token, err := s.backend.Login(ctx, email, password)

	if err != nil {
		return nil, err
	}

	profile, err := s.backend.Profile(ctx, token)

	if err != nil {
		return nil, err
	}

	var walletID int64

	wallets, err := s.backend.Wallets(ctx, token)

	if err != nil {
		s.logger.Warn("Wallet lookup failed during login", "error", err, "userId", profile.ID)
	} else {
		for _, w := range wallets {
			if w.UserID == profile.ID {
				walletID = w.ID
				break
			}
		}
	}

	sess := s.sessions.Create(token, profile.ID, profile.Role.RoleName, walletID)

	s.logger.Info("User logged in", "userId", profile.ID, "role", profile.Role.RoleName)

	return &LoginResult{
		SessionID:   sess.ID,
		Name:        profile.Name,
		Role:        profile.Role.RoleName,
		WalletID:    walletID,
		LandingPath: landingPath(profile.Role.RoleName),
	}, nil
}

// Logout drops the gateway session. The backend token is simply forgotten.
func (s *AuthService) Logout(sessionID string) {
	s.sessions.Delete(sessionID)
}

// landingPath maps a role to the area the client should open after login
func landingPath(role string) string {
	switch role {
	case models.RoleSalesStaff:
		return "/sale/welcome"
	case models.RoleDeliveryStaff:
		return "/delivery"
	case models.RoleManager:
		return "/manager/welcome"
	default:
		return "/"
	}
}

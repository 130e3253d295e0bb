package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"wordletracker/internal/models"
	"wordletracker/internal/repository"
	"wordletracker/internal/security"
)

var (
	ErrAdminDisabled      = errors.New("admin access not configured")
	ErrInvalidCredentials = errors.New("invalid password")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
)

// AuthService handles admin authentication. The admin surface is guarded
// by a single shared password; there are no per-person accounts.
type AuthService struct {
	sessionRepo     *repository.SessionRepository
	passwordHash    string
	sessionDuration time.Duration
}

// NewAuthService creates a new auth service. Either a precomputed bcrypt
// hash or a plaintext password (hashed here at startup) must be provided;
// with neither, every login fails with ErrAdminDisabled.
func NewAuthService(sessionRepo *repository.SessionRepository, passwordHash, password string, sessionDuration time.Duration) (*AuthService, error) {
	if passwordHash == "" && password != "" {
		hash, err := security.HashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash admin password: %w", err)
		}
		passwordHash = hash
	}
	if passwordHash == "" {
		log.Println("Admin access disabled: no admin password configured")
	}

	return &AuthService{
		sessionRepo:     sessionRepo,
		passwordHash:    passwordHash,
		sessionDuration: sessionDuration,
	}, nil
}

// Login checks the admin password and creates a session on success
func (s *AuthService) Login(password string) (*models.AdminSession, error) {
	if s.passwordHash == "" {
		return nil, ErrAdminDisabled
	}
	if !security.CheckPassword(password, s.passwordHash) {
		return nil, ErrInvalidCredentials
	}

	sessionID := security.GenerateSessionID()
	expiresAt := time.Now().Add(s.sessionDuration)
	session, err := s.sessionRepo.CreateSession(sessionID, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// ValidateSession checks that a session exists and has not expired,
// deleting it when it has.
func (s *AuthService) ValidateSession(sessionID string) error {
	session, err := s.sessionRepo.GetSession(sessionID)
	if err != nil {
		return fmt.Errorf("failed to look up session: %w", err)
	}
	if session == nil {
		return ErrSessionNotFound
	}
	if session.IsExpired() {
		if err := s.sessionRepo.DeleteSession(sessionID); err != nil {
			log.Printf("Failed to delete expired session: %v", err)
		}
		return ErrSessionExpired
	}
	return nil
}

// Logout deletes a session
func (s *AuthService) Logout(sessionID string) error {
	return s.sessionRepo.DeleteSession(sessionID)
}

// CleanupExpiredSessions removes expired sessions. Called periodically
// from the server's background loop.
func (s *AuthService) CleanupExpiredSessions() {
	if err := s.sessionRepo.DeleteExpiredSessions(); err != nil {
		log.Printf("Failed to clean up expired sessions: %v", err)
	}
}

package repository

import (
	"database/sql"
	"fmt"
	"time"
	"wordletracker/internal/database"
	"wordletracker/internal/models"
)

// SessionRepository handles database operations for admin sessions
type SessionRepository struct {
	db *database.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *database.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// CreateSession stores a new admin session
func (r *SessionRepository) CreateSession(sessionID string, expiresAt time.Time) (*models.AdminSession, error) {
	query := `
		INSERT INTO admin_sessions (id, expires_at)
		VALUES (?, ?)
	`
	_, err := r.db.Exec(query, sessionID, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &models.AdminSession{
		ID:        sessionID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}, nil
}

// GetSession retrieves a session by ID, returning nil when it does not exist
func (r *SessionRepository) GetSession(sessionID string) (*models.AdminSession, error) {
	query := `
		SELECT id, expires_at, created_at
		FROM admin_sessions
		WHERE id = ?
	`
	session := &models.AdminSession{}
	err := r.db.QueryRow(query, sessionID).Scan(&session.ID, &session.ExpiresAt, &session.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// DeleteSession removes a session
func (r *SessionRepository) DeleteSession(sessionID string) error {
	_, err := r.db.Exec("DELETE FROM admin_sessions WHERE id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes all expired sessions
func (r *SessionRepository) DeleteExpiredSessions() error {
	_, err := r.db.Exec("DELETE FROM admin_sessions WHERE expires_at < ?", time.Now())
	if err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return nil
}

package models

import "time"

// AdminSession represents an authenticated admin session.
type AdminSession struct {
	ID        string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired checks if the session has expired.
func (s *AdminSession) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

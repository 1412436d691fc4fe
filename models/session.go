package models

import "time"

const (
	RoleSession = "session"
	RoleAdmin   = "admin"
)

// Session is the identity every cart, chat and like operation is scoped to.
type Session struct {
	ID        string    `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SessionResponse struct {
	SessionID string    `json:"session_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

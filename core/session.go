package core

import "time"

// Session represents an active login session held by the backend.
// UserID is the integer form the backend expects; Expires is always an
// absolute timestamp, never a relative duration.
type Session struct {
	SessionToken string    `json:"sessionToken"`
	UserID       int64     `json:"userId"`
	Expires      time.Time `json:"expires"`
}

// SessionData combines user and session info
// The model returned to clients
type SessionData struct {
	Session *Session `json:"session"`
	User    *User    `json:"user"`
}

// SessionConfig controls the session cookie and lifetime policy.
type SessionConfig struct {
	// MaxAge is the session lifetime. Expiry is computed as now + MaxAge.
	MaxAge time.Duration
	// UpdateAge is the sliding-refresh window: a session older than this
	// gets its expiry extended on the next successful resolve.
	UpdateAge time.Duration

	CookieName string
	CookiePath string
}

func DefaultSessionConfig() *SessionConfig {
	return &SessionConfig{
		MaxAge:     30 * 24 * time.Hour,
		UpdateAge:  24 * time.Hour,
		CookieName: "session-token",
		CookiePath: "/",
	}
}

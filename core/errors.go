package core

import "errors"

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("access denied")               // 401 - deliberately opaque
	ErrInvalidToken       = errors.New("invalid session token")       // 401
	ErrSessionNotFound    = errors.New("session not found")           // 401
	ErrSessionExpired     = errors.New("session expired")             // 401
	ErrInvalidUserID      = errors.New("user id is not an integer")   // backend wants numeric ids
)

// Config errors (server-side configuration)
var (
	ErrSecretRequired = errors.New("secret is required")  // 500
	ErrSecretTooShort = errors.New("secret too short")    // 500
)

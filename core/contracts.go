package core

import "time"

// Ports define interfaces for external dependencies

// ============================================
// IDENTITY STORE PORTS (backend persistence)
// ============================================
//
// Every read returns (nil, nil) when the record is absent; an error always
// means the call itself failed. Implementations hold no state across calls.

// UserStore defines user-related persistence operations
type UserStore interface {
	CreateUser(u *User) (*User, error)
	UpdateUser(u *User) (*User, error)
	DeleteUser(id string) error
	GetUser(id string) (*User, error)
	GetUserByEmail(email string) (*User, error)
	GetUserByAccount(provider, providerAccountID string) (*User, error)
}

// AccountStore defines provider-account persistence operations
type AccountStore interface {
	LinkAccount(a *Account) (*Account, error)
	UnlinkAccount(provider, providerAccountID string) error
}

// SessionStore defines session persistence operations
type SessionStore interface {
	CreateSession(s *Session) (*Session, error)
	UpdateSession(s *Session) (*Session, error)
	DeleteSession(sessionToken string) error
	GetSessionAndUser(sessionToken string) (*SessionData, error)
}

// VerificationTokenStore defines single-use token operations
type VerificationTokenStore interface {
	CreateVerificationToken(v *VerificationToken) (*VerificationToken, error)
	UseVerificationToken(identifier, token string) (*VerificationToken, error)
}

// IdentityStore is the fixed identity-persistence contract the hosting auth
// engine programs against.
type IdentityStore interface {
	UserStore
	AccountStore
	SessionStore
	VerificationTokenStore
}

// ============================================
// CREDENTIAL PORTS
// ============================================

// CredentialVerifier checks a username/password pair against the backend.
// Every failure, whatever the cause, surfaces as ErrInvalidCredentials so
// unauthenticated callers learn nothing about backend state.
type CredentialVerifier interface {
	Verify(username, password string) (*User, error)
}

// CredentialCreator stores a password credential for an existing user.
type CredentialCreator interface {
	CreateCredential(userID, username, password string) error
}

// ============================================
// ORCHESTRATION PORTS
// ============================================

// SessionOrchestrator runs the post-authentication session lifecycle.
type SessionOrchestrator interface {
	// Establish mints a session token, writes the cookie, and persists the
	// session record. It reports success only after persistence succeeds.
	Establish(cookies CookieWriter, user *User) (*Session, error)
	Resolve(sessionToken string) (*SessionData, error)
	Destroy(sessionToken string) error
}

// Registrar registers a new user with a password credential.
type Registrar interface {
	Register(input RegisterInput) (*User, error)
}

// RegisterInput contains the data needed to register a new user
type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// Credentials is a username/password pair submitted on sign-in
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ============================================
// HTTP PORTS
// ============================================

// CookieWriter is where the orchestrator puts the session cookie.
// HTTP adapters implement it on top of their framework's response.
type CookieWriter interface {
	SetCookie(name, value string, maxAge time.Duration, expires time.Time)
	ClearCookie(name string)
}

// HTTPAdapter mounts the authentication routes on an HTTP framework
type HTTPAdapter interface {
	RegisterRoutes(app *App) error
}

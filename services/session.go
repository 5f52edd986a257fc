package services

import (
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/torii-auth/torii/core"
	"github.com/torii-auth/torii/pkg/crypto"
)

// SessionManager runs the post-authentication session lifecycle on top of
// the identity store. It holds no state of its own.
type SessionManager struct {
	config core.SessionConfig
	store  core.SessionStore
	log    *zap.Logger
}

var _ core.SessionOrchestrator = (*SessionManager)(nil)

func NewSessionManager(config core.SessionConfig, store core.SessionStore, log *zap.Logger) *SessionManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &SessionManager{config: config, store: store, log: log}
}

// Establish runs once per successful authentication, in a fixed order:
// mint a fresh token, compute the absolute expiry, write the cookie, coerce
// the user id to the backend's integer form, persist the session record.
// Success is reported only after persistence succeeds. If the process dies
// between the cookie write and the persist, the client holds a cookie with
// no matching backend record; nothing rolls the cookie back.
func (sm *SessionManager) Establish(cookies core.CookieWriter, user *core.User) (*core.Session, error) {
	token, err := crypto.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	expiry := time.Now().Add(sm.config.MaxAge)
	cookies.SetCookie(sm.config.CookieName, token, sm.config.MaxAge, expiry)

	userID, err := strconv.ParseInt(user.ID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", core.ErrInvalidUserID, user.ID)
	}

	session := &core.Session{
		SessionToken: token,
		UserID:       userID,
		Expires:      expiry,
	}
	if _, err := sm.store.CreateSession(session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	sm.log.Debug("session established",
		zap.Int64("userId", userID),
		zap.Time("expires", expiry))

	return session, nil
}

// Resolve loads the session and its user by token. Expired sessions are
// deleted and reported as expired. A session that has been alive longer
// than UpdateAge gets its expiry extended, so an active user is never
// signed out mid-use.
func (sm *SessionManager) Resolve(sessionToken string) (*core.SessionData, error) {
	if sessionToken == "" {
		return nil, core.ErrInvalidToken
	}

	data, err := sm.store.GetSessionAndUser(sessionToken)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if data == nil {
		return nil, core.ErrSessionNotFound
	}

	now := time.Now()
	if now.After(data.Session.Expires) {
		_ = sm.store.DeleteSession(sessionToken)
		return nil, core.ErrSessionExpired
	}

	if sm.config.UpdateAge > 0 {
		issuedAt := data.Session.Expires.Add(-sm.config.MaxAge)
		if now.Sub(issuedAt) >= sm.config.UpdateAge {
			data.Session.Expires = now.Add(sm.config.MaxAge)
			if _, err := sm.store.UpdateSession(data.Session); err != nil {
				return nil, fmt.Errorf("failed to refresh session: %w", err)
			}
		}
	}

	return data, nil
}

// Destroy removes the backend session record for a token.
func (sm *SessionManager) Destroy(sessionToken string) error {
	if sessionToken == "" {
		return core.ErrInvalidToken
	}
	return sm.store.DeleteSession(sessionToken)
}

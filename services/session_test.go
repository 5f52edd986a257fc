package services

import (
	"errors"
	"testing"
	"time"

	"github.com/torii-auth/torii/core"
)

func newTestSessionManager(store core.SessionStore) *SessionManager {
	return NewSessionManager(*core.DefaultSessionConfig(), store, nil)
}

// Requirement: a successful authentication for user id "42" issues exactly
// one session-creation call carrying the integer user id.
func TestSessionManager_Establish(t *testing.T) {
	store := NewFakeIdentityStore()
	cookies := NewFakeCookieWriter()
	manager := newTestSessionManager(store)

	session, err := manager.Establish(cookies, &core.User{ID: "42", Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("Establish() error = %v", err)
	}

	if store.CreateSessionCalls != 1 {
		t.Errorf("session-creation calls = %d, want 1", store.CreateSessionCalls)
	}
	if session.UserID != 42 {
		t.Errorf("UserID = %d, want 42", session.UserID)
	}
	if session.SessionToken == "" {
		t.Error("SessionToken is empty")
	}

	// Cookie and record must agree on token and expiry.
	if cookies.Cookies["session-token"] != session.SessionToken {
		t.Errorf("cookie value = %q, want session token", cookies.Cookies["session-token"])
	}
	if cookies.MaxAges["session-token"] != 30*24*time.Hour {
		t.Errorf("cookie max-age = %v, want 30 days", cookies.MaxAges["session-token"])
	}
	if !cookies.Expiry["session-token"].Equal(session.Expires) {
		t.Error("cookie expiry does not match session expiry")
	}

	wantExpiry := time.Now().Add(30 * 24 * time.Hour)
	if d := session.Expires.Sub(wantExpiry); d < -time.Minute || d > time.Minute {
		t.Errorf("Expires = %v, want ~%v", session.Expires, wantExpiry)
	}
}

// Requirement: the cookie is written strictly before the persistence call,
// and success is reported strictly after it.
func TestSessionManager_Establish_Order(t *testing.T) {
	var events []string

	store := NewFakeIdentityStore()
	cookies := NewFakeCookieWriter()
	cookies.OnSet = func(name, value string) {
		events = append(events, "cookie")
	}
	manager := newTestSessionManager(orderRecordingStore{store, &events})

	if _, err := manager.Establish(cookies, &core.User{ID: "42"}); err != nil {
		t.Fatalf("Establish() error = %v", err)
	}

	if len(events) != 2 || events[0] != "cookie" || events[1] != "persist" {
		t.Errorf("events = %v, want [cookie persist]", events)
	}
}

// orderRecordingStore wraps a SessionStore to log persistence calls.
type orderRecordingStore struct {
	core.SessionStore
	events *[]string
}

func (o orderRecordingStore) CreateSession(s *core.Session) (*core.Session, error) {
	*o.events = append(*o.events, "persist")
	return o.SessionStore.CreateSession(s)
}

// Requirement: a failed persistence step must not produce a signed-in
// state; the error propagates even though the cookie was already written.
func TestSessionManager_Establish_PersistFailure(t *testing.T) {
	store := NewFakeIdentityStore()
	store.CreateSessionErr = errors.New("backend down")
	cookies := NewFakeCookieWriter()
	manager := newTestSessionManager(store)

	session, err := manager.Establish(cookies, &core.User{ID: "42"})
	if err == nil {
		t.Fatal("Establish() error = nil, want persistence failure")
	}
	if session != nil {
		t.Errorf("Establish() session = %+v, want nil", session)
	}
	// Known consistency gap: the cookie is not rolled back.
	if _, ok := cookies.Cookies["session-token"]; !ok {
		t.Error("cookie should remain set; no rollback is performed")
	}
}

func TestSessionManager_Establish_NonIntegerUserID(t *testing.T) {
	store := NewFakeIdentityStore()
	manager := newTestSessionManager(store)

	_, err := manager.Establish(NewFakeCookieWriter(), &core.User{ID: "abc-123"})
	if !errors.Is(err, core.ErrInvalidUserID) {
		t.Fatalf("Establish() error = %v, want ErrInvalidUserID", err)
	}
	if store.CreateSessionCalls != 0 {
		t.Errorf("session-creation calls = %d, want 0", store.CreateSessionCalls)
	}
}

// Requirement: tokens never collide across many generations.
func TestSessionManager_Establish_TokenUniqueness(t *testing.T) {
	store := NewFakeIdentityStore()
	cookies := NewFakeCookieWriter()
	manager := newTestSessionManager(store)
	user := &core.User{ID: "42"}

	seen := make(map[string]bool, 10000)
	for i := 0; i < 10000; i++ {
		session, err := manager.Establish(cookies, user)
		if err != nil {
			t.Fatalf("iteration %d: Establish() error = %v", i, err)
		}
		if seen[session.SessionToken] {
			t.Fatalf("iteration %d: duplicate session token %q", i, session.SessionToken)
		}
		seen[session.SessionToken] = true
	}
}

func TestSessionManager_Resolve(t *testing.T) {
	user := &core.User{ID: "42", Email: "alice@example.com"}

	tests := []struct {
		name    string
		token   string
		setup   func(*FakeIdentityStore)
		wantErr error
		want    bool
	}{
		{
			name:  "resolves live session",
			token: "tok-live",
			setup: func(f *FakeIdentityStore) {
				f.SeedUser(user)
				f.SeedSession(&core.Session{SessionToken: "tok-live", UserID: 42, Expires: time.Now().Add(time.Hour)})
			},
			want: true,
		},
		{
			name:    "empty token",
			token:   "",
			setup:   func(f *FakeIdentityStore) {},
			wantErr: core.ErrInvalidToken,
		},
		{
			name:    "unknown token",
			token:   "tok-ghost",
			setup:   func(f *FakeIdentityStore) {},
			wantErr: core.ErrSessionNotFound,
		},
		{
			name:  "expired session",
			token: "tok-old",
			setup: func(f *FakeIdentityStore) {
				f.SeedUser(user)
				f.SeedSession(&core.Session{SessionToken: "tok-old", UserID: 42, Expires: time.Now().Add(-time.Hour)})
			},
			wantErr: core.ErrSessionExpired,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			store := NewFakeIdentityStore()
			test.setup(store)
			manager := newTestSessionManager(store)

			data, err := manager.Resolve(test.token)

			if test.wantErr != nil {
				if !errors.Is(err, test.wantErr) {
					t.Fatalf("Resolve() error = %v, want %v", err, test.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if test.want && (data == nil || data.User.ID != "42") {
				t.Errorf("Resolve() = %+v, want session data for user 42", data)
			}
		})
	}
}

// Requirement: a session older than the refresh window gets its expiry
// extended on resolve; a fresh one is left alone.
func TestSessionManager_Resolve_SlidingRefresh(t *testing.T) {
	store := NewFakeIdentityStore()
	store.SeedUser(&core.User{ID: "42"})

	cfg := core.DefaultSessionConfig()
	manager := NewSessionManager(*cfg, store, nil)

	// Issued 2 days ago: past the 24h refresh window.
	stale := &core.Session{
		SessionToken: "tok-stale",
		UserID:       42,
		Expires:      time.Now().Add(cfg.MaxAge - 48*time.Hour),
	}
	store.SeedSession(stale)

	data, err := manager.Resolve("tok-stale")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if store.UpdateSessionCalls != 1 {
		t.Errorf("update calls = %d, want 1", store.UpdateSessionCalls)
	}
	if !data.Session.Expires.After(stale.Expires) {
		t.Error("expiry was not extended")
	}

	// Freshly issued: no refresh.
	store.SeedSession(&core.Session{
		SessionToken: "tok-fresh",
		UserID:       42,
		Expires:      time.Now().Add(cfg.MaxAge),
	})
	if _, err := manager.Resolve("tok-fresh"); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if store.UpdateSessionCalls != 1 {
		t.Errorf("update calls = %d, want still 1", store.UpdateSessionCalls)
	}
}

func TestSessionManager_Destroy(t *testing.T) {
	store := NewFakeIdentityStore()
	store.SeedSession(&core.Session{SessionToken: "tok-1", UserID: 42, Expires: time.Now().Add(time.Hour)})
	manager := newTestSessionManager(store)

	if err := manager.Destroy("tok-1"); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}
	if len(store.Sessions()) != 0 {
		t.Error("session record not deleted")
	}

	if err := manager.Destroy(""); !errors.Is(err, core.ErrInvalidToken) {
		t.Errorf("Destroy(\"\") error = %v, want ErrInvalidToken", err)
	}
}

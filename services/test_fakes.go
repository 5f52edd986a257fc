package services

import (
	"strconv"
	"sync"
	"time"

	"github.com/torii-auth/torii/core"
)

// FakeIdentityStore is a test-only fake implementing core.IdentityStore.
// It stores records in maps and exposes error fields for behavior injection
// plus call counters for interaction assertions.
type FakeIdentityStore struct {
	mu       sync.RWMutex
	users    map[string]*core.User
	accounts map[string]*core.Account // key: provider/providerAccountId
	sessions map[string]*core.Session // key: sessionToken
	tokens   map[string]*core.VerificationToken

	nextUserID int

	CreateUserErr    error
	CreateSessionErr error
	UpdateSessionErr error
	GetErr           error
	DeleteErr        error
	CreateCredErr    error

	CreateSessionCalls int
	UpdateSessionCalls int
	GetUserCalls       int
	CreateCredCalls    int
}

var (
	_ core.IdentityStore     = (*FakeIdentityStore)(nil)
	_ core.CredentialCreator = (*FakeIdentityStore)(nil)
)

func NewFakeIdentityStore() *FakeIdentityStore {
	return &FakeIdentityStore{
		users:    make(map[string]*core.User),
		accounts: make(map[string]*core.Account),
		sessions: make(map[string]*core.Session),
		tokens:   make(map[string]*core.VerificationToken),
	}
}

func (f *FakeIdentityStore) CreateUser(u *core.User) (*core.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateUserErr != nil {
		return nil, f.CreateUserErr
	}
	f.nextUserID++
	created := *u
	created.ID = strconv.Itoa(f.nextUserID)
	f.users[created.ID] = &created
	return &created, nil
}

func (f *FakeIdentityStore) UpdateUser(u *core.User) (*core.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.ID]; !ok {
		return nil, nil
	}
	updated := *u
	f.users[u.ID] = &updated
	return &updated, nil
}

func (f *FakeIdentityStore) DeleteUser(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	delete(f.users, id)
	return nil
}

func (f *FakeIdentityStore) GetUser(id string) (*core.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.GetUserCalls++
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	return f.users[id], nil
}

func (f *FakeIdentityStore) GetUserByEmail(email string) (*core.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *FakeIdentityStore) GetUserByAccount(provider, providerAccountID string) (*core.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	a, ok := f.accounts[provider+"/"+providerAccountID]
	if !ok {
		return nil, nil
	}
	return f.users[a.UserID], nil
}

func (f *FakeIdentityStore) LinkAccount(a *core.Account) (*core.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	linked := *a
	f.accounts[a.Provider+"/"+a.ProviderAccountID] = &linked
	return &linked, nil
}

func (f *FakeIdentityStore) UnlinkAccount(provider, providerAccountID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.accounts, provider+"/"+providerAccountID)
	return nil
}

func (f *FakeIdentityStore) CreateSession(s *core.Session) (*core.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateSessionCalls++
	if f.CreateSessionErr != nil {
		return nil, f.CreateSessionErr
	}
	stored := *s
	f.sessions[s.SessionToken] = &stored
	return s, nil
}

func (f *FakeIdentityStore) UpdateSession(s *core.Session) (*core.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdateSessionCalls++
	if f.UpdateSessionErr != nil {
		return nil, f.UpdateSessionErr
	}
	if _, ok := f.sessions[s.SessionToken]; !ok {
		return nil, nil
	}
	stored := *s
	f.sessions[s.SessionToken] = &stored
	return s, nil
}

func (f *FakeIdentityStore) DeleteSession(sessionToken string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	delete(f.sessions, sessionToken)
	return nil
}

func (f *FakeIdentityStore) GetSessionAndUser(sessionToken string) (*core.SessionData, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	s, ok := f.sessions[sessionToken]
	if !ok {
		return nil, nil
	}
	u, ok := f.users[strconv.FormatInt(s.UserID, 10)]
	if !ok {
		return nil, nil
	}
	session := *s
	return &core.SessionData{Session: &session, User: u}, nil
}

func (f *FakeIdentityStore) CreateVerificationToken(v *core.VerificationToken) (*core.VerificationToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *v
	f.tokens[v.Identifier+"/"+v.Token] = &stored
	return &stored, nil
}

func (f *FakeIdentityStore) UseVerificationToken(identifier, token string) (*core.VerificationToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := identifier + "/" + token
	v, ok := f.tokens[key]
	if !ok {
		return nil, nil
	}
	delete(f.tokens, key)
	return v, nil
}

// CreateCredential records the call so registration tests can assert on it.
func (f *FakeIdentityStore) CreateCredential(userID, username, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateCredCalls++
	if f.CreateCredErr != nil {
		return f.CreateCredErr
	}
	return nil
}

// Sessions returns a snapshot of the stored session records.
func (f *FakeIdentityStore) Sessions() []*core.Session {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]*core.Session, 0, len(f.sessions))
	for _, s := range f.sessions {
		copied := *s
		out = append(out, &copied)
	}
	return out
}

// SeedUser inserts a user with a fixed id, bypassing id assignment.
func (f *FakeIdentityStore) SeedUser(u *core.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *u
	f.users[u.ID] = &copied
}

// SeedSession inserts a session record directly.
func (f *FakeIdentityStore) SeedSession(s *core.Session) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *s
	f.sessions[s.SessionToken] = &copied
}

// FakeCookieWriter is a test-only core.CookieWriter recording every write.
type FakeCookieWriter struct {
	Cookies map[string]string
	MaxAges map[string]time.Duration
	Expiry  map[string]time.Time
	Cleared []string

	// OnSet fires on every SetCookie, for ordering assertions.
	OnSet func(name, value string)
}

var _ core.CookieWriter = (*FakeCookieWriter)(nil)

func NewFakeCookieWriter() *FakeCookieWriter {
	return &FakeCookieWriter{
		Cookies: make(map[string]string),
		MaxAges: make(map[string]time.Duration),
		Expiry:  make(map[string]time.Time),
	}
}

func (f *FakeCookieWriter) SetCookie(name, value string, maxAge time.Duration, expires time.Time) {
	f.Cookies[name] = value
	f.MaxAges[name] = maxAge
	f.Expiry[name] = expires
	if f.OnSet != nil {
		f.OnSet(name, value)
	}
}

func (f *FakeCookieWriter) ClearCookie(name string) {
	delete(f.Cookies, name)
	f.Cleared = append(f.Cleared, name)
}

// FakeVerifier is a test-only core.CredentialVerifier with canned results.
type FakeVerifier struct {
	User *core.User
	Err  error
}

var _ core.CredentialVerifier = (*FakeVerifier)(nil)

func (f *FakeVerifier) Verify(username, password string) (*core.User, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.User, nil
}

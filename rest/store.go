package rest

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/torii-auth/torii/core"
)

// Store implements core.IdentityStore against the REST backend. Each
// operation is a single gateway call plus one classifier pass: reads degrade
// a NotFound to (nil, nil), everything else propagates unchanged. No
// operation inspects HTTP statuses on its own.
type Store struct {
	client *Client
	routes core.Routes
	log    *zap.Logger
}

var _ core.IdentityStore = (*Store)(nil)

func NewStore(client *Client, routes core.Routes, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		client: client,
		routes: routes.WithDefaults(),
		log:    log,
	}
}

// absent reports whether a 2xx response body carries no record.
func absent(data json.RawMessage) bool {
	s := strings.TrimSpace(string(data))
	return s == "" || s == "null"
}

func decodeUser(data json.RawMessage) (*core.User, error) {
	if absent(data) {
		return nil, nil
	}
	var user core.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	return &user, nil
}

// ============================================
// USERS
// ============================================

func (s *Store) CreateUser(u *core.User) (*core.User, error) {
	s.log.Debug("creating user", zap.String("email", u.Email))

	data, err := s.client.Post(s.routes.CreateUser, map[string]any{
		"name":          u.Name,
		"email":         u.Email,
		"image":         u.Image,
		"emailVerified": u.EmailVerified,
	})
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return decodeUser(data)
}

func (s *Store) UpdateUser(u *core.User) (*core.User, error) {
	data, err := s.client.Patch(s.routes.UpdateUser, u)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return decodeUser(data)
}

func (s *Store) DeleteUser(id string) error {
	_, err := s.client.Delete(s.routes.DeleteUser + "/" + url.PathEscape(id))
	if err != nil && !IsNotFound(err) {
		return err
	}
	return nil
}

func (s *Store) GetUser(id string) (*core.User, error) {
	data, err := s.client.Get(s.routes.GetUser + "/" + url.PathEscape(id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return decodeUser(data)
}

func (s *Store) GetUserByEmail(email string) (*core.User, error) {
	data, err := s.client.Get(s.routes.GetUserByEmail + "/" + url.PathEscape(email))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return decodeUser(data)
}

func (s *Store) GetUserByAccount(provider, providerAccountID string) (*core.User, error) {
	path := s.routes.GetUserByAccount + "/" + url.PathEscape(provider) + "/" + url.PathEscape(providerAccountID)
	data, err := s.client.Get(path)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return decodeUser(data)
}

// ============================================
// ACCOUNTS
// ============================================

func (s *Store) LinkAccount(a *core.Account) (*core.Account, error) {
	s.log.Debug("linking account",
		zap.String("provider", a.Provider),
		zap.String("userId", a.UserID))

	data, err := s.client.Post(s.routes.LinkAccount, a)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if absent(data) {
		return nil, nil
	}

	// Account.ExpiresAt normalizes string expiries on decode.
	var linked core.Account
	if err := json.Unmarshal(data, &linked); err != nil {
		return nil, fmt.Errorf("failed to decode account: %w", err)
	}
	return &linked, nil
}

func (s *Store) UnlinkAccount(provider, providerAccountID string) error {
	path := s.routes.UnlinkAccount + "/" + url.PathEscape(provider) + "/" + url.PathEscape(providerAccountID)
	_, err := s.client.Delete(path)
	if err != nil && !IsNotFound(err) {
		return err
	}
	return nil
}

// ============================================
// SESSIONS
// ============================================

func (s *Store) CreateSession(session *core.Session) (*core.Session, error) {
	s.log.Debug("creating session", zap.Int64("userId", session.UserID))

	_, err := s.client.Post(s.routes.CreateSession, session)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	// The backend acknowledges; the session as supplied is the result.
	return session, nil
}

func (s *Store) UpdateSession(session *core.Session) (*core.Session, error) {
	_, err := s.client.Patch(s.routes.UpdateSession, session)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return session, nil
}

func (s *Store) DeleteSession(sessionToken string) error {
	_, err := s.client.Delete(s.routes.DeleteSession + "/" + url.PathEscape(sessionToken))
	if err != nil && !IsNotFound(err) {
		return err
	}
	return nil
}

// GetSessionAndUser is the one compound operation: session lookup first,
// then the user lookup. A miss on the session short-circuits without
// issuing the second call.
func (s *Store) GetSessionAndUser(sessionToken string) (*core.SessionData, error) {
	data, err := s.client.Get(s.routes.GetSessionAndUser + "/" + url.PathEscape(sessionToken))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if absent(data) {
		return nil, nil
	}

	var session core.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	user, err := s.GetUser(strconv.FormatInt(session.UserID, 10))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	return &core.SessionData{Session: &session, User: user}, nil
}

// ============================================
// VERIFICATION TOKENS
// ============================================

func (s *Store) CreateVerificationToken(v *core.VerificationToken) (*core.VerificationToken, error) {
	data, err := s.client.Post(s.routes.CreateVerificationToken, v)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if absent(data) {
		return nil, nil
	}
	var created core.VerificationToken
	if err := json.Unmarshal(data, &created); err != nil {
		return nil, fmt.Errorf("failed to decode verification token: %w", err)
	}
	return &created, nil
}

// UseVerificationToken consumes a token. Whether consumption is atomic is
// the backend's concern; an unknown or already-used token comes back absent.
func (s *Store) UseVerificationToken(identifier, token string) (*core.VerificationToken, error) {
	data, err := s.client.Post(s.routes.UseVerificationToken, map[string]string{
		"identifier": identifier,
		"token":      token,
	})
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if absent(data) {
		return nil, nil
	}
	var used core.VerificationToken
	if err := json.Unmarshal(data, &used); err != nil {
		return nil, fmt.Errorf("failed to decode verification token: %w", err)
	}
	return &used, nil
}

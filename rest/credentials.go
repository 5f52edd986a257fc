package rest

import (
	"encoding/json"
	"strconv"

	"go.uber.org/zap"

	"github.com/torii-auth/torii/core"
)

// Credentials is the secondary call path for username/password auth. It is
// independent of the Store's session methods.
type Credentials struct {
	client *Client
	routes core.Routes
	log    *zap.Logger
}

var (
	_ core.CredentialVerifier = (*Credentials)(nil)
	_ core.CredentialCreator  = (*Credentials)(nil)
)

func NewCredentials(client *Client, routes core.Routes, log *zap.Logger) *Credentials {
	if log == nil {
		log = zap.NewNop()
	}
	return &Credentials{
		client: client,
		routes: routes.WithDefaults(),
		log:    log,
	}
}

// Verify checks a username/password pair against the backend. Bad
// credentials, a backend outage, and a malformed response all collapse into
// the same ErrInvalidCredentials: callers at this boundary must not be able
// to tell them apart. The real cause only goes to the debug log.
func (c *Credentials) Verify(username, password string) (*core.User, error) {
	data, err := c.client.Post(c.routes.VerifyCredentials, map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		c.log.Debug("credential verification failed", zap.Error(err))
		return nil, core.ErrInvalidCredentials
	}

	var user core.User
	if err := json.Unmarshal(data, &user); err != nil {
		c.log.Debug("credential verification returned malformed user", zap.Error(err))
		return nil, core.ErrInvalidCredentials
	}
	return &user, nil
}

// CreateCredential stores a password credential for an already-persisted
// user. The backend keys credentials by its integer user id.
func (c *Credentials) CreateCredential(userID, username, password string) error {
	id, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return core.ErrInvalidUserID
	}

	_, err = c.client.Post(c.routes.CreateCredentials, map[string]any{
		"user_id":  id,
		"username": username,
		"password": password,
	})
	return err
}

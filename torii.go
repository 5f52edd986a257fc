// Package torii is a web-frontend auth layer that delegates identity storage
// to a remote REST backend: a fixed identity-persistence contract (users,
// linked accounts, sessions, verification tokens) implemented over HTTP,
// plus the sign-in orchestration that mints a session token, sets the
// cookie, and persists the session before trusting the result.
package torii

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/torii-auth/torii/core"
	"github.com/torii-auth/torii/rest"
	"github.com/torii-auth/torii/services"
)

// interfaces
type (
	IdentityStore          = core.IdentityStore
	UserStore              = core.UserStore
	AccountStore           = core.AccountStore
	SessionStore           = core.SessionStore
	VerificationTokenStore = core.VerificationTokenStore
	CredentialVerifier     = core.CredentialVerifier
	SessionOrchestrator    = core.SessionOrchestrator
	Registrar              = core.Registrar
	CookieWriter           = core.CookieWriter
	HTTPAdapter            = core.HTTPAdapter
)

// structs
type (
	Torii         = core.App
	Config        = core.Config
	Routes        = core.Routes
	SessionConfig = core.SessionConfig
	RegisterInput = core.RegisterInput
	Credentials   = core.Credentials
)

type (
	User              = core.User
	Account           = core.Account
	Session           = core.Session
	SessionData       = core.SessionData
	VerificationToken = core.VerificationToken
	EpochSeconds      = core.EpochSeconds
)

const (
	defaultSecretLen = 32
)

// Constructors & helpers (convenience re-exports)
var (
	FromEnv              = core.FromEnv
	DefaultRoutes        = core.DefaultRoutes
	DefaultSessionConfig = core.DefaultSessionConfig
)

var (
	ErrInvalidCredentials = core.ErrInvalidCredentials
	ErrInvalidToken       = core.ErrInvalidToken
	ErrSessionNotFound    = core.ErrSessionNotFound
	ErrSessionExpired     = core.ErrSessionExpired
	ErrInvalidUserID      = core.ErrInvalidUserID
)

var (
	ErrSecretRequired = core.ErrSecretRequired
	ErrSecretTooShort = core.ErrSecretTooShort
)

// New assembles the library: REST gateway, identity store, credential
// verifier, session orchestration, registration - and mounts the HTTP
// routes when an adapter is configured.
func New(config Config) (*Torii, error) {
	if config.Secret == "" {
		return nil, ErrSecretRequired
	}
	if len(config.Secret) < defaultSecretLen {
		return nil, fmt.Errorf("%w - minimum of %d characters", ErrSecretTooShort, defaultSecretLen)
	}

	// Set defaults

	backendURL := config.BackendURL
	if backendURL == "" {
		backendURL = core.DefaultBackendURL
	}

	basePath := config.BasePath
	if basePath == "" {
		basePath = "/api/auth"
	}

	sessionConfig := config.Session
	if sessionConfig == nil {
		sessionConfig = DefaultSessionConfig()
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	routes := config.Routes.WithDefaults()

	client := rest.NewClient(backendURL, config.Secret, config.HTTPClient, logger)
	store := rest.NewStore(client, routes, logger)
	credentials := rest.NewCredentials(client, routes, logger)

	app := &Torii{
		Store:       store,
		Credentials: credentials,
		Registrar:   services.NewRegistration(store, credentials, logger),
		Sessions:    services.NewSessionManager(*sessionConfig, store, logger),
		Session:     sessionConfig,
		Secret:      config.Secret,
		BasePath:    basePath,
		Logger:      logger,
	}

	if config.HTTP != nil {
		if err := config.HTTP.RegisterRoutes(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

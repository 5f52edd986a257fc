package core

import (
	"fmt"
	"net/http"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
)

const DefaultBackendURL = "http://0.0.0.0:8000/auth"

// Config assembles everything torii needs. Nothing reads ambient state once
// the config is constructed; FromEnv is the only place that touches the
// process environment.
type Config struct {
	// BackendURL is the base URL of the identity backend.
	BackendURL string `env:"AUTH_BACKEND_URL" envDefault:"http://0.0.0.0:8000/auth"`
	// Secret is the shared secret sent on every backend call.
	Secret string `env:"AUTH_SECRET"`
	// BasePath is where the HTTP adapter mounts the auth routes.
	BasePath string `env:"AUTH_BASE_PATH" envDefault:"/api/auth"`

	// Routes overrides individual backend paths. Empty fields use defaults.
	Routes Routes

	// Session overrides the cookie and lifetime policy.
	Session *SessionConfig

	// HTTP mounts the sign-in/sign-out/session routes when set.
	HTTP HTTPAdapter

	// HTTPClient is the outbound transport. Defaults to http.DefaultClient;
	// no timeout is imposed beyond what the client itself carries.
	HTTPClient *http.Client

	Logger *zap.Logger
}

// FromEnv builds a Config from the process environment.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}

// App is the assembled library: the identity store plus the orchestration
// services built on top of it. HTTP adapters receive it on route
// registration.
type App struct {
	Store       IdentityStore
	Credentials CredentialVerifier
	Registrar   Registrar
	Sessions    SessionOrchestrator

	Session  *SessionConfig
	Secret   string
	BasePath string
	Logger   *zap.Logger
}

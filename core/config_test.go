package core

import (
	"os"
	"testing"
)

// Requirement: configuration comes from the process environment exactly
// once, with a local development default for the backend URL.
func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		// t.Setenv registers the restore; the vars must be absent for the
		// defaults to apply.
		t.Setenv("AUTH_BACKEND_URL", "")
		t.Setenv("AUTH_SECRET", "")
		os.Unsetenv("AUTH_BACKEND_URL")
		os.Unsetenv("AUTH_SECRET")

		cfg, err := FromEnv()
		if err != nil {
			t.Fatalf("FromEnv() error = %v", err)
		}
		if cfg.BackendURL != DefaultBackendURL {
			t.Errorf("BackendURL = %q, want %q", cfg.BackendURL, DefaultBackendURL)
		}
		if cfg.BasePath != "/api/auth" {
			t.Errorf("BasePath = %q, want /api/auth", cfg.BasePath)
		}
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("AUTH_BACKEND_URL", "https://identity.internal/auth")
		t.Setenv("AUTH_SECRET", "super-secret-value-of-sufficient-len")

		cfg, err := FromEnv()
		if err != nil {
			t.Fatalf("FromEnv() error = %v", err)
		}
		if cfg.BackendURL != "https://identity.internal/auth" {
			t.Errorf("BackendURL = %q", cfg.BackendURL)
		}
		if cfg.Secret != "super-secret-value-of-sufficient-len" {
			t.Errorf("Secret = %q", cfg.Secret)
		}
	})
}

package services

import (
	"errors"
	"testing"

	"github.com/torii-auth/torii/core"
)

// Requirement: registration creates the user first, then a credential keyed
// by the email local part.
func TestRegistration_Register(t *testing.T) {
	tests := []struct {
		name    string
		input   core.RegisterInput
		setup   func(*FakeIdentityStore)
		wantErr bool
	}{
		{
			name:  "valid input",
			input: core.RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "correct horse battery"},
		},
		{
			name:    "missing name",
			input:   core.RegisterInput{Email: "alice@example.com", Password: "correct horse battery"},
			wantErr: true,
		},
		{
			name:    "invalid email",
			input:   core.RegisterInput{Name: "Alice", Email: "not-an-email", Password: "correct horse battery"},
			wantErr: true,
		},
		{
			name:    "password too short",
			input:   core.RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "short"},
			wantErr: true,
		},
		{
			name:  "user creation fails",
			input: core.RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "correct horse battery"},
			setup: func(f *FakeIdentityStore) {
				f.CreateUserErr = errors.New("backend down")
			},
			wantErr: true,
		},
		{
			name:  "credential creation fails",
			input: core.RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "correct horse battery"},
			setup: func(f *FakeIdentityStore) {
				f.CreateCredErr = errors.New("backend down")
			},
			wantErr: true,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			store := NewFakeIdentityStore()
			if test.setup != nil {
				test.setup(store)
			}
			registration := NewRegistration(store, store, nil)

			user, err := registration.Register(test.input)

			if (err != nil) != test.wantErr {
				t.Fatalf("Register() error = %v, wantErr %v", err, test.wantErr)
			}
			if test.wantErr {
				return
			}
			if user == nil || user.ID == "" {
				t.Fatalf("Register() user = %+v, want backend-assigned id", user)
			}
			if store.CreateCredCalls != 1 {
				t.Errorf("credential calls = %d, want 1", store.CreateCredCalls)
			}
		})
	}
}

// No credential call goes out when validation or user creation fails.
func TestRegistration_Register_StopsOnFailure(t *testing.T) {
	store := NewFakeIdentityStore()
	store.CreateUserErr = errors.New("backend down")
	registration := NewRegistration(store, store, nil)

	_, err := registration.Register(core.RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "correct horse battery",
	})
	if err == nil {
		t.Fatal("Register() error = nil")
	}
	if store.CreateCredCalls != 0 {
		t.Errorf("credential calls = %d, want 0", store.CreateCredCalls)
	}
}

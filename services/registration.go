package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/torii-auth/torii/core"
)

// Registration creates a user and their password credential, in that order.
// The credential is keyed by a username derived from the email local part.
type Registration struct {
	users    core.UserStore
	creds    core.CredentialCreator
	validate *validator.Validate
	log      *zap.Logger
}

var _ core.Registrar = (*Registration)(nil)

func NewRegistration(users core.UserStore, creds core.CredentialCreator, log *zap.Logger) *Registration {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registration{
		users:    users,
		creds:    creds,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}

func (r *Registration) Register(input core.RegisterInput) (*core.User, error) {
	if err := r.validate.Struct(input); err != nil {
		return nil, err
	}

	user, err := r.users.CreateUser(&core.User{
		Name:  input.Name,
		Email: input.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	if user == nil {
		return nil, errors.New("backend returned no user")
	}

	username := input.Email
	if at := strings.Index(username, "@"); at >= 0 {
		username = username[:at]
	}

	if err := r.creds.CreateCredential(user.ID, username, input.Password); err != nil {
		return nil, fmt.Errorf("failed to create credential: %w", err)
	}

	r.log.Debug("user registered", zap.String("userId", user.ID))
	return user, nil
}

package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Account represents a linked external-provider identity
//
// This is the "credential" - how someone proves who they are.
// Many accounts may belong to one user.
type Account struct {
	UserID            string       `json:"userId"`
	Type              string       `json:"type,omitempty"`
	Provider          string       `json:"provider"`
	ProviderAccountID string       `json:"providerAccountId"`
	AccessToken       *string      `json:"access_token,omitempty"`
	RefreshToken      *string      `json:"refresh_token,omitempty"`
	IDToken           *string      `json:"id_token,omitempty"`
	TokenType         *string      `json:"token_type,omitempty"`
	Scope             *string      `json:"scope,omitempty"`
	ExpiresAt         EpochSeconds `json:"expires_at,omitempty"`
}

// EpochSeconds is a token expiry in whole seconds since the Unix epoch.
// The backend is not consistent about the wire type: some responses carry
// a JSON number, others a numeric string. Both decode to the same integer.
type EpochSeconds int64

func (e *EpochSeconds) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*e = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid expires_at value %q: %w", s, err)
	}
	*e = EpochSeconds(n)
	return nil
}

package core

import "time"

// VerificationToken is a single-use token (email verification, magic links).
// Consuming it is atomic at the backend: a token read twice must not
// validate twice. Torii only forwards what the backend decides.
type VerificationToken struct {
	Identifier string    `json:"identifier"`
	Token      string    `json:"token"`
	Expires    time.Time `json:"expires"`
}

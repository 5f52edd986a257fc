package core

// User represents a user account in the system
//
// This is the "identity" - who someone is. The record belongs to the
// backend; torii never assigns the ID itself.
type User struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Image         *string `json:"image,omitempty"`
	EmailVerified bool    `json:"emailVerified"`
}

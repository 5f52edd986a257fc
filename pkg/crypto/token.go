package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
)

var (
	ErrTooManyArgs = errors.New("too many arguments. expected only 1")
)

const (
	DefaultTokenLength = 32 // 256 bits
)

// GenerateToken returns an opaque, unpredictable token: crypto/rand bytes,
// base64url without padding. The token carries no decodable information.
func GenerateToken(byteLength ...int) (string, error) {
	if len(byteLength) > 1 {
		return "", ErrTooManyArgs
	}

	length := DefaultTokenLength
	if len(byteLength) > 0 && byteLength[0] > 0 {
		length = byteLength[0]
	}

	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

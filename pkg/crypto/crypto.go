package crypto

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateRandomString returns 32 random bytes encoded with the URL-safe base64 alphabet, so the
// result can be used as an OAuth2 state without escaping.
func GenerateRandomString() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

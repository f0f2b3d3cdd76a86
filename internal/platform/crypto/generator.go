// File: internal/platform/crypto/generator.go
package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// StateBytes is the amount of randomness put into an OAuth state value.
const StateBytes = 32

// GenerateSecureRandomString creates a cryptographically secure random string.
// n is the number of bytes of randomness; the URL-safe result is longer.
func GenerateSecureRandomString(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("random string length must be positive, got %d", n)
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

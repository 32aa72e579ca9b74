package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateOrderToken returns an unguessable bearer token for guest order
// lookup. 32 random bytes, hex encoded.
func GenerateOrderToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate order token: %v", err)
	}
	return hex.EncodeToString(buf), nil
}

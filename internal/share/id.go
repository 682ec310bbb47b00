package share

import (
	"crypto/rand"
	"fmt"
)

// idAlphabet is 64 URL-safe characters, so each random byte maps to
// one character without modulo bias.
const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// DefaultIDLength matches the original share links. 10 characters of
// a 64-char alphabet give a keyspace where collisions are negligible
// for a 24-hour-lived namespace. Callers must not assume uniqueness
// beyond the TTL window.
const DefaultIDLength = 10

// NewID returns a fresh share identifier of length n.
func NewID(n int) (string, error) {
	if n <= 0 {
		n = DefaultIDLength
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	for i, b := range buf {
		buf[i] = idAlphabet[b&63]
	}
	return string(buf), nil
}

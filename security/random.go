package security

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// randomAlphabet is the character set used for grant codes and other opaque
// identifiers. It is the 66-character RFC 3986 unreserved set (the same set
// RFC 7636 mandates for PKCE code verifiers), so generated values are always
// URL-safe without further encoding.
const randomAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-._~"

// MinGrantCodeLength is the minimum length for authorization grant codes.
// 32 characters over a 66-character alphabet gives ~193 bits of entropy.
const MinGrantCodeLength = 32

// GenerateRandomString returns a string of length characters drawn uniformly
// from the unreserved-character alphabet using crypto/rand. Each character is
// sampled independently, so concurrent calls cannot be correlated.
func GenerateRandomString(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("length must be positive, got %d", length)
	}

	max := big.NewInt(int64(len(randomAlphabet)))
	b := make([]byte, length)
	for i := range b {
		// crypto/rand.Int performs rejection sampling, so the distribution
		// over the alphabet is uniform rather than modulo-biased.
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random source: %w", err)
		}
		b[i] = randomAlphabet[n.Int64()]
	}
	return string(b), nil
}

// GenerateGrantCode returns a fresh opaque authorization grant code.
func GenerateGrantCode() (string, error) {
	return GenerateRandomString(MinGrantCodeLength)
}

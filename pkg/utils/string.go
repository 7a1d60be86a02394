package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// CodeCharset drops characters that are easy to misread when a code is typed by hand.
const CodeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func GenerateRandomString(length int) (string, error) {
	return GenerateFromAlphabet(CodeCharset, length)
}

// GenerateFromAlphabet draws length characters uniformly from alphabet.
func GenerateFromAlphabet(alphabet string, length int) (string, error) {
	if alphabet == "" || length <= 0 {
		return "", fmt.Errorf("invalid code parameters: alphabet %q, length %d", alphabet, length)
	}
	max := big.NewInt(int64(len(alphabet)))
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random source: %w", err)
		}
		b[i] = alphabet[n.Int64()]
	}
	return string(b), nil
}

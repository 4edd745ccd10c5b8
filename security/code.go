package security

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	CodeDigits = 6

	RegisterCodeLifetime = time.Minute * 30
	LoginCodeLifetime    = time.Minute * 15
)

// GenerateCode returns a random 6-digit numeric verification code,
// zero-padded so "004213" stays six characters on the wire.
func GenerateCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < CodeDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%0*d", CodeDigits, n), nil
}

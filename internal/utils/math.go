package utils

import (
	crand "crypto/rand"
	"fmt"
	"math/big"
	"math/rand"
)

// RandomPercent returns a random draw in [0, 100)
func RandomPercent() float64 {
	return rand.Float64() * 100 //nolint:gosec // Game logic randomness, not security critical
}

// RandomIntn returns a random integer in [0, n). Returns 0 when n <= 0.
func RandomIntn(n int) int {
	if n <= 0 {
		return 0
	}
	return rand.Intn(n) //nolint:gosec // Game logic randomness, not security critical
}

// SecureRandomInt returns a random integer between min and max (inclusive) using crypto/rand
func SecureRandomInt(min, max int) (int, error) {
	if min > max {
		return 0, fmt.Errorf("min cannot be greater than max")
	}
	diff := big.NewInt(int64(max - min + 1))
	n, err := crand.Int(crand.Reader, diff)
	if err != nil {
		return 0, err
	}
	return int(n.Int64()) + min, nil
}

// SecureIntn returns a random integer in [0, n) using crypto/rand.
// Falls back to math/rand if the system source fails.
func SecureIntn(n int) int {
	if n <= 0 {
		return 0
	}
	v, err := SecureRandomInt(0, n-1)
	if err != nil {
		return RandomIntn(n)
	}
	return v
}

// Shuffle performs an in-place Fisher-Yates shuffle using the given source.
// rng(n) must return a value in [0, n).
func Shuffle[T any](s []T, rng func(int) int) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

package random

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Intn returns a uniform random int in [0, n) from crypto/rand.
func Intn(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("invalid bound: %d", n)
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("failed to generate random number: %w", err)
	}
	return int(v.Int64()), nil
}

// Pick returns a uniformly selected element of the slice.
func Pick[T any](slice []T) (T, error) {
	var zero T
	if len(slice) == 0 {
		return zero, fmt.Errorf("empty slice")
	}
	i, err := Intn(len(slice))
	if err != nil {
		return zero, err
	}
	return slice[i], nil
}

// Shuffle performs a Fisher-Yates shuffle of the slice in place.
func Shuffle[T any](slice []T) error {
	for i := len(slice) - 1; i > 0; i-- {
		j, err := Intn(i + 1)
		if err != nil {
			return err
		}
		slice[i], slice[j] = slice[j], slice[i]
	}
	return nil
}

package raffle

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// RandomSource draws uniformly distributed integers.
type RandomSource interface {
	// Intn returns a uniform value in [0, n).
	Intn(n int) (int, error)
}

// CryptoRandomSource draws from crypto/rand.
type CryptoRandomSource struct{}

func NewCryptoRandomSource() RandomSource {
	return CryptoRandomSource{}
}

func (CryptoRandomSource) Intn(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("random bound must be positive, got %d", n)
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("failed to draw random number: %w", err)
	}
	return int(v.Int64()), nil
}

// DrawWinningNumber picks a ticket number uniformly from [1, totalTickets].
func DrawWinningNumber(src RandomSource, totalTickets int) (int, error) {
	v, err := src.Intn(totalTickets)
	if err != nil {
		return 0, err
	}
	if v < 0 || v >= totalTickets {
		return 0, fmt.Errorf("%w: source returned %d for bound %d", ErrInvalidWinningNumber, v, totalTickets)
	}
	return v + 1, nil
}

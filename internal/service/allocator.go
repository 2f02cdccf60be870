package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/josh-kwaku/pin-ledger/internal/domain"
	"github.com/josh-kwaku/pin-ledger/internal/logging"
)

type numberRegistry interface {
	Claim(ctx context.Context, accountNumber int) (int64, error)
}

// Allocator hands out account numbers nobody has held before by claiming
// them in the registry table, whose unique constraint arbitrates collisions.
type Allocator struct {
	registry    numberRegistry
	maxAttempts int
	draw        func() (int, error)
}

// NewAllocator builds an allocator. maxAttempts of 0 retries until a free
// number turns up.
func NewAllocator(registry numberRegistry, maxAttempts int) *Allocator {
	return &Allocator{
		registry:    registry,
		maxAttempts: maxAttempts,
		draw:        func() (int, error) { return randomInRange(domain.MinAccountNumber, domain.MaxAccountNumber) },
	}
}

func (a *Allocator) Allocate(ctx context.Context) (int, error) {
	log := logging.FromContext(ctx)

	for attempt := 1; a.maxAttempts == 0 || attempt <= a.maxAttempts; attempt++ {
		n, err := a.draw()
		if err != nil {
			return 0, fmt.Errorf("Allocate: %w", err)
		}

		_, err = a.registry.Claim(ctx, n)
		if err == nil {
			return n, nil
		}
		if !errors.Is(err, domain.ErrUniqueViolation) {
			return 0, fmt.Errorf("Allocate: %w", err)
		}
		log.Debug("account number taken, drawing again", "attempt", attempt)
	}

	return 0, fmt.Errorf("Allocate: %d attempts: %w", a.maxAttempts, domain.ErrAccountNumbersExhausted)
}

// randomInRange returns a uniform integer in [lo, hi].
func randomInRange(lo, hi int) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(hi-lo+1)))
	if err != nil {
		return 0, fmt.Errorf("randomInRange: %w", err)
	}
	return lo + int(n.Int64()), nil
}

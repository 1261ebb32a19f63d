package utils

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

// ErrInvalidRange is returned when a range cannot satisfy the requested count.
var ErrInvalidRange = errors.New("invalid number range")

// Generator draws pseudo-random integers from a seeded source. It is not
// safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a Generator. A zero seed picks a time-based seed.
func NewGenerator(seed uint64) *Generator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// GenerateRandomNumbers returns count integers from [low, high]; values may repeat.
func (g *Generator) GenerateRandomNumbers(low, high, count int) ([]int, error) {
	if low > high {
		return nil, fmt.Errorf("low %d above high %d: %w", low, high, ErrInvalidRange)
	}
	if count < 0 {
		return nil, fmt.Errorf("negative count %d: %w", count, ErrInvalidRange)
	}

	numbers := make([]int, count)
	for i := range numbers {
		numbers[i] = low + g.rng.IntN(high-low+1)
	}
	return numbers, nil
}

// GenerateUniqueRandomNumbers returns count distinct integers from [low, high]
// in random order. count must not exceed the size of the range.
func (g *Generator) GenerateUniqueRandomNumbers(low, high, count int) ([]int, error) {
	if low > high {
		return nil, fmt.Errorf("low %d above high %d: %w", low, high, ErrInvalidRange)
	}
	span := high - low + 1
	if count < 0 || count > span {
		return nil, fmt.Errorf("%d unique numbers requested from a range of %d: %w", count, span, ErrInvalidRange)
	}

	pool := make([]int, span)
	for i := range pool {
		pool[i] = low + i
	}
	// partial Fisher-Yates: only the first count slots are settled
	for i := 0; i < count; i++ {
		j := i + g.rng.IntN(span-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:count:count], nil
}

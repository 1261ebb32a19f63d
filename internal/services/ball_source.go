package services

import (
	"context"

	"github.com/ArowuTest/bridgetunes-bingo/internal/config"
	"github.com/ArowuTest/bridgetunes-bingo/internal/utils"
)

// Compile-time checks to ensure the ball sources implement BallSource
var (
	_ BallSource = (*RandomBallSource)(nil)
	_ BallSource = FixedBallSource(nil)
)

// RandomBallSource draws a random permutation of 1..90.
type RandomBallSource struct {
	gen *utils.Generator
}

// NewRandomBallSource creates a RandomBallSource backed by gen.
func NewRandomBallSource(gen *utils.Generator) *RandomBallSource {
	return &RandomBallSource{gen: gen}
}

// Balls returns a fresh permutation on every call.
func (s *RandomBallSource) Balls(ctx context.Context) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.gen.GenerateUniqueRandomNumbers(config.LowestBall, config.HighestBall, DeckSize)
}

// FixedBallSource replays a configured draw order.
type FixedBallSource []int

// Balls returns a copy of the configured order.
func (s FixedBallSource) Balls(ctx context.Context) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]int(nil), s...), nil
}

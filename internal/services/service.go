package services

import (
	"context"
)

// BallSource supplies the draw order for a game.
type BallSource interface {
	// Balls returns the sequence of numbers to draw, in order
	Balls(ctx context.Context) ([]int, error)
}

// SimulationService defines the interface for running a configured bingo game
type SimulationService interface {
	// Run builds the roster, obtains the draw order and plays one game
	Run(ctx context.Context) (*BingoGame, error)
}

package services

import (
	"context"
	"fmt"

	"github.com/ArowuTest/bridgetunes-bingo/internal/config"
	"github.com/ArowuTest/bridgetunes-bingo/internal/models"
	"github.com/ArowuTest/bridgetunes-bingo/internal/utils"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure SimulationServiceImpl implements SimulationService
var _ SimulationService = (*SimulationServiceImpl)(nil)

// SimulationServiceImpl wires configuration, roster, draw order and game
type SimulationServiceImpl struct {
	cfg    *config.Config
	gen    *utils.Generator
	balls  BallSource
	logger *slog.Logger
}

// NewSimulationService creates a SimulationServiceImpl. Configured balls
// are replayed as given; otherwise the draw order is a random permutation.
func NewSimulationService(cfg *config.Config, logger *slog.Logger) *SimulationServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	gen := utils.NewGenerator(cfg.Simulation.Seed)

	var balls BallSource = NewRandomBallSource(gen)
	if len(cfg.Simulation.Balls) > 0 {
		balls = FixedBallSource(cfg.Simulation.Balls)
	}

	return &SimulationServiceImpl{
		cfg:    cfg,
		gen:    gen,
		balls:  balls,
		logger: logger,
	}
}

// WithBallSource replaces the draw order source.
func (s *SimulationServiceImpl) WithBallSource(balls BallSource) *SimulationServiceImpl {
	s.balls = balls
	return s
}

// Run builds the roster, obtains the draw order and plays one game
func (s *SimulationServiceImpl) Run(ctx context.Context) (*BingoGame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var imported []models.Card
	if s.cfg.Simulation.CardsFile != "" {
		result, err := utils.LoadCardsFile(s.cfg.Simulation.CardsFile)
		if err != nil {
			s.logger.Error("Failed to import cards", "error", err, "file", s.cfg.Simulation.CardsFile)
			return nil, fmt.Errorf("failed to import cards: %w", err)
		}
		for _, rowErr := range result.Errors {
			s.logger.Warn("Skipped card row", "error", rowErr, "file", s.cfg.Simulation.CardsFile)
		}
		s.logger.Info("Cards imported", "file", s.cfg.Simulation.CardsFile, "rows", result.TotalRows, "cards", len(result.Cards))
		imported = result.Cards
	}

	roster, err := BuildRoster(s.gen, s.cfg.Simulation, imported)
	if err != nil {
		return nil, err
	}

	balls, err := s.balls.Balls(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain draw order: %w", err)
	}

	game := NewBingoGame(roster, s.cfg.Simulation.JackpotBall,
		WithLogger(s.logger),
		WithTrace(s.cfg.Trace),
	)
	if err := game.PlayChecked(balls); err != nil {
		s.logger.Error("Draw rejected", "error", err, "runId", game.RunID().String())
		return nil, err
	}

	s.logger.Info("Simulation finished",
		"runId", game.RunID().String(),
		"cards", game.GetNumberOfCards(),
		"steps", game.GetTotalSteps(),
		"winners", game.GetNumberOfWinners(),
		"jackpot", game.HasJackpotWinners(),
	)
	return game, nil
}

package services

import (
	"errors"
	"fmt"

	"github.com/ArowuTest/bridgetunes-bingo/internal/config"
	"github.com/ArowuTest/bridgetunes-bingo/internal/models"
	"github.com/ArowuTest/bridgetunes-bingo/internal/utils"
)

// ErrDuplicateCardID is returned by BuildRoster when two cards share an id.
var ErrDuplicateCardID = errors.New("card id already in roster")

// BuildRoster assembles the cards of a game in play order: RandomCards
// random cards with ids CardIDBase+i, then the target cards, then imported.
// Card ids must be unique across the whole roster.
func BuildRoster(gen *utils.Generator, sim config.SimulationConfig, imported []models.Card) ([]models.Card, error) {
	cards := make([]models.Card, 0, sim.RandomCards+len(sim.TargetCards)+len(imported))
	seen := make(map[uint]string, cap(cards))
	add := func(card models.Card, origin string) error {
		if prev, ok := seen[card.ID()]; ok {
			return fmt.Errorf("%s card %d, first used by a %s card: %w", origin, card.ID(), prev, ErrDuplicateCardID)
		}
		seen[card.ID()] = origin
		cards = append(cards, card)
		return nil
	}

	for i := 0; i < sim.RandomCards; i++ {
		numbers, err := gen.GenerateUniqueRandomNumbers(config.LowestBall, config.HighestBall, models.CardSize)
		if err != nil {
			return nil, fmt.Errorf("failed to generate random card %d: %w", i, err)
		}
		if err := add(models.NewCard(sim.CardIDBase+uint(i), numbers), "random"); err != nil {
			return nil, err
		}
	}

	for _, target := range sim.TargetCards {
		card, err := models.NewValidatedCard(target.ID, target.Numbers)
		if err != nil {
			return nil, fmt.Errorf("invalid target card: %w", err)
		}
		if err := add(card, "target"); err != nil {
			return nil, err
		}
	}

	for _, card := range imported {
		if err := add(card, "imported"); err != nil {
			return nil, err
		}
	}
	return cards, nil
}

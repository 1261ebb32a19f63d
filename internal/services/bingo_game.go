package services

import (
	"fmt"
	"io"

	"github.com/ArowuTest/bridgetunes-bingo/internal/config"
	"github.com/ArowuTest/bridgetunes-bingo/internal/models"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// DeckSize is the number of balls a full draw must hold.
const DeckSize = config.HighestBall - config.LowestBall + 1

// ErrDrawLength is returned by PlayChecked for draws that do not hold DeckSize balls.
var ErrDrawLength = fmt.Errorf("draw must hold exactly %d balls", DeckSize)

// BingoGame drives a draw sequence over a roster of cards and collects the
// winners of each round. It is not safe for concurrent use.
type BingoGame struct {
	runID       uuid.UUID
	cards       []models.Card
	jackpotBall uint

	firstWinners  []models.Card
	secondWinners []models.Card
	thirdWinners  []models.Card
	winners       []models.Winner

	round       models.Round
	stepCounter uint
	completed   bool

	logger *slog.Logger
	trace  bool
}

// GameOption customizes a BingoGame.
type GameOption func(*BingoGame)

// WithLogger sets the logger used for round and trace records.
func WithLogger(logger *slog.Logger) GameOption {
	return func(g *BingoGame) { g.logger = logger }
}

// WithTrace enables one debug record per draw step and per matching card.
func WithTrace(enabled bool) GameOption {
	return func(g *BingoGame) { g.trace = enabled }
}

// WithRunID overrides the generated run identifier.
func WithRunID(id uuid.UUID) GameOption {
	return func(g *BingoGame) { g.runID = id }
}

// NewBingoGame creates a game over copies of cards. Later changes to the
// caller's cards do not reach the game, and the reverse.
func NewBingoGame(cards []models.Card, jackpotBall uint, opts ...GameOption) *BingoGame {
	g := &BingoGame{
		runID:       uuid.New(),
		cards:       cloneCards(cards),
		jackpotBall: jackpotBall,
		round:       models.NewRound(),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With("runId", g.runID.String())
	return g
}

// Play runs balls through the game. A draw that does not hold exactly
// DeckSize balls is ignored and nothing changes. Otherwise the step counter
// restarts, the round restarts at FIRST and every ball is marked on every
// card in roster order. A card is recorded only when the pattern it reaches
// equals the active round; the round advances after any draw that produced
// a winner and the game stops once THIRD has a winner.
func (g *BingoGame) Play(balls []int) {
	if len(balls) != DeckSize {
		return
	}

	g.stepCounter = 0
	g.round = models.NewRound()
	g.completed = false

	for _, ball := range balls {
		g.stepCounter++
		current := g.round.Current()
		roundHasWinner := false

		if g.trace {
			g.logger.Debug("Draw step", "step", g.stepCounter, "round", models.RoundToInt(current), "ball", ball)
		}

		for i := range g.cards {
			card := &g.cards[i]
			winner := card.MarkNumber(ball)
			if g.trace && card.IsMarked(ball) {
				g.traceCard(card, winner, current)
			}
			if winner != current {
				continue
			}

			g.recordWinner(card, current, ball)
			roundHasWinner = true
		}

		if !roundHasWinner {
			continue
		}
		if g.round.IsTerminal() {
			g.completed = true
			g.logger.Info("Game completed", "step", g.stepCounter, "winners", len(g.thirdWinners))
			break
		}
		g.round.Advance()
		g.logger.Info("Round advanced", "step", g.stepCounter, "round", g.round.Current().String())
	}
}

// PlayChecked is Play for callers that need to know when a draw was rejected.
func (g *BingoGame) PlayChecked(balls []int) error {
	if len(balls) != DeckSize {
		return fmt.Errorf("got %d balls: %w", len(balls), ErrDrawLength)
	}
	g.Play(balls)
	return nil
}

func (g *BingoGame) recordWinner(card *models.Card, round models.WinnerType, ball int) {
	snapshot := card.Clone()
	switch round {
	case models.WinnerFirst:
		g.firstWinners = append(g.firstWinners, snapshot)
	case models.WinnerSecond:
		g.secondWinners = append(g.secondWinners, snapshot)
	case models.WinnerThird:
		g.thirdWinners = append(g.thirdWinners, snapshot)
	}
	g.winners = append(g.winners, models.Winner{
		CardID: card.ID(),
		Round:  round,
		Step:   g.stepCounter,
		Ball:   ball,
	})
	g.logger.Info("Round winner", "round", round.String(), "cardId", card.ID(), "step", g.stepCounter, "ball", ball)
}

func (g *BingoGame) traceCard(card *models.Card, winner, current models.WinnerType) {
	remaining := card.GetRemainingBasedOnRound(current)
	attrs := []any{
		"cardId", card.ID(),
		"patterns", models.RoundToInt(winner),
		"mask", card.MaskString(),
		"remaining", remaining,
	}
	if winner == models.WinnerInvalid {
		attrs = append(attrs, "invalid", true)
	}
	if len(remaining) == 0 {
		attrs = append(attrs, "winner", true)
	}
	g.logger.Debug("Card marked", attrs...)
}

// RunID identifies this game in logs and summaries.
func (g *BingoGame) RunID() uuid.UUID { return g.runID }

// GetTotalSteps returns the number of balls drawn by the last Play.
func (g *BingoGame) GetTotalSteps() uint { return g.stepCounter }

// GetNumberOfCards returns the roster size.
func (g *BingoGame) GetNumberOfCards() int { return len(g.cards) }

// GetNumberOfWinners returns the combined length of the three winner lists.
func (g *BingoGame) GetNumberOfWinners() int {
	return len(g.firstWinners) + len(g.secondWinners) + len(g.thirdWinners)
}

// GetFirstWinners returns copies of the cards that won the FIRST round.
func (g *BingoGame) GetFirstWinners() []models.Card { return cloneCards(g.firstWinners) }

// GetSecondWinners returns copies of the cards that won the SECOND round.
func (g *BingoGame) GetSecondWinners() []models.Card { return cloneCards(g.secondWinners) }

// GetThirdWinners returns copies of the cards that won the THIRD round.
func (g *BingoGame) GetThirdWinners() []models.Card { return cloneCards(g.thirdWinners) }

// GetCards returns copies of the live roster.
func (g *BingoGame) GetCards() []models.Card { return cloneCards(g.cards) }

// GetWinners returns every win in the order it was recorded.
func (g *BingoGame) GetWinners() []models.Winner {
	return append([]models.Winner(nil), g.winners...)
}

// CurrentRound returns the round that was active when the last Play stopped.
func (g *BingoGame) CurrentRound() models.WinnerType { return g.round.Current() }

// HasJackpotWinners reports whether the last Play finished within
// jackpotBall draws. It does not take part in round qualification.
func (g *BingoGame) HasJackpotWinners() bool {
	return g.stepCounter <= g.jackpotBall
}

// Summary reports the outcome of the game so far.
func (g *BingoGame) Summary() models.GameSummary {
	return models.GameSummary{
		RunID:         g.runID,
		NumberOfCards: len(g.cards),
		TotalSteps:    g.stepCounter,
		FinalRound:    g.round.Current(),
		Completed:     g.completed,
		JackpotBall:   g.jackpotBall,
		Jackpot:       g.HasJackpotWinners(),
		Rounds: []models.RoundResult{
			{Round: models.WinnerFirst, CardIDs: cardIDs(g.firstWinners)},
			{Round: models.WinnerSecond, CardIDs: cardIDs(g.secondWinners)},
			{Round: models.WinnerThird, CardIDs: cardIDs(g.thirdWinners)},
		},
		Winners: g.GetWinners(),
	}
}

// PrintCard writes one card to w.
func (g *BingoGame) PrintCard(w io.Writer, card models.Card) error {
	return card.Print(w)
}

// PrintCards writes every card of the roster to w.
func (g *BingoGame) PrintCards(w io.Writer) error {
	for _, card := range g.cards {
		if err := g.PrintCard(w, card); err != nil {
			return err
		}
	}
	return nil
}

// PrintWinners writes the winners of each round to w.
func (g *BingoGame) PrintWinners(w io.Writer) error {
	sections := []struct {
		title string
		cards []models.Card
	}{
		{"First round winners:", g.firstWinners},
		{"Second round winners:", g.secondWinners},
		{"Third round winners:", g.thirdWinners},
	}
	for _, s := range sections {
		if _, err := fmt.Fprintln(w, s.title); err != nil {
			return err
		}
		for _, card := range s.cards {
			if err := g.PrintCard(w, card); err != nil {
				return err
			}
		}
	}
	return nil
}

func cloneCards(cards []models.Card) []models.Card {
	if cards == nil {
		return nil
	}
	out := make([]models.Card, len(cards))
	for i, c := range cards {
		out[i] = c.Clone()
	}
	return out
}

func cardIDs(cards []models.Card) []uint {
	ids := make([]uint, 0, len(cards))
	for _, c := range cards {
		ids = append(ids, c.ID())
	}
	return ids
}

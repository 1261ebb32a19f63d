package services

import (
	"bytes"
	"errors"
	"io"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/ArowuTest/bridgetunes-bingo/internal/models"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func numbers(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for n := from; n <= to; n++ {
		out = append(out, n)
	}
	return out
}

// drawOrder puts head first and appends the rest of 1..90 in ascending order.
func drawOrder(head ...int) []int {
	used := make(map[int]bool, len(head))
	balls := append([]int(nil), head...)
	for _, n := range head {
		used[n] = true
	}
	for n := 1; n <= DeckSize; n++ {
		if !used[n] {
			balls = append(balls, n)
		}
	}
	return balls
}

func ids(cards []models.Card) []uint {
	out := []uint{}
	for _, c := range cards {
		out = append(out, c.ID())
	}
	return out
}

func newTestGame(cards []models.Card, jackpot uint) *BingoGame {
	return NewBingoGame(cards, jackpot, WithLogger(quietLogger()))
}

func TestPlaySingleCardWinsEveryRound(t *testing.T) {
	game := newTestGame([]models.Card{
		models.NewCard(333, numbers(1, 15)),
		models.NewCard(666, numbers(16, 30)),
	}, 45)

	game.Play(drawOrder())

	if got := ids(game.GetFirstWinners()); !reflect.DeepEqual(got, []uint{333}) {
		t.Errorf("first winners = %v", got)
	}
	if got := ids(game.GetSecondWinners()); !reflect.DeepEqual(got, []uint{333}) {
		t.Errorf("second winners = %v", got)
	}
	if got := ids(game.GetThirdWinners()); !reflect.DeepEqual(got, []uint{333}) {
		t.Errorf("third winners = %v", got)
	}
	if game.GetTotalSteps() != 15 {
		t.Errorf("steps = %d, want 15", game.GetTotalSteps())
	}
	if game.GetNumberOfWinners() != 3 {
		t.Errorf("winners = %d, want 3", game.GetNumberOfWinners())
	}

	wantWins := []models.Winner{
		{CardID: 333, Round: models.WinnerFirst, Step: 5, Ball: 5},
		{CardID: 333, Round: models.WinnerSecond, Step: 10, Ball: 10},
		{CardID: 333, Round: models.WinnerThird, Step: 15, Ball: 15},
	}
	if got := game.GetWinners(); !reflect.DeepEqual(got, wantWins) {
		t.Errorf("win log = %+v", got)
	}
}

func TestPlayTargetsWinInOrder(t *testing.T) {
	game := newTestGame([]models.Card{
		models.NewCard(333, numbers(1, 15)),
		models.NewCard(666, numbers(16, 30)),
		models.NewCard(999, numbers(31, 45)),
	}, 45)

	head := append(numbers(1, 5), numbers(16, 25)...)
	head = append(head, numbers(31, 45)...)
	game.Play(drawOrder(head...))

	if got := ids(game.GetFirstWinners()); !reflect.DeepEqual(got, []uint{333}) {
		t.Errorf("first winners = %v", got)
	}
	if got := ids(game.GetSecondWinners()); !reflect.DeepEqual(got, []uint{666}) {
		t.Errorf("second winners = %v", got)
	}
	if got := ids(game.GetThirdWinners()); !reflect.DeepEqual(got, []uint{999}) {
		t.Errorf("third winners = %v", got)
	}
	if game.GetTotalSteps() != 30 {
		t.Errorf("steps = %d, want 30", game.GetTotalSteps())
	}
	if !game.HasJackpotWinners() {
		t.Error("30 draws should be within a jackpot ball of 45")
	}
}

func TestPlayTieRecordsAllWinnersInRosterOrder(t *testing.T) {
	game := newTestGame([]models.Card{
		models.NewCard(2, append([]int{5, 4, 3, 2, 1}, numbers(50, 59)...)),
		models.NewCard(1, numbers(1, 15)),
	}, 45)

	game.Play(drawOrder())

	if got := ids(game.GetFirstWinners()); !reflect.DeepEqual(got, []uint{2, 1}) {
		t.Fatalf("first winners = %v, want [2 1]", got)
	}
	if got := ids(game.GetSecondWinners()); !reflect.DeepEqual(got, []uint{1}) {
		t.Errorf("second winners = %v, want [1]", got)
	}
	wins := game.GetWinners()
	if wins[0].Step != 5 || wins[1].Step != 5 {
		t.Errorf("tied wins at steps %d and %d, want 5", wins[0].Step, wins[1].Step)
	}
}

func TestPlayIgnoresPatternsAheadOfTheActiveRound(t *testing.T) {
	game := newTestGame([]models.Card{
		models.NewCard(1, numbers(1, 15)),
		models.NewCard(2, append(numbers(6, 10), numbers(31, 40)...)),
	}, 45)

	game.Play(drawOrder())

	for _, winners := range [][]models.Card{game.GetFirstWinners(), game.GetSecondWinners(), game.GetThirdWinners()} {
		for _, c := range winners {
			if c.ID() == 2 {
				t.Fatalf("card 2 reached FIRST while SECOND was active and must not be recorded")
			}
		}
	}

	// the dropped win still marked the card
	var card2 models.Card
	for _, c := range game.GetCards() {
		if c.ID() == 2 {
			card2 = c
		}
	}
	if card2.CheckWinningCondition() != models.WinnerFirst {
		t.Errorf("card 2 pattern = %v, want FIRST", card2.CheckWinningCondition())
	}
}

func TestPlayStopsAfterThirdRoundWinner(t *testing.T) {
	game := newTestGame([]models.Card{
		models.NewCard(1, numbers(1, 15)),
		models.NewCard(2, numbers(16, 30)),
	}, 45)

	game.Play(drawOrder())

	for _, c := range game.GetCards() {
		if c.ID() == 2 && c.IsMarked(16) {
			t.Fatal("balls after the THIRD round winner were still drawn")
		}
	}
	if game.CurrentRound() != models.WinnerThird {
		t.Errorf("round = %v, want THIRD", game.CurrentRound())
	}
	if !game.Summary().Completed {
		t.Error("summary should report a completed game")
	}
}

func TestPlayRejectsWrongDrawLength(t *testing.T) {
	for _, n := range []int{0, 15, 89, 91} {
		game := newTestGame([]models.Card{models.NewCard(1, numbers(1, 15))}, 45)
		balls := drawOrder()
		if n <= len(balls) {
			balls = balls[:n]
		} else {
			balls = append(balls, 1)
		}

		game.Play(balls)

		if game.GetTotalSteps() != 0 {
			t.Errorf("%d balls: steps = %d, want 0", n, game.GetTotalSteps())
		}
		if game.GetNumberOfWinners() != 0 {
			t.Errorf("%d balls: recorded %d winners", n, game.GetNumberOfWinners())
		}
		for _, m := range game.GetCards()[0].Mask() {
			if m {
				t.Fatalf("%d balls: card was marked", n)
			}
		}
	}
}

func TestPlayWrongLengthKeepsPreviousState(t *testing.T) {
	game := newTestGame([]models.Card{models.NewCard(1, numbers(1, 15))}, 45)
	game.Play(drawOrder())
	game.Play(numbers(1, 10))

	if game.GetTotalSteps() != 15 {
		t.Errorf("steps = %d, want 15 from the earlier draw", game.GetTotalSteps())
	}
	if game.GetNumberOfWinners() != 3 {
		t.Errorf("winners = %d, want 3", game.GetNumberOfWinners())
	}
}

func TestPlayChecked(t *testing.T) {
	game := newTestGame([]models.Card{models.NewCard(1, numbers(1, 15))}, 45)

	err := game.PlayChecked(numbers(1, 10))
	if !errors.Is(err, ErrDrawLength) {
		t.Fatalf("short draw: got %v, want ErrDrawLength", err)
	}
	if !strings.Contains(err.Error(), "got 10 balls") || !strings.Contains(err.Error(), strconv.Itoa(DeckSize)) {
		t.Errorf("error %q should name the draw length and the deck size", err)
	}
	if err := game.PlayChecked(drawOrder()); err != nil {
		t.Fatalf("full draw: %v", err)
	}
	if game.GetTotalSteps() != 15 {
		t.Errorf("steps = %d, want 15", game.GetTotalSteps())
	}
}

func TestWinnersAreSnapshots(t *testing.T) {
	game := newTestGame([]models.Card{models.NewCard(1, numbers(1, 15))}, 45)
	game.Play(drawOrder())

	first := game.GetFirstWinners()[0]
	want := []bool{true, true, true, true, true, false, false, false, false, false, false, false, false, false, false}
	if !reflect.DeepEqual(first.Mask(), want) {
		t.Errorf("first round snapshot mask = %v", first.Mask())
	}
	if first.CheckWinningCondition() != models.WinnerFirst {
		t.Errorf("first round snapshot pattern = %v", first.CheckWinningCondition())
	}
	if got := game.GetThirdWinners()[0].CheckWinningCondition(); got != models.WinnerThird {
		t.Errorf("third round snapshot pattern = %v", got)
	}

	// mutating a returned copy must not reach the game
	first.MarkNumber(6)
	if game.GetFirstWinners()[0].IsMarked(6) {
		t.Error("returned winner shares state with the game")
	}
}

func TestNewBingoGameCopiesCards(t *testing.T) {
	cards := []models.Card{models.NewCard(1, numbers(1, 15))}
	game := newTestGame(cards, 45)

	cards[0].MarkNumber(1)
	if game.GetCards()[0].IsMarked(1) {
		t.Fatal("caller's card leaked into the game")
	}

	game.Play(drawOrder())
	if cards[0].IsMarked(2) {
		t.Fatal("game marks leaked into the caller's card")
	}
}

func TestMalformedCardNeverWins(t *testing.T) {
	game := newTestGame([]models.Card{
		models.NewCard(1, numbers(1, 14)),
		models.NewCard(2, numbers(16, 30)),
	}, 90)

	game.Play(drawOrder())

	for _, c := range game.GetFirstWinners() {
		if c.ID() == 1 {
			t.Fatal("malformed card recorded as a winner")
		}
	}
	if got := ids(game.GetThirdWinners()); !reflect.DeepEqual(got, []uint{2}) {
		t.Errorf("third winners = %v, want [2]", got)
	}
	if game.GetTotalSteps() != 30 {
		t.Errorf("steps = %d, want 30", game.GetTotalSteps())
	}
}

func TestNoWinnerDrawsAllBalls(t *testing.T) {
	game := newTestGame([]models.Card{models.NewCard(1, numbers(91, 105))}, 45)
	game.Play(drawOrder())

	if game.GetTotalSteps() != DeckSize {
		t.Errorf("steps = %d, want %d", game.GetTotalSteps(), DeckSize)
	}
	if game.CurrentRound() != models.WinnerFirst {
		t.Errorf("round = %v, want FIRST", game.CurrentRound())
	}
	if game.HasJackpotWinners() {
		t.Error("90 draws exceed a jackpot ball of 45")
	}
}

func TestHasJackpotWinners(t *testing.T) {
	tests := []struct {
		jackpot uint
		want    bool
	}{
		{14, false},
		{15, true},
		{45, true},
	}
	for _, tt := range tests {
		game := newTestGame([]models.Card{models.NewCard(1, numbers(1, 15))}, tt.jackpot)
		game.Play(drawOrder())
		if got := game.HasJackpotWinners(); got != tt.want {
			t.Errorf("jackpot %d after 15 steps: got %v, want %v", tt.jackpot, got, tt.want)
		}
	}
}

func TestSummary(t *testing.T) {
	runID := uuid.New()
	game := NewBingoGame([]models.Card{
		models.NewCard(1, numbers(1, 15)),
		models.NewCard(2, numbers(16, 30)),
	}, 20, WithLogger(quietLogger()), WithRunID(runID))
	game.Play(drawOrder())

	s := game.Summary()
	if s.RunID != runID || game.RunID() != runID {
		t.Errorf("run id = %v, want %v", s.RunID, runID)
	}
	if s.NumberOfCards != 2 || s.TotalSteps != 15 || s.FinalRound != models.WinnerThird {
		t.Errorf("unexpected summary %+v", s)
	}
	if !s.Jackpot || s.JackpotBall != 20 {
		t.Errorf("jackpot = %v (ball %d)", s.Jackpot, s.JackpotBall)
	}
	if s.NumberOfWinners() != game.GetNumberOfWinners() {
		t.Errorf("summary winners %d != game winners %d", s.NumberOfWinners(), game.GetNumberOfWinners())
	}
	if len(s.Rounds) != 3 || !reflect.DeepEqual(s.Rounds[1].CardIDs, []uint{1}) {
		t.Errorf("rounds = %+v", s.Rounds)
	}
}

func TestGetNumberOfCards(t *testing.T) {
	game := newTestGame([]models.Card{
		models.NewCard(1, numbers(1, 15)),
		models.NewCard(2, numbers(16, 30)),
		models.NewCard(3, numbers(31, 45)),
	}, 45)
	if game.GetNumberOfCards() != 3 {
		t.Errorf("cards = %d, want 3", game.GetNumberOfCards())
	}
}

func TestPrintWinners(t *testing.T) {
	game := newTestGame([]models.Card{models.NewCard(333, numbers(1, 15))}, 45)
	game.Play(drawOrder())

	var buf bytes.Buffer
	if err := game.PrintWinners(&buf); err != nil {
		t.Fatalf("PrintWinners: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"First round winners:", "Second round winners:", "Third round winners:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Count(out, "Card 333") != 3 {
		t.Errorf("expected card 333 once per round:\n%s", out)
	}

	buf.Reset()
	if err := game.PrintCards(&buf); err != nil {
		t.Fatalf("PrintCards: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "Card 333\n1 2 3 4 5 \n") {
		t.Errorf("PrintCards wrote %q", buf.String())
	}
}

func TestTraceLogsMatchingCards(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	game := NewBingoGame([]models.Card{
		models.NewCard(333, numbers(1, 15)),
		models.NewCard(444, numbers(76, 90)),
	}, 45, WithLogger(logger), WithTrace(true))

	game.Play(drawOrder())

	out := buf.String()
	if !strings.Contains(out, "Draw step") || !strings.Contains(out, "cardId=333") {
		t.Errorf("trace records missing:\n%s", out)
	}
	if !strings.Contains(out, "winner=true") {
		t.Errorf("trace did not flag the completed row:\n%s", out)
	}
	if strings.Contains(out, "cardId=444") {
		t.Errorf("trace logged a card that did not hold the ball:\n%s", out)
	}
}

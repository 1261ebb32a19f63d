package models

import "github.com/google/uuid"

// RoundResult lists the winning cards of one round in the order they won.
type RoundResult struct {
	Round   WinnerType `json:"round"`
	CardIDs []uint     `json:"cardIds"`
}

// GameSummary is the reportable outcome of a played game.
type GameSummary struct {
	RunID         uuid.UUID     `json:"runId"`
	NumberOfCards int           `json:"numberOfCards"`
	TotalSteps    uint          `json:"totalSteps"`
	FinalRound    WinnerType    `json:"finalRound"`
	Completed     bool          `json:"completed"` // THIRD round produced a winner
	JackpotBall   uint          `json:"jackpotBall"`
	Jackpot       bool          `json:"jackpot"`
	Rounds        []RoundResult `json:"rounds"`
	Winners       []Winner      `json:"winners"`
}

// NumberOfWinners returns the total number of recorded winners across rounds.
func (s GameSummary) NumberOfWinners() int {
	n := 0
	for _, r := range s.Rounds {
		n += len(r.CardIDs)
	}
	return n
}

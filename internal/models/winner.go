package models

// Winner records a card that won the active round during a draw.
type Winner struct {
	CardID uint       `json:"cardId"`
	Round  WinnerType `json:"round"`
	Step   uint       `json:"step"` // draw count at which the win happened
	Ball   int        `json:"ball"` // number that completed the pattern
}

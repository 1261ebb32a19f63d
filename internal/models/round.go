package models

// Round is the game-wide round state machine. It starts at FIRST and only
// moves forward: FIRST -> SECOND -> THIRD. THIRD is terminal.
type Round struct {
	current WinnerType
}

// NewRound returns a Round positioned at FIRST.
func NewRound() Round {
	return Round{current: WinnerFirst}
}

// Current returns the active round.
func (r Round) Current() WinnerType {
	return r.current
}

// IsTerminal reports whether the active round is the last one.
func (r Round) IsTerminal() bool {
	return r.current == WinnerThird
}

// Advance moves to the next round. It returns false, leaving the state
// untouched, when the round is already terminal or was never started.
func (r *Round) Advance() bool {
	switch r.current {
	case WinnerFirst:
		r.current = WinnerSecond
	case WinnerSecond:
		r.current = WinnerThird
	default:
		return false
	}
	return true
}

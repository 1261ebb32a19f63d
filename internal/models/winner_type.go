package models

// WinnerType classifies the winning pattern a card has reached, which is also
// the identity of the round that pattern wins.
type WinnerType int

const (
	WinnerInvalid WinnerType = -1 // malformed card or out of range value
	WinnerNone    WinnerType = 0  // no completed row
	WinnerFirst   WinnerType = 1  // one completed row
	WinnerSecond  WinnerType = 2  // two completed rows
	WinnerThird   WinnerType = 3  // full card
)

// RoundToInt converts a WinnerType to its round ordinal. Anything that is not
// NONE, FIRST, SECOND or THIRD maps to -1.
func RoundToInt(round WinnerType) int {
	switch round {
	case WinnerFirst:
		return 1
	case WinnerSecond:
		return 2
	case WinnerThird:
		return 3
	case WinnerNone:
		return 0
	default:
		return -1
	}
}

// IntToRound converts a round ordinal to a WinnerType. Values outside 0..3
// map to WinnerInvalid.
func IntToRound(value int) WinnerType {
	switch value {
	case 0:
		return WinnerNone
	case 1:
		return WinnerFirst
	case 2:
		return WinnerSecond
	case 3:
		return WinnerThird
	default:
		return WinnerInvalid
	}
}

// String implements fmt.Stringer.
func (w WinnerType) String() string {
	switch w {
	case WinnerNone:
		return "NONE"
	case WinnerFirst:
		return "FIRST"
	case WinnerSecond:
		return "SECOND"
	case WinnerThird:
		return "THIRD"
	default:
		return "INVALID"
	}
}

// MarshalText lets WinnerType appear as its name in JSON summaries.
func (w WinnerType) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

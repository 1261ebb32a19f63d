package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Card layout: 3 rows of 5 numbers.
const (
	CardRows    = 3
	CardRowSize = 5
	CardSize    = CardRows * CardRowSize
)

// ErrDuplicateNumber is returned by NewValidatedCard when a number repeats.
var ErrDuplicateNumber = errors.New("card number repeated")

// ErrCardSize is returned by NewValidatedCard when the sequence is not CardSize long.
var ErrCardSize = fmt.Errorf("card must hold exactly %d numbers", CardSize)

// Card holds one bingo card: an immutable number sequence and a parallel
// mask of marked positions. mask[i] marks sequence[i]; row r covers
// positions [r*CardRowSize, r*CardRowSize+CardRowSize).
type Card struct {
	id       uint
	sequence []int
	mask     []bool
}

// NewCard creates a card with every position unmarked. The sequence is
// copied. Malformed sequences are accepted; CheckWinningCondition reports
// them as WinnerInvalid.
func NewCard(id uint, sequence []int) Card {
	c := Card{
		id:       id,
		sequence: append([]int(nil), sequence...),
		mask:     make([]bool, len(sequence)),
	}
	c.assertShape()
	return c
}

// NewValidatedCard is NewCard for external input: the sequence must hold
// exactly CardSize distinct numbers.
func NewValidatedCard(id uint, sequence []int) (Card, error) {
	if len(sequence) != CardSize {
		return Card{}, fmt.Errorf("card %d has %d numbers: %w", id, len(sequence), ErrCardSize)
	}
	seen := make(map[int]struct{}, len(sequence))
	for _, n := range sequence {
		if _, ok := seen[n]; ok {
			return Card{}, fmt.Errorf("card %d, number %d: %w", id, n, ErrDuplicateNumber)
		}
		seen[n] = struct{}{}
	}
	return NewCard(id, sequence), nil
}

// ID returns the card identifier.
func (c Card) ID() uint { return c.id }

// Size returns the length of the number sequence.
func (c Card) Size() int { return len(c.sequence) }

// Sequence returns a copy of the card numbers.
func (c Card) Sequence() []int {
	return append([]int(nil), c.sequence...)
}

// Mask returns a copy of the marked-position mask.
func (c Card) Mask() []bool {
	return append([]bool(nil), c.mask...)
}

// Clone returns an independent copy; marking the clone leaves c untouched.
func (c Card) Clone() Card {
	return Card{id: c.id, sequence: c.Sequence(), mask: c.Mask()}
}

// IsMarked reports whether number is on the card and marked. Only the first
// occurrence is consulted.
func (c Card) IsMarked(number int) bool {
	for i, n := range c.sequence {
		if n == number {
			return c.mask[i]
		}
	}
	return false
}

// MarkNumber marks number if it is on the card and returns the pattern the
// card reaches. A number that is not on the card leaves the card untouched
// and yields WinnerNone.
func (c *Card) MarkNumber(number int) WinnerType {
	for i, n := range c.sequence {
		if n == number {
			c.mask[i] = true
			c.assertShape()
			return c.CheckWinningCondition()
		}
	}
	return WinnerNone
}

// CheckWinningCondition counts fully marked rows and maps the count to a
// WinnerType. Cards shorter than CardSize are WinnerInvalid.
func (c Card) CheckWinningCondition() WinnerType {
	if len(c.mask) < CardSize {
		return WinnerInvalid
	}

	total := 0
	for row := 0; row < CardRows; row++ {
		if c.rowComplete(row) {
			total++
		}
	}
	return IntToRound(total)
}

// CompletedRows returns how many rows are fully marked, or -1 for a malformed card.
func (c Card) CompletedRows() int {
	return RoundToInt(c.CheckWinningCondition())
}

func (c Card) rowComplete(row int) bool {
	for col := 0; col < CardRowSize; col++ {
		if !c.mask[row*CardRowSize+col] {
			return false
		}
	}
	return true
}

// GetRemainingBasedOnRound lists the unmarked numbers that still matter for
// round. FIRST yields the row closest to completion, SECOND the two closest
// rows, any other round every unmarked number.
func (c Card) GetRemainingBasedOnRound(round WinnerType) []int {
	var rows [CardRows][]int
	remaining := []int{}

	for row := 0; row < CardRows; row++ {
		for col := 0; col < CardRowSize; col++ {
			i := row*CardRowSize + col
			if i >= len(c.sequence) {
				break
			}
			if !c.mask[i] {
				rows[row] = append(rows[row], c.sequence[i])
				remaining = append(remaining, c.sequence[i])
			}
		}
	}
	a, b, cc := rows[0], rows[1], rows[2]

	switch round {
	case WinnerFirst:
		if len(a) < len(b) && len(a) < len(cc) {
			return a
		}
		if len(b) < len(cc) {
			return b
		}
		return cc

	case WinnerSecond:
		sizeA, sizeB, sizeC := len(a), len(b), len(cc)
		smallest := min(sizeA, sizeB, sizeC)
		secondSmallest := int(^uint32(0) >> 1)
		for _, size := range []int{sizeA, sizeB, sizeC} {
			if size > smallest && size < secondSmallest {
				secondSmallest = size
			}
		}

		combined := []int{}
		var appended int
		switch smallest {
		case sizeA:
			appended = 1
			combined = append(combined, a...)
		case sizeB:
			appended = 2
			combined = append(combined, b...)
		default:
			appended = 3
			combined = append(combined, cc...)
		}

		// The b case tests smallest, not secondSmallest: the third row can be
		// appended twice.
		switch {
		case secondSmallest == sizeA && appended != 1:
			combined = append(combined, a...)
		case smallest == sizeB && appended != 2:
			combined = append(combined, b...)
		default:
			combined = append(combined, cc...)
		}
		return combined
	}

	return remaining
}

// String renders the card id followed by its numbers in rows of five.
func (c Card) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Card %d\n", c.id))
	for i, n := range c.sequence {
		sb.WriteString(fmt.Sprintf("%d ", n))
		if i%CardRowSize == CardRowSize-1 {
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n")
	return sb.String()
}

// Print writes String to w.
func (c Card) Print(w io.Writer) error {
	_, err := io.WriteString(w, c.String())
	return err
}

// MaskString renders the mask as 0/1 digits grouped per row, e.g. "11100 00000 00000".
func (c Card) MaskString() string {
	var sb strings.Builder
	for i, marked := range c.mask {
		if i > 0 && i%CardRowSize == 0 {
			sb.WriteString(" ")
		}
		if marked {
			sb.WriteString("1")
		} else {
			sb.WriteString("0")
		}
	}
	return sb.String()
}

type cardJSON struct {
	ID      uint   `json:"id"`
	Numbers []int  `json:"numbers"`
	Marked  []bool `json:"marked"`
}

// MarshalJSON implements json.Marshaler.
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(cardJSON{ID: c.id, Numbers: c.sequence, Marked: c.mask})
}

func (c Card) assertShape() {
	if len(c.mask) != len(c.sequence) {
		panic(fmt.Sprintf("card %d: mask length %d does not match sequence length %d", c.id, len(c.mask), len(c.sequence)))
	}
}

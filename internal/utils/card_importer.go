package utils

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ArowuTest/bridgetunes-bingo/internal/models"
)

// ErrMalformedRow marks an imported row that does not describe a valid card.
var ErrMalformedRow = errors.New("malformed card row")

// CardImportResult collects the cards read from an import along with the
// rows that were skipped.
type CardImportResult struct {
	TotalRows int
	Cards     []models.Card
	Errors    []error
}

func (r *CardImportResult) skip(row int, err error) {
	r.Errors = append(r.Errors, fmt.Errorf("row %d: %w: %w", row, ErrMalformedRow, err))
}

// LoadCardsFile imports a card roster from a .csv or .json file.
func LoadCardsFile(path string) (*CardImportResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cards file: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ImportCardsCSV(file)
	case ".json":
		return ImportCardsJSON(file)
	default:
		return nil, fmt.Errorf("unsupported cards file type %q", filepath.Ext(path))
	}
}

// ImportCardsCSV reads cards from CSV. The header must name the id column
// ("Card ID", "CardID", "ID" or "Card"); every other column holds one card
// number, in row order.
func ImportCardsCSV(r io.Reader) (*CardImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	idIdx := findColumnIndex(header, []string{"Card ID", "CardID", "ID", "Card"})
	if idIdx == -1 {
		return nil, errors.New("card id column not found in CSV")
	}

	result := &CardImportResult{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return nil, fmt.Errorf("failed to read row %d: %w", result.TotalRows+1, err)
			}
			result.TotalRows++
			result.skip(result.TotalRows, err)
			continue
		}
		result.TotalRows++
		if idIdx >= len(row) {
			result.skip(result.TotalRows, errors.New("missing card id"))
			continue
		}

		id, err := strconv.ParseUint(strings.TrimSpace(row[idIdx]), 10, 32)
		if err != nil {
			result.skip(result.TotalRows, fmt.Errorf("invalid card id %q", row[idIdx]))
			continue
		}

		numbers := make([]int, 0, models.CardSize)
		var parseErr error
		for i, field := range row {
			if i == idIdx {
				continue
			}
			n, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				parseErr = fmt.Errorf("invalid number %q", field)
				break
			}
			numbers = append(numbers, n)
		}
		if parseErr != nil {
			result.skip(result.TotalRows, parseErr)
			continue
		}

		card, err := models.NewValidatedCard(uint(id), numbers)
		if err != nil {
			result.skip(result.TotalRows, err)
			continue
		}
		result.Cards = append(result.Cards, card)
	}

	return result, nil
}

type cardRecord struct {
	CardID  uint  `json:"card_id"`
	Numbers []int `json:"numbers"`
}

// ImportCardsJSON reads cards from a JSON array of {"card_id", "numbers"} objects.
func ImportCardsJSON(r io.Reader) (*CardImportResult, error) {
	var records []cardRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode cards: %w", err)
	}

	result := &CardImportResult{TotalRows: len(records)}
	for i, rec := range records {
		card, err := models.NewValidatedCard(rec.CardID, rec.Numbers)
		if err != nil {
			result.skip(i+1, err)
			continue
		}
		result.Cards = append(result.Cards, card)
	}
	return result, nil
}

// findColumnIndex returns the index of the first header matching one of
// names, ignoring case and surrounding spaces, or -1.
func findColumnIndex(header []string, names []string) int {
	for i, col := range header {
		col = strings.TrimSpace(col)
		for _, name := range names {
			if strings.EqualFold(col, name) {
				return i
			}
		}
	}
	return -1
}

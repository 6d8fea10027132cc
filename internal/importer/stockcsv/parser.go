package stockcsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	enc "github.com/rsharma/sellsathi/internal/encoding"
	"github.com/rsharma/sellsathi/internal/ledger"
)

// Parser reads stock-list CSV exports and produces add-stock params.
// Both comma and semicolon delimited files are accepted; the header row
// is located anywhere in the file by matching known column names, so
// title rows above the table are skipped.
type Parser struct{}

func New() *Parser {
	return &Parser{}
}

// Column keys after normalization (lowercased, underscores to spaces).
const (
	colName     = "product name"
	colBuyPrice = "buy price"
	colSell     = "sell price"
	colQuantity = "quantity"
)

var requiredCols = []string{colName, colBuyPrice, colSell, colQuantity}

func (p *Parser) Parse(r io.Reader) ([]ledger.AddStockParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.Comma = sniffDelimiter(string(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx := findHeader(rows)
	if cols == nil {
		return nil, fmt.Errorf("no stock-list header found: expected columns %q", requiredCols)
	}

	return parseRows(cols, rows[headerIdx+1:], headerIdx+1)
}

// sniffDelimiter picks ';' when the first line carries more semicolons
// than commas, to cope with European spreadsheet exports.
func sniffDelimiter(data string) rune {
	line := data
	if idx := strings.IndexByte(data, '\n'); idx >= 0 {
		line = data[:idx]
	}

	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';'
	}

	return ','
}

type colIndex map[string]int

func findHeader(rows [][]string) (colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			key := normalizeHeader(cell)
			if key != "" {
				cols[key] = i
			}
		}

		if hasAll(cols, requiredCols) {
			return cols, rowIdx
		}
	}

	return nil, 0
}

func normalizeHeader(cell string) string {
	key := strings.ToLower(strings.TrimSpace(cell))
	return strings.ReplaceAll(key, "_", " ")
}

func hasAll(cols colIndex, required []string) bool {
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

func parseRows(cols colIndex, rows [][]string, offset int) ([]ledger.AddStockParams, error) {
	params := make([]ledger.AddStockParams, 0, len(rows))

	for i, row := range rows {
		if isBlank(row) {
			continue
		}

		p, err := parseRow(cols, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", offset+i+1, err)
		}

		params = append(params, p)
	}

	return params, nil
}

func parseRow(cols colIndex, row []string) (ledger.AddStockParams, error) {
	name := field(cols, row, colName)
	if name == "" {
		return ledger.AddStockParams{}, fmt.Errorf("missing product name")
	}

	buy, err := ledger.ParseAmount(field(cols, row, colBuyPrice))
	if err != nil {
		return ledger.AddStockParams{}, fmt.Errorf("buy price: %w", err)
	}

	sell, err := ledger.ParseAmount(field(cols, row, colSell))
	if err != nil {
		return ledger.AddStockParams{}, fmt.Errorf("sell price: %w", err)
	}

	qty, err := strconv.ParseInt(field(cols, row, colQuantity), 10, 64)
	if err != nil {
		return ledger.AddStockParams{}, fmt.Errorf("quantity: %w", err)
	}

	return ledger.AddStockParams{
		Name:      name,
		BuyPrice:  buy,
		SellPrice: sell,
		Quantity:  qty,
	}, nil
}

func field(cols colIndex, row []string, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}

package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/rsharma/sellsathi/internal/importer/stockcsv"
	"github.com/rsharma/sellsathi/internal/ledger"
)

type Service struct {
	stockCSV Parser
}

func NewService() *Service {
	return &Service{
		stockCSV: stockcsv.New(),
	}
}

func (s *Service) Parse(format Format, r io.Reader) ([]ledger.AddStockParams, error) {
	var parser Parser

	switch format {
	case FormatStockCSV:
		parser = s.stockCSV
	default:
		return nil, fmt.Errorf("unknown import format: %s", format)
	}

	return parser.Parse(r)
}

// RowError reports one rejected row from an import.
type RowError struct {
	Row  int
	Name string
	Err  error
}

// Result summarizes an applied import.
type Result struct {
	Added    []*ledger.StockItem
	Rejected []RowError
}

// Apply adds the parsed rows to the ledger one by one. Rows that fail
// validation (duplicate names included) are reported, not fatal; valid
// rows still land.
func (s *Service) Apply(ctx context.Context, led *ledger.Service, params []ledger.AddStockParams) *Result {
	result := &Result{}

	for i, p := range params {
		item, err := led.AddStockItem(ctx, p)
		if err != nil {
			result.Rejected = append(result.Rejected, RowError{Row: i + 1, Name: p.Name, Err: err})
			continue
		}

		result.Added = append(result.Added, item)
	}

	return result
}

package importer

import (
	"io"

	"github.com/rsharma/sellsathi/internal/ledger"
)

type Format string

const (
	FormatStockCSV Format = "stockcsv"
)

type Parser interface {
	Parse(r io.Reader) ([]ledger.AddStockParams, error)
}

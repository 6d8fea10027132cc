package invoice

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rsharma/sellsathi/internal/ledger"
)

// BusinessInfo is the letterhead printed on every invoice.
type BusinessInfo struct {
	AppName      string
	BusinessName string
	BusinessType string
	Currency     string
}

// Render produces the invoice text document for a bill. The output is
// byte-for-byte reproducible for the same bill and business info.
func Render(bill *ledger.Bill, info BusinessInfo) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "## %s Invoice - %s\n", info.AppName, info.BusinessName)
	fmt.Fprintf(&sb, "Invoice Date: %s\n", bill.Date.Format("2006-01-02"))
	fmt.Fprintf(&sb, "Customer Name: %s\n", bill.CustomerName)
	fmt.Fprintf(&sb, "Business Type: %s\n", info.BusinessType)
	sb.WriteString("---\n")
	sb.WriteString("| Product | Quantity | Unit Price | Total |\n")

	for _, li := range bill.LineItems {
		fmt.Fprintf(&sb, "| %s | %d | %s | %s |\n",
			li.ProductName,
			li.Quantity,
			ledger.FormatAmount(li.UnitPrice),
			ledger.FormatAmount(li.LineTotal),
		)
	}

	sb.WriteString("---\n")
	fmt.Fprintf(&sb, "GRAND TOTAL: %s%s\n", info.Currency, ledger.FormatAmount(bill.GrandTotal))
	sb.WriteString("Thank you for your business!\n")

	return sb.String()
}

// Filename is the on-disk name for a bill's invoice document.
func Filename(bill *ledger.Bill) string {
	return fmt.Sprintf("invoice_%s_%s.txt", bill.Date.Format("2006-01-02"), bill.ID)
}

// Writer saves rendered invoices under an output directory.
type Writer struct {
	dir  string
	info BusinessInfo
}

func NewWriter(dir string, info BusinessInfo) *Writer {
	return &Writer{dir: dir, info: info}
}

// Write renders the bill and saves it, returning the file path.
func (w *Writer) Write(bill *ledger.Bill) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating invoice directory: %w", err)
	}

	path := filepath.Join(w.dir, Filename(bill))

	if err := os.WriteFile(path, []byte(Render(bill, w.info)), 0o644); err != nil {
		return "", fmt.Errorf("writing invoice: %w", err)
	}

	return path, nil
}

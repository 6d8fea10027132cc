package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrDuplicateProduct      = errors.New("product already exists")
	ErrInvalidInput          = errors.New("invalid input")
	ErrProductNotFound       = errors.New("product not found")
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrExceedsAvailableStock = errors.New("quantity exceeds available stock")
	ErrEmptyBill             = errors.New("bill has no line items")
	ErrMissingCustomerName   = errors.New("customer name is required")
	ErrStockChanged          = errors.New("stock changed, insufficient for bill")
	ErrBillNotFound          = errors.New("bill not found")
)

// StockItem is one product in the inventory. Name is the unique,
// case-sensitive key. Prices are in minor currency units.
type StockItem struct {
	Name           string
	BuyPrice       int64
	SellPrice      int64
	QuantityOnHand int64
	SalesCount     int64
}

// SaleRecord is an immutable entry in the sales log. ProductName is a
// snapshot of the product name at sale time, not a live reference.
type SaleRecord struct {
	ID          uuid.UUID
	Date        time.Time // calendar day, UTC midnight
	ProductName string
	Quantity    int64
	SaleAmount  int64
	CostAmount  int64
	Profit      int64
}

// LineItem is one row of a bill. On the draft bill UnitPrice is locked
// from the product's sell price at add time.
type LineItem struct {
	ProductName string
	Quantity    int64
	UnitPrice   int64
	LineTotal   int64
}

// Bill is a finalized, immutable invoice record.
type Bill struct {
	ID           uuid.UUID
	Date         time.Time
	CustomerName string
	LineItems    []LineItem
	GrandTotal   int64
}

// DateOf truncates t to its calendar day in UTC. All sale and bill dates
// are stored in this form so day and month comparisons are exact.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

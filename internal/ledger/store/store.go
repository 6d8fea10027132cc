package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rsharma/sellsathi/internal/ledger"
)

// Store keeps the whole ledger in memory for the lifetime of a session.
// Products are keyed by name; sales and bills are append-only slices.
// Accessors hand out copies so callers cannot mutate ledger state behind
// the store's back.
type Store struct {
	products     map[string]*ledger.StockItem
	productOrder []string
	sales        []*ledger.SaleRecord
	bills        []*ledger.Bill
}

func New() *Store {
	return &Store{
		products: make(map[string]*ledger.StockItem),
	}
}

func (s *Store) CreateProduct(_ context.Context, item *ledger.StockItem) error {
	if _, exists := s.products[item.Name]; exists {
		return fmt.Errorf("%w: %q", ledger.ErrDuplicateProduct, item.Name)
	}

	stored := *item
	s.products[item.Name] = &stored
	s.productOrder = append(s.productOrder, item.Name)

	return nil
}

func (s *Store) GetProduct(_ context.Context, name string) (*ledger.StockItem, error) {
	item, ok := s.products[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ledger.ErrProductNotFound, name)
	}

	out := *item

	return &out, nil
}

// ListProducts returns the inventory in insertion order.
func (s *Store) ListProducts(_ context.Context) ([]*ledger.StockItem, error) {
	items := make([]*ledger.StockItem, 0, len(s.productOrder))

	for _, name := range s.productOrder {
		item := *s.products[name]
		items = append(items, &item)
	}

	return items, nil
}

func (s *Store) CommitSale(_ context.Context, rec *ledger.SaleRecord) error {
	product, ok := s.products[rec.ProductName]
	if !ok {
		return fmt.Errorf("%w: %q", ledger.ErrProductNotFound, rec.ProductName)
	}

	if rec.Quantity > product.QuantityOnHand {
		return ledger.ErrInsufficientStock
	}

	product.QuantityOnHand -= rec.Quantity
	product.SalesCount += rec.Quantity

	stored := *rec
	s.sales = append(s.sales, &stored)

	return nil
}

func (s *Store) CommitBill(_ context.Context, bill *ledger.Bill, sales []*ledger.SaleRecord) error {
	// Recheck every line against current stock before touching anything.
	// Quantities are aggregated per product so several lines of the same
	// product cannot oversell together.
	required := make(map[string]int64, len(bill.LineItems))
	for _, li := range bill.LineItems {
		required[li.ProductName] += li.Quantity
	}

	for name, qty := range required {
		product, ok := s.products[name]
		if !ok || qty > product.QuantityOnHand {
			return ledger.ErrStockChanged
		}
	}

	for name, qty := range required {
		product := s.products[name]
		product.QuantityOnHand -= qty
		product.SalesCount += qty
	}

	stored := *bill
	stored.LineItems = make([]ledger.LineItem, len(bill.LineItems))
	copy(stored.LineItems, bill.LineItems)
	s.bills = append(s.bills, &stored)

	for _, rec := range sales {
		r := *rec
		s.sales = append(s.sales, &r)
	}

	return nil
}

// ListSales returns the sales log in append order.
func (s *Store) ListSales(_ context.Context) ([]*ledger.SaleRecord, error) {
	out := make([]*ledger.SaleRecord, 0, len(s.sales))

	for _, rec := range s.sales {
		r := *rec
		out = append(out, &r)
	}

	return out, nil
}

func (s *Store) ListBills(_ context.Context) ([]*ledger.Bill, error) {
	out := make([]*ledger.Bill, 0, len(s.bills))

	for _, bill := range s.bills {
		out = append(out, copyBill(bill))
	}

	return out, nil
}

func (s *Store) GetBill(_ context.Context, id uuid.UUID) (*ledger.Bill, error) {
	for _, bill := range s.bills {
		if bill.ID == id {
			return copyBill(bill), nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ledger.ErrBillNotFound, id)
}

// Reset discards every collection together, leaving a fresh ledger.
func (s *Store) Reset(_ context.Context) error {
	s.products = make(map[string]*ledger.StockItem)
	s.productOrder = nil
	s.sales = nil
	s.bills = nil

	return nil
}

func copyBill(bill *ledger.Bill) *ledger.Bill {
	out := *bill
	out.LineItems = make([]ledger.LineItem, len(bill.LineItems))
	copy(out.LineItems, bill.LineItems)

	return &out
}

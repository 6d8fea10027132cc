package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Repository holds the three ledger collections: stock, sales log and
// bill history. Commit methods apply every effect of an operation or
// none of them.
type Repository interface {
	CreateProduct(ctx context.Context, item *StockItem) error
	GetProduct(ctx context.Context, name string) (*StockItem, error)
	ListProducts(ctx context.Context) ([]*StockItem, error)

	// CommitSale decrements stock, bumps the sales count and appends the
	// record, all or nothing.
	CommitSale(ctx context.Context, rec *SaleRecord) error

	// CommitBill rechecks every line against current stock, then appends
	// the bill, applies all stock effects and appends the sale records.
	// On ErrStockChanged no mutation is applied.
	CommitBill(ctx context.Context, bill *Bill, sales []*SaleRecord) error

	ListSales(ctx context.Context) ([]*SaleRecord, error)
	ListBills(ctx context.Context) ([]*Bill, error)
	GetBill(ctx context.Context, id uuid.UUID) (*Bill, error)

	// Reset discards every collection together.
	Reset(ctx context.Context) error
}

// Service implements the ledger operations. It owns the in-progress
// draft bill; everything committed lives in the repository.
type Service struct {
	repo  Repository
	draft []LineItem
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type AddStockParams struct {
	Name      string
	BuyPrice  int64
	SellPrice int64
	Quantity  int64
}

func (s *Service) AddStockItem(ctx context.Context, params AddStockParams) (*StockItem, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}

	if params.BuyPrice <= 0 {
		return nil, fmt.Errorf("%w: buy price must be positive", ErrInvalidInput)
	}

	if params.SellPrice <= 0 {
		return nil, fmt.Errorf("%w: sell price must be positive", ErrInvalidInput)
	}

	if params.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	item := &StockItem{
		Name:           params.Name,
		BuyPrice:       params.BuyPrice,
		SellPrice:      params.SellPrice,
		QuantityOnHand: params.Quantity,
		SalesCount:     0,
	}

	if err := s.repo.CreateProduct(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

type SaleParams struct {
	ProductName string
	// Unit prices override the stock prices for this sale; zero means
	// "use the product's current price".
	UnitBuyPrice  int64
	UnitSellPrice int64
	Quantity      int64
}

func (s *Service) RecordDirectSale(ctx context.Context, params SaleParams) (*SaleRecord, error) {
	if params.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}

	product, err := s.repo.GetProduct(ctx, params.ProductName)
	if err != nil {
		return nil, err
	}

	buy := params.UnitBuyPrice
	if buy == 0 {
		buy = product.BuyPrice
	}

	sell := params.UnitSellPrice
	if sell == 0 {
		sell = product.SellPrice
	}

	if buy <= 0 || sell <= 0 {
		return nil, fmt.Errorf("%w: unit prices must be positive", ErrInvalidInput)
	}

	if params.Quantity > product.QuantityOnHand {
		return nil, ErrInsufficientStock
	}

	rec := &SaleRecord{
		ID:          uuid.New(),
		Date:        DateOf(time.Now()),
		ProductName: product.Name,
		Quantity:    params.Quantity,
		SaleAmount:  sell * params.Quantity,
		CostAmount:  buy * params.Quantity,
		Profit:      (sell - buy) * params.Quantity,
	}

	if err := s.repo.CommitSale(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

// AddDraftLineItem appends a line to the draft bill, locking the
// product's current sell price as the unit price. The cumulative draft
// quantity for the product may not exceed the quantity on hand.
func (s *Service) AddDraftLineItem(ctx context.Context, productName string, quantity int64) (*LineItem, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}

	product, err := s.repo.GetProduct(ctx, productName)
	if err != nil {
		return nil, err
	}

	alreadyDrafted := int64(0)

	for _, li := range s.draft {
		if li.ProductName == product.Name {
			alreadyDrafted += li.Quantity
		}
	}

	if quantity+alreadyDrafted > product.QuantityOnHand {
		return nil, ErrExceedsAvailableStock
	}

	li := LineItem{
		ProductName: product.Name,
		Quantity:    quantity,
		UnitPrice:   product.SellPrice,
		LineTotal:   product.SellPrice * quantity,
	}
	s.draft = append(s.draft, li)

	return &li, nil
}

func (s *Service) RemoveDraftLineItem(index int) error {
	if index < 0 || index >= len(s.draft) {
		return fmt.Errorf("%w: no draft line item at index %d", ErrInvalidInput, index)
	}

	s.draft = append(s.draft[:index], s.draft[index+1:]...)

	return nil
}

func (s *Service) ClearDraft() {
	s.draft = nil
}

// Draft returns a copy of the current draft line items.
func (s *Service) Draft() []LineItem {
	out := make([]LineItem, len(s.draft))
	copy(out, s.draft)

	return out
}

func (s *Service) DraftTotal() int64 {
	var total int64
	for _, li := range s.draft {
		total += li.LineTotal
	}

	return total
}

// FinalizeBill commits the draft: it snapshots the line items into an
// immutable bill, decrements stock, appends one sale record per line and
// clears the draft. If any line no longer fits the current stock the
// whole operation fails and nothing changes, draft included.
func (s *Service) FinalizeBill(ctx context.Context, customerName string, date time.Time) (*Bill, error) {
	if len(s.draft) == 0 {
		return nil, ErrEmptyBill
	}

	if strings.TrimSpace(customerName) == "" {
		return nil, ErrMissingCustomerName
	}

	if date.IsZero() {
		date = time.Now()
	}

	bill := &Bill{
		ID:           uuid.New(),
		Date:         DateOf(date),
		CustomerName: customerName,
		LineItems:    make([]LineItem, len(s.draft)),
		GrandTotal:   s.DraftTotal(),
	}
	copy(bill.LineItems, s.draft)

	sales := make([]*SaleRecord, 0, len(bill.LineItems))

	for _, li := range bill.LineItems {
		product, err := s.repo.GetProduct(ctx, li.ProductName)
		if err != nil {
			return nil, ErrStockChanged
		}

		cost := product.BuyPrice * li.Quantity
		sales = append(sales, &SaleRecord{
			ID:          uuid.New(),
			Date:        bill.Date,
			ProductName: li.ProductName,
			Quantity:    li.Quantity,
			SaleAmount:  li.LineTotal,
			CostAmount:  cost,
			Profit:      li.LineTotal - cost,
		})
	}

	if err := s.repo.CommitBill(ctx, bill, sales); err != nil {
		return nil, err
	}

	s.draft = nil

	return bill, nil
}

func (s *Service) ListStock(ctx context.Context) ([]*StockItem, error) {
	return s.repo.ListProducts(ctx)
}

// SearchStock filters the inventory by a case-insensitive substring of
// the product name. An empty term returns everything.
func (s *Service) SearchStock(ctx context.Context, term string) ([]*StockItem, error) {
	items, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	if term == "" {
		return items, nil
	}

	needle := strings.ToLower(term)
	filtered := make([]*StockItem, 0, len(items))

	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), needle) {
			filtered = append(filtered, item)
		}
	}

	return filtered, nil
}

func (s *Service) GetProduct(ctx context.Context, name string) (*StockItem, error) {
	return s.repo.GetProduct(ctx, name)
}

func (s *Service) ListSales(ctx context.Context) ([]*SaleRecord, error) {
	return s.repo.ListSales(ctx)
}

func (s *Service) ListBills(ctx context.Context) ([]*Bill, error) {
	return s.repo.ListBills(ctx)
}

func (s *Service) GetBill(ctx context.Context, id uuid.UUID) (*Bill, error) {
	return s.repo.GetBill(ctx, id)
}

// Reset discards the draft and every committed collection in one step.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.repo.Reset(ctx); err != nil {
		return err
	}

	s.draft = nil

	return nil
}

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsharma/sellsathi/internal/ledger"
	"github.com/rsharma/sellsathi/internal/ledger/store"
)

func seedProduct(t *testing.T, s *store.Store, name string, qty int64) {
	t.Helper()

	err := s.CreateProduct(context.Background(), &ledger.StockItem{
		Name:           name,
		BuyPrice:       500,
		SellPrice:      1000,
		QuantityOnHand: qty,
	})
	require.NoError(t, err)
}

func TestStore_CreateProduct(t *testing.T) {
	s := store.New()
	ctx := context.Background()

	seedProduct(t, s, "Pen", 100)

	err := s.CreateProduct(ctx, &ledger.StockItem{Name: "Pen"})
	assert.ErrorIs(t, err, ledger.ErrDuplicateProduct)

	_, err = s.GetProduct(ctx, "Ruler")
	assert.ErrorIs(t, err, ledger.ErrProductNotFound)

	item, err := s.GetProduct(ctx, "Pen")
	require.NoError(t, err)
	assert.Equal(t, int64(100), item.QuantityOnHand)
}

func TestStore_ListProducts_InsertionOrder(t *testing.T) {
	s := store.New()

	names := []string{"Notebook", "Pen", "Apple"}
	for _, name := range names {
		seedProduct(t, s, name, 1)
	}

	items, err := s.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)

	for i, item := range items {
		assert.Equal(t, names[i], item.Name)
	}
}

func TestStore_AccessorsReturnCopies(t *testing.T) {
	s := store.New()
	ctx := context.Background()

	seedProduct(t, s, "Pen", 100)

	item, err := s.GetProduct(ctx, "Pen")
	require.NoError(t, err)

	item.QuantityOnHand = 0

	again, err := s.GetProduct(ctx, "Pen")
	require.NoError(t, err)
	assert.Equal(t, int64(100), again.QuantityOnHand)
}

func TestStore_CommitSale(t *testing.T) {
	s := store.New()
	ctx := context.Background()

	seedProduct(t, s, "Pen", 10)

	rec := &ledger.SaleRecord{
		ID:          uuid.New(),
		Date:        ledger.DateOf(time.Now()),
		ProductName: "Pen",
		Quantity:    4,
		SaleAmount:  4000,
		CostAmount:  2000,
		Profit:      2000,
	}
	require.NoError(t, s.CommitSale(ctx, rec))

	item, err := s.GetProduct(ctx, "Pen")
	require.NoError(t, err)
	assert.Equal(t, int64(6), item.QuantityOnHand)
	assert.Equal(t, int64(4), item.SalesCount)

	err = s.CommitSale(ctx, &ledger.SaleRecord{ProductName: "Pen", Quantity: 7})
	assert.ErrorIs(t, err, ledger.ErrInsufficientStock)

	err = s.CommitSale(ctx, &ledger.SaleRecord{ProductName: "Ruler", Quantity: 1})
	assert.ErrorIs(t, err, ledger.ErrProductNotFound)

	sales, err := s.ListSales(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, rec.ID, sales[0].ID)
}

func TestStore_CommitBill_AggregatesLinesPerProduct(t *testing.T) {
	s := store.New()
	ctx := context.Background()

	seedProduct(t, s, "Pen", 10)

	// Two lines of the same product combine to 12, over the 10 on hand.
	bill := &ledger.Bill{
		ID:   uuid.New(),
		Date: ledger.DateOf(time.Now()),
		LineItems: []ledger.LineItem{
			{ProductName: "Pen", Quantity: 7, UnitPrice: 1000, LineTotal: 7000},
			{ProductName: "Pen", Quantity: 5, UnitPrice: 1000, LineTotal: 5000},
		},
	}
	err := s.CommitBill(ctx, bill, nil)
	assert.ErrorIs(t, err, ledger.ErrStockChanged)

	item, err := s.GetProduct(ctx, "Pen")
	require.NoError(t, err)
	assert.Equal(t, int64(10), item.QuantityOnHand)
}

func TestStore_CommitBill_AllOrNothing(t *testing.T) {
	s := store.New()
	ctx := context.Background()

	seedProduct(t, s, "Pen", 10)
	seedProduct(t, s, "Notebook", 3)

	bill := &ledger.Bill{
		ID:   uuid.New(),
		Date: ledger.DateOf(time.Now()),
		LineItems: []ledger.LineItem{
			{ProductName: "Pen", Quantity: 2, UnitPrice: 1000, LineTotal: 2000},
			{ProductName: "Notebook", Quantity: 5, UnitPrice: 1000, LineTotal: 5000},
		},
	}
	err := s.CommitBill(ctx, bill, nil)
	assert.ErrorIs(t, err, ledger.ErrStockChanged)

	pen, err := s.GetProduct(ctx, "Pen")
	require.NoError(t, err)
	assert.Equal(t, int64(10), pen.QuantityOnHand)
	assert.Zero(t, pen.SalesCount)

	bills, err := s.ListBills(ctx)
	require.NoError(t, err)
	assert.Empty(t, bills)
}

func TestStore_CommitBill_AppendsSales(t *testing.T) {
	s := store.New()
	ctx := context.Background()

	seedProduct(t, s, "Pen", 10)

	bill := &ledger.Bill{
		ID:           uuid.New(),
		Date:         ledger.DateOf(time.Now()),
		CustomerName: "Aman Kumar",
		LineItems: []ledger.LineItem{
			{ProductName: "Pen", Quantity: 3, UnitPrice: 1000, LineTotal: 3000},
		},
		GrandTotal: 3000,
	}
	sale := &ledger.SaleRecord{
		ID:          uuid.New(),
		Date:        bill.Date,
		ProductName: "Pen",
		Quantity:    3,
		SaleAmount:  3000,
		CostAmount:  1500,
		Profit:      1500,
	}
	require.NoError(t, s.CommitBill(ctx, bill, []*ledger.SaleRecord{sale}))

	item, err := s.GetProduct(ctx, "Pen")
	require.NoError(t, err)
	assert.Equal(t, int64(7), item.QuantityOnHand)
	assert.Equal(t, int64(3), item.SalesCount)

	got, err := s.GetBill(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, "Aman Kumar", got.CustomerName)
	require.Len(t, got.LineItems, 1)

	// The returned bill is a copy.
	got.LineItems[0].Quantity = 99

	again, err := s.GetBill(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), again.LineItems[0].Quantity)

	sales, err := s.ListSales(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, sale.ID, sales[0].ID)

	_, err = s.GetBill(ctx, uuid.New())
	assert.ErrorIs(t, err, ledger.ErrBillNotFound)
}

func TestStore_Reset(t *testing.T) {
	s := store.New()
	ctx := context.Background()

	seedProduct(t, s, "Pen", 10)
	require.NoError(t, s.CommitSale(ctx, &ledger.SaleRecord{ID: uuid.New(), ProductName: "Pen", Quantity: 1}))

	require.NoError(t, s.Reset(ctx))

	items, err := s.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	sales, err := s.ListSales(ctx)
	require.NoError(t, err)
	assert.Empty(t, sales)

	// The store is reusable after a reset.
	seedProduct(t, s, "Pen", 5)

	item, err := s.GetProduct(ctx, "Pen")
	require.NoError(t, err)
	assert.Equal(t, int64(5), item.QuantityOnHand)
}

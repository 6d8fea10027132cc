package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsharma/sellsathi/internal/ledger"
	"github.com/rsharma/sellsathi/internal/report"
)

// salesLog is a fixed in-memory sales source for report tests.
type salesLog []*ledger.SaleRecord

func (l salesLog) ListSales(_ context.Context) ([]*ledger.SaleRecord, error) {
	return l, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func rec(date time.Time, product string, qty, sale, cost int64) *ledger.SaleRecord {
	return &ledger.SaleRecord{
		Date:        date,
		ProductName: product,
		Quantity:    qty,
		SaleAmount:  sale,
		CostAmount:  cost,
		Profit:      sale - cost,
	}
}

func TestService_Metrics(t *testing.T) {
	today := day(2026, time.August, 28)

	svc := report.NewService(salesLog{
		rec(today, "Pen", 10, 10000, 5000),
		rec(today, "Notebook", 2, 5000, 2400),
		rec(day(2026, time.August, 1), "Pen", 5, 5000, 2500),
		rec(day(2026, time.July, 28), "Pen", 1, 1000, 500),  // other month
		rec(day(2025, time.August, 28), "Pen", 1, 1000, 500), // other year, same month number
	})

	m, err := svc.Metrics(context.Background(), today)
	require.NoError(t, err)

	assert.Equal(t, int64(15000), m.TodaySales)
	assert.Equal(t, int64(7600), m.TodayProfit)
	assert.Equal(t, int64(7400), m.TodayExpenditure)

	assert.Equal(t, int64(20000), m.MonthlySales)
	assert.Equal(t, int64(10100), m.MonthlyProfit)
	assert.Equal(t, int64(9900), m.MonthlyExpenditure)
}

func TestService_Metrics_EmptyLog(t *testing.T) {
	svc := report.NewService(salesLog{})

	m, err := svc.Metrics(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, report.Metrics{}, m)
}

func TestService_TopAndBottomProducts(t *testing.T) {
	today := day(2026, time.August, 28)

	svc := report.NewService(salesLog{
		rec(today, "Pen", 10, 10000, 5000),
		rec(today, "Pen", 5, 5000, 2500),
		rec(today, "Notebook", 8, 16000, 9600),
		rec(today, "Apple", 8, 800, 400),
		rec(today, "Ruler", 1, 500, 300),
	})
	ctx := context.Background()

	top, err := svc.TopProducts(ctx, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)

	// Pen 15, then Apple/Notebook tied at 8, broken by name.
	assert.Equal(t, report.ProductTotal{ProductName: "Pen", Quantity: 15}, top[0])
	assert.Equal(t, report.ProductTotal{ProductName: "Apple", Quantity: 8}, top[1])
	assert.Equal(t, report.ProductTotal{ProductName: "Notebook", Quantity: 8}, top[2])

	bottom, err := svc.BottomProducts(ctx, 3)
	require.NoError(t, err)
	require.Len(t, bottom, 3)

	assert.Equal(t, report.ProductTotal{ProductName: "Ruler", Quantity: 1}, bottom[0])
	assert.Equal(t, report.ProductTotal{ProductName: "Apple", Quantity: 8}, bottom[1])
	assert.Equal(t, report.ProductTotal{ProductName: "Notebook", Quantity: 8}, bottom[2])

	// Asking for more entries than products just returns them all.
	all, err := svc.TopProducts(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	none, err := svc.TopProducts(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestService_TopProfitProducts(t *testing.T) {
	today := day(2026, time.August, 28)

	svc := report.NewService(salesLog{
		rec(today, "Pen", 10, 10000, 5000),     // profit 50.00
		rec(today, "Notebook", 2, 5000, 2400),  // profit 26.00
		rec(today, "Pen", 2, 2000, 1000),       // +10.00
		rec(today, "Apple", 50, 5000, 4900),    // profit 1.00
	})

	top, err := svc.TopProfitProducts(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, top, 2)

	assert.Equal(t, report.ProductProfit{ProductName: "Pen", Profit: 6000}, top[0])
	assert.Equal(t, report.ProductProfit{ProductName: "Notebook", Profit: 2600}, top[1])
}

func TestService_DailyTrend(t *testing.T) {
	d1 := day(2026, time.August, 26)
	d2 := day(2026, time.August, 27)
	d3 := day(2026, time.August, 28)

	// Records deliberately out of date order.
	svc := report.NewService(salesLog{
		rec(d3, "Pen", 1, 1000, 500),
		rec(d1, "Pen", 2, 2000, 1000),
		rec(d2, "Notebook", 1, 2500, 1200),
		rec(d1, "Notebook", 1, 2500, 1200),
	})

	points, err := svc.DailyTrend(context.Background())
	require.NoError(t, err)
	require.Len(t, points, 3)

	assert.Equal(t, report.TrendPoint{Date: d1, SaleAmount: 4500}, points[0])
	assert.Equal(t, report.TrendPoint{Date: d2, SaleAmount: 2500}, points[1])
	assert.Equal(t, report.TrendPoint{Date: d3, SaleAmount: 1000}, points[2])
}

func TestService_DailyTrend_Empty(t *testing.T) {
	svc := report.NewService(salesLog{})

	points, err := svc.DailyTrend(context.Background())
	require.NoError(t, err)
	assert.Empty(t, points)
}

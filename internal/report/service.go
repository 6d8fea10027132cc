package report

import (
	"context"
	"sort"
	"time"

	"github.com/rsharma/sellsathi/internal/ledger"
)

// SalesSource is the slice of the ledger the reports read from.
type SalesSource interface {
	ListSales(ctx context.Context) ([]*ledger.SaleRecord, error)
}

// Service computes read-only views over the sales log. Every method is a
// pure function of the log: empty input yields empty output, never an
// error of its own.
type Service struct {
	sales SalesSource
}

func NewService(sales SalesSource) *Service {
	return &Service{sales: sales}
}

// Metrics aggregates sales, profit and expenditure for the calendar day
// of `on` and for its calendar month. Amounts are minor currency units.
type Metrics struct {
	TodaySales         int64
	TodayProfit        int64
	TodayExpenditure   int64
	MonthlySales       int64
	MonthlyProfit      int64
	MonthlyExpenditure int64
}

func (s *Service) Metrics(ctx context.Context, on time.Time) (Metrics, error) {
	records, err := s.sales.ListSales(ctx)
	if err != nil {
		return Metrics{}, err
	}

	day := ledger.DateOf(on)

	var m Metrics

	for _, rec := range records {
		if rec.Date.Year() == day.Year() && rec.Date.Month() == day.Month() {
			m.MonthlySales += rec.SaleAmount
			m.MonthlyProfit += rec.Profit
			m.MonthlyExpenditure += rec.CostAmount
		}

		if rec.Date.Equal(day) {
			m.TodaySales += rec.SaleAmount
			m.TodayProfit += rec.Profit
			m.TodayExpenditure += rec.CostAmount
		}
	}

	return m, nil
}

// ProductTotal is a product's summed quantity sold.
type ProductTotal struct {
	ProductName string
	Quantity    int64
}

// TopProducts returns the n best sellers by quantity, descending.
// Ties break by product name ascending so results are deterministic.
func (s *Service) TopProducts(ctx context.Context, n int) ([]ProductTotal, error) {
	totals, err := s.quantityTotals(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Quantity != totals[j].Quantity {
			return totals[i].Quantity > totals[j].Quantity
		}

		return totals[i].ProductName < totals[j].ProductName
	})

	return head(totals, n), nil
}

// BottomProducts returns the n worst sellers by quantity, ascending.
func (s *Service) BottomProducts(ctx context.Context, n int) ([]ProductTotal, error) {
	totals, err := s.quantityTotals(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Quantity != totals[j].Quantity {
			return totals[i].Quantity < totals[j].Quantity
		}

		return totals[i].ProductName < totals[j].ProductName
	})

	return head(totals, n), nil
}

// ProductProfit is a product's summed profit.
type ProductProfit struct {
	ProductName string
	Profit      int64
}

func (s *Service) TopProfitProducts(ctx context.Context, n int) ([]ProductProfit, error) {
	records, err := s.sales.ListSales(ctx)
	if err != nil {
		return nil, err
	}

	byProduct := make(map[string]int64)
	for _, rec := range records {
		byProduct[rec.ProductName] += rec.Profit
	}

	totals := make([]ProductProfit, 0, len(byProduct))
	for name, profit := range byProduct {
		totals = append(totals, ProductProfit{ProductName: name, Profit: profit})
	}

	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Profit != totals[j].Profit {
			return totals[i].Profit > totals[j].Profit
		}

		return totals[i].ProductName < totals[j].ProductName
	})

	return head(totals, n), nil
}

// TrendPoint is one day's summed sale amount.
type TrendPoint struct {
	Date       time.Time
	SaleAmount int64
}

// DailyTrend groups sale amounts by calendar day in chronological order,
// ready to feed a time-series chart.
func (s *Service) DailyTrend(ctx context.Context) ([]TrendPoint, error) {
	records, err := s.sales.ListSales(ctx)
	if err != nil {
		return nil, err
	}

	byDay := make(map[time.Time]int64)
	for _, rec := range records {
		byDay[rec.Date] += rec.SaleAmount
	}

	points := make([]TrendPoint, 0, len(byDay))
	for day, amount := range byDay {
		points = append(points, TrendPoint{Date: day, SaleAmount: amount})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})

	return points, nil
}

func (s *Service) quantityTotals(ctx context.Context) ([]ProductTotal, error) {
	records, err := s.sales.ListSales(ctx)
	if err != nil {
		return nil, err
	}

	byProduct := make(map[string]int64)
	for _, rec := range records {
		byProduct[rec.ProductName] += rec.Quantity
	}

	totals := make([]ProductTotal, 0, len(byProduct))
	for name, qty := range byProduct {
		totals = append(totals, ProductTotal{ProductName: name, Quantity: qty})
	}

	return totals, nil
}

func head[T any](s []T, n int) []T {
	if n < 0 {
		n = 0
	}

	if n > len(s) {
		n = len(s)
	}

	return s[:n]
}

package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rsharma/sellsathi/internal/report"
)

const (
	topSellerCount     = 3
	topProfitCount     = 10
	trendChartMaxWidth = 40
)

type AnalysisModel struct {
	CommonModel
	reports  *report.Service
	currency string

	top    []report.ProductTotal
	bottom []report.ProductTotal
	profit []report.ProductProfit
	trend  []report.TrendPoint

	loading bool
	err     error
}

func NewAnalysisModel(reportSvc *report.Service, currency string) AnalysisModel {
	return AnalysisModel{
		reports:  reportSvc,
		currency: currency,
		loading:  true,
	}
}

func (m AnalysisModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m AnalysisModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadAnalysisMsg:
		m.loading = false

		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.top = msg.top
		m.bottom = msg.bottom
		m.profit = msg.profit
		m.trend = msg.trend

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m AnalysisModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Crunching sales data...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if len(m.trend) == 0 {
		return lipgloss.NewStyle().Padding(2).Render(
			"No sales data available yet. Record some sales to see the analysis.\n\n(Esc to back)")
	}

	sections := []string{
		lipgloss.NewStyle().Bold(true).Render("Business Analysis"),
		"",
		m.sellersView(),
		m.trendView(),
		m.profitView(),
		"Esc: back | r: refresh",
	}

	return lipgloss.NewStyle().Padding(1).Render(strings.Join(sections, "\n"))
}

func (m AnalysisModel) sellersView() string {
	var left, right strings.Builder

	left.WriteString("Most Selling Products\n")

	for _, t := range m.top {
		fmt.Fprintf(&left, "  %s - %d units sold\n", t.ProductName, t.Quantity)
	}

	right.WriteString("Least Selling Products\n")

	for _, t := range m.bottom {
		fmt.Fprintf(&right, "  %s - %d units sold\n", t.ProductName, t.Quantity)
	}

	leftBox := lipgloss.NewStyle().Width(42).Foreground(lipgloss.Color("35")).Render(left.String())
	rightBox := lipgloss.NewStyle().Width(42).Foreground(lipgloss.Color("214")).Render(right.String())

	return lipgloss.JoinHorizontal(lipgloss.Top, leftBox, rightBox)
}

func (m AnalysisModel) trendView() string {
	var sb strings.Builder

	sb.WriteString("Daily Sales Revenue\n")

	maxAmount := int64(0)
	for _, p := range m.trend {
		if p.SaleAmount > maxAmount {
			maxAmount = p.SaleAmount
		}
	}

	for _, p := range m.trend {
		fmt.Fprintf(&sb, "  %s  %s %s\n",
			FormatDate(p.Date),
			bar(p.SaleAmount, maxAmount),
			Money(m.currency, p.SaleAmount),
		)
	}

	return sb.String()
}

func (m AnalysisModel) profitView() string {
	var sb strings.Builder

	sb.WriteString("Profit Distribution (Top Products)\n")

	maxProfit := int64(0)
	for _, p := range m.profit {
		if p.Profit > maxProfit {
			maxProfit = p.Profit
		}
	}

	for _, p := range m.profit {
		fmt.Fprintf(&sb, "  %-30s %s %s\n",
			p.ProductName,
			bar(p.Profit, maxProfit),
			Money(m.currency, p.Profit),
		)
	}

	return sb.String()
}

// bar scales value against max into a fixed-width block bar.
func bar(value, max int64) string {
	if max <= 0 || value <= 0 {
		return ""
	}

	width := int(value * trendChartMaxWidth / max)
	if width < 1 {
		width = 1
	}

	return lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Render(strings.Repeat("█", width))
}

// Messages

type loadAnalysisMsg struct {
	top    []report.ProductTotal
	bottom []report.ProductTotal
	profit []report.ProductProfit
	trend  []report.TrendPoint
	err    error
}

func (m AnalysisModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		top, err := m.reports.TopProducts(ctx, topSellerCount)
		if err != nil {
			return loadAnalysisMsg{err: err}
		}

		bottom, err := m.reports.BottomProducts(ctx, topSellerCount)
		if err != nil {
			return loadAnalysisMsg{err: err}
		}

		profit, err := m.reports.TopProfitProducts(ctx, topProfitCount)
		if err != nil {
			return loadAnalysisMsg{err: err}
		}

		trend, err := m.reports.DailyTrend(ctx)

		return loadAnalysisMsg{top: top, bottom: bottom, profit: profit, trend: trend, err: err}
	}
}

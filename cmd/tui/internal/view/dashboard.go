package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/rsharma/sellsathi/internal/ledger"
	"github.com/rsharma/sellsathi/internal/report"
)

type dashboardState int

const (
	dashboardStateBrowse dashboardState = iota
	dashboardStateSale
)

type DashboardModel struct {
	CommonModel
	ledger   *ledger.Service
	reports  *report.Service
	currency string

	state   dashboardState
	metrics report.Metrics
	stock   []*ledger.StockItem

	form        *huh.Form
	formProduct string
	formBuy     string
	formSell    string
	formQty     string

	loading bool
	status  string
	err     error
}

func NewDashboardModel(ledgerSvc *ledger.Service, reportSvc *report.Service, currency string) DashboardModel {
	return DashboardModel{
		ledger:   ledgerSvc,
		reports:  reportSvc,
		currency: currency,
		loading:  true,
	}
}

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadDashboardMsg:
		m.loading = false

		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.metrics = msg.metrics
		m.stock = msg.stock

		return m, nil

	case saleRecordedMsg:
		m.state = dashboardStateBrowse
		m.form = nil

		if msg.err != nil {
			m.status = fmt.Sprintf("Sale failed: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Sale confirmed! %d x %s sold. Profit: %s",
			msg.rec.Quantity, msg.rec.ProductName, Money(m.currency, msg.rec.Profit))

		return m, m.loadCmd()
	}

	switch m.state {
	case dashboardStateBrowse:
		return m.updateBrowse(msg)
	case dashboardStateSale:
		return m.updateSale(msg)
	}

	return m, nil
}

func (m DashboardModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "r":
		m.loading = true
		return m, m.loadCmd()
	case "a":
		if len(m.stock) == 0 {
			m.status = "Add products to your stock first to record a sale."
			return m, nil
		}

		return m.enterSaleForm()
	}

	return m, nil
}

func (m DashboardModel) enterSaleForm() (tea.Model, tea.Cmd) {
	names := make([]string, len(m.stock))
	for i, item := range m.stock {
		names[i] = item.Name
	}

	m.formProduct = names[0]
	m.formBuy = ""
	m.formSell = ""
	m.formQty = "1"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("product").
				Title("Product").
				Options(huh.NewOptions(names...)...).
				Value(&m.formProduct),

			huh.NewInput().
				Key("buy").
				Title("Buy Price (blank = stock price)").
				Value(&m.formBuy).
				Validate(optionalAmount),

			huh.NewInput().
				Key("sell").
				Title("Selling Price (blank = stock price)").
				Value(&m.formSell).
				Validate(optionalAmount),

			huh.NewInput().
				Key("qty").
				Title("Quantity Sold").
				Value(&m.formQty).
				Validate(positiveInt),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = dashboardStateSale

	return m, m.form.Init()
}

func (m DashboardModel) updateSale(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = dashboardStateBrowse
		m.form = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.recordSaleCmd()
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading dashboard...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	today := lipgloss.JoinHorizontal(lipgloss.Top,
		m.metricBox("Today Sales", m.metrics.TodaySales, "33"),
		m.metricBox("Today Profit", m.metrics.TodayProfit, "35"),
		m.metricBox("Today Expenditure", m.metrics.TodayExpenditure, "203"),
	)

	monthly := lipgloss.JoinHorizontal(lipgloss.Top,
		m.metricBox("Monthly Sales", m.metrics.MonthlySales, "33"),
		m.metricBox("Monthly Profit", m.metrics.MonthlyProfit, "35"),
		m.metricBox("Monthly Expenditure", m.metrics.MonthlyExpenditure, "203"),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render("Performance Overview"),
		today,
		monthly,
	)

	if m.state == dashboardStateSale && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Record New Sale\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, content,
			lipgloss.NewStyle().Faint(true).Render(m.status))
	}

	help := "Esc: back | a: record sale | r: refresh"

	return lipgloss.NewStyle().Padding(1).Render(content + "\n\n" + help)
}

func (m DashboardModel) metricBox(title string, value int64, color string) string {
	return lipgloss.NewStyle().
		Padding(1, 2).
		Margin(0, 1, 1, 0).
		Width(24).
		Align(lipgloss.Center).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(color)).
		Render(title + "\n" + lipgloss.NewStyle().Bold(true).Render(Money(m.currency, value)))
}

// Messages

type loadDashboardMsg struct {
	metrics report.Metrics
	stock   []*ledger.StockItem
	err     error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		metrics, err := m.reports.Metrics(ctx, time.Now())
		if err != nil {
			return loadDashboardMsg{err: err}
		}

		stock, err := m.ledger.ListStock(ctx)

		return loadDashboardMsg{metrics: metrics, stock: stock, err: err}
	}
}

type saleRecordedMsg struct {
	rec *ledger.SaleRecord
	err error
}

func (m DashboardModel) recordSaleCmd() tea.Cmd {
	product := m.form.GetString("product")
	buyStr := m.form.GetString("buy")
	sellStr := m.form.GetString("sell")
	qtyStr := m.form.GetString("qty")

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		params := ledger.SaleParams{ProductName: product}

		if buyStr != "" {
			buy, err := ledger.ParseAmount(buyStr)
			if err != nil {
				return saleRecordedMsg{err: err}
			}

			params.UnitBuyPrice = buy
		}

		if sellStr != "" {
			sell, err := ledger.ParseAmount(sellStr)
			if err != nil {
				return saleRecordedMsg{err: err}
			}

			params.UnitSellPrice = sell
		}

		qty, err := strconv.ParseInt(qtyStr, 10, 64)
		if err != nil {
			return saleRecordedMsg{err: err}
		}

		params.Quantity = qty

		rec, err := m.ledger.RecordDirectSale(ctx, params)

		return saleRecordedMsg{rec: rec, err: err}
	}
}

func optionalAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	if _, err := ledger.ParseAmount(s); err != nil {
		return fmt.Errorf("invalid amount")
	}

	return nil
}

func positiveInt(s string) error {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 1 {
		return fmt.Errorf("must be a whole number of at least 1")
	}

	return nil
}

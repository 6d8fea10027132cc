package view

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/rsharma/sellsathi/internal/ledger"
)

type stockState int

const (
	stockStateBrowse stockState = iota
	stockStateFilter
	stockStateAdd
)

type StockModel struct {
	CommonModel
	ledger   *ledger.Service
	currency string

	state stockState
	table table.Model
	items []*ledger.StockItem

	filter textinput.Model

	form     *huh.Form
	formName string
	formBuy  string
	formSell string
	formQty  string

	loading bool
	status  string
	err     error
}

func NewStockModel(ledgerSvc *ledger.Service, currency string) StockModel {
	columns := []table.Column{
		{Title: "Product Name", Width: 30},
		{Title: "Buy Price", Width: 12},
		{Title: "Sell Price", Width: 12},
		{Title: "Available", Width: 10},
		{Title: "Sold", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	fi := textinput.New()
	fi.Placeholder = "Search for product..."
	fi.Width = 30

	return StockModel{
		ledger:   ledgerSvc,
		currency: currency,
		table:    t,
		filter:   fi,
		loading:  true,
	}
}

func (m StockModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m StockModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadStockMsg:
		m.loading = false

		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.items = msg.items
		m.refreshTable()

		return m, nil

	case stockAddedMsg:
		m.state = stockStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = fmt.Sprintf("Error adding product: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Product %q added to stock.", msg.item.Name)

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case stockStateBrowse:
		return m.updateBrowse(msg)
	case stockStateFilter:
		return m.updateFilter(msg)
	case stockStateAdd:
		return m.updateAdd(msg)
	}

	return m, nil
}

func (m StockModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "/":
			m.state = stockStateFilter
			m.table.Blur()
			m.filter.Focus()

			return m, textinput.Blink
		case "a":
			return m.enterAddForm()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m StockModel) updateFilter(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.state = stockStateBrowse
			m.filter.SetValue("")
			m.filter.Blur()
			m.table.Focus()

			return m, m.loadCmd()
		case tea.KeyEnter:
			m.state = stockStateBrowse
			m.filter.Blur()
			m.table.Focus()

			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)

	return m, cmd
}

func (m StockModel) enterAddForm() (tea.Model, tea.Cmd) {
	m.formName = ""
	m.formBuy = ""
	m.formSell = ""
	m.formQty = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Product Name").
				Placeholder("e.g., T-Shirt Blue M").
				Value(&m.formName).
				Validate(notBlank("product name")),

			huh.NewInput().
				Key("buy").
				Title("Buy Price (per unit)").
				Value(&m.formBuy).
				Validate(requiredAmount),

			huh.NewInput().
				Key("sell").
				Title("Sell Price (per unit)").
				Value(&m.formSell).
				Validate(requiredAmount),

			huh.NewInput().
				Key("qty").
				Title("Stock Quantity").
				Value(&m.formQty).
				Validate(positiveInt),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = stockStateAdd
	m.table.Blur()

	return m, m.form.Init()
}

func (m StockModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = stockStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.addStockCmd()
}

func (m StockModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading stock...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := "Current Stock Inventory"
	if m.state == stockStateFilter {
		header = "Filter: " + m.filter.View()
	} else if m.filter.Value() != "" {
		header = fmt.Sprintf("Current Stock Inventory (filter: %q)", m.filter.Value())
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == stockStateAdd && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Add New Stock / Product\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	help := "Esc: back | a: add product | /: filter | r: refresh"

	return lipgloss.NewStyle().Padding(1).Render(content + "\n" + help)
}

func (m *StockModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.items))
	for _, item := range m.items {
		rows = append(rows, table.Row{
			item.Name,
			Money(m.currency, item.BuyPrice),
			Money(m.currency, item.SellPrice),
			strconv.FormatInt(item.QuantityOnHand, 10),
			strconv.FormatInt(item.SalesCount, 10),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadStockMsg struct {
	items []*ledger.StockItem
	err   error
}

func (m StockModel) loadCmd() tea.Cmd {
	term := m.filter.Value()

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		items, err := m.ledger.SearchStock(ctx, term)

		return loadStockMsg{items: items, err: err}
	}
}

type stockAddedMsg struct {
	item *ledger.StockItem
	err  error
}

func (m StockModel) addStockCmd() tea.Cmd {
	name := m.form.GetString("name")
	buyStr := m.form.GetString("buy")
	sellStr := m.form.GetString("sell")
	qtyStr := m.form.GetString("qty")

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		buy, err := ledger.ParseAmount(buyStr)
		if err != nil {
			return stockAddedMsg{err: err}
		}

		sell, err := ledger.ParseAmount(sellStr)
		if err != nil {
			return stockAddedMsg{err: err}
		}

		qty, err := strconv.ParseInt(qtyStr, 10, 64)
		if err != nil {
			return stockAddedMsg{err: err}
		}

		item, err := m.ledger.AddStockItem(ctx, ledger.AddStockParams{
			Name:      name,
			BuyPrice:  buy,
			SellPrice: sell,
			Quantity:  qty,
		})

		return stockAddedMsg{item: item, err: err}
	}
}

func requiredAmount(s string) error {
	if _, err := ledger.ParseAmount(s); err != nil {
		return fmt.Errorf("invalid amount")
	}

	return nil
}

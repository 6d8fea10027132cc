package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/rsharma/sellsathi/internal/invoice"
	"github.com/rsharma/sellsathi/internal/ledger"
	"github.com/rsharma/sellsathi/internal/session"
)

type billState int

const (
	billStateBrowse billState = iota
	billStateAddItem
	billStateFinalize
)

type BillModel struct {
	CommonModel
	ledger     *ledger.Service
	sess       *session.Session
	appName    string
	currency   string
	invoiceDir string

	state billState
	table table.Model
	draft []ledger.LineItem
	bills []*ledger.Bill
	stock []*ledger.StockItem

	form         *huh.Form
	formProduct  string
	formQty      string
	formCustomer string
	formDate     string

	loading bool
	status  string
	err     error
}

func NewBillModel(ledgerSvc *ledger.Service, sess *session.Session, appName, currency, invoiceDir string) BillModel {
	columns := []table.Column{
		{Title: "Product", Width: 30},
		{Title: "Qty", Width: 6},
		{Title: "Unit Price", Width: 12},
		{Title: "Total", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(8),
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

	return BillModel{
		ledger:     ledgerSvc,
		sess:       sess,
		appName:    appName,
		currency:   currency,
		invoiceDir: invoiceDir,
		table:      t,
		loading:    true,
	}
}

func (m BillModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m BillModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadBillMsg:
		m.loading = false

		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.bills = msg.bills
		m.stock = msg.stock
		m.draft = m.ledger.Draft()
		m.refreshTable()

		return m, nil

	case draftItemAddedMsg:
		m.state = billStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = fmt.Sprintf("Cannot add: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Added %d x %s to the bill.", msg.item.Quantity, msg.item.ProductName)

		return m, m.loadCmd()

	case billFinalizedMsg:
		m.state = billStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = fmt.Sprintf("Finalize failed: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Bill saved. Invoice written to %s", msg.path)

		return m, m.loadCmd()
	}

	switch m.state {
	case billStateBrowse:
		return m.updateBrowse(msg)
	case billStateAddItem, billStateFinalize:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m BillModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			if len(m.stock) == 0 {
				m.status = "Add products to your stock first to create a bill."
				return m, nil
			}

			return m.enterAddItemForm()
		case "x":
			idx := m.table.Cursor()
			if err := m.ledger.RemoveDraftLineItem(idx); err != nil {
				m.status = fmt.Sprintf("Remove failed: %v", err)
				return m, nil
			}

			m.draft = m.ledger.Draft()
			m.refreshTable()

			return m, nil
		case "c":
			m.ledger.ClearDraft()
			m.draft = nil
			m.refreshTable()
			m.status = "Draft cleared."

			return m, nil
		case "f":
			if len(m.draft) == 0 {
				m.status = "No items added to the current bill."
				return m, nil
			}

			return m.enterFinalizeForm()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m BillModel) enterAddItemForm() (tea.Model, tea.Cmd) {
	names := make([]string, len(m.stock))
	for i, item := range m.stock {
		names[i] = item.Name
	}

	m.formProduct = names[0]
	m.formQty = "1"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("product").
				Title("Select Product").
				Options(huh.NewOptions(names...)...).
				Value(&m.formProduct),

			huh.NewInput().
				Key("qty").
				Title("Quantity").
				Value(&m.formQty).
				Validate(positiveInt),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = billStateAddItem
	m.table.Blur()

	return m, m.form.Init()
}

func (m BillModel) enterFinalizeForm() (tea.Model, tea.Cmd) {
	m.formCustomer = ""
	m.formDate = FormatDate(time.Now())

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("customer").
				Title("Customer Name").
				Placeholder("e.g., Aman Kumar").
				Value(&m.formCustomer).
				Validate(notBlank("customer name")),

			huh.NewInput().
				Key("date").
				Title("Selling Date (YYYY-MM-DD)").
				Value(&m.formDate).
				Validate(validDate),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = billStateFinalize
	m.table.Blur()

	return m, m.form.Init()
}

func (m BillModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = billStateBrowse
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

	if m.state == billStateAddItem {
		return m, m.addItemCmd()
	}

	return m, m.finalizeCmd()
}

func (m BillModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading bill...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	title := lipgloss.NewStyle().Bold(true).Render("Billing & Invoice Generator")

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	total := fmt.Sprintf("Grand Total: %s", Money(m.currency, m.ledger.DraftTotal()))

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		tableView,
		lipgloss.NewStyle().Bold(true).Render(total),
		"",
		m.historyView(),
	)

	if m.form != nil {
		heading := "Add Product Item"
		if m.state == billStateFinalize {
			heading = "Generate & Save Bill"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(heading + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	help := "Esc: back | a: add item | x: remove item | c: clear | f: finalize | r: refresh"

	return lipgloss.NewStyle().Padding(1).Render(content + "\n" + help)
}

func (m BillModel) historyView() string {
	if len(m.bills) == 0 {
		return lipgloss.NewStyle().Faint(true).Render("No bills saved yet.")
	}

	var sb strings.Builder

	sb.WriteString("Bill History\n")

	for _, b := range m.bills {
		fmt.Fprintf(&sb, "  %s  %s  %s  %s\n",
			b.ID, FormatDate(b.Date), b.CustomerName, Money(m.currency, b.GrandTotal))
	}

	return sb.String()
}

func (m *BillModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.draft))
	for _, li := range m.draft {
		rows = append(rows, table.Row{
			li.ProductName,
			strconv.FormatInt(li.Quantity, 10),
			Money(m.currency, li.UnitPrice),
			Money(m.currency, li.LineTotal),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadBillMsg struct {
	bills []*ledger.Bill
	stock []*ledger.StockItem
	err   error
}

func (m BillModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		bills, err := m.ledger.ListBills(ctx)
		if err != nil {
			return loadBillMsg{err: err}
		}

		stock, err := m.ledger.ListStock(ctx)

		return loadBillMsg{bills: bills, stock: stock, err: err}
	}
}

type draftItemAddedMsg struct {
	item *ledger.LineItem
	err  error
}

func (m BillModel) addItemCmd() tea.Cmd {
	product := m.form.GetString("product")
	qtyStr := m.form.GetString("qty")

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		qty, err := strconv.ParseInt(qtyStr, 10, 64)
		if err != nil {
			return draftItemAddedMsg{err: err}
		}

		item, err := m.ledger.AddDraftLineItem(ctx, product, qty)

		return draftItemAddedMsg{item: item, err: err}
	}
}

type billFinalizedMsg struct {
	bill *ledger.Bill
	path string
	err  error
}

func (m BillModel) finalizeCmd() tea.Cmd {
	customer := m.form.GetString("customer")
	dateStr := m.form.GetString("date")

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		date, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			return billFinalizedMsg{err: err}
		}

		bill, err := m.ledger.FinalizeBill(ctx, customer, date)
		if err != nil {
			return billFinalizedMsg{err: err}
		}

		profile, _ := m.sess.Profile()
		writer := invoice.NewWriter(m.invoiceDir, invoice.BusinessInfo{
			AppName:      m.appName,
			BusinessName: profile.BusinessName,
			BusinessType: profile.BusinessType,
			Currency:     m.currency,
		})

		path, err := writer.Write(bill)

		return billFinalizedMsg{bill: bill, path: path, err: err}
	}
}

func validDate(s string) error {
	if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("expected YYYY-MM-DD")
	}

	return nil
}

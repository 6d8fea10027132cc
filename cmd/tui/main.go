package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/rsharma/sellsathi/cmd/tui/internal/view"
	"github.com/rsharma/sellsathi/internal/config"
	"github.com/rsharma/sellsathi/internal/ledger"
	ledgerStore "github.com/rsharma/sellsathi/internal/ledger/store"
	"github.com/rsharma/sellsathi/internal/report"
	"github.com/rsharma/sellsathi/internal/session"
)

type model struct {
	cfg *config.Config

	sess          *session.Session
	ledgerService *ledger.Service
	reportService *report.Service

	currentView View

	registerView  view.RegisterModel
	dashboardView view.DashboardModel
	stockView     view.StockModel
	billView      view.BillModel
	analysisView  view.AnalysisModel
	aboutView     view.AboutModel
}

type View int

const (
	ViewRegister  View = 0
	ViewMenu      View = 1
	ViewDashboard View = 2
	ViewStock     View = 3
	ViewBill      View = 4
	ViewAnalysis  View = 5
	ViewAbout     View = 6
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ledgerSvc := ledger.NewService(ledgerStore.New())
	sess := session.New(ledgerSvc)
	reportSvc := report.NewService(ledgerSvc)

	return model{
		cfg:           cfg,
		sess:          sess,
		ledgerService: ledgerSvc,
		reportService: reportSvc,
		currentView:   ViewRegister,
		registerView:  view.NewRegisterModel(sess),
		aboutView:     view.NewAboutModel(cfg.App.Name),
	}
}

func (m model) Init() tea.Cmd {
	return m.registerView.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.ledgerService, m.reportService, m.cfg.App.Currency)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewStock
				m.stockView = view.NewStockModel(m.ledgerService, m.cfg.App.Currency)

				return m, m.stockView.Init()
			case "3":
				m.currentView = ViewBill
				m.billView = view.NewBillModel(m.ledgerService, m.sess, m.cfg.App.Name, m.cfg.App.Currency, m.cfg.Invoice.Dir)

				return m, m.billView.Init()
			case "4":
				m.currentView = ViewAnalysis
				m.analysisView = view.NewAnalysisModel(m.reportService, m.cfg.App.Currency)

				return m, m.analysisView.Init()
			case "5":
				m.currentView = ViewAbout
				return m, m.aboutView.Init()
			case "l":
				// Logout wipes the whole session, back to registration.
				if err := m.sess.Reset(context.Background()); err != nil {
					slog.Error("failed to reset session", "error", err)
					return m, nil
				}

				m.currentView = ViewRegister
				m.registerView = view.NewRegisterModel(m.sess)

				return m, m.registerView.Init()
			}
		}
	case view.RegisteredMsg:
		m.currentView = ViewMenu
		return m, nil
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewRegister:
		var newModel tea.Model
		newModel, cmd = m.registerView.Update(msg)
		m.registerView = newModel.(view.RegisterModel)
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewStock:
		var newModel tea.Model
		newModel, cmd = m.stockView.Update(msg)
		m.stockView = newModel.(view.StockModel)
	case ViewBill:
		var newModel tea.Model
		newModel, cmd = m.billView.Update(msg)
		m.billView = newModel.(view.BillModel)
	case ViewAnalysis:
		var newModel tea.Model
		newModel, cmd = m.analysisView.Update(msg)
		m.analysisView = newModel.(view.AnalysisModel)
	case ViewAbout:
		var newModel tea.Model
		newModel, cmd = m.aboutView.Update(msg)
		m.aboutView = newModel.(view.AboutModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewRegister:
		return m.registerView.View()
	case ViewMenu:
		business := "Menu"
		if profile, ok := m.sess.Profile(); ok {
			business = profile.BusinessName
		}

		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf(
			"%s - %s\n\n"+
				"1. Dashboard\n"+
				"2. Stock\n"+
				"3. Bill\n"+
				"4. Business Analysis\n"+
				"5. About\n\n"+
				"l. Logout\n"+
				"q. Quit",
			m.cfg.App.Name, business,
		))
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewStock:
		return m.stockView.View()
	case ViewBill:
		return m.billView.View()
	case ViewAnalysis:
		return m.analysisView.View()
	case ViewAbout:
		return m.aboutView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}

package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type AboutModel struct {
	CommonModel
	appName string
}

func NewAboutModel(appName string) AboutModel {
	return AboutModel{appName: appName}
}

func (m AboutModel) Init() tea.Cmd {
	return nil
}

func (m AboutModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		return m, Back
	}

	return m, nil
}

func (m AboutModel) View() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")).Render("About " + m.appName)

	body := m.appName + ` is your friendly companion for managing small to
medium business operations: sales tracking, inventory management and
business analysis, so you can focus on growing your business.

Key Features:
  * Dashboard: daily and monthly performance metrics.
  * Stock: add and track your product inventory.
  * Bill: invoice generation and history.
  * Business Analysis: product performance and sales trends.

(Esc to back)`

	return lipgloss.NewStyle().Padding(1, 2).Render(title + "\n\n" + body)
}

package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/rsharma/sellsathi/internal/session"
)

// RegisteredMsg signals that the business profile was saved.
type RegisteredMsg struct{}

type RegisterModel struct {
	CommonModel
	sess *session.Session

	form *huh.Form

	ownerName    string
	email        string
	businessName string
	businessType string

	err error
}

func NewRegisterModel(sess *session.Session) RegisterModel {
	m := RegisterModel{sess: sess}
	m.form = m.newForm()

	return m
}

func (m RegisterModel) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("owner_name").
				Title("Your Full Name").
				Placeholder("e.g., Rohan Sharma").
				Value(&m.ownerName).
				Validate(notBlank("name")),

			huh.NewInput().
				Key("email").
				Title("Email Address").
				Placeholder("e.g., business@example.com").
				Value(&m.email).
				Validate(notBlank("email")),

			huh.NewInput().
				Key("business_name").
				Title("Business Name").
				Placeholder("e.g., Sharma General Store").
				Value(&m.businessName).
				Validate(notBlank("business name")),

			huh.NewSelect[string]().
				Key("business_type").
				Title("Business Type").
				Options(huh.NewOptions(session.BusinessTypes...)...).
				Value(&m.businessType),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m RegisterModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	err := m.sess.Register(session.Profile{
		OwnerName:    m.form.GetString("owner_name"),
		Email:        m.form.GetString("email"),
		BusinessName: m.form.GetString("business_name"),
		BusinessType: m.form.GetString("business_type"),
	})
	if err != nil {
		m.err = err
		m.form = m.newForm()

		return m, m.form.Init()
	}

	return m, func() tea.Msg { return RegisteredMsg{} }
}

func (m RegisterModel) View() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")).Render("SellSathi")

	content := title + "\n\nRegister Your Business\n\n" + m.form.View()

	if m.err != nil {
		content += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}

		return nil
	}
}

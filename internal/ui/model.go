package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/UnknownOlympus/athena/internal/client"
	"github.com/UnknownOlympus/athena/internal/models"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	msgFetchFailed  = "Failed to fetch users. Please ensure the backend server is running."
	msgSaveFailed   = "Failed to save user. Please try again."
	msgDeleteFailed = "Failed to delete user: "
	msgNoResponse   = "no valid response from server"
)

// API is the part of the employee API the UI needs.
type API interface {
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	CreateEmployee(ctx context.Context, data models.EmployeeData) (models.Employee, error)
	UpdateEmployee(ctx context.Context, identifier int, data models.EmployeeData) (models.Employee, error)
	DeleteEmployee(ctx context.Context, identifier int) (models.Employee, error)
}

type focusArea int

const (
	focusList focusArea = iota
	focusForm
)

type employeesLoadedMsg struct {
	employees []models.Employee
}

type employeeSavedMsg struct {
	employee models.Employee
	updated  bool
}

type employeeDeletedMsg struct {
	identifier int
}

type requestFailedMsg struct {
	message string
}

// Model is the employee manager screen: a list of records and one form.
// The list is changed only after the API confirms a mutation.
type Model struct {
	ctx     context.Context //nolint:containedctx // bubbletea commands run outside any call chain
	api     API
	log     *slog.Logger
	styles  Styles
	printer *message.Printer

	employees     []models.Employee
	form          Form
	cursor        int
	focus         focusArea
	loading       bool
	err           string
	pendingDelete *models.Employee
}

func New(ctx context.Context, api API, log *slog.Logger) Model {
	return Model{
		ctx:     ctx,
		api:     api,
		log:     log,
		styles:  DefaultStyles(),
		printer: message.NewPrinter(language.English),
		form:    NewForm(),
		loading: true,
	}
}

// Init loads the list on mount.
func (m Model) Init() tea.Cmd {
	return m.fetchEmployees()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case employeesLoadedMsg:
		m.loading = false
		m.err = ""
		m.employees = msg.employees
		m.clampCursor()
		return m, nil

	case employeeSavedMsg:
		if msg.updated {
			idx := slices.IndexFunc(m.employees, func(e models.Employee) bool { return e.ID == msg.employee.ID })
			if idx != -1 {
				m.employees[idx] = msg.employee
			}
		} else {
			m.employees = append(m.employees, msg.employee)
		}
		m.err = ""
		m.form.Reset()
		return m, nil

	case employeeDeletedMsg:
		m.employees = slices.DeleteFunc(m.employees, func(e models.Employee) bool { return e.ID == msg.identifier })
		if target, ok := m.form.Target(); ok && target.ID == msg.identifier {
			m.form.Reset()
		}
		m.err = ""
		m.clampCursor()
		return m, nil

	case requestFailedMsg:
		m.loading = false
		m.err = msg.message
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.focus == focusForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.pendingDelete != nil {
		target := *m.pendingDelete
		m.pendingDelete = nil
		if msg.String() == "y" || msg.String() == "Y" {
			return m, m.deleteEmployee(target.ID)
		}
		return m, nil
	}

	if m.loading {
		if msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil
	}

	if m.focus == focusForm {
		return m.handleFormKey(msg)
	}

	return m.handleListKey(msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.employees)-1 {
			m.cursor++
		}
	case "e":
		if selected, ok := m.selected(); ok {
			m.form.Edit(selected)
			m.focus = focusForm
			return m, m.form.Focus()
		}
	case "d":
		if selected, ok := m.selected(); ok {
			m.pendingDelete = &selected
		}
	case "r":
		m.loading = true
		return m, m.fetchEmployees()
	case "tab", "n":
		m.focus = focusForm
		return m, m.form.Focus()
	}

	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return m, m.form.Move(1)
	case "shift+tab", "up":
		return m, m.form.Move(-1)
	case "esc":
		if m.form.Mode() == ModeEdit {
			m.form.Reset()
			return m, nil
		}
		m.form.Blur()
		m.focus = focusList
		return m, nil
	case "enter":
		return m.submit()
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)

	return m, cmd
}

// submit validates locally and issues a create or an update depending on the form mode.
func (m Model) submit() (tea.Model, tea.Cmd) {
	m.err = ""

	data, err := m.form.Validate()
	if err != nil {
		m.err = err.Error()
		return m, nil
	}

	if target, ok := m.form.Target(); ok {
		return m, m.updateEmployee(target.ID, data)
	}

	return m, m.createEmployee(data)
}

func (m Model) fetchEmployees() tea.Cmd {
	return func() tea.Msg {
		employees, err := m.api.ListEmployees(m.ctx)
		if err != nil {
			m.log.ErrorContext(m.ctx, "Error fetching users", "error", err)
			return requestFailedMsg{message: msgFetchFailed}
		}

		return employeesLoadedMsg{employees: employees}
	}
}

func (m Model) createEmployee(data models.EmployeeData) tea.Cmd {
	return func() tea.Msg {
		created, err := m.api.CreateEmployee(m.ctx, data)
		if err != nil {
			m.log.ErrorContext(m.ctx, "Error saving user", "error", err)
			return requestFailedMsg{message: userMessage(err, msgSaveFailed)}
		}

		return employeeSavedMsg{employee: created}
	}
}

func (m Model) updateEmployee(identifier int, data models.EmployeeData) tea.Cmd {
	return func() tea.Msg {
		updated, err := m.api.UpdateEmployee(m.ctx, identifier, data)
		if err != nil {
			m.log.ErrorContext(m.ctx, "Error saving user", "id", identifier, "error", err)
			return requestFailedMsg{message: userMessage(err, msgSaveFailed)}
		}

		return employeeSavedMsg{employee: updated, updated: true}
	}
}

func (m Model) deleteEmployee(identifier int) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.api.DeleteEmployee(m.ctx, identifier); err != nil {
			m.log.ErrorContext(m.ctx, "Error deleting user", "id", identifier, "error", err)
			return requestFailedMsg{message: msgDeleteFailed + userMessage(err, msgNoResponse)}
		}

		return employeeDeletedMsg{identifier: identifier}
	}
}

// userMessage returns the message the API answered with, or fallback when the
// request never got a proper answer. Transport details stay in the log.
func userMessage(err error, fallback string) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	return fallback
}

func (m Model) selected() (models.Employee, bool) {
	if m.cursor < 0 || m.cursor >= len(m.employees) {
		return models.Employee{}, false
	}

	return m.employees[m.cursor], true
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.employees) {
		m.cursor = len(m.employees) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) View() string {
	if m.loading {
		return "Loading...\n"
	}

	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("Employee Management System"))
	sb.WriteString("\n")

	if m.err != "" {
		sb.WriteString(m.styles.Error.Render(m.err))
		sb.WriteString("\n\n")
	}

	sb.WriteString(m.form.View(m.styles))
	sb.WriteString("\n\n")

	sb.WriteString(m.styles.Header.Render("Employee List"))
	sb.WriteString("\n")

	if len(m.employees) == 0 {
		sb.WriteString("No employees found\n")
	}

	for idx, employee := range m.employees {
		line := fmt.Sprintf("%s | Age: %s years | Position: %s | Salary: $%s",
			employee.Name, formatNumber(employee.Age), employee.Post, m.printer.Sprint(number.Decimal(employee.Salary)))

		if idx == m.cursor && m.focus == focusList {
			sb.WriteString(m.styles.Selected.UnsetWidth().Render("> " + line))
		} else {
			sb.WriteString(m.styles.Card.Render(line))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	if m.pendingDelete != nil {
		sb.WriteString(m.styles.Error.Render(
			fmt.Sprintf("Are you sure you want to delete %s? (y/n)", m.pendingDelete.Name)))
	} else {
		sb.WriteString(m.styles.Muted.Render(
			"↑/↓: select • e: edit • d: delete • tab: form • r: reload • q: quit"))
	}
	sb.WriteString("\n")

	return sb.String()
}

package ui

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Mode tells whether submitting the form creates a record or updates the target.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

const (
	fieldName = iota
	fieldAge
	fieldPost
	fieldSalary
	fieldCount
)

var (
	ErrFieldsRequired = errors.New("All fields are required")        //nolint:stylecheck,revive // shown to the user as is
	ErrNotNumbers     = errors.New("Age and salary must be numbers") //nolint:stylecheck,revive // shown to the user as is
)

var fieldLabels = [fieldCount]string{"Full Name", "Age", "Position", "Salary"}

// Form is the single create/edit form.
type Form struct {
	inputs  []textinput.Model
	focused int
	target  *models.Employee
}

func NewForm() Form {
	placeholders := [fieldCount]string{"Enter full name", "Enter age", "Enter position", "Enter salary"}

	inputs := make([]textinput.Model, fieldCount)
	for idx := range inputs {
		input := textinput.New()
		input.Prompt = ""
		input.Placeholder = placeholders[idx]
		input.CharLimit = 64
		inputs[idx] = input
	}

	return Form{inputs: inputs}
}

func (f Form) Mode() Mode {
	if f.target != nil {
		return ModeEdit
	}

	return ModeCreate
}

// Target returns the record being edited, if any.
func (f Form) Target() (models.Employee, bool) {
	if f.target == nil {
		return models.Employee{}, false
	}

	return *f.target, true
}

// Edit fills the form from the record and switches to edit mode.
func (f *Form) Edit(employee models.Employee) {
	f.target = &employee
	f.inputs[fieldName].SetValue(employee.Name)
	f.inputs[fieldAge].SetValue(formatNumber(employee.Age))
	f.inputs[fieldPost].SetValue(employee.Post)
	f.inputs[fieldSalary].SetValue(formatNumber(employee.Salary))
}

// Reset clears every field and returns to create mode.
func (f *Form) Reset() {
	f.target = nil
	for idx := range f.inputs {
		f.inputs[idx].Reset()
	}
}

// Validate applies the same required-fields rule as the server before anything is sent.
func (f Form) Validate() (models.EmployeeData, error) {
	values := make([]string, fieldCount)
	for idx, input := range f.inputs {
		values[idx] = strings.TrimSpace(input.Value())
		if values[idx] == "" {
			return models.EmployeeData{}, ErrFieldsRequired
		}
	}

	age, ageErr := strconv.ParseFloat(values[fieldAge], 64)
	salary, salaryErr := strconv.ParseFloat(values[fieldSalary], 64)
	if ageErr != nil || salaryErr != nil {
		return models.EmployeeData{}, ErrNotNumbers
	}

	if age == 0 || salary == 0 || math.IsNaN(age) || math.IsNaN(salary) {
		return models.EmployeeData{}, ErrFieldsRequired
	}

	if math.IsInf(age, 0) || math.IsInf(salary, 0) {
		return models.EmployeeData{}, ErrNotNumbers
	}

	return models.EmployeeData{
		Name:   values[fieldName],
		Age:    age,
		Post:   values[fieldPost],
		Salary: salary,
	}, nil
}

// Focus focuses the current field.
func (f *Form) Focus() tea.Cmd {
	return f.inputs[f.focused].Focus()
}

// Blur removes focus from every field.
func (f *Form) Blur() {
	for idx := range f.inputs {
		f.inputs[idx].Blur()
	}
}

// Move shifts focus by delta fields, wrapping around.
func (f *Form) Move(delta int) tea.Cmd {
	f.inputs[f.focused].Blur()
	f.focused = (f.focused + delta + fieldCount) % fieldCount

	return f.inputs[f.focused].Focus()
}

// Update forwards the message to the focused field.
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)

	return f, cmd
}

func (f Form) View(styles Styles) string {
	var sb strings.Builder

	title := "Add New Employee"
	if f.Mode() == ModeEdit {
		title = "Edit Employee"
	}
	sb.WriteString(styles.Header.Render(title))
	sb.WriteString("\n")

	for idx, input := range f.inputs {
		label := styles.Label.Render(fieldLabels[idx] + ":")
		if idx == f.focused && input.Focused() {
			label = styles.Selected.Render(fieldLabels[idx] + ":")
		}
		sb.WriteString(label + " " + input.View() + "\n")
	}

	if f.Mode() == ModeEdit {
		sb.WriteString(styles.Muted.Render("enter: Update Employee • esc: Cancel"))
	} else {
		sb.WriteString(styles.Muted.Render("enter: Add Employee • esc: back to list"))
	}

	return sb.String()
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

package ui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/UnknownOlympus/athena/internal/client"
	"github.com/UnknownOlympus/athena/internal/lib/logger/sl"
	"github.com/UnknownOlympus/athena/internal/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var johnDoe = models.Employee{ID: 1, Name: "John Doe", Age: 30, Post: "Software Engineer", Salary: 75000}

type fakeAPI struct {
	employees []models.Employee
	nextID    int
	err       error
	updated   []int
	deleted   []int
}

func newFakeAPI(employees ...models.Employee) *fakeAPI {
	return &fakeAPI{employees: employees, nextID: len(employees) + 1}
}

func (f *fakeAPI) ListEmployees(_ context.Context) ([]models.Employee, error) {
	if f.err != nil {
		return nil, f.err
	}

	return append([]models.Employee(nil), f.employees...), nil
}

func (f *fakeAPI) CreateEmployee(_ context.Context, data models.EmployeeData) (models.Employee, error) {
	if f.err != nil {
		return models.Employee{}, f.err
	}

	created := data.WithID(f.nextID)
	f.nextID++
	f.employees = append(f.employees, created)

	return created, nil
}

func (f *fakeAPI) UpdateEmployee(_ context.Context, identifier int, data models.EmployeeData) (models.Employee, error) {
	if f.err != nil {
		return models.Employee{}, f.err
	}
	f.updated = append(f.updated, identifier)

	return data.WithID(identifier), nil
}

func (f *fakeAPI) DeleteEmployee(_ context.Context, identifier int) (models.Employee, error) {
	if f.err != nil {
		return models.Employee{}, f.err
	}
	f.deleted = append(f.deleted, identifier)

	return models.Employee{ID: identifier}, nil
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}

	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)

	return model, cmd
}

// run executes cmd and feeds its message back into the model.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)

	m, _ = step(t, m, cmd())

	return m
}

func loaded(t *testing.T, api *fakeAPI) Model {
	t.Helper()

	m := New(context.Background(), api, sl.Discard())

	return run(t, m, m.Init())
}

func fill(m *Model, name, age, post, salary string) {
	m.form.inputs[fieldName].SetValue(name)
	m.form.inputs[fieldAge].SetValue(age)
	m.form.inputs[fieldPost].SetValue(post)
	m.form.inputs[fieldSalary].SetValue(salary)
}

func TestModel_Load(t *testing.T) {
	t.Parallel()

	t.Run("shows loading until the list arrives", func(t *testing.T) {
		t.Parallel()

		m := New(context.Background(), newFakeAPI(johnDoe), sl.Discard())

		assert.Equal(t, "Loading...\n", m.View())
	})

	t.Run("renders the fetched records", func(t *testing.T) {
		t.Parallel()

		m := loaded(t, newFakeAPI(johnDoe))

		view := m.View()
		assert.Contains(t, view, "Employee Management System")
		assert.Contains(t, view, "John Doe | Age: 30 years | Position: Software Engineer | Salary: $75,000")
	})

	t.Run("empty list", func(t *testing.T) {
		t.Parallel()

		m := loaded(t, newFakeAPI())

		assert.Contains(t, m.View(), "No employees found")
	})

	t.Run("unreachable server", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI()
		api.err = errors.New("connection refused")

		m := loaded(t, api)

		assert.False(t, m.loading)
		assert.Equal(t, msgFetchFailed, m.err)
		assert.Contains(t, m.View(), msgFetchFailed)
	})

	t.Run("reload", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(johnDoe)
		m := loaded(t, api)
		api.employees = append(api.employees, models.Employee{ID: 2, Name: "Ann", Age: 25, Post: "Analyst", Salary: 1})

		m, cmd := step(t, m, key("r"))
		assert.True(t, m.loading)
		m = run(t, m, cmd)

		assert.Len(t, m.employees, 2)
	})
}

func TestModel_Create(t *testing.T) {
	t.Parallel()

	t.Run("appends the created record and clears the form", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(johnDoe)
		m := loaded(t, api)
		m, _ = step(t, m, key("tab"))
		fill(&m, "Ann", "25", "Analyst", "50000")

		m, cmd := step(t, m, key("enter"))
		m = run(t, m, cmd)

		require.Len(t, m.employees, 2)
		assert.Equal(t, models.Employee{ID: 2, Name: "Ann", Age: 25, Post: "Analyst", Salary: 50000}, m.employees[1])
		assert.Empty(t, m.form.inputs[fieldName].Value())
		assert.Empty(t, m.err)
	})

	t.Run("missing field is rejected locally", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(johnDoe)
		m := loaded(t, api)
		m, _ = step(t, m, key("tab"))
		fill(&m, "Ann", "25", "", "50000")

		m, cmd := step(t, m, key("enter"))

		assert.Nil(t, cmd)
		assert.Equal(t, "All fields are required", m.err)
		assert.Len(t, api.employees, 1)
	})

	t.Run("non-numeric age is rejected locally", func(t *testing.T) {
		t.Parallel()

		m := loaded(t, newFakeAPI())
		m, _ = step(t, m, key("tab"))
		fill(&m, "Ann", "old", "Analyst", "50000")

		m, cmd := step(t, m, key("enter"))

		assert.Nil(t, cmd)
		assert.Equal(t, ErrNotNumbers.Error(), m.err)
	})

	t.Run("nan age is rejected locally", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(johnDoe)
		m := loaded(t, api)
		m, _ = step(t, m, key("tab"))
		fill(&m, "Ann", "NaN", "Analyst", "5")

		m, cmd := step(t, m, key("enter"))

		assert.Nil(t, cmd)
		assert.Equal(t, ErrFieldsRequired.Error(), m.err)
		assert.Len(t, api.employees, 1)
	})

	t.Run("server error is shown and the list is kept", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(johnDoe)
		m := loaded(t, api)
		m, _ = step(t, m, key("tab"))
		fill(&m, "Ann", "25", "Analyst", "50000")
		api.err = &client.APIError{StatusCode: http.StatusInternalServerError, Message: "Failed to add user"}

		m, cmd := step(t, m, key("enter"))
		m = run(t, m, cmd)

		assert.Equal(t, "Failed to add user", m.err)
		assert.Len(t, m.employees, 1)
		assert.Equal(t, "Ann", m.form.inputs[fieldName].Value())
	})

	t.Run("transport error shows the generic message", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(johnDoe)
		m := loaded(t, api)
		m, _ = step(t, m, key("tab"))
		fill(&m, "Ann", "25", "Analyst", "50000")
		api.err = fmt.Errorf("failed to request /api/users: %w", errors.New("dial tcp: connection refused"))

		m, cmd := step(t, m, key("enter"))
		m = run(t, m, cmd)

		assert.Equal(t, msgSaveFailed, m.err)
		assert.NotContains(t, m.View(), "dial tcp")
	})
}

func TestModel_Edit(t *testing.T) {
	t.Parallel()

	t.Run("replaces the record in place", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(johnDoe)
		m := loaded(t, api)

		m, _ = step(t, m, key("e"))
		require.Equal(t, ModeEdit, m.form.Mode())
		assert.Equal(t, "75000", m.form.inputs[fieldSalary].Value())
		assert.Contains(t, m.View(), "Edit Employee")

		m.form.inputs[fieldSalary].SetValue("80000")
		m, cmd := step(t, m, key("enter"))
		m = run(t, m, cmd)

		assert.Equal(t, []int{1}, api.updated)
		assert.InDelta(t, 80000, m.employees[0].Salary, 0)
		assert.Equal(t, ModeCreate, m.form.Mode())
	})

	t.Run("escape cancels the edit", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(johnDoe)
		m := loaded(t, api)

		m, _ = step(t, m, key("e"))
		m, cmd := step(t, m, key("esc"))

		assert.Nil(t, cmd)
		assert.Equal(t, ModeCreate, m.form.Mode())
		assert.Empty(t, m.form.inputs[fieldName].Value())
		assert.Empty(t, api.updated)
	})
}

func TestModel_Delete(t *testing.T) {
	t.Parallel()

	ann := models.Employee{ID: 2, Name: "Ann", Age: 25, Post: "Analyst", Salary: 50000}

	t.Run("asks before deleting", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(johnDoe, ann)
		m := loaded(t, api)

		m, cmd := step(t, m, key("d"))
		assert.Nil(t, cmd)
		assert.Contains(t, m.View(), "Are you sure you want to delete John Doe?")

		m, cmd = step(t, m, key("y"))
		m = run(t, m, cmd)

		assert.Equal(t, []int{1}, api.deleted)
		assert.Equal(t, []models.Employee{ann}, m.employees)
	})

	t.Run("declining keeps the record", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(johnDoe)
		m := loaded(t, api)

		m, _ = step(t, m, key("d"))
		m, cmd := step(t, m, key("n"))

		assert.Nil(t, cmd)
		assert.Nil(t, m.pendingDelete)
		assert.Empty(t, api.deleted)
		assert.Len(t, m.employees, 1)
	})

	t.Run("deleting the edited record resets the form", func(t *testing.T) {
		t.Parallel()

		m := loaded(t, newFakeAPI(johnDoe))
		m.form.Edit(johnDoe)

		m, _ = step(t, m, employeeDeletedMsg{identifier: johnDoe.ID})

		assert.Equal(t, ModeCreate, m.form.Mode())
		assert.Empty(t, m.employees)
		assert.Equal(t, 0, m.cursor)
	})

	t.Run("failure is reported", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(johnDoe)
		m := loaded(t, api)
		api.err = &client.APIError{StatusCode: http.StatusNotFound, Message: "User not found"}

		m, _ = step(t, m, key("d"))
		m, cmd := step(t, m, key("y"))
		m = run(t, m, cmd)

		assert.Equal(t, "Failed to delete user: User not found", m.err)
		assert.Len(t, m.employees, 1)
	})

	t.Run("unreachable server during delete", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(johnDoe)
		m := loaded(t, api)
		api.err = errors.New("dial tcp: connection refused")

		m, _ = step(t, m, key("d"))
		m, cmd := step(t, m, key("y"))
		m = run(t, m, cmd)

		assert.Equal(t, msgDeleteFailed+msgNoResponse, m.err)
	})
}

func TestModel_Navigation(t *testing.T) {
	t.Parallel()

	m := loaded(t, newFakeAPI(johnDoe, models.Employee{ID: 2, Name: "Ann", Age: 25, Post: "Analyst", Salary: 1}))

	m, _ = step(t, m, key("j"))
	assert.Equal(t, 1, m.cursor)
	m, _ = step(t, m, key("j"))
	assert.Equal(t, 1, m.cursor)
	m, _ = step(t, m, key("k"))
	assert.Equal(t, 0, m.cursor)

	_, cmd := step(t, m, key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

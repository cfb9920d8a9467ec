package employees_test

import (
	"math"
	"testing"

	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/UnknownOlympus/athena/internal/services/employees"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPayload() employees.Payload {
	return employees.Payload{Name: "Ann", Age: float64(25), Post: "Analyst", Salary: float64(50000)}
}

func TestValidateEmployee_Success(t *testing.T) {
	t.Parallel()

	data, err := employees.ValidateEmployee(validPayload())

	require.NoError(t, err)
	assert.Equal(t, models.EmployeeData{Name: "Ann", Age: 25, Post: "Analyst", Salary: 50000}, data)
}

func TestValidateEmployee_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(p *employees.Payload)
		message string
	}{
		{"missing post", func(p *employees.Payload) { p.Post = nil }, employees.MsgFieldsRequired},
		{"empty name", func(p *employees.Payload) { p.Name = "" }, employees.MsgFieldsRequired},
		{"zero age", func(p *employees.Payload) { p.Age = float64(0) }, employees.MsgFieldsRequired},
		{"nan salary", func(p *employees.Payload) { p.Salary = math.NaN() }, employees.MsgFieldsRequired},
		{"false name", func(p *employees.Payload) { p.Name = false }, employees.MsgFieldsRequired},
		{"empty age string", func(p *employees.Payload) { p.Age = "" }, employees.MsgFieldsRequired},
		{"non-numeric age", func(p *employees.Payload) { p.Age = "thirty" }, employees.MsgNumbersOnly},
		{"numeric string salary", func(p *employees.Payload) { p.Salary = "50000" }, employees.MsgNumbersOnly},
		{"object age", func(p *employees.Payload) { p.Age = map[string]any{"v": 1.0} }, employees.MsgNumbersOnly},
		{"numeric name", func(p *employees.Payload) { p.Name = float64(7) }, employees.MsgStringsOnly},
		{"list post", func(p *employees.Payload) { p.Post = []any{"a"} }, employees.MsgStringsOnly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			payload := validPayload()
			tt.mutate(&payload)

			_, err := employees.ValidateEmployee(payload)

			var validationErr *employees.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.message, validationErr.Message)
		})
	}
}

func TestValidateEmployee_RequiredCheckComesFirst(t *testing.T) {
	t.Parallel()

	// a wrong type on one field must not hide a missing field
	_, err := employees.ValidateEmployee(employees.Payload{Name: "Ann", Age: "x", Post: nil, Salary: float64(1)})

	require.EqualError(t, err, employees.MsgFieldsRequired)
}

package ui

import (
	"testing"

	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForm_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		values  [fieldCount]string
		want    models.EmployeeData
		wantErr error
	}{
		{
			name:   "valid",
			values: [fieldCount]string{" Ann ", "25", "Analyst", "50000.5"},
			want:   models.EmployeeData{Name: "Ann", Age: 25, Post: "Analyst", Salary: 50000.5},
		},
		{name: "blank name", values: [fieldCount]string{"  ", "25", "Analyst", "1"}, wantErr: ErrFieldsRequired},
		{name: "zero age", values: [fieldCount]string{"Ann", "0", "Analyst", "1"}, wantErr: ErrFieldsRequired},
		{name: "text salary", values: [fieldCount]string{"Ann", "25", "Analyst", "lots"}, wantErr: ErrNotNumbers},
		{name: "nan age", values: [fieldCount]string{"Ann", "NaN", "Analyst", "5"}, wantErr: ErrFieldsRequired},
		{name: "nan salary", values: [fieldCount]string{"Ann", "25", "Analyst", "nan"}, wantErr: ErrFieldsRequired},
		{name: "infinite salary", values: [fieldCount]string{"Ann", "25", "Analyst", "Inf"}, wantErr: ErrNotNumbers},
		{name: "negative infinite age", values: [fieldCount]string{"Ann", "-Infinity", "Analyst", "5"}, wantErr: ErrNotNumbers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			form := NewForm()
			for idx, value := range tt.values {
				form.inputs[idx].SetValue(value)
			}

			data, err := form.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, data)
		})
	}
}

func TestForm_EditAndReset(t *testing.T) {
	t.Parallel()

	form := NewForm()
	form.Edit(johnDoe)

	target, ok := form.Target()
	require.True(t, ok)
	assert.Equal(t, johnDoe, target)
	assert.Equal(t, "30", form.inputs[fieldAge].Value())

	form.Reset()

	_, ok = form.Target()
	assert.False(t, ok)
	assert.Equal(t, ModeCreate, form.Mode())
	for _, input := range form.inputs {
		assert.Empty(t, input.Value())
	}
}

func TestForm_Move(t *testing.T) {
	t.Parallel()

	form := NewForm()
	form.Focus()

	form.Move(-1)
	assert.Equal(t, fieldSalary, form.focused)
	assert.True(t, form.inputs[fieldSalary].Focused())
	assert.False(t, form.inputs[fieldName].Focused())

	form.Move(1)
	assert.Equal(t, fieldName, form.focused)
}

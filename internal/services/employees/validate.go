package employees

import (
	"math"

	"github.com/UnknownOlympus/athena/internal/models"
)

const (
	MsgFieldsRequired = "All fields (name, age, post, salary) are required"
	MsgNumbersOnly    = "Age and salary must be numbers"
	MsgStringsOnly    = "Name and post must be strings"
)

// Payload is a decoded request body. Fields stay untyped until validation
// so that a wrong JSON type is reported instead of failing the decode.
type Payload struct {
	Name   any `json:"name"`
	Age    any `json:"age"`
	Post   any `json:"post"`
	Salary any `json:"salary"`
}

// ValidationError describes a payload that cannot be stored. Message is safe to return to clients.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateEmployee checks that every field is present and non-empty, that age and salary
// are numbers and that name and post are strings, in that order.
func ValidateEmployee(payload Payload) (models.EmployeeData, error) {
	if !present(payload.Name) || !present(payload.Age) || !present(payload.Post) || !present(payload.Salary) {
		return models.EmployeeData{}, &ValidationError{Message: MsgFieldsRequired}
	}

	age, isAgeNumber := payload.Age.(float64)
	salary, isSalaryNumber := payload.Salary.(float64)
	if !isAgeNumber || !isSalaryNumber {
		return models.EmployeeData{}, &ValidationError{Message: MsgNumbersOnly}
	}

	name, isNameString := payload.Name.(string)
	post, isPostString := payload.Post.(string)
	if !isNameString || !isPostString {
		return models.EmployeeData{}, &ValidationError{Message: MsgStringsOnly}
	}

	return models.EmployeeData{Name: name, Age: age, Post: post, Salary: salary}, nil
}

// present reports whether a decoded JSON value counts as filled in:
// null, false, "", 0 and NaN do not.
func present(value any) bool {
	switch val := value.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case float64:
		return val != 0 && !math.IsNaN(val)
	default:
		return true
	}
}

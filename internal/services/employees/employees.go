package employees

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/athena/internal/lib/logger/sl"
	"github.com/UnknownOlympus/athena/internal/metrics"
	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/UnknownOlympus/athena/internal/repository"
)

type Staff struct {
	log     *slog.Logger
	repo    repository.EmployeeRepoIface
	metrics *metrics.Metrics
}

func NewStaff(log *slog.Logger, repo repository.EmployeeRepoIface, metrics *metrics.Metrics) *Staff {
	return &Staff{log: log, repo: repo, metrics: metrics}
}

func (s *Staff) initLogger(opn string) *slog.Logger {
	return s.log.With(
		slog.String("op", opn),
		slog.String("division", "employee"),
	)
}

// List returns every employee in storage order.
func (s *Staff) List(ctx context.Context) ([]models.Employee, error) {
	const opn = "Employee.List"
	log := s.initLogger(opn)

	employees, err := s.repo.ListEmployees(ctx)
	if err != nil {
		s.record("list", err)
		log.ErrorContext(ctx, "Failed to fetch employees", sl.Err(err))
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	s.record("list", nil)
	log.DebugContext(ctx, "Fetched employees", "count", len(employees))

	return employees, nil
}

// Create validates the payload and stores a new employee.
func (s *Staff) Create(ctx context.Context, payload Payload) (models.Employee, error) {
	const opn = "Employee.Create"
	log := s.initLogger(opn)

	data, err := ValidateEmployee(payload)
	if err != nil {
		s.record("create", err)
		log.InfoContext(ctx, "Rejected employee payload", sl.Err(err))
		return models.Employee{}, err
	}

	employee, err := s.repo.SaveEmployee(ctx, data)
	if err != nil {
		s.record("create", err)
		log.ErrorContext(ctx, "Failed to save employee", "name", data.Name, sl.Err(err))
		return models.Employee{}, fmt.Errorf("failed to save new employee %s: %w", data.Name, err)
	}

	s.record("create", nil)
	log.InfoContext(ctx, "Employee added", "id", employee.ID, "name", employee.Name)

	return employee, nil
}

// Update validates the payload and replaces every field of the employee with the given identifier.
// Validation happens first, so an invalid payload is reported even for an unknown identifier.
func (s *Staff) Update(ctx context.Context, identifier int, payload Payload) (models.Employee, error) {
	const opn = "Employee.Update"
	log := s.initLogger(opn).With(slog.Int("id", identifier))

	data, err := ValidateEmployee(payload)
	if err != nil {
		s.record("update", err)
		log.InfoContext(ctx, "Rejected employee payload", sl.Err(err))
		return models.Employee{}, err
	}

	employee, err := s.repo.UpdateEmployee(ctx, identifier, data)
	if err != nil {
		s.record("update", err)
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			log.InfoContext(ctx, "Employee not found")
			return models.Employee{}, err
		}
		log.ErrorContext(ctx, "Failed to update employee", sl.Err(err))
		return models.Employee{}, fmt.Errorf("failed to update employee: '%s': %w", data.Name, err)
	}

	s.record("update", nil)
	log.InfoContext(ctx, "Employee updated", "name", employee.Name)

	return employee, nil
}

// Delete removes the employee and returns its last representation.
func (s *Staff) Delete(ctx context.Context, identifier int) (models.Employee, error) {
	const opn = "Employee.Delete"
	log := s.initLogger(opn).With(slog.Int("id", identifier))

	employee, err := s.repo.DeleteEmployee(ctx, identifier)
	if err != nil {
		s.record("delete", err)
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			log.InfoContext(ctx, "Employee not found")
			return models.Employee{}, err
		}
		log.ErrorContext(ctx, "Failed to delete employee", sl.Err(err))
		return models.Employee{}, fmt.Errorf("failed to delete employee: %w", err)
	}

	s.record("delete", nil)
	log.InfoContext(ctx, "Employee deleted", "name", employee.Name)

	return employee, nil
}

func (s *Staff) record(operation string, err error) {
	if s.metrics == nil {
		return
	}

	var validationErr *ValidationError
	status := "success"
	switch {
	case err == nil:
	case errors.As(err, &validationErr):
		status = "invalid"
	case errors.Is(err, repository.ErrEmployeeNotFound):
		status = "not_found"
	default:
		status = "failure"
	}

	s.metrics.EmployeeOperations.WithLabelValues(operation, status).Inc()
}

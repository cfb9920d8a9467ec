package repository

import (
	"context"
	"errors"

	"github.com/UnknownOlympus/athena/internal/metrics"
	"github.com/UnknownOlympus/athena/internal/models"
)

// ErrEmployeeNotFound is returned when no record matches the requested identifier.
var ErrEmployeeNotFound = errors.New("employee not found")

// EmployeeRepoIface represents the interface for interacting with employee data in the repository.
type EmployeeRepoIface interface {
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	SaveEmployee(ctx context.Context, data models.EmployeeData) (models.Employee, error)
	UpdateEmployee(ctx context.Context, identifier int, data models.EmployeeData) (models.Employee, error)
	DeleteEmployee(ctx context.Context, identifier int) (models.Employee, error)
	Ping(ctx context.Context) error
}

// Repository is the PostgreSQL backed employee store.
type Repository struct {
	db      Database
	metrics *metrics.Metrics
}

func NewEmployeeRepository(db Database, metrics *metrics.Metrics) EmployeeRepoIface {
	return &Repository{db: db, metrics: metrics}
}

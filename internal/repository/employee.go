package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/jackc/pgx/v5"
)

func (r *Repository) observe(queryType string, startTime time.Time) {
	if r.metrics == nil {
		return
	}
	r.metrics.DBQueryDuration.WithLabelValues(queryType).Observe(time.Since(startTime).Seconds())
}

// ListEmployees returns all employees ordered by identifier, which is their insertion order.
func (r *Repository) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	defer r.observe("list_employees", time.Now())

	query := `SELECT id, name, age, post, salary FROM employees ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	result := []models.Employee{}
	for rows.Next() {
		var employee models.Employee
		if err = rows.Scan(
			&employee.ID, &employee.Name, &employee.Age, &employee.Post, &employee.Salary); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		result = append(result, employee)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return result, nil
}

// SaveEmployee inserts a new employee and returns it with the identifier assigned by the database.
func (r *Repository) SaveEmployee(ctx context.Context, data models.EmployeeData) (models.Employee, error) {
	defer r.observe("save_employee", time.Now())

	query := `
		INSERT INTO employees (name, age, post, salary)
		VALUES ($1, $2, $3, $4)
		RETURNING id;
	`

	var identifier int
	if err := r.db.QueryRow(ctx, query, data.Name, data.Age, data.Post, data.Salary).Scan(&identifier); err != nil {
		return models.Employee{}, fmt.Errorf("failed to save employee: %w", err)
	}

	return data.WithID(identifier), nil
}

// UpdateEmployee replaces an employee's information in the database.
func (r *Repository) UpdateEmployee(
	ctx context.Context,
	identifier int,
	data models.EmployeeData,
) (models.Employee, error) {
	defer r.observe("update_employee", time.Now())

	query := `
		UPDATE employees
		SET name = $2, age = $3, post = $4, salary = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1;
	`

	tag, err := r.db.Exec(ctx, query, identifier, data.Name, data.Age, data.Post, data.Salary)
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to update employee data: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return models.Employee{}, ErrEmployeeNotFound
	}

	return data.WithID(identifier), nil
}

// DeleteEmployee removes an employee and returns the removed row.
func (r *Repository) DeleteEmployee(ctx context.Context, identifier int) (models.Employee, error) {
	defer r.observe("delete_employee", time.Now())

	query := `DELETE FROM employees WHERE id=$1 RETURNING id, name, age, post, salary`

	var result models.Employee
	err := r.db.QueryRow(ctx, query, identifier).Scan(
		&result.ID, &result.Name, &result.Age, &result.Post, &result.Salary)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Employee{}, ErrEmployeeNotFound
		}
		return models.Employee{}, fmt.Errorf("failed to delete employee: %w", err)
	}

	return result, nil
}

// Ping checks the database connection.
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

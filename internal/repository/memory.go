package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/UnknownOlympus/athena/internal/models"
)

// MemoryRepository keeps employee records in process memory, in insertion order.
// The next identifier is part of the guarded state and is never reused.
type MemoryRepository struct {
	mu        sync.RWMutex
	employees []models.Employee
	nextID    int
}

// DefaultSeed returns the record present at startup.
func DefaultSeed() []models.Employee {
	return []models.Employee{
		{ID: 1, Name: "John Doe", Age: 30, Post: "Software Engineer", Salary: 75000},
	}
}

// NewMemoryRepository creates an in-memory store holding a copy of seed.
// Identifiers assigned later start right after the highest seed identifier.
func NewMemoryRepository(seed ...models.Employee) *MemoryRepository {
	nextID := 1
	for _, employee := range seed {
		if employee.ID >= nextID {
			nextID = employee.ID + 1
		}
	}

	return &MemoryRepository{
		employees: slices.Clone(seed),
		nextID:    nextID,
	}
}

// ListEmployees returns a snapshot of all records.
func (m *MemoryRepository) ListEmployees(_ context.Context) ([]models.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]models.Employee, len(m.employees))
	copy(result, m.employees)

	return result, nil
}

// SaveEmployee appends a record under the next identifier.
func (m *MemoryRepository) SaveEmployee(_ context.Context, data models.EmployeeData) (models.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	employee := data.WithID(m.nextID)
	m.nextID++
	m.employees = append(m.employees, employee)

	return employee, nil
}

// UpdateEmployee replaces every business field of the record, keeping its identifier and position.
func (m *MemoryRepository) UpdateEmployee(
	_ context.Context,
	identifier int,
	data models.EmployeeData,
) (models.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(identifier)
	if idx == -1 {
		return models.Employee{}, ErrEmployeeNotFound
	}

	m.employees[idx] = data.WithID(identifier)

	return m.employees[idx], nil
}

// DeleteEmployee removes the record and returns it as it was.
func (m *MemoryRepository) DeleteEmployee(_ context.Context, identifier int) (models.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(identifier)
	if idx == -1 {
		return models.Employee{}, ErrEmployeeNotFound
	}

	deleted := m.employees[idx]
	m.employees = slices.Delete(m.employees, idx, idx+1)

	return deleted, nil
}

// Ping always succeeds, the store lives in the process.
func (m *MemoryRepository) Ping(_ context.Context) error {
	return nil
}

// indexOf must be called with the lock held.
func (m *MemoryRepository) indexOf(identifier int) int {
	return slices.IndexFunc(m.employees, func(e models.Employee) bool {
		return e.ID == identifier
	})
}

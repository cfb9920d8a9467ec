package models

// Employee represents an employee record as stored and served by the API.
type Employee struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Age    float64 `json:"age"`
	Post   string  `json:"post"` // job title
	Salary float64 `json:"salary"`
}

// EmployeeData holds the business fields of an employee, without the identifier.
type EmployeeData struct {
	Name   string  `json:"name"`
	Age    float64 `json:"age"`
	Post   string  `json:"post"`
	Salary float64 `json:"salary"`
}

// Data returns the business fields of the employee.
func (e Employee) Data() EmployeeData {
	return EmployeeData{Name: e.Name, Age: e.Age, Post: e.Post, Salary: e.Salary}
}

// WithID builds an employee record from the data and the given identifier.
func (d EmployeeData) WithID(identifier int) Employee {
	return Employee{ID: identifier, Name: d.Name, Age: d.Age, Post: d.Post, Salary: d.Salary}
}

package unit

// Unit is an organisational division of the office. The list is static and
// seeded by migration.
type Unit struct {
	ID            string
	Name          string
	EmployeeCount int
}

type UnitResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	EmployeeCount int    `json:"employee_count"`
}

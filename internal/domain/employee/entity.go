package employee

import "time"

type EmploymentStatus string

const (
	EmploymentStatusASN    EmploymentStatus = "ASN"
	EmploymentStatusNonASN EmploymentStatus = "NON_ASN"
)

func (s EmploymentStatus) IsValid() bool {
	return s == EmploymentStatusASN || s == EmploymentStatusNonASN
}

type Employee struct {
	ID               string
	Name             string
	NIP              string
	Position         string
	UnitID           string
	EmploymentStatus EmploymentStatus
	Active           bool
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Join
	UnitName string
}

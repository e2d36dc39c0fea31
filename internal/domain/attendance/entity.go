package attendance

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusPresent        Status = "HADIR"
	StatusLeave          Status = "IZIN"
	StatusSick           Status = "SAKIT"
	StatusOfficialTravel Status = "DL"
	StatusAbsent         Status = "TK"
)

// Statuses lists every status in display order.
var Statuses = []Status{
	StatusPresent,
	StatusLeave,
	StatusSick,
	StatusOfficialTravel,
	StatusAbsent,
}

// Priority ranks statuses for same-day conflicts: the higher rank wins.
// Unknown statuses rank 0.
func (s Status) Priority() int {
	switch s {
	case StatusAbsent:
		return 5
	case StatusSick:
		return 4
	case StatusLeave:
		return 3
	case StatusOfficialTravel:
		return 2
	case StatusPresent:
		return 1
	default:
		return 0
	}
}

func (s Status) IsValid() bool {
	return s.Priority() > 0
}

// Label returns the Indonesian display name.
func (s Status) Label() string {
	switch s {
	case StatusPresent:
		return "Hadir"
	case StatusLeave:
		return "Izin"
	case StatusSick:
		return "Sakit"
	case StatusOfficialTravel:
		return "Dinas Luar"
	case StatusAbsent:
		return "Tanpa Keterangan"
	default:
		return string(s)
	}
}

// ParseStatus accepts a status code in any letter case.
func ParseStatus(v string) (Status, error) {
	s := Status(strings.ToUpper(strings.TrimSpace(v)))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, v)
	}
	return s, nil
}

type Session struct {
	ID          string
	Date        time.Time
	StartTime   string
	EndTime     string
	Description *string
	CreatedBy   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Join
	CreatorName *string
}

type Entry struct {
	ID         string
	SessionID  string
	EmployeeID string
	Status     Status
	Note       *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// EntryRow is an entry joined with its session, employee and unit.
type EntryRow struct {
	EntryID     string
	SessionID   string
	EmployeeID  string
	Date        time.Time
	StartTime   string
	EndTime     string
	Description *string
	Name        string
	NIP         string
	UnitID      string
	UnitName    string
	Status      Status
	Note        *string
	CreatorName *string
	CreatedAt   time.Time
}

// SessionSummary is a session with the number of entries per status.
type SessionSummary struct {
	Session
	Counts map[Status]int
}

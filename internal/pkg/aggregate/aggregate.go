// Package aggregate turns flat attendance entries into per-employee,
// per-unit and overall status tallies.
//
// An employee counts at most once per calendar day. When several entries
// exist for the same employee and date, the status with the highest
// attendance.Status.Priority wins and the first such entry supplies the
// display fields.
package aggregate

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/pupr-presensi/presensi-backend-go/internal/domain/attendance"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ErrUnknownStatus reports a stored entry whose status is not one of the
// known codes. It points at bad data, not at a bad request.
var ErrUnknownStatus = errors.New("unknown attendance status in stored entry")

// Entry is one recorded status, already joined with employee and unit data.
// Date is a calendar date in YYYY-MM-DD form.
type Entry struct {
	EmployeeID string
	Name       string
	NIP        string
	Unit       string
	Date       string
	Status     attendance.Status
}

// Resolved is the single effective status of one employee on one date.
type Resolved struct {
	EmployeeID string
	Name       string
	NIP        string
	Unit       string
	Date       string
	Status     attendance.Status
}

// Member describes an employee that should appear in the rollup even
// without any entry in the range.
type Member struct {
	EmployeeID string
	Name       string
	NIP        string
	Unit       string
}

type Counts struct {
	Present        int `json:"hadir"`
	Leave          int `json:"izin"`
	Sick           int `json:"sakit"`
	OfficialTravel int `json:"dl"`
	Absent         int `json:"tk"`
}

func (c *Counts) Add(s attendance.Status) {
	switch s {
	case attendance.StatusPresent:
		c.Present++
	case attendance.StatusLeave:
		c.Leave++
	case attendance.StatusSick:
		c.Sick++
	case attendance.StatusOfficialTravel:
		c.OfficialTravel++
	case attendance.StatusAbsent:
		c.Absent++
	}
}

func (c Counts) Get(s attendance.Status) int {
	switch s {
	case attendance.StatusPresent:
		return c.Present
	case attendance.StatusLeave:
		return c.Leave
	case attendance.StatusSick:
		return c.Sick
	case attendance.StatusOfficialTravel:
		return c.OfficialTravel
	case attendance.StatusAbsent:
		return c.Absent
	default:
		return 0
	}
}

func (c Counts) Total() int {
	return c.Present + c.Leave + c.Sick + c.OfficialTravel + c.Absent
}

type EmployeeRow struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	NIP        string `json:"nip"`
	Unit       string `json:"unit"`
	Counts     Counts `json:"counts"`
	TotalDays  int    `json:"total_days"`
	Percentage int    `json:"percentage"`
}

type UnitRow struct {
	Unit   string `json:"unit"`
	Counts Counts `json:"counts"`
}

type Overall struct {
	Total       int    `json:"total"`
	Counts      Counts `json:"counts"`
	Percentages Counts `json:"percentages"`
}

type Summary struct {
	TotalDays  int           `json:"total_days"`
	Overall    Overall       `json:"overall"`
	ByUnit     []UnitRow     `json:"by_unit"`
	ByEmployee []EmployeeRow `json:"by_employee"`
}

type dayKey struct {
	employeeID string
	date       string
}

// Resolve collapses entries to one status per (employee, date), in order of
// first appearance. An entry with an unknown status fails the whole call.
func Resolve(entries []Entry) ([]Resolved, error) {
	index := make(map[dayKey]int, len(entries))
	resolved := make([]Resolved, 0, len(entries))

	for _, e := range entries {
		if !e.Status.IsValid() {
			return nil, fmt.Errorf("%w: %q for employee %s on %s", ErrUnknownStatus, e.Status, e.EmployeeID, e.Date)
		}

		k := dayKey{employeeID: e.EmployeeID, date: e.Date}
		i, seen := index[k]
		if !seen {
			index[k] = len(resolved)
			resolved = append(resolved, Resolved(e))
			continue
		}
		if e.Status.Priority() > resolved[i].Status.Priority() {
			resolved[i].Status = e.Status
			resolved[i].Unit = e.Unit
		}
	}

	return resolved, nil
}

// DistinctDays counts the calendar dates present in entries.
func DistinctDays(entries []Entry) int {
	days := make(map[string]struct{})
	for _, e := range entries {
		days[e.Date] = struct{}{}
	}
	return len(days)
}

// tally groups resolved tuples by key, keeping first-appearance order.
func tally[K comparable](resolved []Resolved, key func(Resolved) K) ([]K, map[K]*Counts) {
	var order []K
	groups := make(map[K]*Counts)
	for _, r := range resolved {
		k := key(r)
		c, ok := groups[k]
		if !ok {
			c = &Counts{}
			groups[k] = c
			order = append(order, k)
		}
		c.Add(r.Status)
	}
	return order, groups
}

// Percentage returns round(part/whole*100) bounded to [0, 100], or 0 when
// whole is not positive.
func Percentage(part, whole int) int {
	if whole <= 0 || part <= 0 {
		return 0
	}
	p := int(math.Round(float64(part) / float64(whole) * 100))
	if p > 100 {
		return 100
	}
	return p
}

// ByEmployee builds one row per employee sorted by attendance percentage,
// highest first. Ties keep first-appearance order. Members of base that have
// no resolved tuple are appended with zero counts before sorting.
func ByEmployee(resolved []Resolved, totalDays int, base []Member) []EmployeeRow {
	order, groups := tally(resolved, func(r Resolved) string { return r.EmployeeID })

	info := make(map[string]Resolved, len(order))
	for _, r := range resolved {
		if _, ok := info[r.EmployeeID]; !ok {
			info[r.EmployeeID] = r
		}
	}

	rows := make([]EmployeeRow, 0, len(order)+len(base))
	for _, id := range order {
		c := *groups[id]
		r := info[id]
		rows = append(rows, EmployeeRow{
			EmployeeID: id,
			Name:       r.Name,
			NIP:        r.NIP,
			Unit:       r.Unit,
			Counts:     c,
			TotalDays:  totalDays,
			Percentage: Percentage(c.Present, totalDays),
		})
	}

	for _, m := range base {
		if _, ok := groups[m.EmployeeID]; ok {
			continue
		}
		groups[m.EmployeeID] = &Counts{}
		rows = append(rows, EmployeeRow{
			EmployeeID: m.EmployeeID,
			Name:       m.Name,
			NIP:        m.NIP,
			Unit:       m.Unit,
			TotalDays:  totalDays,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Percentage > rows[j].Percentage
	})
	return rows
}

// ByUnit counts statuses per unit, sorted by unit name with Indonesian collation.
func ByUnit(resolved []Resolved) []UnitRow {
	order, groups := tally(resolved, func(r Resolved) string { return r.Unit })

	rows := make([]UnitRow, 0, len(order))
	for _, unit := range order {
		rows = append(rows, UnitRow{Unit: unit, Counts: *groups[unit]})
	}

	c := collate.New(language.Indonesian)
	sort.SliceStable(rows, func(i, j int) bool {
		return c.CompareString(rows[i].Unit, rows[j].Unit) < 0
	})
	return rows
}

// OverallDistribution counts statuses across all tuples. Percentages use the tuple count
// as denominator, or 1 when there are none.
func OverallDistribution(resolved []Resolved) Overall {
	_, groups := tally(resolved, func(Resolved) struct{} { return struct{}{} })

	var counts Counts
	if c, ok := groups[struct{}{}]; ok {
		counts = *c
	}

	total := counts.Total()
	denominator := total
	if denominator == 0 {
		denominator = 1
	}

	return Overall{
		Total:  total,
		Counts: counts,
		Percentages: Counts{
			Present:        Percentage(counts.Present, denominator),
			Leave:          Percentage(counts.Leave, denominator),
			Sick:           Percentage(counts.Sick, denominator),
			OfficialTravel: Percentage(counts.OfficialTravel, denominator),
			Absent:         Percentage(counts.Absent, denominator),
		},
	}
}

// Summarize runs every aggregation over entries. totalDays is the number of
// distinct dates in the queried range, which may exceed DistinctDays(entries)
// when entries were filtered after the range query.
func Summarize(entries []Entry, totalDays int, base []Member) (Summary, error) {
	resolved, err := Resolve(entries)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		TotalDays:  totalDays,
		Overall:    OverallDistribution(resolved),
		ByUnit:     ByUnit(resolved),
		ByEmployee: ByEmployee(resolved, totalDays, base),
	}, nil
}

package aggregate

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/pupr-presensi/presensi-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(emp, unit, date string, status attendance.Status) Entry {
	return Entry{
		EmployeeID: emp,
		Name:       "Pegawai " + emp,
		NIP:        "NIP-" + emp,
		Unit:       unit,
		Date:       date,
		Status:     status,
	}
}

func TestSummarize_PriorityAndPercentage(t *testing.T) {
	entries := []Entry{
		entry("E1", "Sekretariat", "2024-01-01", attendance.StatusPresent),
		entry("E1", "Sekretariat", "2024-01-01", attendance.StatusSick),
		entry("E1", "Sekretariat", "2024-01-02", attendance.StatusPresent),
	}

	summary, err := Summarize(entries, DistinctDays(entries), nil)
	require.NoError(t, err)

	require.Len(t, summary.ByEmployee, 1)
	row := summary.ByEmployee[0]
	assert.Equal(t, "E1", row.EmployeeID)
	assert.Equal(t, 1, row.Counts.Present)
	assert.Equal(t, 1, row.Counts.Sick)
	assert.Equal(t, 2, row.TotalDays)
	assert.Equal(t, 50, row.Percentage)

	assert.Equal(t, 2, summary.Overall.Total)
	assert.Equal(t, 50, summary.Overall.Percentages.Present)
	assert.Equal(t, 50, summary.Overall.Percentages.Sick)
}

func TestResolve_PriorityOrder(t *testing.T) {
	cases := []struct {
		a, b attendance.Status
		want attendance.Status
	}{
		{attendance.StatusPresent, attendance.StatusSick, attendance.StatusSick},
		{attendance.StatusSick, attendance.StatusPresent, attendance.StatusSick},
		{attendance.StatusOfficialTravel, attendance.StatusPresent, attendance.StatusOfficialTravel},
		{attendance.StatusLeave, attendance.StatusOfficialTravel, attendance.StatusLeave},
		{attendance.StatusSick, attendance.StatusLeave, attendance.StatusSick},
		{attendance.StatusAbsent, attendance.StatusSick, attendance.StatusAbsent},
		{attendance.StatusPresent, attendance.StatusAbsent, attendance.StatusAbsent},
	}

	for _, c := range cases {
		t.Run(fmt.Sprintf("%s_%s", c.a, c.b), func(t *testing.T) {
			resolved, err := Resolve([]Entry{
				entry("E1", "Sekretariat", "2024-01-01", c.a),
				entry("E1", "Sekretariat", "2024-01-01", c.b),
			})
			require.NoError(t, err)
			require.Len(t, resolved, 1)
			assert.Equal(t, c.want, resolved[0].Status)
		})
	}
}

func TestResolve_KeepsFirstAppearanceOrder(t *testing.T) {
	resolved, err := Resolve([]Entry{
		entry("E2", "Bid. SDA", "2024-01-02", attendance.StatusPresent),
		entry("E1", "Bid. SDA", "2024-01-01", attendance.StatusPresent),
		entry("E2", "Bid. SDA", "2024-01-02", attendance.StatusAbsent),
		entry("E2", "Bid. SDA", "2024-01-01", attendance.StatusLeave),
	})
	require.NoError(t, err)
	require.Len(t, resolved, 3)

	assert.Equal(t, "E2", resolved[0].EmployeeID)
	assert.Equal(t, "2024-01-02", resolved[0].Date)
	assert.Equal(t, attendance.StatusAbsent, resolved[0].Status)
	assert.Equal(t, "E1", resolved[1].EmployeeID)
	assert.Equal(t, "E2", resolved[2].EmployeeID)
	assert.Equal(t, "2024-01-01", resolved[2].Date)
}

func TestResolve_UnknownStatus(t *testing.T) {
	_, err := Resolve([]Entry{
		entry("E1", "Sekretariat", "2024-01-01", attendance.StatusPresent),
		entry("E1", "Sekretariat", "2024-01-02", attendance.Status("ALPHA")),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownStatus)

	_, err = Summarize([]Entry{entry("E1", "Sekretariat", "2024-01-01", "")}, 1, nil)
	assert.ErrorIs(t, err, ErrUnknownStatus)
	assert.NotErrorIs(t, err, attendance.ErrInvalidStatus)
}

func TestSummarize_Empty(t *testing.T) {
	summary, err := Summarize(nil, 0, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, summary.TotalDays)
	assert.Equal(t, 0, summary.Overall.Total)
	assert.Equal(t, Counts{}, summary.Overall.Counts)
	assert.Equal(t, Counts{}, summary.Overall.Percentages)
	assert.Empty(t, summary.ByUnit)
	assert.Empty(t, summary.ByEmployee)
}

func TestByEmployee_ZeroDays(t *testing.T) {
	resolved, err := Resolve([]Entry{entry("E1", "Sekretariat", "2024-01-01", attendance.StatusPresent)})
	require.NoError(t, err)

	rows := ByEmployee(resolved, 0, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, 0, rows[0].Percentage)
}

func TestByEmployee_UsesRangeDaysNotOwnDays(t *testing.T) {
	entries := []Entry{
		entry("E1", "Sekretariat", "2024-01-01", attendance.StatusPresent),
		entry("E2", "Sekretariat", "2024-01-01", attendance.StatusPresent),
		entry("E2", "Sekretariat", "2024-01-02", attendance.StatusPresent),
		entry("E2", "Sekretariat", "2024-01-03", attendance.StatusPresent),
		entry("E2", "Sekretariat", "2024-01-04", attendance.StatusPresent),
	}
	summary, err := Summarize(entries, DistinctDays(entries), nil)
	require.NoError(t, err)

	require.Len(t, summary.ByEmployee, 2)
	assert.Equal(t, "E2", summary.ByEmployee[0].EmployeeID)
	assert.Equal(t, 100, summary.ByEmployee[0].Percentage)
	assert.Equal(t, "E1", summary.ByEmployee[1].EmployeeID)
	assert.Equal(t, 25, summary.ByEmployee[1].Percentage)
}

func TestByEmployee_StableOnTies(t *testing.T) {
	entries := []Entry{
		entry("E3", "Sekretariat", "2024-01-01", attendance.StatusSick),
		entry("E1", "Sekretariat", "2024-01-01", attendance.StatusPresent),
		entry("E2", "Sekretariat", "2024-01-01", attendance.StatusLeave),
		entry("E4", "Sekretariat", "2024-01-01", attendance.StatusPresent),
	}
	summary, err := Summarize(entries, 1, nil)
	require.NoError(t, err)

	var ids []string
	for _, r := range summary.ByEmployee {
		ids = append(ids, r.EmployeeID)
	}
	assert.Equal(t, []string{"E1", "E4", "E3", "E2"}, ids)
}

func TestByEmployee_BasePopulation(t *testing.T) {
	entries := []Entry{
		entry("E1", "Sekretariat", "2024-01-01", attendance.StatusPresent),
	}
	base := []Member{
		{EmployeeID: "E1", Name: "Pegawai E1", Unit: "Sekretariat"},
		{EmployeeID: "E9", Name: "Pegawai E9", NIP: "NIP-E9", Unit: "Sekretariat"},
	}

	withBase, err := Summarize(entries, 1, base)
	require.NoError(t, err)
	require.Len(t, withBase.ByEmployee, 2)
	assert.Equal(t, "E1", withBase.ByEmployee[0].EmployeeID)
	assert.Equal(t, "E9", withBase.ByEmployee[1].EmployeeID)
	assert.Equal(t, Counts{}, withBase.ByEmployee[1].Counts)
	assert.Equal(t, 0, withBase.ByEmployee[1].Percentage)
	assert.Equal(t, 1, withBase.ByEmployee[1].TotalDays)

	// the base population never changes the distributions
	assert.Equal(t, 1, withBase.Overall.Total)

	without, err := Summarize(entries, 1, nil)
	require.NoError(t, err)
	assert.Len(t, without.ByEmployee, 1)
}

func TestByUnit_SortedAlphabetically(t *testing.T) {
	entries := []Entry{
		entry("E1", "UPT. Kecamatan", "2024-01-01", attendance.StatusPresent),
		entry("E2", "Bid. SDA", "2024-01-01", attendance.StatusSick),
		entry("E3", "bid. Bangunan", "2024-01-01", attendance.StatusPresent),
		entry("E4", "Sekretariat", "2024-01-01", attendance.StatusAbsent),
		entry("E5", "Bid. SDA", "2024-01-01", attendance.StatusPresent),
	}
	resolved, err := Resolve(entries)
	require.NoError(t, err)

	rows := ByUnit(resolved)
	var names []string
	for _, r := range rows {
		names = append(names, r.Unit)
	}
	assert.Equal(t, []string{"bid. Bangunan", "Bid. SDA", "Sekretariat", "UPT. Kecamatan"}, names)
	assert.Equal(t, Counts{Present: 1, Sick: 1}, rows[1].Counts)
}

func TestByUnit_CountsAfterDedup(t *testing.T) {
	entries := []Entry{
		entry("E1", "Sekretariat", "2024-01-01", attendance.StatusPresent),
		entry("E1", "Sekretariat", "2024-01-01", attendance.StatusPresent),
		entry("E1", "Sekretariat", "2024-01-01", attendance.StatusOfficialTravel),
	}
	resolved, err := Resolve(entries)
	require.NoError(t, err)

	rows := ByUnit(resolved)
	require.Len(t, rows, 1)
	assert.Equal(t, Counts{OfficialTravel: 1}, rows[0].Counts)
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0, Percentage(0, 0))
	assert.Equal(t, 0, Percentage(3, 0))
	assert.Equal(t, 33, Percentage(1, 3))
	assert.Equal(t, 67, Percentage(2, 3))
	assert.Equal(t, 50, Percentage(1, 2))
	assert.Equal(t, 100, Percentage(5, 5))
	assert.Equal(t, 100, Percentage(6, 5))
}

func TestSummarize_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	units := []string{"Sekretariat", "Bid. SDA", "Bid. Bina Marga", "UPT. Kecamatan"}

	for iter := 0; iter < 50; iter++ {
		var entries []Entry
		n := rng.Intn(200)
		for i := 0; i < n; i++ {
			emp := fmt.Sprintf("E%d", rng.Intn(15))
			entries = append(entries, Entry{
				EmployeeID: emp,
				Name:       emp,
				Unit:       units[rng.Intn(len(units))],
				Date:       fmt.Sprintf("2024-01-%02d", 1+rng.Intn(10)),
				Status:     attendance.Statuses[rng.Intn(len(attendance.Statuses))],
			})
		}

		totalDays := DistinctDays(entries)
		summary, err := Summarize(entries, totalDays, nil)
		require.NoError(t, err)

		resolved, err := Resolve(entries)
		require.NoError(t, err)
		assert.Equal(t, len(resolved), summary.Overall.Counts.Total())
		assert.Equal(t, len(resolved), summary.Overall.Total)

		unitTotal := 0
		for _, u := range summary.ByUnit {
			unitTotal += u.Counts.Total()
		}
		assert.Equal(t, len(resolved), unitTotal)

		for i, row := range summary.ByEmployee {
			assert.GreaterOrEqual(t, row.Percentage, 0)
			assert.LessOrEqual(t, row.Percentage, 100)
			want := 0
			if totalDays > 0 {
				want = int(math.Round(float64(row.Counts.Present) / float64(totalDays) * 100))
			}
			assert.Equal(t, want, row.Percentage)
			assert.LessOrEqual(t, row.Counts.Total(), totalDays)
			if i > 0 {
				assert.GreaterOrEqual(t, summary.ByEmployee[i-1].Percentage, row.Percentage)
			}
		}
	}
}

package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleTable() Table {
	t := Table{
		Title:    "Laporan Presensi",
		Subtitle: "Periode 2024-01-01 s.d. 2024-01-31",
		Headers:  []string{"Nama", "NIP", "Unit", "Hadir", "% Hadir"},
	}
	t.AddRow("Budi", "197901012005011001", "Sekretariat", 20, 95)
	t.AddRow(`Siti "Ani"`, "198002022006022002", "Bid. SDA, Seksi 1", 18, 86)
	return t
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat(" XLSX ")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = ParseFormat("docx")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestCSV_QuotesAndHeader(t *testing.T) {
	data, err := CSV(sampleTable())
	require.NoError(t, err)

	want := "Nama,NIP,Unit,Hadir,% Hadir\n" +
		"Budi,197901012005011001,Sekretariat,20,95\n" +
		"\"Siti \"\"Ani\"\"\",198002022006022002,\"Bid. SDA, Seksi 1\",18,86\n"
	assert.Equal(t, want, string(data))
}

func TestCSV_NilStringPointer(t *testing.T) {
	var note *string
	tbl := Table{Headers: []string{"A", "B"}}
	tbl.AddRow("x", note)

	data, err := CSV(tbl)
	require.NoError(t, err)
	assert.Equal(t, "A,B\nx,\n", string(data))
}

func TestXLSX_Readable(t *testing.T) {
	data, err := XLSX(sampleTable())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, sheetName, f.GetSheetName(0))
	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)

	// title, subtitle, blank, header, two data rows
	require.Len(t, rows, 6)
	assert.Equal(t, "Laporan Presensi", rows[0][0])
	assert.Equal(t, []string{"Nama", "NIP", "Unit", "Hadir", "% Hadir"}, rows[3])
	assert.Equal(t, "Budi", rows[4][0])
	assert.Equal(t, "20", rows[4][3])
}

func TestPDF_Header(t *testing.T) {
	tbl := sampleTable()
	for i := 0; i < 80; i++ {
		tbl.AddRow("Pegawai", "1", "Sekretariat", i, 50)
	}
	data, err := PDF(tbl)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestRender(t *testing.T) {
	file, err := Render(sampleTable(), FormatCSV, "laporan_per_pegawai_2024-01-01_sd_2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, "laporan_per_pegawai_2024-01-01_sd_2024-01-31.csv", file.Name)
	assert.Equal(t, "text/csv; charset=utf-8", file.ContentType)
	assert.NotEmpty(t, file.Data)

	_, err = Render(sampleTable(), Format("doc"), "x")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

package export

import (
	"github.com/xuri/excelize/v2"
)

const sheetName = "Laporan"

func XLSX(t Table) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, err
	}

	row := 1
	if t.Title != "" {
		if err := f.SetCellValue(sheetName, "A1", t.Title); err != nil {
			return nil, err
		}
		titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
		if err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheetName, "A1", "A1", titleStyle); err != nil {
			return nil, err
		}
		row++
		if t.Subtitle != "" {
			if err := f.SetCellValue(sheetName, "A2", t.Subtitle); err != nil {
				return nil, err
			}
			row++
		}
		row++
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#0E5AAE"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	headers := make([]any, len(t.Headers))
	for i, h := range t.Headers {
		headers[i] = h
	}
	if err := setRow(f, row, headers); err != nil {
		return nil, err
	}
	if len(t.Headers) > 0 {
		first, _ := excelize.CoordinatesToCellName(1, row)
		last, _ := excelize.CoordinatesToCellName(len(t.Headers), row)
		if err := f.SetCellStyle(sheetName, first, last, headerStyle); err != nil {
			return nil, err
		}
		lastCol, _ := excelize.ColumnNumberToName(len(t.Headers))
		if err := f.SetColWidth(sheetName, "A", lastCol, 18); err != nil {
			return nil, err
		}
	}

	for _, cells := range t.Rows {
		row++
		values := make([]any, len(cells))
		for i, c := range cells {
			if s, ok := c.(*string); ok {
				values[i] = cellText(s)
				continue
			}
			values[i] = c
		}
		if err := setRow(f, row, values); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheetName, cell, &values)
}

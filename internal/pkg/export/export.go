// Package export renders report tables as downloadable CSV, XLSX or PDF files.
package export

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ParseFormat defaults to CSV when v is empty.
func ParseFormat(v string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(v))); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatXLSX, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, v)
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/csv; charset=utf-8"
	}
}

// Table is a titled grid of cells. Cells keep their Go type so spreadsheets
// can store numbers as numbers.
type Table struct {
	Title    string
	Subtitle string
	Headers  []string
	Rows     [][]any
}

func (t *Table) AddRow(cells ...any) {
	t.Rows = append(t.Rows, cells)
}

// File is a rendered export ready to be served as an attachment.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Render encodes t in format f and names the file baseName plus the format extension.
func Render(t Table, f Format, baseName string) (File, error) {
	var (
		data []byte
		err  error
	)
	switch f {
	case FormatCSV:
		data, err = CSV(t)
	case FormatXLSX:
		data, err = XLSX(t)
	case FormatPDF:
		data, err = PDF(t)
	default:
		return File{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return File{}, fmt.Errorf("render %s: %w", f, err)
	}

	return File{
		Name:        baseName + "." + string(f),
		ContentType: f.ContentType(),
		Data:        data,
	}, nil
}

// cellText formats a cell the same way for CSV and PDF output.
func cellText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case *string:
		if val == nil {
			return ""
		}
		return *val
	case time.Time:
		return val.Format("2006-01-02 15:04:05")
	case float64:
		return fmt.Sprintf("%.2f", val)
	default:
		return fmt.Sprint(val)
	}
}

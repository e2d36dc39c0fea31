package export

import (
	"bytes"

	"github.com/go-pdf/fpdf"
)

const (
	pdfRowHeight    = 7.0
	pdfHeaderHeight = 8.0
)

// PDF lays the table out on landscape A4 pages, repeating the header row on
// every page. Cells that do not fit their column are truncated.
func PDF(t Table) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(false, 12)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	if t.Title != "" {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 8, tr(t.Title), "", 1, "L", false, 0, "")
	}
	if t.Subtitle != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, tr(t.Subtitle), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	pageW, pageH := pdf.GetPageSize()
	left, _, right, bottom := pdf.GetMargins()
	cols := len(t.Headers)
	if cols == 0 {
		cols = 1
	}
	colW := (pageW - left - right) / float64(cols)

	header := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(14, 90, 174)
		pdf.SetTextColor(255, 255, 255)
		for _, h := range t.Headers {
			pdf.CellFormat(colW, pdfHeaderHeight, fit(pdf, tr(h), colW), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
	}
	header()

	for i, row := range t.Rows {
		if pdf.GetY()+pdfRowHeight > pageH-bottom {
			pdf.AddPage()
			header()
		}
		fill := i%2 == 1
		pdf.SetFillColor(240, 244, 250)
		for c := 0; c < len(t.Headers); c++ {
			var text string
			if c < len(row) {
				text = cellText(row[c])
			}
			pdf.CellFormat(colW, pdfRowHeight, fit(pdf, tr(text), colW), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// fit works on bytes since tr already produced single-byte cp1252 text.
func fit(pdf *fpdf.Fpdf, text string, width float64) string {
	const padding = 2.0
	if pdf.GetStringWidth(text)+padding <= width {
		return text
	}
	for len(text) > 0 && pdf.GetStringWidth(text+"...")+padding > width {
		text = text[:len(text)-1]
	}
	return text + "..."
}

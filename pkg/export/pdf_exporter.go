package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// ReportRow is one printable line of the weekly report table.
// DayLabel is filled only on the first period of a day; the renderer
// keeps the cell empty on the remaining rows so the day reads as one
// merged block.
type ReportRow struct {
	DayLabel string
	DayDate  string
	Period   string
	Subject  string
	Lesson   string
	Notes    string
}

// WeeklyReportDoc carries everything the PDF layout needs.
type WeeklyReportDoc struct {
	WeekNumber  int
	DateRange   string
	TeacherName string
	SignPlace   string
	SignYear    int
	Rows        []ReportRow
}

// PDFExporter renders a weekly teaching report into an A4 PDF.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Column widths in mm; the printable width on A4 with 10mm margins is 190.
var reportCols = []struct {
	title string
	width float64
	align string
}{
	{"THU / NGAY", 30, "C"},
	{"TIET", 15, "C"},
	{"MON HOC", 35, "L"},
	{"TEN BAI DAY", 75, "L"},
	{"LONG GHEP", 35, "L"},
}

// Render lays out the title band, the 25-row slot table and the
// signature block.
func (e *PDFExporter) Render(doc WeeklyReportDoc) ([]byte, error) {
	if len(doc.Rows) == 0 {
		return nil, fmt.Errorf("pdf requires report rows")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(60, 10, tr(fmt.Sprintf("TUẦN : %d", doc.WeekNumber)), "", 0, "C", false, 0, "")
	pdf.CellFormat(130, 10, tr(doc.DateRange), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFillColor(68, 114, 196)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 10)
	for _, col := range reportCols {
		pdf.CellFormat(col.width, 8, tr(col.title), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Arial", "", 9)
	fill := false
	for _, row := range doc.Rows {
		day := row.DayLabel
		if day != "" && row.DayDate != "" {
			day = day + " " + row.DayDate
		}
		cells := []string{day, row.Period, row.Subject, row.Lesson, row.Notes}
		pdf.SetFillColor(242, 242, 242)
		for i, col := range reportCols {
			pdf.CellFormat(col.width, 7, tr(cells[i]), "1", 0, col.align, fill, 0, "")
		}
		pdf.Ln(-1)
		fill = !fill
	}

	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(95, 6, tr("Duyệt của Tổ trưởng CM"), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, tr(fmt.Sprintf("%s ngày ... tháng ... năm %d", doc.SignPlace, doc.SignYear)), "", 1, "R", false, 0, "")
	pdf.CellFormat(95, 6, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, tr("GVPT"), "", 1, "R", false, 0, "")
	pdf.Ln(8)
	pdf.CellFormat(95, 6, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, tr(doc.TeacherName), "", 1, "R", false, 0, "")

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

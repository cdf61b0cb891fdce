package workbook

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/example/staffing-reports/internal/application"
	"github.com/example/staffing-reports/internal/shiftanalysis"
)

// ContentType is the media type of rendered workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet names of a rendered report, in workbook order.
const (
	ScheduleSheet = "Schedule"
	AnalysisSheet = "Shift Analysis"
	SummarySheet  = "Summary"
)

const notAvailable = "n/a"

// Renderer writes staffing reports as xlsx workbooks.
type Renderer struct{}

// NewRenderer returns a workbook renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderReport implements application.WorkbookRenderer.
func (r *Renderer) RenderReport(report application.ScheduleReport) (application.WorkbookFile, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", ScheduleSheet); err != nil {
		return application.WorkbookFile{}, fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{AnalysisSheet, SummarySheet} {
		if _, err := f.NewSheet(name); err != nil {
			return application.WorkbookFile{}, fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"2F5496"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Vertical: "center",
			WrapText: true,
		},
	})
	if err != nil {
		return application.WorkbookFile{}, fmt.Errorf("create header style: %w", err)
	}

	w := &sheetWriter{file: f, headerStyle: headerStyle}
	w.writeSchedule(report.Analysis)
	w.writeAnalysis(report.Analysis)
	w.writeSummary(report)
	if w.err != nil {
		return application.WorkbookFile{}, w.err
	}

	f.SetActiveSheet(0)
	buf, err := f.WriteToBuffer()
	if err != nil {
		return application.WorkbookFile{}, fmt.Errorf("write workbook: %w", err)
	}
	return application.WorkbookFile{
		FileName:    FileName(report.Location, report.WeekStart),
		ContentType: ContentType,
		Content:     buf.Bytes(),
	}, nil
}

// FileName builds the download name of a report workbook.
func FileName(location, weekStart string) string {
	parts := []string{"staffing"}
	if slug := slugify(location); slug != "" {
		parts = append(parts, slug)
	}
	if weekStart = strings.TrimSpace(weekStart); weekStart != "" {
		parts = append(parts, weekStart)
	}
	return strings.Join(parts, "-") + ".xlsx"
}

// sheetWriter keeps the first error so the render steps read top to bottom.
type sheetWriter struct {
	file        *excelize.File
	headerStyle int
	err         error
}

func (w *sheetWriter) row(sheet string, rowNum int, values ...any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		w.err = err
		return
	}
	if err := w.file.SetSheetRow(sheet, cell, &values); err != nil {
		w.err = fmt.Errorf("write %s row %d: %w", sheet, rowNum, err)
	}
}

func (w *sheetWriter) header(sheet string, rowNum int, values ...any) {
	w.row(sheet, rowNum, values...)
	if w.err != nil || len(values) == 0 {
		return
	}
	first, _ := excelize.CoordinatesToCellName(1, rowNum)
	last, _ := excelize.CoordinatesToCellName(len(values), rowNum)
	if err := w.file.SetCellStyle(sheet, first, last, w.headerStyle); err != nil {
		w.err = fmt.Errorf("style %s header: %w", sheet, err)
	}
}

func (w *sheetWriter) width(sheet, startCol, endCol string, width float64) {
	if w.err != nil {
		return
	}
	if err := w.file.SetColWidth(sheet, startCol, endCol, width); err != nil {
		w.err = fmt.Errorf("set %s column width: %w", sheet, err)
	}
}

func (w *sheetWriter) writeSchedule(analysis shiftanalysis.Report) {
	header := []any{"Name", "Role", "Category"}
	for _, day := range shiftanalysis.Days() {
		header = append(header, day.String())
	}
	header = append(header, "Weekly Hours", "Overtime Hours", "Labor Cost")
	w.header(ScheduleSheet, 1, header...)
	w.width(ScheduleSheet, "A", "C", 20)
	w.width(ScheduleSheet, "D", "J", 14)

	brand := analysis.Brand
	for i, emp := range analysis.Employees {
		values := []any{emp.Name, emp.Role, brand.CategoryLabel(emp.Classification.Category)}
		for _, day := range shiftanalysis.Days() {
			values = append(values, emp.Shifts[day])
		}
		values = append(values, round2(emp.WeeklyHours), round2(emp.OvertimeHours), round2(emp.LaborCost))
		w.row(ScheduleSheet, i+2, values...)
	}
}

func (w *sheetWriter) writeAnalysis(analysis shiftanalysis.Report) {
	brand := analysis.Brand
	categories := brand.Categories()

	header := []any{"Day", "Window"}
	for _, c := range categories {
		header = append(header, brand.CategoryLabel(c))
	}
	header = append(header, "Total")
	w.header(AnalysisSheet, 1, header...)
	w.width(AnalysisSheet, "A", "A", 12)
	w.width(AnalysisSheet, "B", "B", 22)

	rowNum := 2
	for _, day := range shiftanalysis.Days() {
		for _, window := range shiftanalysis.Windows {
			count := analysis.Staffing.Count(day, window.ID)
			values := []any{day.String(), window.Label}
			for _, c := range categories {
				values = append(values, count[c])
			}
			values = append(values, count.Total())
			w.row(AnalysisSheet, rowNum, values...)
			rowNum++
		}
	}
}

func (w *sheetWriter) writeSummary(report application.ScheduleReport) {
	analysis := report.Analysis
	summary := analysis.Summary
	brand := analysis.Brand

	w.header(SummarySheet, 1, "Metric", "Value")
	w.width(SummarySheet, "A", "A", 28)
	w.width(SummarySheet, "B", "D", 18)

	lines := [][]any{
		{"Location", report.Location},
		{"Brand", brand.String()},
		{"Week Start", report.WeekStart},
		{"Generated At", report.GeneratedAt.UTC().Format(time.RFC3339)},
		{"Employees", summary.EmployeeCount},
		{"Total Weekly Hours", round2(summary.TotalWeeklyHours)},
	}
	for _, c := range brand.Categories() {
		lines = append(lines, []any{brand.CategoryLabel(c) + " Hours", round2(summary.CategoryHours[c])})
	}
	lines = append(lines,
		[]any{"GM Hours", round2(summary.GMHours)},
		[]any{"Hourly Manager Hours", round2(summary.HourlyManagerHours)},
		[]any{"Overtime Hours", round2(summary.TotalOvertimeHours)},
		[]any{"Weekly Labor Cost", round2(summary.TotalWeeklyLaborCost)},
		[]any{"Total Sales", round2(analysis.TotalSales)},
		[]any{"Labor %", optional(analysis.LaborPercent, analysis.HasLabor)},
		[]any{"Average Hours", optional(analysis.AverageHours, analysis.HasAverage)},
	)

	rowNum := 2
	for _, line := range lines {
		w.row(SummarySheet, rowNum, line...)
		rowNum++
	}

	if len(analysis.Diagnostics) == 0 {
		return
	}
	rowNum++
	w.header(SummarySheet, rowNum, "Employee", "Issue", "Day", "Value")
	for _, d := range analysis.Diagnostics {
		rowNum++
		day := ""
		if d.HasDay {
			day = d.Day.String()
		}
		w.row(SummarySheet, rowNum, d.EmployeeID, string(d.Kind), day, d.Value)
	}
}

func optional(v float64, ok bool) any {
	if !ok {
		return notAvailable
	}
	return round2(v)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

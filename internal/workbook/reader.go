package workbook

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/example/staffing-reports/internal/application"
	"github.com/example/staffing-reports/internal/shiftanalysis"
)

const (
	defaultMaxRows = 100000
	salesLabel     = "sales"
)

// Reader extracts employees and projected sales from the first worksheet of
// an uploaded roster. Legacy .xls files are read with extrame/xls and every
// other extension with excelize.
type Reader struct {
	maxRows int
}

// NewReader returns a roster reader.
func NewReader() *Reader {
	return &Reader{maxRows: defaultMaxRows}
}

type columnLayout struct {
	id, name, role, payType, payRate int
	days                             map[shiftanalysis.Day]int
}

// ReadRoster implements application.RosterReader. Problems with individual
// cells are returned as a *application.ValidationError; unreadable files as
// plain errors.
func (r *Reader) ReadRoster(fileName string, content []byte) (application.Roster, error) {
	rows, err := r.readRows(fileName, content)
	if err != nil {
		return application.Roster{}, err
	}

	headerIdx := firstNonEmptyRow(rows)
	if headerIdx < 0 {
		return application.Roster{}, fieldError("file", "worksheet is empty")
	}
	layout, ok := detectColumns(rows[headerIdx])
	if !ok {
		return application.Roster{}, fieldError("file", "header row must include a name column and at least one day column")
	}

	roster := application.Roster{Sales: map[string]float64{}}
	problems := map[string]string{}
	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		sheetRow := i + 1
		if isEmptyRow(row) {
			continue
		}
		name := cellValue(row, layout.name)
		if strings.EqualFold(name, salesLabel) {
			readSales(row, layout, sheetRow, roster.Sales, problems)
			continue
		}
		roster.Employees = append(roster.Employees, readEmployee(row, layout, sheetRow, problems))
	}

	if len(problems) > 0 {
		return application.Roster{}, &application.ValidationError{FieldErrors: problems}
	}
	return roster, nil
}

func (r *Reader) readRows(fileName string, data []byte) ([][]string, error) {
	maxRows := r.maxRows
	if maxRows <= 0 {
		maxRows = defaultMaxRows
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".xls", ".xsl":
		workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
		if err != nil {
			return nil, err
		}
		if workbook.NumSheets() == 0 {
			return nil, fmt.Errorf("no worksheet found")
		}
		if workbook.NumSheets() > 1 {
			return nil, fmt.Errorf("multiple worksheets found; please upload a file with a single sheet")
		}
		return workbook.ReadAllCells(maxRows), nil
	default:
		file, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer func() { _ = file.Close() }()

		sheetName := file.GetSheetName(0)
		if sheetName == "" {
			return nil, fmt.Errorf("no worksheet found")
		}
		rows, err := file.GetRows(sheetName)
		if err != nil {
			return nil, err
		}
		if len(rows) > maxRows {
			rows = rows[:maxRows]
		}
		return rows, nil
	}
}

func detectColumns(header []string) (columnLayout, bool) {
	layout := columnLayout{id: -1, name: -1, role: -1, payType: -1, payRate: -1, days: map[shiftanalysis.Day]int{}}
	for idx, raw := range header {
		h := normalizeHeader(raw)
		if h == "" {
			continue
		}
		if day, ok := shiftanalysis.ParseDay(h); ok {
			if _, seen := layout.days[day]; !seen {
				layout.days[day] = idx
			}
			continue
		}
		switch h {
		case "id", "employee id":
			setOnce(&layout.id, idx)
		case "name", "employee", "employee name":
			setOnce(&layout.name, idx)
		case "role", "position", "job":
			setOnce(&layout.role, idx)
		case "pay type":
			setOnce(&layout.payType, idx)
		case "pay rate", "rate", "wage":
			setOnce(&layout.payRate, idx)
		}
	}
	return layout, layout.name >= 0 && len(layout.days) > 0
}

func readEmployee(row []string, layout columnLayout, sheetRow int, problems map[string]string) application.Employee {
	emp := application.Employee{
		ID:      cellValue(row, layout.id),
		Name:    cellValue(row, layout.name),
		Role:    cellValue(row, layout.role),
		PayType: strings.ToLower(cellValue(row, layout.payType)),
		Shifts:  make(map[string]string, len(layout.days)),
	}
	if emp.ID == "" {
		emp.ID = fmt.Sprintf("emp-%d", sheetRow)
	}
	if raw := cellValue(row, layout.payRate); raw != "" {
		rate, err := parseAmount(raw)
		if err != nil {
			problems[fmt.Sprintf("rows[%d].pay_rate", sheetRow)] = fmt.Sprintf("pay rate %q is not a number", raw)
		} else {
			emp.PayRate = &rate
		}
	}
	for _, day := range shiftanalysis.Days() {
		idx, ok := layout.days[day]
		if !ok {
			continue
		}
		if value := cellValue(row, idx); value != "" {
			emp.Shifts[day.Key()] = value
		}
	}
	return emp
}

func readSales(row []string, layout columnLayout, sheetRow int, sales map[string]float64, problems map[string]string) {
	for _, day := range shiftanalysis.Days() {
		idx, ok := layout.days[day]
		if !ok {
			continue
		}
		raw := cellValue(row, idx)
		if raw == "" {
			continue
		}
		amount, err := parseAmount(raw)
		if err != nil {
			problems[fmt.Sprintf("rows[%d].sales.%s", sheetRow, day.Key())] = fmt.Sprintf("sales %q is not a number", raw)
			continue
		}
		sales[day.Key()] += amount
	}
}

// parseAmount accepts plain numbers and currency formatted cells such as
// "$1,250.50".
func parseAmount(raw string) (float64, error) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(raw)
	return strconv.ParseFloat(cleaned, 64)
}

func setOnce(target *int, idx int) {
	if *target < 0 {
		*target = idx
	}
}

func firstNonEmptyRow(rows [][]string) int {
	for i, row := range rows {
		if !isEmptyRow(row) {
			return i
		}
	}
	return -1
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func normalizeHeader(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	h = strings.NewReplacer("_", " ", "-", " ").Replace(h)
	return strings.Join(strings.Fields(h), " ")
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func fieldError(field, message string) *application.ValidationError {
	return &application.ValidationError{FieldErrors: map[string]string{field: message}}
}

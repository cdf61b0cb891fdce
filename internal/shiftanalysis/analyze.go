package shiftanalysis

import (
	"errors"
	"math"
	"sort"
	"strings"
)

// EmployeeWeek is one scheduled employee with their raw day assignments.
// Days missing from Shifts are treated as OFF.
type EmployeeWeek struct {
	ID      string
	Name    string
	Role    string
	PayType PayType
	PayRate *float64
	Shifts  map[Day]string
}

// Week is the input of a report run.
type Week struct {
	Brand     string
	Location  string
	Employees map[string]EmployeeWeek
	// Sales holds optional projected sales per day for the labor percentage.
	Sales map[Day]float64
}

// DiagnosticKind labels a recoverable data problem found during analysis.
type DiagnosticKind string

const (
	DiagnosticUnparseableTime    DiagnosticKind = "unparseable_time"
	DiagnosticUnclassifiableRole DiagnosticKind = "unclassifiable_role"
	DiagnosticMissingPayData     DiagnosticKind = "missing_pay_data"
	DiagnosticMissingName        DiagnosticKind = "missing_name"
)

// Diagnostic records a skipped or degraded input. Day is only meaningful for
// time diagnostics, where HasDay is true.
type Diagnostic struct {
	EmployeeID string
	Kind       DiagnosticKind
	Day        Day
	HasDay     bool
	Value      string
}

// Report is the full output of Analyze.
type Report struct {
	Brand        Brand
	Staffing     *StaffingTable
	Employees    []EmployeeResult
	Summary      HoursSummary
	TotalSales   float64
	LaborPercent float64
	HasLabor     bool
	AverageHours float64
	HasAverage   bool
	Diagnostics  []Diagnostic
}

// Analyze computes the staffing table, per-employee hours and the hours
// summary for a week. It never fails: bad shift text, unknown roles and
// missing pay data are skipped or degraded and reported as diagnostics.
// Analyze holds no state between calls.
func Analyze(week Week) Report {
	brand := DetectBrand(week.Brand, week.Location)
	report := Report{
		Brand:    brand,
		Staffing: NewStaffingTable(brand),
		Summary:  NewHoursSummary(brand),
	}

	ids := make([]string, 0, len(week.Employees))
	for id := range week.Employees {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		emp := week.Employees[id]
		if emp.ID == "" {
			emp.ID = id
		}
		if strings.TrimSpace(emp.Name) == "" {
			report.Diagnostics = append(report.Diagnostics, Diagnostic{EmployeeID: emp.ID, Kind: DiagnosticMissingName})
			continue
		}

		result, diags := analyzeEmployee(report.Staffing, brand, emp)
		report.Diagnostics = append(report.Diagnostics, diags...)
		report.Employees = append(report.Employees, result)
		report.Summary = report.Summary.Add(result)
	}

	for _, day := range Days() {
		if sales, ok := week.Sales[day]; ok && !math.IsNaN(sales) && !math.IsInf(sales, 0) {
			report.TotalSales += sales
		}
	}
	report.LaborPercent, report.HasLabor = report.Summary.LaborPercent(report.TotalSales)
	report.AverageHours, report.HasAverage = report.Summary.AverageHours()
	return report
}

func analyzeEmployee(table *StaffingTable, brand Brand, emp EmployeeWeek) (EmployeeResult, []Diagnostic) {
	var diags []Diagnostic

	classification := Classify(emp.Role, emp.PayType, brand)
	if !classification.Recognized {
		diags = append(diags, Diagnostic{EmployeeID: emp.ID, Kind: DiagnosticUnclassifiableRole, Value: emp.Role})
	}

	result := EmployeeResult{
		ID:             emp.ID,
		Name:           emp.Name,
		Role:           emp.Role,
		PayType:        emp.PayType,
		Classification: classification,
	}

	for _, day := range Days() {
		value, ok := emp.Shifts[day]
		if !ok || value == "" {
			value = Off
		}
		result.Shifts[day] = value

		shift, err := ParseShift(value)
		if err != nil {
			if !errors.Is(err, ErrDayOff) {
				diags = append(diags, Diagnostic{EmployeeID: emp.ID, Kind: DiagnosticUnparseableTime, Day: day, HasDay: true, Value: value})
			}
			continue
		}

		hours := shift.Hours()
		result.DailyHours[day] = hours
		result.WeeklyHours += hours
		table.Record(day, shift, classification.Category)
	}

	result.OvertimeHours = Overtime(result.WeeklyHours, classification)
	if emp.PayRate == nil || math.IsNaN(*emp.PayRate) || math.IsInf(*emp.PayRate, 0) {
		diags = append(diags, Diagnostic{EmployeeID: emp.ID, Kind: DiagnosticMissingPayData})
	}
	result.LaborCost = LaborCost(emp.PayType, emp.PayRate, result.WeeklyHours)
	return result, diags
}

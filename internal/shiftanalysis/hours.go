package shiftanalysis

import "math"

// OvertimeThreshold is the weekly hour count after which hourly employees
// accrue overtime.
const OvertimeThreshold = 40.0

// EmployeeResult is the per-employee outcome of an analysis run.
type EmployeeResult struct {
	ID             string
	Name           string
	Role           string
	PayType        PayType
	Classification Classification
	Shifts         [DaysPerWeek]string
	DailyHours     [DaysPerWeek]float64
	WeeklyHours    float64
	OvertimeHours  float64
	LaborCost      float64
}

// Overtime returns the hours beyond the weekly threshold for hourly staff.
// Salaried employees and GMs never accrue overtime.
func Overtime(weeklyHours float64, c Classification) float64 {
	if c.Salaried {
		return 0
	}
	return math.Max(0, weeklyHours-OvertimeThreshold)
}

// LaborCost returns the weekly cost of an employee. Flat weekly pay counts
// once regardless of hours. Missing or non-finite rates cost nothing.
func LaborCost(payType PayType, payRate *float64, weeklyHours float64) float64 {
	if payRate == nil || math.IsNaN(*payRate) || math.IsInf(*payRate, 0) {
		return 0
	}
	if payType.Flat() {
		return *payRate
	}
	return *payRate * weeklyHours
}

// HoursSummary aggregates hours and cost across a week. Values are
// accumulated additively; Add returns a new snapshot and leaves the receiver
// untouched.
type HoursSummary struct {
	TotalWeeklyHours     float64
	CategoryHours        map[Category]float64
	GMHours              float64
	HourlyManagerHours   float64
	TotalOvertimeHours   float64
	TotalWeeklyLaborCost float64
	EmployeeCount        int
}

// NewHoursSummary returns an empty summary with every category of the brand
// present at zero.
func NewHoursSummary(brand Brand) HoursSummary {
	categories := brand.Categories()
	hours := make(map[Category]float64, len(categories))
	for _, c := range categories {
		hours[c] = 0
	}
	return HoursSummary{CategoryHours: hours}
}

// Add folds one employee into the summary. All of the employee's hours are
// attributed to their single category.
func (s HoursSummary) Add(e EmployeeResult) HoursSummary {
	next := s
	next.CategoryHours = make(map[Category]float64, len(s.CategoryHours)+1)
	for k, v := range s.CategoryHours {
		next.CategoryHours[k] = v
	}

	next.TotalWeeklyHours += e.WeeklyHours
	next.CategoryHours[e.Classification.Category] += e.WeeklyHours
	switch {
	case e.Classification.GM:
		next.GMHours += e.WeeklyHours
	case e.Classification.ManagerTier:
		next.HourlyManagerHours += e.WeeklyHours
	}
	next.TotalOvertimeHours += e.OvertimeHours
	next.TotalWeeklyLaborCost += e.LaborCost
	next.EmployeeCount++
	return next
}

// AverageHours returns the mean weekly hours per counted employee.
func (s HoursSummary) AverageHours() (float64, bool) {
	if s.EmployeeCount == 0 {
		return 0, false
	}
	return s.TotalWeeklyHours / float64(s.EmployeeCount), true
}

// LaborPercent returns labor cost as a percentage of sales. It is undefined
// when there are no sales.
func (s HoursSummary) LaborPercent(totalSales float64) (float64, bool) {
	if totalSales <= 0 || math.IsNaN(totalSales) {
		return 0, false
	}
	return s.TotalWeeklyLaborCost / totalSales * 100, true
}

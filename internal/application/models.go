package application

import (
	"time"

	"github.com/example/staffing-reports/internal/shiftanalysis"
)

// DefaultUpdatedBy is recorded when a caller does not identify itself.
const DefaultUpdatedBy = "system"

// Employee is one roster line. Shifts maps day keys ("mon" .. "sun") to the
// raw shift text such as "9am-5pm" or "OFF".
type Employee struct {
	ID      string
	Name    string
	Role    string
	PayType string
	PayRate *float64
	Shifts  map[string]string
}

// ScheduleInput captures caller provided schedule fields.
type ScheduleInput struct {
	Location  string
	Brand     string
	WeekStart string
	Employees []Employee
	// Sales maps day keys to projected sales.
	Sales     map[string]float64
	UpdatedBy string
}

// Schedule is a stored weekly roster for one location.
type Schedule struct {
	ID        string
	Location  string
	Brand     string
	WeekStart string
	Employees []Employee
	Sales     map[string]float64
	UpdatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SaveScheduleResult reports whether a save inserted a new week or replaced
// an existing one.
type SaveScheduleResult struct {
	Schedule Schedule
	Created  bool
}

// ListSchedulesParams narrows schedule listings. Empty fields match everything.
type ListSchedulesParams struct {
	Location  string
	WeekStart string
	UpdatedBy string
}

// ImportScheduleParams carries an uploaded roster workbook.
type ImportScheduleParams struct {
	FileName  string
	Content   []byte
	Location  string
	Brand     string
	WeekStart string
	UpdatedBy string
}

// Roster is the content extracted from an uploaded workbook.
type Roster struct {
	Employees []Employee
	Sales     map[string]float64
}

// AnalyzeWeekParams describes an inline schedule analysed without storing it.
type AnalyzeWeekParams struct {
	Location  string
	Brand     string
	WeekStart string
	Employees []Employee
	Sales     map[string]float64
}

// ScheduleReport is the analysis of one week. Analysis is shared with the
// report cache and must be treated as read-only.
type ScheduleReport struct {
	ScheduleID        string
	Location          string
	Brand             string
	WeekStart         string
	ScheduleUpdatedAt time.Time
	GeneratedAt       time.Time
	Analysis          shiftanalysis.Report
}

// WorkbookFile is a rendered report workbook.
type WorkbookFile struct {
	FileName    string
	ContentType string
	Content     []byte
}

// PublishReportParams identifies the schedule whose report is published.
type PublishReportParams struct {
	ScheduleID  string
	PublishedBy string
}

// PublishedReport is a stored report workbook.
type PublishedReport struct {
	ID          string
	ScheduleID  string
	FileName    string
	ContentType string
	Content     []byte
	CreatedBy   string
	CreatedAt   time.Time
}

// Week converts the schedule into engine input. Day keys were normalized on
// save, so unknown keys are ignored.
func (s Schedule) Week() shiftanalysis.Week {
	return buildWeek(s.Location, s.Brand, s.Employees, s.Sales)
}

func buildWeek(location, brand string, employees []Employee, sales map[string]float64) shiftanalysis.Week {
	week := shiftanalysis.Week{
		Brand:     brand,
		Location:  location,
		Employees: make(map[string]shiftanalysis.EmployeeWeek, len(employees)),
		Sales:     make(map[shiftanalysis.Day]float64, len(sales)),
	}
	for _, emp := range employees {
		shifts := make(map[shiftanalysis.Day]string, len(emp.Shifts))
		for key, value := range emp.Shifts {
			if day, ok := shiftanalysis.ParseDay(key); ok {
				shifts[day] = value
			}
		}
		week.Employees[emp.ID] = shiftanalysis.EmployeeWeek{
			ID:      emp.ID,
			Name:    emp.Name,
			Role:    emp.Role,
			PayType: shiftanalysis.PayType(emp.PayType),
			PayRate: copyFloatPtr(emp.PayRate),
			Shifts:  shifts,
		}
	}
	for key, value := range sales {
		if day, ok := shiftanalysis.ParseDay(key); ok {
			week.Sales[day] += value
		}
	}
	return week
}

func copyFloatPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

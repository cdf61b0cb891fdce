package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/staffing-reports/internal/application"
	"github.com/example/staffing-reports/internal/persistence"
)

var (
	employeeCounter uint64
	scheduleCounter uint64
	reportCounter   uint64
)

var referenceTime = time.Date(2024, time.March, 1, 15, 4, 5, 0, time.UTC)

// ReferenceWeekStart is the Monday used by schedule fixtures.
const ReferenceWeekStart = "2024-03-04"

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ----------------------------- Employee fixtures -----------------------------

// EmployeeFixture represents one roster line with a full week of shifts.
type EmployeeFixture struct {
	ID      string
	Name    string
	Role    string
	PayType string
	PayRate *float64
	Shifts  map[string]string
}

// EmployeeOption configures the generated employee fixture.
type EmployeeOption func(*EmployeeFixture)

// NewEmployeeFixture returns an hourly crew member working 9-17 on weekdays.
func NewEmployeeFixture(opts ...EmployeeOption) EmployeeFixture {
	idx := atomic.AddUint64(&employeeCounter, 1)
	rate := 15.0
	fixture := EmployeeFixture{
		ID:      fmt.Sprintf("emp-%03d", idx),
		Name:    fmt.Sprintf("Employee %03d", idx),
		Role:    "Crew",
		PayType: "hourly",
		PayRate: &rate,
		Shifts: map[string]string{
			"mon": "9-17",
			"tue": "9-17",
			"wed": "9-17",
			"thu": "9-17",
			"fri": "9-17",
			"sat": "OFF",
			"sun": "OFF",
		},
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithEmployeeID overrides the generated employee ID.
func WithEmployeeID(id string) EmployeeOption {
	return func(f *EmployeeFixture) {
		f.ID = id
	}
}

// WithEmployeeName overrides the generated name.
func WithEmployeeName(name string) EmployeeOption {
	return func(f *EmployeeFixture) {
		f.Name = name
	}
}

// WithEmployeeRole overrides the role text.
func WithEmployeeRole(role string) EmployeeOption {
	return func(f *EmployeeFixture) {
		f.Role = role
	}
}

// WithEmployeePay sets the pay type and rate.
func WithEmployeePay(payType string, rate float64) EmployeeOption {
	return func(f *EmployeeFixture) {
		f.PayType = payType
		value := rate
		f.PayRate = &value
	}
}

// WithoutEmployeePayRate clears the pay rate.
func WithoutEmployeePayRate() EmployeeOption {
	return func(f *EmployeeFixture) {
		f.PayRate = nil
	}
}

// WithEmployeeShift sets the shift text for one day key.
func WithEmployeeShift(day, value string) EmployeeOption {
	return func(f *EmployeeFixture) {
		if f.Shifts == nil {
			f.Shifts = make(map[string]string)
		}
		f.Shifts[day] = value
	}
}

// WithEmployeeShifts replaces the whole week of shifts.
func WithEmployeeShifts(shifts map[string]string) EmployeeOption {
	return func(f *EmployeeFixture) {
		f.Shifts = copyShifts(shifts)
	}
}

// Application returns the fixture as an application.Employee value.
func (f EmployeeFixture) Application() application.Employee {
	return application.Employee{
		ID:      f.ID,
		Name:    f.Name,
		Role:    f.Role,
		PayType: f.PayType,
		PayRate: copyFloatPtr(f.PayRate),
		Shifts:  copyShifts(f.Shifts),
	}
}

// Persistence returns the fixture as a persistence.Employee value.
func (f EmployeeFixture) Persistence() persistence.Employee {
	return persistence.Employee{
		ID:      f.ID,
		Name:    f.Name,
		Role:    f.Role,
		PayType: f.PayType,
		PayRate: copyFloatPtr(f.PayRate),
		Shifts:  copyShifts(f.Shifts),
	}
}

// ----------------------------- Schedule fixtures -----------------------------

// ScheduleFixture represents a stored week for one location.
type ScheduleFixture struct {
	ID        string
	Location  string
	Brand     string
	WeekStart string
	Employees []EmployeeFixture
	Sales     map[string]float64
	UpdatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ScheduleOption configures the generated schedule fixture.
type ScheduleOption func(*ScheduleFixture)

// NewScheduleFixture returns a schedule with two crew members and Monday sales.
func NewScheduleFixture(opts ...ScheduleOption) ScheduleFixture {
	idx := atomic.AddUint64(&scheduleCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := ScheduleFixture{
		ID:        fmt.Sprintf("schedule-%03d", idx),
		Location:  fmt.Sprintf("Store %03d", idx),
		WeekStart: ReferenceWeekStart,
		Employees: []EmployeeFixture{NewEmployeeFixture(), NewEmployeeFixture()},
		Sales:     map[string]float64{"mon": 1000},
		UpdatedBy: application.DefaultUpdatedBy,
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithScheduleID overrides the generated schedule ID.
func WithScheduleID(id string) ScheduleOption {
	return func(f *ScheduleFixture) {
		f.ID = id
	}
}

// WithScheduleLocation overrides the location name.
func WithScheduleLocation(location string) ScheduleOption {
	return func(f *ScheduleFixture) {
		f.Location = location
	}
}

// WithScheduleBrand sets the brand label.
func WithScheduleBrand(brand string) ScheduleOption {
	return func(f *ScheduleFixture) {
		f.Brand = brand
	}
}

// WithScheduleWeekStart overrides the week start date.
func WithScheduleWeekStart(weekStart string) ScheduleOption {
	return func(f *ScheduleFixture) {
		f.WeekStart = weekStart
	}
}

// WithScheduleEmployees replaces the roster.
func WithScheduleEmployees(employees ...EmployeeFixture) ScheduleOption {
	return func(f *ScheduleFixture) {
		f.Employees = append([]EmployeeFixture(nil), employees...)
	}
}

// WithScheduleSales replaces the projected sales.
func WithScheduleSales(sales map[string]float64) ScheduleOption {
	return func(f *ScheduleFixture) {
		f.Sales = make(map[string]float64, len(sales))
		for k, v := range sales {
			f.Sales[k] = v
		}
	}
}

// WithScheduleUpdatedBy overrides the editor recorded on the schedule.
func WithScheduleUpdatedBy(updatedBy string) ScheduleOption {
	return func(f *ScheduleFixture) {
		f.UpdatedBy = updatedBy
	}
}

// WithScheduleTimestamps sets both created and updated timestamps.
func WithScheduleTimestamps(created, updated time.Time) ScheduleOption {
	return func(f *ScheduleFixture) {
		f.CreatedAt = created
		f.UpdatedAt = updated
	}
}

// Application returns the fixture as an application.Schedule value.
func (f ScheduleFixture) Application() application.Schedule {
	employees := make([]application.Employee, len(f.Employees))
	for i, emp := range f.Employees {
		employees[i] = emp.Application()
	}
	return application.Schedule{
		ID:        f.ID,
		Location:  f.Location,
		Brand:     f.Brand,
		WeekStart: f.WeekStart,
		Employees: employees,
		Sales:     copySales(f.Sales),
		UpdatedBy: f.UpdatedBy,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// Persistence returns the fixture as a persistence.Schedule value.
func (f ScheduleFixture) Persistence() persistence.Schedule {
	employees := make([]persistence.Employee, len(f.Employees))
	for i, emp := range f.Employees {
		employees[i] = emp.Persistence()
	}
	return persistence.Schedule{
		ID:        f.ID,
		Location:  f.Location,
		Brand:     f.Brand,
		WeekStart: f.WeekStart,
		Employees: employees,
		Sales:     copySales(f.Sales),
		UpdatedBy: f.UpdatedBy,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// Input returns the fixture as an application.ScheduleInput.
func (f ScheduleFixture) Input() application.ScheduleInput {
	schedule := f.Application()
	return application.ScheduleInput{
		Location:  schedule.Location,
		Brand:     schedule.Brand,
		WeekStart: schedule.WeekStart,
		Employees: schedule.Employees,
		Sales:     schedule.Sales,
		UpdatedBy: schedule.UpdatedBy,
	}
}

// ----------------------------- Report fixtures -----------------------------

// ReportFixture represents a published report workbook.
type ReportFixture struct {
	ID          string
	ScheduleID  string
	FileName    string
	ContentType string
	Content     []byte
	CreatedBy   string
	CreatedAt   time.Time
}

// ReportOption configures the generated report fixture.
type ReportOption func(*ReportFixture)

// NewReportFixture returns a published report for the given schedule.
func NewReportFixture(scheduleID string, opts ...ReportOption) ReportFixture {
	idx := atomic.AddUint64(&reportCounter, 1)
	fixture := ReportFixture{
		ID:          fmt.Sprintf("report-%03d", idx),
		ScheduleID:  scheduleID,
		FileName:    fmt.Sprintf("report-%03d.xlsx", idx),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Content:     []byte(fmt.Sprintf("workbook %03d", idx)),
		CreatedBy:   application.DefaultUpdatedBy,
		CreatedAt:   referenceTime.Add(time.Duration(idx) * time.Hour),
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithReportID overrides the generated report ID.
func WithReportID(id string) ReportOption {
	return func(f *ReportFixture) {
		f.ID = id
	}
}

// WithReportCreatedAt sets the publish time.
func WithReportCreatedAt(t time.Time) ReportOption {
	return func(f *ReportFixture) {
		f.CreatedAt = t
	}
}

// Application returns the fixture as an application.PublishedReport value.
func (f ReportFixture) Application() application.PublishedReport {
	return application.PublishedReport{
		ID:          f.ID,
		ScheduleID:  f.ScheduleID,
		FileName:    f.FileName,
		ContentType: f.ContentType,
		Content:     append([]byte(nil), f.Content...),
		CreatedBy:   f.CreatedBy,
		CreatedAt:   f.CreatedAt,
	}
}

// Persistence returns the fixture as a persistence.Report value.
func (f ReportFixture) Persistence() persistence.Report {
	return persistence.Report{
		ID:          f.ID,
		ScheduleID:  f.ScheduleID,
		FileName:    f.FileName,
		ContentType: f.ContentType,
		Content:     append([]byte(nil), f.Content...),
		CreatedBy:   f.CreatedBy,
		CreatedAt:   f.CreatedAt,
	}
}

func copyFloatPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func copyShifts(shifts map[string]string) map[string]string {
	if shifts == nil {
		return nil
	}
	out := make(map[string]string, len(shifts))
	for k, v := range shifts {
		out[k] = v
	}
	return out
}

func copySales(sales map[string]float64) map[string]float64 {
	if sales == nil {
		return nil
	}
	out := make(map[string]float64, len(sales))
	for k, v := range sales {
		out[k] = v
	}
	return out
}

package persistence

import "time"

// Employee is one roster line of a stored schedule. Shifts is keyed by the
// three letter day key ("mon" .. "sun").
type Employee struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Role    string            `json:"role"`
	PayType string            `json:"pay_type,omitempty"`
	PayRate *float64          `json:"pay_rate,omitempty"`
	Shifts  map[string]string `json:"shifts"`
}

// Schedule is a weekly roster for one location. At most one schedule exists
// per (Location, WeekStart).
type Schedule struct {
	ID        string
	Location  string
	Brand     string
	WeekStart string
	Employees []Employee
	// Sales holds projected sales keyed by day key.
	Sales     map[string]float64
	UpdatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Report is a published report workbook.
type Report struct {
	ID          string
	ScheduleID  string
	FileName    string
	ContentType string
	Content     []byte
	CreatedBy   string
	CreatedAt   time.Time
}

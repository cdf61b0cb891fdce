package persistence

import "context"

// ScheduleFilter narrows schedule listings. Empty fields match everything.
type ScheduleFilter struct {
	Location  string
	WeekStart string
	UpdatedBy string
}

// ScheduleRepository stores weekly schedules.
type ScheduleRepository interface {
	// UpsertSchedule inserts the schedule or replaces the one stored for the
	// same location and week. The stored record is returned along with
	// whether it was newly created; an update keeps the existing ID and
	// CreatedAt.
	UpsertSchedule(ctx context.Context, schedule Schedule) (Schedule, bool, error)
	GetSchedule(ctx context.Context, id string) (Schedule, error)
	ListSchedules(ctx context.Context, filter ScheduleFilter) ([]Schedule, error)
	DeleteSchedule(ctx context.Context, id string) error
}

// ReportRepository stores published report workbooks.
type ReportRepository interface {
	CreateReport(ctx context.Context, report Report) error
	GetReport(ctx context.Context, id string) (Report, error)
	ListReportsForSchedule(ctx context.Context, scheduleID string) ([]Report, error)
}

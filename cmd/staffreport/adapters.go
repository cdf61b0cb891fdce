package main

import (
	"context"

	"github.com/example/staffing-reports/internal/application"
	"github.com/example/staffing-reports/internal/persistence"
)

type scheduleRepositoryAdapter struct {
	repo persistence.ScheduleRepository
}

func newScheduleRepositoryAdapter(repo persistence.ScheduleRepository) *scheduleRepositoryAdapter {
	return &scheduleRepositoryAdapter{repo: repo}
}

func (a *scheduleRepositoryAdapter) UpsertSchedule(ctx context.Context, schedule application.Schedule) (application.Schedule, bool, error) {
	stored, created, err := a.repo.UpsertSchedule(ctx, toPersistenceSchedule(schedule))
	if err != nil {
		return application.Schedule{}, false, err
	}
	return toApplicationSchedule(stored), created, nil
}

func (a *scheduleRepositoryAdapter) GetSchedule(ctx context.Context, id string) (application.Schedule, error) {
	stored, err := a.repo.GetSchedule(ctx, id)
	if err != nil {
		return application.Schedule{}, err
	}
	return toApplicationSchedule(stored), nil
}

func (a *scheduleRepositoryAdapter) ListSchedules(ctx context.Context, params application.ListSchedulesParams) ([]application.Schedule, error) {
	stored, err := a.repo.ListSchedules(ctx, persistence.ScheduleFilter{
		Location:  params.Location,
		WeekStart: params.WeekStart,
		UpdatedBy: params.UpdatedBy,
	})
	if err != nil {
		return nil, err
	}
	out := make([]application.Schedule, 0, len(stored))
	for _, schedule := range stored {
		out = append(out, toApplicationSchedule(schedule))
	}
	return out, nil
}

func (a *scheduleRepositoryAdapter) DeleteSchedule(ctx context.Context, id string) error {
	return a.repo.DeleteSchedule(ctx, id)
}

type reportRepositoryAdapter struct {
	repo persistence.ReportRepository
}

func newReportRepositoryAdapter(repo persistence.ReportRepository) *reportRepositoryAdapter {
	return &reportRepositoryAdapter{repo: repo}
}

func (a *reportRepositoryAdapter) CreateReport(ctx context.Context, report application.PublishedReport) (application.PublishedReport, error) {
	if err := a.repo.CreateReport(ctx, toPersistenceReport(report)); err != nil {
		return application.PublishedReport{}, err
	}
	stored, err := a.repo.GetReport(ctx, report.ID)
	if err != nil {
		return application.PublishedReport{}, err
	}
	return toApplicationReport(stored), nil
}

func (a *reportRepositoryAdapter) GetReport(ctx context.Context, id string) (application.PublishedReport, error) {
	stored, err := a.repo.GetReport(ctx, id)
	if err != nil {
		return application.PublishedReport{}, err
	}
	return toApplicationReport(stored), nil
}

func toApplicationSchedule(model persistence.Schedule) application.Schedule {
	employees := make([]application.Employee, 0, len(model.Employees))
	for _, emp := range model.Employees {
		employees = append(employees, application.Employee{
			ID:      emp.ID,
			Name:    emp.Name,
			Role:    emp.Role,
			PayType: emp.PayType,
			PayRate: copyRate(emp.PayRate),
			Shifts:  copyShifts(emp.Shifts),
		})
	}
	return application.Schedule{
		ID:        model.ID,
		Location:  model.Location,
		Brand:     model.Brand,
		WeekStart: model.WeekStart,
		Employees: employees,
		Sales:     copySales(model.Sales),
		UpdatedBy: model.UpdatedBy,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func toPersistenceSchedule(schedule application.Schedule) persistence.Schedule {
	employees := make([]persistence.Employee, 0, len(schedule.Employees))
	for _, emp := range schedule.Employees {
		employees = append(employees, persistence.Employee{
			ID:      emp.ID,
			Name:    emp.Name,
			Role:    emp.Role,
			PayType: emp.PayType,
			PayRate: copyRate(emp.PayRate),
			Shifts:  copyShifts(emp.Shifts),
		})
	}
	return persistence.Schedule{
		ID:        schedule.ID,
		Location:  schedule.Location,
		Brand:     schedule.Brand,
		WeekStart: schedule.WeekStart,
		Employees: employees,
		Sales:     copySales(schedule.Sales),
		UpdatedBy: schedule.UpdatedBy,
		CreatedAt: schedule.CreatedAt,
		UpdatedAt: schedule.UpdatedAt,
	}
}

func toApplicationReport(model persistence.Report) application.PublishedReport {
	return application.PublishedReport{
		ID:          model.ID,
		ScheduleID:  model.ScheduleID,
		FileName:    model.FileName,
		ContentType: model.ContentType,
		Content:     append([]byte(nil), model.Content...),
		CreatedBy:   model.CreatedBy,
		CreatedAt:   model.CreatedAt,
	}
}

func toPersistenceReport(report application.PublishedReport) persistence.Report {
	return persistence.Report{
		ID:          report.ID,
		ScheduleID:  report.ScheduleID,
		FileName:    report.FileName,
		ContentType: report.ContentType,
		Content:     append([]byte(nil), report.Content...),
		CreatedBy:   report.CreatedBy,
		CreatedAt:   report.CreatedAt,
	}
}

func copyRate(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func copyShifts(shifts map[string]string) map[string]string {
	out := make(map[string]string, len(shifts))
	for day, value := range shifts {
		out[day] = value
	}
	return out
}

func copySales(sales map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(sales))
	for day, value := range sales {
		out[day] = value
	}
	return out
}

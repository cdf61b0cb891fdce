package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/staffing-reports/internal/persistence"
	"github.com/example/staffing-reports/internal/shiftanalysis"
)

type scheduleReaderStub struct {
	schedules map[string]Schedule
	calls     int
}

func (r *scheduleReaderStub) GetSchedule(ctx context.Context, id string) (Schedule, error) {
	r.calls++
	s, ok := r.schedules[id]
	if !ok {
		return Schedule{}, persistence.ErrNotFound
	}
	return s, nil
}

type publishedRepoStub struct {
	reports   map[string]PublishedReport
	createErr error
}

func (r *publishedRepoStub) CreateReport(ctx context.Context, report PublishedReport) (PublishedReport, error) {
	if r.createErr != nil {
		return PublishedReport{}, r.createErr
	}
	if r.reports == nil {
		r.reports = make(map[string]PublishedReport)
	}
	r.reports[report.ID] = report
	return report, nil
}

func (r *publishedRepoStub) GetReport(ctx context.Context, id string) (PublishedReport, error) {
	report, ok := r.reports[id]
	if !ok {
		return PublishedReport{}, persistence.ErrNotFound
	}
	return report, nil
}

type rendererStub struct {
	rendered []ScheduleReport
	err      error
}

func (r *rendererStub) RenderReport(report ScheduleReport) (WorkbookFile, error) {
	if r.err != nil {
		return WorkbookFile{}, r.err
	}
	r.rendered = append(r.rendered, report)
	return WorkbookFile{
		FileName:    report.Location + ".xlsx",
		ContentType: "application/octet-stream",
		Content:     []byte("PK"),
	}, nil
}

func storedSchedule(updatedAt time.Time) Schedule {
	rate := 20.0
	return Schedule{
		ID:        "sched-1",
		Location:  "Main St",
		WeekStart: "2024-03-04",
		Employees: []Employee{
			{ID: "e1", Name: "Ana", Role: "Crew", PayType: "hourly", PayRate: &rate, Shifts: map[string]string{"mon": "10-14", "tue": "banana"}},
			{ID: "e2", Name: "Ben", Role: "Shift Manager", Shifts: map[string]string{"mon": "9-17"}},
		},
		Sales:     map[string]float64{"mon": 800},
		UpdatedBy: "system",
		CreatedAt: updatedAt,
		UpdatedAt: updatedAt,
	}
}

func TestReportService_GenerateReport(t *testing.T) {
	updated := time.Date(2024, time.March, 4, 8, 0, 0, 0, time.UTC)

	t.Run("analyses the stored week", func(t *testing.T) {
		reader := &scheduleReaderStub{schedules: map[string]Schedule{"sched-1": storedSchedule(updated)}}
		svc := NewReportService(ReportServiceDeps{Schedules: reader, Now: fixedNow(updated.Add(time.Hour))})

		report, err := svc.GenerateReport(context.Background(), "sched-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		analysis := report.Analysis
		if analysis.Brand != shiftanalysis.BrandDefault {
			t.Fatalf("expected default brand, got %v", analysis.Brand)
		}
		if analysis.Summary.TotalWeeklyHours != 12 || analysis.Summary.HourlyManagerHours != 8 {
			t.Fatalf("unexpected summary %+v", analysis.Summary)
		}
		if !analysis.HasLabor || analysis.LaborPercent != 10 {
			t.Fatalf("expected 10%% labor, got %v (%v)", analysis.LaborPercent, analysis.HasLabor)
		}
		lunch := analysis.Staffing.Count(shiftanalysis.Monday, shiftanalysis.Lunch)
		if lunch[shiftanalysis.CategoryCrew] != 1 || lunch[shiftanalysis.CategoryManagers] != 1 {
			t.Fatalf("unexpected monday lunch counts %v", lunch)
		}
		if len(analysis.Diagnostics) != 2 {
			t.Fatalf("expected unparseable time and missing pay diagnostics, got %+v", analysis.Diagnostics)
		}
		if report.ScheduleID != "sched-1" || !report.ScheduleUpdatedAt.Equal(updated) {
			t.Fatalf("unexpected report metadata %+v", report)
		}
	})

	t.Run("serves unchanged schedules from the cache", func(t *testing.T) {
		reader := &scheduleReaderStub{schedules: map[string]Schedule{"sched-1": storedSchedule(updated)}}
		clock := updated
		svc := NewReportService(ReportServiceDeps{
			Schedules: reader,
			Cache:     NewReportCache(time.Minute, 8),
			Now:       func() time.Time { clock = clock.Add(time.Second); return clock },
		})

		first, err := svc.GenerateReport(context.Background(), "sched-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := svc.GenerateReport(context.Background(), "sched-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !second.GeneratedAt.Equal(first.GeneratedAt) {
			t.Fatalf("expected cached report, generated at %v and %v", first.GeneratedAt, second.GeneratedAt)
		}

		changed := storedSchedule(updated.Add(time.Minute))
		reader.schedules["sched-1"] = changed
		third, err := svc.GenerateReport(context.Background(), "sched-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if third.GeneratedAt.Equal(first.GeneratedAt) || !third.ScheduleUpdatedAt.Equal(changed.UpdatedAt) {
			t.Fatalf("expected fresh report after schedule change, got %+v", third)
		}
	})

	t.Run("missing schedule is not found", func(t *testing.T) {
		svc := NewReportService(ReportServiceDeps{Schedules: &scheduleReaderStub{}})
		if _, err := svc.GenerateReport(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestReportService_AnalyzeWeek(t *testing.T) {
	t.Run("analyses inline employees", func(t *testing.T) {
		svc := NewReportService(ReportServiceDeps{})
		report, err := svc.AnalyzeWeek(context.Background(), AnalyzeWeekParams{
			Location: "ODT Downtown",
			Employees: []Employee{
				{ID: "d1", Name: "Kim", Role: "Barista", Shifts: map[string]string{"Saturday": "6-11"}},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Analysis.Brand != shiftanalysis.BrandDoughnut {
			t.Fatalf("expected doughnut brand, got %v", report.Analysis.Brand)
		}
		morning := report.Analysis.Staffing.Count(shiftanalysis.Saturday, shiftanalysis.Morning)
		if morning[shiftanalysis.CategoryBarista] != 1 {
			t.Fatalf("expected barista in saturday morning, got %v", morning)
		}
		if report.ScheduleID != "" {
			t.Fatalf("inline analysis should not carry a schedule id")
		}
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		svc := NewReportService(ReportServiceDeps{})
		_, err := svc.AnalyzeWeek(context.Background(), AnalyzeWeekParams{
			WeekStart: "next monday",
			Employees: []Employee{{Name: "No ID"}},
			Sales:     map[string]float64{"mon": -5},
		})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected validation error, got %v", err)
		}
		for _, field := range []string{"week_start", "employees[0].id", "sales.mon"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Errorf("expected field error for %s, got %v", field, vErr.FieldErrors)
			}
		}
	})
}

func TestReportService_PublishReport(t *testing.T) {
	updated := time.Date(2024, time.March, 4, 8, 0, 0, 0, time.UTC)

	t.Run("stores the rendered workbook", func(t *testing.T) {
		reader := &scheduleReaderStub{schedules: map[string]Schedule{"sched-1": storedSchedule(updated)}}
		repo := &publishedRepoStub{}
		renderer := &rendererStub{}
		svc := NewReportService(ReportServiceDeps{
			Schedules:   reader,
			Published:   repo,
			Renderer:    renderer,
			IDGenerator: sequentialIDs("report"),
			Now:         fixedNow(updated),
		})

		published, err := svc.PublishReport(context.Background(), PublishReportParams{ScheduleID: "sched-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if published.ID != "report-1" || published.CreatedBy != DefaultUpdatedBy || published.FileName != "Main St.xlsx" {
			t.Fatalf("unexpected published report %+v", published)
		}
		if len(renderer.rendered) != 1 {
			t.Fatalf("expected one render, got %d", len(renderer.rendered))
		}

		got, err := svc.GetPublishedReport(context.Background(), "report-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(got.Content) != "PK" {
			t.Fatalf("unexpected content %q", got.Content)
		}
	})

	t.Run("renderer failures are surfaced", func(t *testing.T) {
		reader := &scheduleReaderStub{schedules: map[string]Schedule{"sched-1": storedSchedule(updated)}}
		svc := NewReportService(ReportServiceDeps{
			Schedules: reader,
			Published: &publishedRepoStub{},
			Renderer:  &rendererStub{err: errors.New("disk full")},
		})
		if _, err := svc.PublishReport(context.Background(), PublishReportParams{ScheduleID: "sched-1"}); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("missing schedule or report is not found", func(t *testing.T) {
		svc := NewReportService(ReportServiceDeps{
			Schedules: &scheduleReaderStub{},
			Published: &publishedRepoStub{},
			Renderer:  &rendererStub{},
		})
		if _, err := svc.PublishReport(context.Background(), PublishReportParams{ScheduleID: "nope"}); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if _, err := svc.GetPublishedReport(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("schedule deleted mid publish is a conflict", func(t *testing.T) {
		reader := &scheduleReaderStub{schedules: map[string]Schedule{"sched-1": storedSchedule(updated)}}
		svc := NewReportService(ReportServiceDeps{
			Schedules: reader,
			Published: &publishedRepoStub{createErr: persistence.ErrConstraintViolation},
			Renderer:  &rendererStub{},
		})
		if _, err := svc.PublishReport(context.Background(), PublishReportParams{ScheduleID: "sched-1"}); !errors.Is(err, ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})
}

package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/staffing-reports/internal/shiftanalysis"
)

// ScheduleReader loads stored schedules for reporting.
type ScheduleReader interface {
	GetSchedule(ctx context.Context, id string) (Schedule, error)
}

// PublishedReportRepository stores rendered report workbooks.
type PublishedReportRepository interface {
	CreateReport(ctx context.Context, report PublishedReport) (PublishedReport, error)
	GetReport(ctx context.Context, id string) (PublishedReport, error)
}

// WorkbookRenderer renders a report into a spreadsheet workbook.
type WorkbookRenderer interface {
	RenderReport(report ScheduleReport) (WorkbookFile, error)
}

// ReportService produces staffing reports from stored or inline schedules.
type ReportService struct {
	schedules   ScheduleReader
	published   PublishedReportRepository
	renderer    WorkbookRenderer
	cache       *ReportCache
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// ReportServiceDeps groups the collaborators of a ReportService.
type ReportServiceDeps struct {
	Schedules   ScheduleReader
	Published   PublishedReportRepository
	Renderer    WorkbookRenderer
	Cache       *ReportCache
	IDGenerator func() string
	Now         func() time.Time
	Logger      *slog.Logger
}

// NewReportService wires dependencies for report operations. A nil cache
// disables caching.
func NewReportService(deps ReportServiceDeps) *ReportService {
	if deps.IDGenerator == nil {
		deps.IDGenerator = func() string { return "" }
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &ReportService{
		schedules:   deps.Schedules,
		published:   deps.Published,
		renderer:    deps.Renderer,
		cache:       deps.Cache,
		idGenerator: deps.IDGenerator,
		now:         deps.Now,
		logger:      defaultLogger(deps.Logger),
	}
}

func (s *ReportService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "ReportService", operation, attrs...)
}

// GenerateReport analyses a stored schedule. Reports are served from the cache
// while the schedule is unchanged.
func (s *ReportService) GenerateReport(ctx context.Context, scheduleID string) (report ScheduleReport, err error) {
	if s == nil {
		err = fmt.Errorf("ReportService is nil")
		return
	}

	logger := s.loggerWith(ctx, "GenerateReport", "schedule_id", scheduleID)
	cached := false
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to generate report", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With(
			"cached", cached,
			"employee_count", report.Analysis.Summary.EmployeeCount,
			"diagnostic_count", len(report.Analysis.Diagnostics),
		).InfoContext(ctx, "report generated")
	}()

	schedule, err := s.loadSchedule(ctx, scheduleID)
	if err != nil {
		return
	}

	if hit, ok := s.cache.Get(schedule.ID, schedule.UpdatedAt); ok {
		cached = true
		report = hit
		return
	}

	report = ScheduleReport{
		ScheduleID:        schedule.ID,
		Location:          schedule.Location,
		Brand:             schedule.Brand,
		WeekStart:         schedule.WeekStart,
		ScheduleUpdatedAt: schedule.UpdatedAt,
		GeneratedAt:       s.now(),
		Analysis:          shiftanalysis.Analyze(schedule.Week()),
	}
	s.logDiagnostics(ctx, logger, report.Analysis.Diagnostics)
	s.cache.Store(report)
	return
}

// AnalyzeWeek analyses an inline schedule without storing it.
func (s *ReportService) AnalyzeWeek(ctx context.Context, params AnalyzeWeekParams) (report ScheduleReport, err error) {
	if s == nil {
		err = fmt.Errorf("ReportService is nil")
		return
	}

	logger := s.loggerWith(ctx, "AnalyzeWeek", "location", params.Location)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to analyze week", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With(
			"employee_count", report.Analysis.Summary.EmployeeCount,
			"diagnostic_count", len(report.Analysis.Diagnostics),
		).InfoContext(ctx, "week analyzed")
	}()

	vErr := &ValidationError{}
	employees, empErr := normalizeEmployees(params.Employees)
	vErr.merge(empErr)
	sales, salesErr := normalizeSales(params.Sales)
	vErr.merge(salesErr)
	weekStart := strings.TrimSpace(params.WeekStart)
	if weekStart != "" {
		if _, parseErr := time.Parse(weekStartLayout, weekStart); parseErr != nil {
			vErr.add("week_start", "week_start must be a YYYY-MM-DD date")
		}
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	location := strings.TrimSpace(params.Location)
	brand := strings.TrimSpace(params.Brand)
	report = ScheduleReport{
		Location:    location,
		Brand:       brand,
		WeekStart:   weekStart,
		GeneratedAt: s.now(),
		Analysis:    shiftanalysis.Analyze(buildWeek(location, brand, employees, sales)),
	}
	s.logDiagnostics(ctx, logger, report.Analysis.Diagnostics)
	return
}

// RenderWorkbook renders the report of a stored schedule as a workbook.
func (s *ReportService) RenderWorkbook(ctx context.Context, scheduleID string) (WorkbookFile, error) {
	if s == nil {
		return WorkbookFile{}, fmt.Errorf("ReportService is nil")
	}
	if s.renderer == nil {
		return WorkbookFile{}, fmt.Errorf("workbook renderer not configured")
	}
	report, err := s.GenerateReport(ctx, scheduleID)
	if err != nil {
		return WorkbookFile{}, err
	}
	file, err := s.renderer.RenderReport(report)
	if err != nil {
		s.loggerWith(ctx, "RenderWorkbook", "schedule_id", scheduleID).
			ErrorContext(ctx, "failed to render workbook", "error", err, "error_kind", ErrorKind(err))
		return WorkbookFile{}, fmt.Errorf("render workbook: %w", err)
	}
	return file, nil
}

// PublishReport renders the schedule's report and stores the workbook.
func (s *ReportService) PublishReport(ctx context.Context, params PublishReportParams) (published PublishedReport, err error) {
	if s == nil {
		err = fmt.Errorf("ReportService is nil")
		return
	}

	logger := s.loggerWith(ctx, "PublishReport", "schedule_id", params.ScheduleID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to publish report", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("report_id", published.ID, "size_bytes", len(published.Content)).InfoContext(ctx, "report published")
	}()

	if s.published == nil {
		err = fmt.Errorf("report repository not configured")
		return
	}

	file, err := s.RenderWorkbook(ctx, params.ScheduleID)
	if err != nil {
		return
	}

	createdBy := strings.TrimSpace(params.PublishedBy)
	if createdBy == "" {
		createdBy = DefaultUpdatedBy
	}
	published, err = s.published.CreateReport(ctx, PublishedReport{
		ID:          s.idGenerator(),
		ScheduleID:  strings.TrimSpace(params.ScheduleID),
		FileName:    file.FileName,
		ContentType: file.ContentType,
		Content:     file.Content,
		CreatedBy:   createdBy,
		CreatedAt:   s.now(),
	})
	err = mapRepoError(err)
	return
}

// GetPublishedReport returns a stored report workbook.
func (s *ReportService) GetPublishedReport(ctx context.Context, id string) (report PublishedReport, err error) {
	if s == nil {
		err = fmt.Errorf("ReportService is nil")
		return
	}

	logger := s.loggerWith(ctx, "GetPublishedReport", "report_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to get published report", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	id = strings.TrimSpace(id)
	if id == "" {
		err = ErrNotFound
		return
	}
	if s.published == nil {
		err = fmt.Errorf("report repository not configured")
		return
	}
	report, err = s.published.GetReport(ctx, id)
	err = mapRepoError(err)
	return
}

func (s *ReportService) loadSchedule(ctx context.Context, id string) (Schedule, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Schedule{}, ErrNotFound
	}
	if s.schedules == nil {
		return Schedule{}, fmt.Errorf("schedule repository not configured")
	}
	schedule, err := s.schedules.GetSchedule(ctx, id)
	if err != nil {
		return Schedule{}, mapRepoError(err)
	}
	return schedule, nil
}

func (s *ReportService) logDiagnostics(ctx context.Context, logger *slog.Logger, diagnostics []shiftanalysis.Diagnostic) {
	for _, d := range diagnostics {
		attrs := []any{"employee_id", d.EmployeeID, "kind", string(d.Kind)}
		if d.HasDay {
			attrs = append(attrs, "day", d.Day.Key())
		}
		if d.Value != "" {
			attrs = append(attrs, "value", d.Value)
		}
		logger.WarnContext(ctx, "report input degraded", attrs...)
	}
}
